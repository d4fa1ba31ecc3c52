package demanda

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/condsaojudas/condominio/internal/sheets"
	"github.com/condsaojudas/condominio/internal/util"
)

// Repository provê acesso à aba de demandas da planilha.
//
// Contrato de concorrência: Atualizar faz leitura seguida de escrita sem
// transação (a planilha não oferece nenhuma). Edições concorrentes do mesmo
// id são last-write-wins e podem se perder; quem precisar de garantia mais
// forte deve serializar as escritas fora daqui.
type Repository struct {
	store sheets.RowStore
	agora func() time.Time
}

// NewRepository cria instância do repositório.
func NewRepository(store sheets.RowStore) *Repository {
	return &Repository{store: store, agora: time.Now}
}

// Criar abre uma nova demanda: valida campos, atribui o próximo id
// sequencial e carimba as duas datas com a data de hoje.
func (r *Repository) Criar(ctx context.Context, input CriarInput) (*Demanda, error) {
	if err := input.Valida(); err != nil {
		return nil, err
	}

	id, err := r.proximoID(ctx)
	if err != nil {
		return nil, err
	}

	hoje := util.FormatData(r.agora())
	d := &Demanda{
		ID:              id,
		Titulo:          input.Titulo,
		Categoria:       input.Categoria,
		Criticidade:     input.Criticidade,
		Descricao:       input.Descricao,
		Localizacao:     input.Localizacao,
		Status:          StatusAberta,
		DataCriacao:     hoje,
		DataAtualizacao: hoje,
	}

	if err := r.store.Append(ctx, sheets.TabelaDemandas, daLinha(d)); err != nil {
		return nil, err
	}
	return d, nil
}

// BuscarPorID devolve a demanda com o id dado ou ErrNotFound.
func (r *Repository) BuscarPorID(ctx context.Context, id string) (*Demanda, error) {
	linha, _, err := r.store.FindByKey(ctx, sheets.TabelaDemandas, id)
	if err != nil {
		if errors.Is(err, sheets.ErrLinhaNaoEncontrada) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	d := deLinha(linha)
	return &d, nil
}

// Atualizar mescla os campos informados sobre a linha atual (campos nil
// mantêm o valor armazenado), recarimba data_atualizacao e persiste.
// Devolve a demanda já mesclada.
func (r *Repository) Atualizar(ctx context.Context, id string, input AtualizarInput) (*Demanda, error) {
	linha, posicao, err := r.store.FindByKey(ctx, sheets.TabelaDemandas, id)
	if err != nil {
		if errors.Is(err, sheets.ErrLinhaNaoEncontrada) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	d := deLinha(linha)
	aplica(&d.Titulo, input.Titulo)
	aplica(&d.Categoria, input.Categoria)
	aplica(&d.Criticidade, input.Criticidade)
	aplica(&d.Descricao, input.Descricao)
	aplica(&d.Localizacao, input.Localizacao)
	aplica(&d.Status, input.Status)
	d.DataAtualizacao = util.FormatData(r.agora())

	celulas := map[string]string{
		"titulo":           d.Titulo,
		"categoria":        d.Categoria,
		"criticidade":      d.Criticidade,
		"descricao":        d.Descricao,
		"localizacao":      d.Localizacao,
		"status":           d.Status,
		"data_atualizacao": d.DataAtualizacao,
	}
	if err := r.store.UpdateCells(ctx, sheets.TabelaDemandas, posicao, celulas); err != nil {
		return nil, err
	}
	return &d, nil
}

// Excluir remove fisicamente a demanda. Devolve se alguma linha foi removida.
func (r *Repository) Excluir(ctx context.Context, id string) (bool, error) {
	_, posicao, err := r.store.FindByKey(ctx, sheets.TabelaDemandas, id)
	if err != nil {
		if errors.Is(err, sheets.ErrLinhaNaoEncontrada) {
			return false, nil
		}
		return false, err
	}

	if err := r.store.DeleteRow(ctx, sheets.TabelaDemandas, posicao); err != nil {
		return false, err
	}
	return true, nil
}

// ListarTodas devolve todas as demandas da aba.
func (r *Repository) ListarTodas(ctx context.Context) ([]Demanda, error) {
	linhas, err := r.store.ListAll(ctx, sheets.TabelaDemandas)
	if err != nil {
		return nil, err
	}

	demandas := make([]Demanda, 0, len(linhas))
	for _, linha := range linhas {
		demandas = append(demandas, deLinha(linha))
	}
	return demandas, nil
}

// Filtrar devolve as demandas que batem com todos os campos preenchidos do
// filtro, por igualdade exata. Sentinelas de "todos" não filtram.
func (r *Repository) Filtrar(ctx context.Context, filtro Filtro) ([]Demanda, error) {
	demandas, err := r.ListarTodas(ctx)
	if err != nil {
		return nil, err
	}

	criterios := []struct {
		valor     string
		sentinela string
		campo     func(Demanda) string
	}{
		{filtro.Status, TodosStatus, func(d Demanda) string { return d.Status }},
		{filtro.Categoria, TodasCategorias, func(d Demanda) string { return d.Categoria }},
		{filtro.Criticidade, TodasCriticidades, func(d Demanda) string { return d.Criticidade }},
	}

	resultado := make([]Demanda, 0, len(demandas))
	for _, d := range demandas {
		ok := true
		for _, c := range criterios {
			if c.valor == "" || c.valor == c.sentinela {
				continue
			}
			if c.campo(d) != c.valor {
				ok = false
				break
			}
		}
		if ok {
			resultado = append(resultado, d)
		}
	}
	return resultado, nil
}

// proximoID varre os ids existentes, toma o maior que parseia como inteiro
// não negativo e devolve o seguinte com três dígitos. Planilha vazia (ou só
// com ids não numéricos) começa em "001".
func (r *Repository) proximoID(ctx context.Context) (string, error) {
	linhas, err := r.store.ListAll(ctx, sheets.TabelaDemandas)
	if err != nil {
		return "", err
	}

	maior := 0
	for _, linha := range linhas {
		n, err := strconv.Atoi(linha[sheets.ColunaChave])
		if err != nil || n < 0 {
			continue
		}
		if n > maior {
			maior = n
		}
	}
	return fmt.Sprintf("%03d", maior+1), nil
}

func aplica(destino *string, valor *string) {
	if valor != nil {
		*destino = *valor
	}
}

func deLinha(linha sheets.Row) Demanda {
	return Demanda{
		ID:              linha["id"],
		Titulo:          linha["titulo"],
		Categoria:       linha["categoria"],
		Criticidade:     linha["criticidade"],
		Descricao:       linha["descricao"],
		Localizacao:     linha["localizacao"],
		Status:          linha["status"],
		DataCriacao:     linha["data_criacao"],
		DataAtualizacao: linha["data_atualizacao"],
	}
}

func daLinha(d *Demanda) sheets.Row {
	return sheets.Row{
		"id":               d.ID,
		"titulo":           d.Titulo,
		"categoria":        d.Categoria,
		"criticidade":      d.Criticidade,
		"descricao":        d.Descricao,
		"localizacao":      d.Localizacao,
		"status":           d.Status,
		"data_criacao":     d.DataCriacao,
		"data_atualizacao": d.DataAtualizacao,
	}
}
