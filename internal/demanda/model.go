package demanda

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound é retornado quando nenhuma demanda tem o id buscado.
	ErrNotFound = errors.New("demanda não encontrada")
)

// Status possíveis de uma demanda. Não há máquina de estados: qualquer
// status pode suceder qualquer outro, inclusive reabrir uma resolvida.
const (
	StatusAberta              = "Aberta"
	StatusEmAnalise           = "Em Análise"
	StatusEmAndamento         = "Em Andamento"
	StatusAguardandoTerceiros = "Aguardando Terceiros"
	StatusResolvida           = "Resolvida"
	StatusCancelada           = "Cancelada"
)

// Sentinelas de filtro usadas pelo frontend nos selects de listagem.
const (
	TodosStatus       = "Todos os Status"
	TodasCategorias   = "Todas as Categorias"
	TodasCriticidades = "Todas as Criticidades"
)

// Demanda representa um chamado de manutenção do condomínio. As datas são
// strings no formato da planilha (DD/MM/YYYY); TempoResolucao é derivado
// pelo dashboard e nunca persistido.
type Demanda struct {
	ID              string `json:"id"`
	Titulo          string `json:"titulo"`
	Categoria       string `json:"categoria"`
	Criticidade     string `json:"criticidade"`
	Descricao       string `json:"descricao"`
	Localizacao     string `json:"localizacao"`
	Status          string `json:"status"`
	DataCriacao     string `json:"data_criacao"`
	DataAtualizacao string `json:"data_atualizacao"`
	TempoResolucao  *int   `json:"tempo_resolucao,omitempty"`
}

// CriarInput encapsula os campos de abertura de demanda. Todos obrigatórios.
type CriarInput struct {
	Titulo      string
	Categoria   string
	Criticidade string
	Descricao   string
	Localizacao string
}

// AtualizarInput permite atualização parcial: campos nil mantêm o valor
// armazenado. DataAtualizacao é sempre recarimbada pelo repositório.
type AtualizarInput struct {
	Titulo      *string
	Categoria   *string
	Criticidade *string
	Descricao   *string
	Localizacao *string
	Status      *string
}

// Filtro restringe a listagem por igualdade exata. Valores vazios ou iguais
// às sentinelas ("Todos os Status" etc.) não filtram nada.
type Filtro struct {
	Status      string
	Categoria   string
	Criticidade string
}

// ErroValidacao indica campo obrigatório ausente na criação.
type ErroValidacao struct {
	Campo string
}

func (e *ErroValidacao) Error() string {
	return fmt.Sprintf("%s obrigatório", e.Campo)
}

// Valida confere os campos obrigatórios do input de criação.
func (in CriarInput) Valida() error {
	campos := []struct {
		nome  string
		valor string
	}{
		{"titulo", in.Titulo},
		{"categoria", in.Categoria},
		{"criticidade", in.Criticidade},
		{"descricao", in.Descricao},
		{"localizacao", in.Localizacao},
	}
	for _, c := range campos {
		if strings.TrimSpace(c.valor) == "" {
			return &ErroValidacao{Campo: c.nome}
		}
	}
	return nil
}
