package usuario

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/condsaojudas/condominio/internal/sheets"
	"github.com/condsaojudas/condominio/internal/util"
)

// Repository provê acesso à aba de usuários da planilha.
type Repository struct {
	store sheets.RowStore
	agora func() time.Time
}

// NewRepository cria instância do repositório.
func NewRepository(store sheets.RowStore) *Repository {
	return &Repository{store: store, agora: time.Now}
}

// Criar cadastra um novo usuário, rejeitando email repetido. Ids de usuário
// são inteiros simples sem zero à esquerda ("1", "2", ...).
func (r *Repository) Criar(ctx context.Context, input CriarInput) (*Usuario, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if err := util.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.Nome, "nome"); err != nil {
		return nil, err
	}
	if err := util.RequireString(input.SenhaHash, "senha"); err != nil {
		return nil, err
	}

	tipo := input.Tipo
	if tipo == "" {
		tipo = TipoCondomino
	}
	if !TipoValido(tipo) {
		return nil, ErrTipoInvalido
	}

	if _, err := r.BuscarPorEmail(ctx, email); err == nil {
		return nil, ErrEmailEmUso
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	id, err := r.proximoID(ctx)
	if err != nil {
		return nil, err
	}

	u := &Usuario{
		ID:          id,
		Email:       email,
		Nome:        strings.TrimSpace(input.Nome),
		SenhaHash:   input.SenhaHash,
		Tipo:        tipo,
		DataCriacao: util.FormatData(r.agora()),
	}

	linha := sheets.Row{
		"id":           u.ID,
		"email":        u.Email,
		"nome":         u.Nome,
		"senha_hash":   u.SenhaHash,
		"tipo":         u.Tipo,
		"data_criacao": u.DataCriacao,
	}
	if err := r.store.Append(ctx, sheets.TabelaUsuarios, linha); err != nil {
		return nil, err
	}
	return u, nil
}

// BuscarPorEmail varre a aba procurando o email exato (minúsculas).
func (r *Repository) BuscarPorEmail(ctx context.Context, email string) (*Usuario, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	linhas, err := r.store.ListAll(ctx, sheets.TabelaUsuarios)
	if err != nil {
		return nil, err
	}
	for _, linha := range linhas {
		if linha["email"] == email {
			u := deLinha(linha)
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// BuscarPorID devolve o usuário com o id dado ou ErrNotFound.
func (r *Repository) BuscarPorID(ctx context.Context, id string) (*Usuario, error) {
	linha, _, err := r.store.FindByKey(ctx, sheets.TabelaUsuarios, id)
	if err != nil {
		if errors.Is(err, sheets.ErrLinhaNaoEncontrada) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u := deLinha(linha)
	return &u, nil
}

func (r *Repository) proximoID(ctx context.Context) (string, error) {
	linhas, err := r.store.ListAll(ctx, sheets.TabelaUsuarios)
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
	return strconv.Itoa(maior + 1), nil
}

func deLinha(linha sheets.Row) Usuario {
	return Usuario{
		ID:          linha["id"],
		Email:       linha["email"],
		Nome:        linha["nome"],
		SenhaHash:   linha["senha_hash"],
		Tipo:        linha["tipo"],
		DataCriacao: linha["data_criacao"],
	}
}
