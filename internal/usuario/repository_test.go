package usuario

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/condsaojudas/condominio/internal/sheets"
)

func novoRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(sheets.NewMemoryStore())
	repo.agora = func() time.Time { return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) }
	return repo
}

func entradaValida() CriarInput {
	return CriarInput{
		Email:     "morador@cond.com",
		Nome:      "Morador",
		SenhaHash: "$argon2id$fake",
	}
}

func TestCriarNormalizaEmail(t *testing.T) {
	ctx := context.Background()
	repo := novoRepo(t)

	input := entradaValida()
	input.Email = "  Morador@Cond.COM "

	u, err := repo.Criar(ctx, input)
	if err != nil {
		t.Fatalf("Criar: %v", err)
	}
	if u.Email != "morador@cond.com" {
		t.Fatalf("email = %q, esperado minúsculo e sem espaços", u.Email)
	}
	if u.ID != "1" {
		t.Fatalf("primeiro id = %q, esperado 1", u.ID)
	}
	if u.Tipo != TipoCondomino {
		t.Fatalf("tipo default = %q, esperado %q", u.Tipo, TipoCondomino)
	}
	if u.DataCriacao != "01/04/2025" {
		t.Fatalf("data_criacao = %q", u.DataCriacao)
	}
}

func TestCriarEmailRepetido(t *testing.T) {
	ctx := context.Background()
	repo := novoRepo(t)

	if _, err := repo.Criar(ctx, entradaValida()); err != nil {
		t.Fatalf("Criar: %v", err)
	}

	input := entradaValida()
	input.Email = "MORADOR@cond.com"
	if _, err := repo.Criar(ctx, input); !errors.Is(err, ErrEmailEmUso) {
		t.Fatalf("esperado ErrEmailEmUso, veio %v", err)
	}
}

func TestCriarTipoInvalido(t *testing.T) {
	ctx := context.Background()
	repo := novoRepo(t)

	input := entradaValida()
	input.Tipo = "zelador"
	if _, err := repo.Criar(ctx, input); !errors.Is(err, ErrTipoInvalido) {
		t.Fatalf("esperado ErrTipoInvalido, veio %v", err)
	}
}

func TestBuscarPorEmailEID(t *testing.T) {
	ctx := context.Background()
	repo := novoRepo(t)

	criado, err := repo.Criar(ctx, entradaValida())
	if err != nil {
		t.Fatalf("Criar: %v", err)
	}

	porEmail, err := repo.BuscarPorEmail(ctx, "MORADOR@cond.com")
	if err != nil {
		t.Fatalf("BuscarPorEmail: %v", err)
	}
	if porEmail.ID != criado.ID {
		t.Fatalf("ids divergem: %q vs %q", porEmail.ID, criado.ID)
	}

	porID, err := repo.BuscarPorID(ctx, criado.ID)
	if err != nil {
		t.Fatalf("BuscarPorID: %v", err)
	}
	if porID.Email != criado.Email {
		t.Fatalf("emails divergem: %q vs %q", porID.Email, criado.Email)
	}

	if _, err := repo.BuscarPorID(ctx, "99"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("esperado ErrNotFound, veio %v", err)
	}
}

func TestIDsSequenciaisSimples(t *testing.T) {
	ctx := context.Background()
	repo := novoRepo(t)

	for i, email := range []string{"a@cond.com", "b@cond.com", "c@cond.com"} {
		input := entradaValida()
		input.Email = email

		u, err := repo.Criar(ctx, input)
		if err != nil {
			t.Fatalf("Criar %s: %v", email, err)
		}
		// ids de usuário não levam zero à esquerda
		esperado := []string{"1", "2", "3"}[i]
		if u.ID != esperado {
			t.Fatalf("id = %q, esperado %q", u.ID, esperado)
		}
	}
}
