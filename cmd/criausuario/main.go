// criausuario cadastra um usuário direto na planilha. É o único caminho para
// criar síndicos e administradoras; o formulário da API só cria condôminos.
//
// usage: criausuario <email> <nome> <senha> [tipo]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/condsaojudas/condominio/internal/auth"
	"github.com/condsaojudas/condominio/internal/config"
	"github.com/condsaojudas/condominio/internal/sheets"
	"github.com/condsaojudas/condominio/internal/usuario"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: criausuario <email> <nome> <senha> [tipo]")
		os.Exit(1)
	}

	email, nome, senha := os.Args[1], os.Args[2], os.Args[3]
	tipo := usuario.TipoCondomino
	if len(os.Args) > 4 {
		tipo = os.Args[4]
	}

	if err := run(email, nome, senha, tipo); err != nil {
		log.Fatal().Err(err).Msg("cadastro falhou")
	}
}

func run(email, nome, senha, tipo string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID obrigatório para cadastrar usuário")
	}

	ctx := context.Background()
	store, err := sheets.New(ctx, cfg.CredentialsFile, cfg.SpreadsheetID)
	if err != nil {
		return fmt.Errorf("sheets: %w", err)
	}

	hash, err := auth.Hash(senha)
	if err != nil {
		return fmt.Errorf("hash: %w", err)
	}

	u, err := usuario.NewRepository(store).Criar(ctx, usuario.CriarInput{
		Email:     email,
		Nome:      nome,
		SenhaHash: hash,
		Tipo:      tipo,
	})
	if err != nil {
		return err
	}

	log.Info().Str("id", u.ID).Str("email", u.Email).Str("tipo", u.Tipo).Msg("usuário criado")
	return nil
}
