package demanda

import (
	"context"
	"fmt"
	"testing"

	"github.com/condsaojudas/condominio/internal/sheets"
)

func novoService(t *testing.T) (*Service, *sheets.MemoryStore) {
	t.Helper()
	store := sheets.NewMemoryStore()
	return NewService(NewRepository(store)), store
}

func TestListarOrdenaPorDataDecrescente(t *testing.T) {
	ctx := context.Background()
	svc, store := novoService(t)

	seed := []sheets.Row{
		{"id": "001", "titulo": "Antiga", "data_criacao": "05/01/2025"},
		{"id": "002", "titulo": "Recente", "data_criacao": "20/03/2025"},
		{"id": "003", "titulo": "Meio", "data_criacao": "10/02/2025"},
	}
	for _, linha := range seed {
		if err := store.Append(ctx, sheets.TabelaDemandas, linha); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	listagem, err := svc.Listar(ctx, ListarParams{})
	if err != nil {
		t.Fatalf("Listar: %v", err)
	}

	ordem := []string{"002", "003", "001"}
	if len(listagem.Demandas) != len(ordem) {
		t.Fatalf("veio %d demandas, esperado %d", len(listagem.Demandas), len(ordem))
	}
	for i, id := range ordem {
		if listagem.Demandas[i].ID != id {
			t.Fatalf("posição %d = %s, esperado %s", i, listagem.Demandas[i].ID, id)
		}
	}
}

func TestListarBuscaTextual(t *testing.T) {
	ctx := context.Background()
	svc, store := novoService(t)

	seed := []sheets.Row{
		{"id": "001", "titulo": "Vazamento na garagem", "descricao": "cano furado", "localizacao": "Subsolo", "data_criacao": "01/03/2025"},
		{"id": "002", "titulo": "Lâmpada queimada", "descricao": "corredor escuro", "localizacao": "Bloco B", "data_criacao": "02/03/2025"},
		{"id": "003", "titulo": "Portão travando", "descricao": "vazamento de óleo no motor", "localizacao": "Entrada", "data_criacao": "03/03/2025"},
	}
	for _, linha := range seed {
		if err := store.Append(ctx, sheets.TabelaDemandas, linha); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// busca sem diferenciar maiúsculas, em titulo e descricao
	listagem, err := svc.Listar(ctx, ListarParams{Busca: "VAZAMENTO"})
	if err != nil {
		t.Fatalf("Listar: %v", err)
	}
	if listagem.Total != 2 {
		t.Fatalf("busca deveria achar 2, veio %d", listagem.Total)
	}

	// busca por id
	listagem, err = svc.Listar(ctx, ListarParams{Busca: "002"})
	if err != nil {
		t.Fatalf("Listar: %v", err)
	}
	if listagem.Total != 1 || listagem.Demandas[0].ID != "002" {
		t.Fatalf("busca por id errada: %+v", listagem.Demandas)
	}
}

func TestListarPaginacao(t *testing.T) {
	ctx := context.Background()
	svc, store := novoService(t)

	for i := 1; i <= 25; i++ {
		linha := sheets.Row{
			"id":           fmt.Sprintf("%03d", i),
			"titulo":       "Demanda",
			"data_criacao": fmt.Sprintf("%02d/01/2025", (i%28)+1),
		}
		if err := store.Append(ctx, sheets.TabelaDemandas, linha); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	primeira, err := svc.Listar(ctx, ListarParams{Pagina: 1})
	if err != nil {
		t.Fatalf("Listar: %v", err)
	}
	if len(primeira.Demandas) != PorPagina {
		t.Fatalf("página 1 com %d itens, esperado %d", len(primeira.Demandas), PorPagina)
	}
	if primeira.TotalPaginas != 3 || primeira.Total != 25 {
		t.Fatalf("totais errados: %+v", primeira)
	}

	ultima, err := svc.Listar(ctx, ListarParams{Pagina: 3})
	if err != nil {
		t.Fatalf("Listar: %v", err)
	}
	if len(ultima.Demandas) != 5 {
		t.Fatalf("página 3 com %d itens, esperado 5", len(ultima.Demandas))
	}

	// página além do fim volta para a última
	fora, err := svc.Listar(ctx, ListarParams{Pagina: 99})
	if err != nil {
		t.Fatalf("Listar: %v", err)
	}
	if fora.Pagina != 3 {
		t.Fatalf("página fora do alcance deveria ir para 3, veio %d", fora.Pagina)
	}
}
