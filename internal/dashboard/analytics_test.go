package dashboard

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/condsaojudas/condominio/internal/demanda"
)

func TestProcessarDerivaTempoResolucao(t *testing.T) {
	lote := []demanda.Demanda{
		{ID: "001", Status: demanda.StatusResolvida, DataCriacao: "01/04/2025", DataAtualizacao: "04/04/2025"},
		{ID: "002", Status: demanda.StatusAberta, DataCriacao: "02/04/2025", DataAtualizacao: "02/04/2025"},
	}

	processadas, err := Processar(lote)
	if err != nil {
		t.Fatalf("Processar: %v", err)
	}

	if processadas[0].TempoResolucao == nil || *processadas[0].TempoResolucao != 3 {
		t.Fatalf("tempo de resolução da resolvida = %v, esperado 3", processadas[0].TempoResolucao)
	}
	if processadas[1].TempoResolucao != nil {
		t.Fatalf("demanda aberta não tem tempo de resolução, veio %v", *processadas[1].TempoResolucao)
	}

	// a entrada não é mutada
	if lote[0].TempoResolucao != nil {
		t.Fatal("Processar mutou o lote de entrada")
	}
}

func TestProcessarDataMalformada(t *testing.T) {
	lote := []demanda.Demanda{
		{ID: "001", Status: demanda.StatusAberta, DataCriacao: "2025-04-01", DataAtualizacao: "01/04/2025"},
	}

	_, err := Processar(lote)
	var dado *ErroDado
	if !errors.As(err, &dado) {
		t.Fatalf("esperado ErroDado, veio %v", err)
	}
	if dado.ID != "001" || dado.Campo != "data_criacao" {
		t.Fatalf("erro com contexto errado: %+v", dado)
	}
}

func TestCalcularIndicadores(t *testing.T) {
	lote := []demanda.Demanda{
		{ID: "001", Status: demanda.StatusResolvida, DataCriacao: "01/04/2025", DataAtualizacao: "04/04/2025"},
		{ID: "002", Status: demanda.StatusAberta, DataCriacao: "02/04/2025", DataAtualizacao: "02/04/2025"},
	}
	processadas, err := Processar(lote)
	if err != nil {
		t.Fatalf("Processar: %v", err)
	}

	ind := CalcularIndicadores(processadas, nil)

	if ind.TotalDemandas != 2 {
		t.Fatalf("total = %d, esperado 2", ind.TotalDemandas)
	}
	if ind.DemandasAbertas != 1 {
		t.Fatalf("abertas = %d, esperado 1", ind.DemandasAbertas)
	}
	if ind.TempoMedioResolucao != 3.0 {
		t.Fatalf("tempo médio = %v, esperado 3.0", ind.TempoMedioResolucao)
	}
	if ind.TaxaResolucao != 50.0 {
		t.Fatalf("taxa = %v, esperado 50.0", ind.TaxaResolucao)
	}
	// sem período anterior as variações ficam zeradas
	if ind.TotalDemandasVariacao != 0 || ind.TaxaResolucaoVariacao != 0 {
		t.Fatalf("variações sem base deveriam ser 0: %+v", ind)
	}
}

func TestVariacaoSuprimidaComBaseZero(t *testing.T) {
	atual := []demanda.Demanda{
		{ID: "001", Status: demanda.StatusResolvida, DataCriacao: "01/04/2025", DataAtualizacao: "04/04/2025"},
		{ID: "002", Status: demanda.StatusAberta, DataCriacao: "02/04/2025", DataAtualizacao: "02/04/2025"},
	}
	// período anterior sem nenhuma resolvida: tempo médio e taxa têm base 0
	anterior := []demanda.Demanda{
		{ID: "003", Status: demanda.StatusAberta, DataCriacao: "01/03/2025", DataAtualizacao: "01/03/2025"},
	}

	atualProc, err := Processar(atual)
	if err != nil {
		t.Fatalf("Processar atual: %v", err)
	}
	anteriorProc, err := Processar(anterior)
	if err != nil {
		t.Fatalf("Processar anterior: %v", err)
	}

	ind := CalcularIndicadores(atualProc, anteriorProc)

	if ind.TotalDemandasVariacao != 100.0 {
		t.Fatalf("variação de total = %v, esperado 100.0", ind.TotalDemandasVariacao)
	}
	if ind.DemandasAbertasVariacao != 0 {
		t.Fatalf("variação de abertas = %v, esperado 0", ind.DemandasAbertasVariacao)
	}
	// base 0: variação suprimida a 0, nunca erro nem infinito
	if ind.TempoMedioResolucaoVariacao != 0 {
		t.Fatalf("variação de tempo médio = %v, esperado 0", ind.TempoMedioResolucaoVariacao)
	}
	if ind.TaxaResolucaoVariacao != 0 {
		t.Fatalf("variação de taxa = %v, esperado 0", ind.TaxaResolucaoVariacao)
	}
}

func TestIndicadoresLoteVazio(t *testing.T) {
	ind := CalcularIndicadores(nil, nil)
	esperado := Indicadores{}
	if ind != esperado {
		t.Fatalf("lote vazio deveria zerar tudo: %+v", ind)
	}
}

func TestFiltrarPorPeriodoMeioAberto(t *testing.T) {
	intervalo := Intervalo{
		Inicio: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Fim:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	lote := []demanda.Demanda{
		{ID: "001", DataCriacao: "01/04/2025"}, // exatamente no início: entra
		{ID: "002", DataCriacao: "30/04/2025"},
		{ID: "003", DataCriacao: "01/05/2025"}, // exatamente no fim: fica fora
		{ID: "004", DataCriacao: "31/03/2025"},
	}

	dentro, err := FiltrarPorPeriodo(lote, intervalo)
	if err != nil {
		t.Fatalf("FiltrarPorPeriodo: %v", err)
	}

	ids := make([]string, 0, len(dentro))
	for _, d := range dentro {
		ids = append(ids, d.ID)
	}
	if !reflect.DeepEqual(ids, []string{"001", "002"}) {
		t.Fatalf("seleção errada: %v", ids)
	}
}

func TestGraficoUnificadoOrdenacaoCronologica(t *testing.T) {
	lote := []demanda.Demanda{
		{ID: "001", Status: demanda.StatusAberta, Categoria: "Hidráulica", DataCriacao: "15/11/2025"},
		{ID: "002", Status: demanda.StatusAberta, Categoria: "Elétrica", DataCriacao: "10/03/2025"},
		{ID: "003", Status: demanda.StatusResolvida, Categoria: "Hidráulica", DataCriacao: "05/01/2026"},
		{ID: "004", Status: demanda.StatusAberta, Categoria: "Hidráulica", DataCriacao: "20/03/2025"},
	}

	grafico, err := GraficoUnificado(lote)
	if err != nil {
		t.Fatalf("GraficoUnificado: %v", err)
	}

	// cronológico, não lexical: 03/2025 < 11/2025 < 01/2026
	esperado := []string{"03/2025", "11/2025", "01/2026"}
	if !reflect.DeepEqual(grafico.MesesOrdenados, esperado) {
		t.Fatalf("meses = %v, esperado %v", grafico.MesesOrdenados, esperado)
	}

	// categorias e status na ordem de primeira aparição
	if !reflect.DeepEqual(grafico.Categorias, []string{"Hidráulica", "Elétrica"}) {
		t.Fatalf("categorias = %v", grafico.Categorias)
	}
	if !reflect.DeepEqual(grafico.Status, []string{demanda.StatusAberta, demanda.StatusResolvida}) {
		t.Fatalf("status = %v", grafico.Status)
	}

	contagens := map[string]int{}
	for _, c := range grafico.StatusCategoria {
		contagens[c.Status+"|"+c.Categoria] = c.Quantidade
	}
	if contagens[demanda.StatusAberta+"|Hidráulica"] != 2 {
		t.Fatalf("contagem status × categoria errada: %+v", grafico.StatusCategoria)
	}

	// evolução ordenada por mês parseado
	if grafico.Evolucao[0].Mes != "03/2025" {
		t.Fatalf("evolução começa em %s, esperado 03/2025", grafico.Evolucao[0].Mes)
	}
	if grafico.Evolucao[len(grafico.Evolucao)-1].Mes != "01/2026" {
		t.Fatalf("evolução termina em %s, esperado 01/2026", grafico.Evolucao[len(grafico.Evolucao)-1].Mes)
	}
}

func TestGraficoUnificadoVazio(t *testing.T) {
	grafico, err := GraficoUnificado(nil)
	if err != nil {
		t.Fatalf("GraficoUnificado: %v", err)
	}
	if grafico == nil {
		t.Fatal("lote vazio devolve estrutura vazia, não nil")
	}
	if grafico.StatusCategoria == nil || grafico.Evolucao == nil ||
		grafico.MesesOrdenados == nil || grafico.Categorias == nil || grafico.Status == nil {
		t.Fatalf("fatias devem ser vazias e não nil: %+v", grafico)
	}
	if len(grafico.StatusCategoria) != 0 || len(grafico.MesesOrdenados) != 0 {
		t.Fatalf("estrutura deveria estar vazia: %+v", grafico)
	}
}

func TestArredondamentoUmaCasa(t *testing.T) {
	// três resolvidas com 1, 1 e 2 dias: média 1.333... vira 1.3
	lote := []demanda.Demanda{
		{ID: "001", Status: demanda.StatusResolvida, DataCriacao: "01/04/2025", DataAtualizacao: "02/04/2025"},
		{ID: "002", Status: demanda.StatusResolvida, DataCriacao: "01/04/2025", DataAtualizacao: "02/04/2025"},
		{ID: "003", Status: demanda.StatusResolvida, DataCriacao: "01/04/2025", DataAtualizacao: "03/04/2025"},
	}
	processadas, err := Processar(lote)
	if err != nil {
		t.Fatalf("Processar: %v", err)
	}

	ind := CalcularIndicadores(processadas, nil)
	if ind.TempoMedioResolucao != 1.3 {
		t.Fatalf("tempo médio = %v, esperado 1.3", ind.TempoMedioResolucao)
	}
	if ind.TaxaResolucao != 100.0 {
		t.Fatalf("taxa = %v, esperado 100.0", ind.TaxaResolucao)
	}
}
