package dashboard

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/condsaojudas/condominio/internal/demanda"
	"github.com/condsaojudas/condominio/internal/util"
)

// ErroDado indica data armazenada que não parseia no formato da planilha.
// Surge em vez de coagir: um default silencioso corromperia os indicadores.
type ErroDado struct {
	ID    string
	Campo string
	Valor string
}

func (e *ErroDado) Error() string {
	return fmt.Sprintf("demanda %s: %s inválida: %q", e.ID, e.Campo, e.Valor)
}

// Indicadores agrega as métricas do período e a variação percentual frente
// ao período anterior. Variação 0 também cobre o caso de valor anterior 0
// (divisão por zero suprimida) — o frontend exibe isso como "sem base de
// comparação", não como estabilidade real.
type Indicadores struct {
	TotalDemandas               int     `json:"total_demandas"`
	DemandasAbertas             int     `json:"demandas_abertas"`
	TempoMedioResolucao         float64 `json:"tempo_medio_resolucao"`
	TaxaResolucao               float64 `json:"taxa_resolucao"`
	TotalDemandasVariacao       float64 `json:"total_demandas_variacao"`
	DemandasAbertasVariacao     float64 `json:"demandas_abertas_variacao"`
	TempoMedioResolucaoVariacao float64 `json:"tempo_medio_resolucao_variacao"`
	TaxaResolucaoVariacao       float64 `json:"taxa_resolucao_variacao"`
}

// ContagemStatusCategoria é uma célula do agrupamento status × categoria.
type ContagemStatusCategoria struct {
	Status     string `json:"status"`
	Categoria  string `json:"categoria"`
	Quantidade int    `json:"quantidade"`
}

// ContagemMensal é uma célula da evolução mensal por status.
type ContagemMensal struct {
	Mes        string `json:"mes"`
	Status     string `json:"status"`
	Quantidade int    `json:"quantidade"`
}

// Grafico carrega os dados brutos do gráfico unificado. Categorias e Status
// vêm na ordem de primeira aparição no lote, para eixos estáveis no
// renderizador; MesesOrdenados vem em ordem cronológica, não lexical.
type Grafico struct {
	StatusCategoria []ContagemStatusCategoria `json:"status_categoria"`
	Evolucao        []ContagemMensal          `json:"evolucao"`
	MesesOrdenados  []string                  `json:"meses_ordenados"`
	Categorias      []string                  `json:"categorias"`
	Status          []string                  `json:"status"`
}

// Processar valida as datas de todo o lote e deriva o tempo de resolução
// (dias entre criação e atualização) das demandas resolvidas. Não muta a
// entrada: devolve cópias enriquecidas.
func Processar(demandas []demanda.Demanda) ([]demanda.Demanda, error) {
	processadas := make([]demanda.Demanda, 0, len(demandas))
	for _, d := range demandas {
		criacao, err := util.ParseData(d.DataCriacao)
		if err != nil {
			return nil, &ErroDado{ID: d.ID, Campo: "data_criacao", Valor: d.DataCriacao}
		}
		atualizacao, err := util.ParseData(d.DataAtualizacao)
		if err != nil {
			return nil, &ErroDado{ID: d.ID, Campo: "data_atualizacao", Valor: d.DataAtualizacao}
		}

		if d.Status == demanda.StatusResolvida {
			dias := int(atualizacao.Sub(criacao).Hours() / 24)
			d.TempoResolucao = &dias
		} else {
			d.TempoResolucao = nil
		}
		processadas = append(processadas, d)
	}
	return processadas, nil
}

// FiltrarPorPeriodo mantém as demandas criadas dentro do intervalo
// meio-aberto: data igual ao início entra, igual ao fim fica de fora.
func FiltrarPorPeriodo(demandas []demanda.Demanda, intervalo Intervalo) ([]demanda.Demanda, error) {
	resultado := make([]demanda.Demanda, 0, len(demandas))
	for _, d := range demandas {
		criacao, err := util.ParseData(d.DataCriacao)
		if err != nil {
			return nil, &ErroDado{ID: d.ID, Campo: "data_criacao", Valor: d.DataCriacao}
		}
		if intervalo.Contem(criacao) {
			resultado = append(resultado, d)
		}
	}
	return resultado, nil
}

// CalcularIndicadores computa as métricas do lote atual e, quando o lote
// anterior existe e não é vazio, a variação percentual de cada uma. Espera
// lotes já passados por Processar (tempo de resolução derivado). Tudo
// arredondado a uma casa decimal.
func CalcularIndicadores(atual, anterior []demanda.Demanda) Indicadores {
	total, abertas, tempoMedio, taxa := metricas(atual)

	ind := Indicadores{
		TotalDemandas:       total,
		DemandasAbertas:     abertas,
		TempoMedioResolucao: arred1(tempoMedio),
		TaxaResolucao:       arred1(taxa),
	}

	if len(anterior) > 0 {
		totalAnt, abertasAnt, tempoAnt, taxaAnt := metricas(anterior)
		ind.TotalDemandasVariacao = arred1(variacao(float64(total), float64(totalAnt)))
		ind.DemandasAbertasVariacao = arred1(variacao(float64(abertas), float64(abertasAnt)))
		ind.TempoMedioResolucaoVariacao = arred1(variacao(tempoMedio, tempoAnt))
		ind.TaxaResolucaoVariacao = arred1(variacao(taxa, taxaAnt))
	}

	return ind
}

// GraficoUnificado agrupa o lote em contagens status × categoria e na
// evolução mensal por status. Lote vazio devolve estrutura vazia, não erro.
func GraficoUnificado(demandas []demanda.Demanda) (*Grafico, error) {
	g := &Grafico{
		StatusCategoria: []ContagemStatusCategoria{},
		Evolucao:        []ContagemMensal{},
		MesesOrdenados:  []string{},
		Categorias:      []string{},
		Status:          []string{},
	}
	if len(demandas) == 0 {
		return g, nil
	}

	type chaveSC struct{ status, categoria string }
	type chaveME struct{ mes, status string }

	porStatusCategoria := make(map[chaveSC]int)
	porMesStatus := make(map[chaveME]int)
	meses := make(map[string]time.Time)
	vistoCategoria := make(map[string]bool)
	vistoStatus := make(map[string]bool)

	for _, d := range demandas {
		criacao, err := util.ParseData(d.DataCriacao)
		if err != nil {
			return nil, &ErroDado{ID: d.ID, Campo: "data_criacao", Valor: d.DataCriacao}
		}
		mes := criacao.Format(util.FormatoMes)

		porStatusCategoria[chaveSC{d.Status, d.Categoria}]++
		porMesStatus[chaveME{mes, d.Status}]++
		if _, ok := meses[mes]; !ok {
			meses[mes] = time.Date(criacao.Year(), criacao.Month(), 1, 0, 0, 0, 0, time.UTC)
		}

		if !vistoCategoria[d.Categoria] {
			vistoCategoria[d.Categoria] = true
			g.Categorias = append(g.Categorias, d.Categoria)
		}
		if !vistoStatus[d.Status] {
			vistoStatus[d.Status] = true
			g.Status = append(g.Status, d.Status)
		}
	}

	for chave, quantidade := range porStatusCategoria {
		g.StatusCategoria = append(g.StatusCategoria, ContagemStatusCategoria{
			Status:     chave.status,
			Categoria:  chave.categoria,
			Quantidade: quantidade,
		})
	}
	sort.Slice(g.StatusCategoria, func(i, j int) bool {
		a, b := g.StatusCategoria[i], g.StatusCategoria[j]
		if a.Status != b.Status {
			return a.Status < b.Status
		}
		return a.Categoria < b.Categoria
	})

	for chave, quantidade := range porMesStatus {
		g.Evolucao = append(g.Evolucao, ContagemMensal{
			Mes:        chave.mes,
			Status:     chave.status,
			Quantidade: quantidade,
		})
	}
	sort.Slice(g.Evolucao, func(i, j int) bool {
		a, b := g.Evolucao[i], g.Evolucao[j]
		if !meses[a.Mes].Equal(meses[b.Mes]) {
			return meses[a.Mes].Before(meses[b.Mes])
		}
		return a.Status < b.Status
	})

	for mes := range meses {
		g.MesesOrdenados = append(g.MesesOrdenados, mes)
	}
	sort.Slice(g.MesesOrdenados, func(i, j int) bool {
		return meses[g.MesesOrdenados[i]].Before(meses[g.MesesOrdenados[j]])
	})

	return g, nil
}

func metricas(demandas []demanda.Demanda) (total, abertas int, tempoMedio, taxa float64) {
	total = len(demandas)

	resolvidas := 0
	somaDias := 0
	for _, d := range demandas {
		if d.Status != demanda.StatusResolvida {
			abertas++
			continue
		}
		resolvidas++
		if d.TempoResolucao != nil {
			somaDias += *d.TempoResolucao
		}
	}

	if resolvidas > 0 {
		tempoMedio = float64(somaDias) / float64(resolvidas)
	}
	if total > 0 {
		taxa = float64(resolvidas) / float64(total) * 100
	}
	return total, abertas, tempoMedio, taxa
}

// variacao devolve a variação percentual, suprimida a 0 quando a base é 0.
func variacao(atual, anterior float64) float64 {
	if anterior == 0 {
		return 0
	}
	return (atual - anterior) / anterior * 100
}

func arred1(v float64) float64 {
	return math.Round(v*10) / 10
}
