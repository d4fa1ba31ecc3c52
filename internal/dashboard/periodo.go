package dashboard

import "time"

// Periodo é o vocabulário fechado de janelas de tempo do dashboard.
type Periodo string

const (
	PeriodoUltimos7Dias  Periodo = "ultimos_7_dias"
	PeriodoUltimos30Dias Periodo = "ultimos_30_dias"
	PeriodoUltimos90Dias Periodo = "ultimos_90_dias"
	PeriodoUltimos6Meses Periodo = "ultimos_6_meses"
	PeriodoUltimoAno     Periodo = "ultimo_ano"
	PeriodoTodos         Periodo = "todos"
)

// PeriodoPadrao é assumido quando a query não informa período.
const PeriodoPadrao = PeriodoUltimos30Dias

// Intervalo é uma faixa de datas meio-aberta [Inicio, Fim).
type Intervalo struct {
	Inicio time.Time
	Fim    time.Time
}

// Contem indica se t cai dentro do intervalo. Fim é exclusivo.
func (i Intervalo) Contem(t time.Time) bool {
	return !t.Before(i.Inicio) && t.Before(i.Fim)
}

// dias devolve o tamanho da janela. ok=false significa "todos os tempos" —
// o que inclui qualquer token desconhecido, para o dashboard nunca quebrar
// com entrada malformada.
func (p Periodo) dias() (int, bool) {
	switch p {
	case PeriodoUltimos7Dias:
		return 7, true
	case PeriodoUltimos30Dias:
		return 30, true
	case PeriodoUltimos90Dias:
		return 90, true
	case PeriodoUltimos6Meses:
		return 180, true
	case PeriodoUltimoAno:
		return 365, true
	case PeriodoTodos:
		return 0, false
	default:
		return 0, false
	}
}

// Janelas traduz o período em dois intervalos adjacentes: o atual
// [agora-span, agora) e o anterior [agora-2·span, agora-span), usado na
// comparação dos indicadores. Para "todos" (e tokens desconhecidos) o
// intervalo atual cobre tudo e não há período anterior.
func (p Periodo) Janelas(agora time.Time) (atual Intervalo, anterior *Intervalo) {
	dias, ok := p.dias()
	if !ok {
		return Intervalo{Inicio: time.Time{}, Fim: agora}, nil
	}

	span := time.Duration(dias) * 24 * time.Hour
	atual = Intervalo{Inicio: agora.Add(-span), Fim: agora}
	anterior = &Intervalo{Inicio: agora.Add(-2 * span), Fim: agora.Add(-span)}
	return atual, anterior
}
