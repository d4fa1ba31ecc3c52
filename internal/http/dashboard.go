package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/condsaojudas/condominio/internal/dashboard"
	"github.com/condsaojudas/condominio/internal/demanda"
	"github.com/condsaojudas/condominio/internal/sheets"
)

// GetIndicadores computa os indicadores do período pedido e a variação
// frente ao período anterior.
func (h *Handler) GetIndicadores(w http.ResponseWriter, r *http.Request) {
	periodo := periodoDaQuery(r)

	processadas, err := h.demandasProcessadas(r)
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}

	atual, anterior := periodo.Janelas(h.agora())

	loteAtual, err := dashboard.FiltrarPorPeriodo(processadas, atual)
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}

	var loteAnterior []demanda.Demanda
	if anterior != nil {
		loteAnterior, err = dashboard.FiltrarPorPeriodo(processadas, *anterior)
		if err != nil {
			h.writeDashboardError(w, err)
			return
		}
	}

	WriteJSON(w, http.StatusOK, dashboard.CalcularIndicadores(loteAtual, loteAnterior))
}

// GetGrafico devolve os dados brutos do gráfico unificado para o período.
func (h *Handler) GetGrafico(w http.ResponseWriter, r *http.Request) {
	periodo := periodoDaQuery(r)

	processadas, err := h.demandasProcessadas(r)
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}

	atual, _ := periodo.Janelas(h.agora())
	lote, err := dashboard.FiltrarPorPeriodo(processadas, atual)
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}

	grafico, err := dashboard.GraficoUnificado(lote)
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, grafico)
}

func (h *Handler) demandasProcessadas(r *http.Request) ([]demanda.Demanda, error) {
	todas, err := h.demandas.Todas(r.Context())
	if err != nil {
		return nil, err
	}
	return dashboard.Processar(todas)
}

func (h *Handler) writeDashboardError(w http.ResponseWriter, err error) {
	var dado *dashboard.ErroDado
	switch {
	case errors.As(err, &dado):
		WriteError(w, http.StatusUnprocessableEntity, "DATA", dado.Error(), nil)
	case errors.Is(err, sheets.ErrIndisponivel):
		WriteError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "planilha indisponível", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}

func periodoDaQuery(r *http.Request) dashboard.Periodo {
	valor := strings.TrimSpace(r.URL.Query().Get("periodo"))
	if valor == "" {
		return dashboard.PeriodoPadrao
	}
	// Tokens desconhecidos são tratados como "todos" pelo resolvedor, nunca
	// rejeitados: o dashboard não quebra com query malformada.
	return dashboard.Periodo(valor)
}
