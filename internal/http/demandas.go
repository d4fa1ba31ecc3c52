package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/condsaojudas/condominio/internal/demanda"
	"github.com/condsaojudas/condominio/internal/sheets"
)

// ListDemandas lista demandas com filtro, busca textual e paginação.
func (h *Handler) ListDemandas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := demanda.ListarParams{
		Filtro: demanda.Filtro{
			Status:      strings.TrimSpace(q.Get("status")),
			Categoria:   strings.TrimSpace(q.Get("categoria")),
			Criticidade: strings.TrimSpace(q.Get("criticidade")),
		},
		Busca: q.Get("busca"),
	}
	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if v, err := strconv.Atoi(pageStr); err == nil {
			params.Pagina = v
		}
	}

	listagem, err := h.demandas.Listar(r.Context(), params)
	if err != nil {
		h.writeDemandaError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, listagem)
}

// CreateDemanda abre nova demanda.
func (h *Handler) CreateDemanda(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Titulo      string `json:"titulo"`
		Categoria   string `json:"categoria"`
		Criticidade string `json:"criticidade"`
		Descricao   string `json:"descricao"`
		Localizacao string `json:"localizacao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	d, err := h.demandas.Criar(r.Context(), demanda.CriarInput{
		Titulo:      payload.Titulo,
		Categoria:   payload.Categoria,
		Criticidade: payload.Criticidade,
		Descricao:   payload.Descricao,
		Localizacao: payload.Localizacao,
	})
	if err != nil {
		h.writeDemandaError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"demanda": d})
}

// GetDemanda devolve detalhes da demanda.
func (h *Handler) GetDemanda(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	d, err := h.demandas.Buscar(r.Context(), id)
	if err != nil {
		h.writeDemandaError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"demanda": d})
}

// UpdateDemanda aplica atualização parcial: campos ausentes do corpo mantêm
// o valor armazenado.
func (h *Handler) UpdateDemanda(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var payload struct {
		Titulo      *string `json:"titulo"`
		Categoria   *string `json:"categoria"`
		Criticidade *string `json:"criticidade"`
		Descricao   *string `json:"descricao"`
		Localizacao *string `json:"localizacao"`
		Status      *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	d, err := h.demandas.Atualizar(r.Context(), id, demanda.AtualizarInput{
		Titulo:      payload.Titulo,
		Categoria:   payload.Categoria,
		Criticidade: payload.Criticidade,
		Descricao:   payload.Descricao,
		Localizacao: payload.Localizacao,
		Status:      payload.Status,
	})
	if err != nil {
		h.writeDemandaError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"demanda": d})
}

// DeleteDemanda remove a demanda definitivamente.
func (h *Handler) DeleteDemanda(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	removida, err := h.demandas.Excluir(r.Context(), id)
	if err != nil {
		h.writeDemandaError(w, err)
		return
	}
	if !removida {
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "demanda não encontrada", nil)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"removida": true})
}

func (h *Handler) writeDemandaError(w http.ResponseWriter, err error) {
	var val *demanda.ErroValidacao
	switch {
	case errors.As(err, &val):
		WriteError(w, http.StatusBadRequest, "VALIDATION", val.Error(), nil)
	case errors.Is(err, demanda.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "demanda não encontrada", nil)
	case errors.Is(err, sheets.ErrIndisponivel):
		WriteError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "planilha indisponível", nil)
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL", "erro interno", nil)
	}
}
