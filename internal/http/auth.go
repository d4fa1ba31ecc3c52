package http

import (
	"encoding/json"
	"errors"
	"net/http"

	httpmiddleware "github.com/condsaojudas/condominio/internal/http/middleware"
	"github.com/condsaojudas/condominio/internal/service"
	"github.com/condsaojudas/condominio/internal/sheets"
	"github.com/condsaojudas/condominio/internal/usuario"
)

// Login autentica por email e senha.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), payload.Email, payload.Senha)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Refresh troca refresh token válido por novo par de tokens.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	result, err := h.authService.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Logout invalida o refresh token da sessão.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	if err := h.authService.Logout(r.Context(), payload.RefreshToken); err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Register cadastra um novo condômino. Síndicos e administradoras são
// criados pela ferramenta de linha de comando, nunca pelo formulário.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
		Nome  string `json:"nome"`
		Senha string `json:"senha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "JSON inválido", nil)
		return
	}

	u, err := h.authService.Registrar(r.Context(), payload.Email, payload.Nome, payload.Senha, usuario.TipoCondomino)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"usuario": u})
}

// Me devolve o perfil do usuário autenticado.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject := httpmiddleware.GetSubject(r.Context())

	u, err := h.authService.Perfil(r.Context(), subject)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"usuario": u})
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, "AUTH", "credenciais inválidas", nil)
	case errors.Is(err, service.ErrRefreshInvalid):
		WriteError(w, http.StatusUnauthorized, "AUTH", "refresh token inválido", nil)
	case errors.Is(err, usuario.ErrEmailEmUso):
		WriteError(w, http.StatusConflict, "VALIDATION", "email já cadastrado", nil)
	case errors.Is(err, usuario.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "usuário não encontrado", nil)
	case errors.Is(err, sheets.ErrIndisponivel):
		WriteError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "planilha indisponível", nil)
	case errors.Is(err, usuario.ErrTipoInvalido):
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	default:
		WriteError(w, http.StatusBadRequest, "VALIDATION", err.Error(), nil)
	}
}
