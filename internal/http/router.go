package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/condsaojudas/condominio/internal/auth"
	"github.com/condsaojudas/condominio/internal/config"
	"github.com/condsaojudas/condominio/internal/demanda"
	httpmiddleware "github.com/condsaojudas/condominio/internal/http/middleware"
	"github.com/condsaojudas/condominio/internal/service"
	"github.com/condsaojudas/condominio/internal/sheets"
	"github.com/condsaojudas/condominio/internal/usuario"
)

// Handler agrega as dependências dos endpoints.
type Handler struct {
	cfg           *config.Config
	authService   *service.AuthService
	demandas      *demanda.Service
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
	agora         func() time.Time
}

// NewHandler cria o handler com serviços já construídos (útil em testes).
func NewHandler(cfg *config.Config, authService *service.AuthService, demandas *demanda.Service) *Handler {
	return &Handler{
		cfg:           cfg,
		authService:   authService,
		demandas:      demandas,
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
		agora:         time.Now,
	}
}

// NewRouter monta os serviços sobre o store e devolve o roteador configurado.
func NewRouter(cfg *config.Config, store sheets.RowStore, redisClient *redis.Client) http.Handler {
	usuarioRepo := usuario.NewRepository(store)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := service.NewAuthService(usuarioRepo, redisClient, jwtManager, cfg.JWTRefreshTTL)

	demandaRepo := demanda.NewRepository(store)
	demandaService := demanda.NewService(demandaRepo)

	h := NewHandler(cfg, authService, demandaService)
	return h.Router()
}

// Router devolve as rotas montadas sobre o handler.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.CORS(h.cfg.AllowOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.IPRateLimit(h.publicLimiter))
		r.Post("/auth/login", h.Login)
		r.Post("/auth/refresh", h.Refresh)
		r.Post("/auth/register", h.Register)
	})

	r.Group(func(r chi.Router) {
		r.Use(httpmiddleware.Auth(h.authService.JWT()))
		r.Use(httpmiddleware.UserRateLimit(h.authLimiter))

		r.Get("/auth/me", h.Me)
		r.Post("/auth/logout", h.Logout)

		r.Route("/v1/demandas", func(r chi.Router) {
			r.Get("/", h.ListDemandas)
			r.Post("/", h.CreateDemanda)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetDemanda)
				r.With(httpmiddleware.RequireTipo(usuario.TipoSindico, usuario.TipoAdministradora)).
					Put("/", h.UpdateDemanda)
				r.With(httpmiddleware.RequireTipo(usuario.TipoAdministradora)).
					Delete("/", h.DeleteDemanda)
			})
		})

		r.Route("/v1/dashboard", func(r chi.Router) {
			r.Get("/indicadores", h.GetIndicadores)
			r.Get("/grafico", h.GetGrafico)
		})
	})

	return r
}
