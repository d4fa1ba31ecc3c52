package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/condsaojudas/condominio/internal/auth"
	"github.com/condsaojudas/condominio/internal/usuario"
	"github.com/condsaojudas/condominio/internal/util"
)

var (
	// ErrInvalidCredentials indica falha na autenticação.
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	// ErrRefreshInvalid indica refresh token inválido ou expirado.
	ErrRefreshInvalid = errors.New("refresh token inválido")
)

type usuarioRepository interface {
	Criar(ctx context.Context, input usuario.CriarInput) (*usuario.Usuario, error)
	BuscarPorEmail(ctx context.Context, email string) (*usuario.Usuario, error)
	BuscarPorID(ctx context.Context, id string) (*usuario.Usuario, error)
}

type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// AuthService concentra regras de autenticação e sessões. Tokens de acesso
// são JWT curtos; refresh tokens são opacos, com o hash guardado no Redis.
type AuthService struct {
	usuarios   usuarioRepository
	redis      redisCommander
	jwt        *auth.JWTManager
	refreshTTL time.Duration
}

// NewAuthService cria novo serviço.
func NewAuthService(usuarios *usuario.Repository, redisClient *redis.Client, jwtMgr *auth.JWTManager, refreshTTL time.Duration) *AuthService {
	return &AuthService{usuarios: usuarios, redis: redisClient, jwt: jwtMgr, refreshTTL: refreshTTL}
}

// JWT expõe gerenciador de JWT (útil em middlewares).
func (s *AuthService) JWT() *auth.JWTManager {
	return s.jwt
}

// LoginResult representa retorno padrão de autenticações.
type LoginResult struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Usuario      *usuario.Usuario `json:"usuario"`
}

// Login autentica por email e senha e abre uma sessão de refresh.
func (s *AuthService) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || senha == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.usuarios.BuscarPorEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usuario.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.Verify(senha, u.SenhaHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return s.abreSessao(ctx, u)
}

// Refresh troca um refresh token válido por um novo par de tokens.
// O token antigo é invalidado (rotação).
func (s *AuthService) Refresh(ctx context.Context, raw string) (*LoginResult, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrRefreshInvalid
	}

	chave := auth.RefreshRedisKey(auth.HashRefreshToken(raw))
	id, err := s.redis.Get(ctx, chave).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	u, err := s.usuarios.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, usuario.ErrNotFound) {
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	if err := s.redis.Del(ctx, chave).Err(); err != nil {
		return nil, err
	}
	return s.abreSessao(ctx, u)
}

// Logout invalida o refresh token informado. Token desconhecido é no-op.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return s.redis.Del(ctx, auth.RefreshRedisKey(auth.HashRefreshToken(raw))).Err()
}

// Registrar cadastra usuário novo com a senha já em hash Argon2id.
func (s *AuthService) Registrar(ctx context.Context, email, nome, senha, tipo string) (*usuario.Usuario, error) {
	if err := util.ValidatePassword(senha); err != nil {
		return nil, err
	}

	hash, err := auth.Hash(senha)
	if err != nil {
		return nil, err
	}

	return s.usuarios.Criar(ctx, usuario.CriarInput{
		Email:     email,
		Nome:      nome,
		SenhaHash: hash,
		Tipo:      tipo,
	})
}

// Perfil devolve o usuário do subject autenticado.
func (s *AuthService) Perfil(ctx context.Context, id string) (*usuario.Usuario, error) {
	return s.usuarios.BuscarPorID(ctx, id)
}

func (s *AuthService) abreSessao(ctx context.Context, u *usuario.Usuario) (*LoginResult, error) {
	access, _, err := s.jwt.GenerateAccessToken(u.ID, u.Tipo)
	if err != nil {
		return nil, err
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := s.redis.Set(ctx, auth.RefreshRedisKey(hash), u.ID, s.refreshTTL).Err(); err != nil {
		return nil, err
	}

	return &LoginResult{AccessToken: access, RefreshToken: raw, Usuario: u}, nil
}
