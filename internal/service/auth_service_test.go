package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/condsaojudas/condominio/internal/auth"
	"github.com/condsaojudas/condominio/internal/usuario"
)

type stubUsuarios struct {
	usuarios map[string]*usuario.Usuario // por email
}

func (s *stubUsuarios) Criar(ctx context.Context, input usuario.CriarInput) (*usuario.Usuario, error) {
	u := &usuario.Usuario{ID: "9", Email: input.Email, Nome: input.Nome, SenhaHash: input.SenhaHash, Tipo: input.Tipo}
	s.usuarios[u.Email] = u
	return u, nil
}

func (s *stubUsuarios) BuscarPorEmail(ctx context.Context, email string) (*usuario.Usuario, error) {
	if u, ok := s.usuarios[email]; ok {
		return u, nil
	}
	return nil, usuario.ErrNotFound
}

func (s *stubUsuarios) BuscarPorID(ctx context.Context, id string) (*usuario.Usuario, error) {
	for _, u := range s.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, usuario.ErrNotFound
}

type fakeRedis struct {
	valores map[string]string
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.valores[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if v, ok := f.valores[key]; ok {
		return redis.NewStringResult(v, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removidos int64
	for _, k := range keys {
		if _, ok := f.valores[k]; ok {
			delete(f.valores, k)
			removidos++
		}
	}
	return redis.NewIntResult(removidos, nil)
}

func novoAuthService(t *testing.T) (*AuthService, *stubUsuarios, *fakeRedis) {
	t.Helper()

	hash, err := auth.Hash("senha-forte")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := &stubUsuarios{usuarios: map[string]*usuario.Usuario{
		"sindico@cond.com": {ID: "1", Email: "sindico@cond.com", Nome: "Síndico", SenhaHash: hash, Tipo: usuario.TipoSindico},
	}}
	rds := &fakeRedis{valores: map[string]string{}}

	svc := &AuthService{
		usuarios:   repo,
		redis:      rds,
		jwt:        auth.NewJWTManager("segredo-de-teste-com-32-caracteres!", 15*time.Minute),
		refreshTTL: time.Hour,
	}
	return svc, repo, rds
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, rds := novoAuthService(t)

	result, err := svc.Login(ctx, "Sindico@Cond.com", "senha-forte")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("tokens vazios")
	}

	claims, err := svc.jwt.ParseAndValidate(result.AccessToken)
	if err != nil {
		t.Fatalf("token de acesso inválido: %v", err)
	}
	if claims.Subject != "1" || claims.Tipo != usuario.TipoSindico {
		t.Fatalf("claims erradas: %+v", claims)
	}

	// sessão de refresh aberta no redis
	if len(rds.valores) != 1 {
		t.Fatalf("esperada 1 sessão no redis, veio %d", len(rds.valores))
	}
}

func TestLoginSenhaErrada(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := novoAuthService(t)

	if _, err := svc.Login(ctx, "sindico@cond.com", "senha-errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("esperado ErrInvalidCredentials, veio %v", err)
	}
	if _, err := svc.Login(ctx, "ninguem@cond.com", "senha-forte"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("email inexistente também é credencial inválida, veio %v", err)
	}
}

func TestRefreshRotaciona(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := novoAuthService(t)

	login, err := svc.Login(ctx, "sindico@cond.com", "senha-forte")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	renovado, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if renovado.RefreshToken == login.RefreshToken {
		t.Fatal("refresh deveria emitir token novo")
	}

	// o token antigo foi invalidado na rotação
	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("token antigo deveria estar inválido, veio %v", err)
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc, _, rds := novoAuthService(t)

	login, err := svc.Login(ctx, "sindico@cond.com", "senha-forte")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(rds.valores) != 0 {
		t.Fatalf("sessão deveria ter sido removida, restam %d", len(rds.valores))
	}

	if _, err := svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("refresh após logout deveria falhar, veio %v", err)
	}
}

func TestRegistrarSenhaFraca(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := novoAuthService(t)

	if _, err := svc.Registrar(ctx, "novo@cond.com", "Novo", "curta", usuario.TipoCondomino); err == nil {
		t.Fatal("senha curta deveria ser rejeitada")
	}
}
