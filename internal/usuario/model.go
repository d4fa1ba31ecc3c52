package usuario

import "errors"

var (
	// ErrNotFound é retornado quando nenhum usuário corresponde à busca.
	ErrNotFound = errors.New("usuário não encontrado")
	// ErrEmailEmUso indica tentativa de cadastro com email já existente.
	ErrEmailEmUso = errors.New("email já cadastrado")
	// ErrTipoInvalido indica tipo de usuário fora do vocabulário.
	ErrTipoInvalido = errors.New("tipo de usuário inválido")
)

// Tipos de usuário do condomínio. O tipo define o que se pode fazer com as
// demandas: editar exige síndico ou administradora; excluir, administradora.
const (
	TipoCondomino      = "condomino"
	TipoSindico        = "sindico"
	TipoAdministradora = "administradora"
)

var tiposValidos = map[string]struct{}{
	TipoCondomino:      {},
	TipoSindico:        {},
	TipoAdministradora: {},
}

// TipoValido indica se o tipo pertence ao vocabulário.
func TipoValido(tipo string) bool {
	_, ok := tiposValidos[tipo]
	return ok
}

// Usuario representa um morador ou gestor com acesso ao sistema.
type Usuario struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Nome        string `json:"nome"`
	SenhaHash   string `json:"-"`
	Tipo        string `json:"tipo"`
	DataCriacao string `json:"data_criacao"`
}

// CriarInput encapsula os campos de cadastro. SenhaHash já vem com hash
// aplicado: o repositório nunca vê senha em claro.
type CriarInput struct {
	Email     string
	Nome      string
	SenhaHash string
	Tipo      string
}
