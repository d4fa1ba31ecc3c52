package sheets

import "errors"

var (
	// ErrIndisponivel indica falha de comunicação com a planilha remota.
	// O cliente nunca faz retry: a decisão de repetir é de quem chama.
	ErrIndisponivel = errors.New("planilha indisponível")

	// ErrLinhaNaoEncontrada indica que nenhuma linha tem a chave buscada.
	ErrLinhaNaoEncontrada = errors.New("linha não encontrada")
)
