package sheets

import "context"

// Row representa uma linha da planilha como mapa coluna -> valor textual.
// A planilha não tem tipos: tudo é string, inclusive datas (DD/MM/YYYY).
type Row map[string]string

// Nomes das abas usadas pelo sistema.
const (
	TabelaDemandas = "demandas"
	TabelaUsuarios = "usuarios"
)

// ColunaChave é a coluna que funciona como identificador lógico das linhas.
// A planilha não tem chave primária: a busca por id é sempre varredura linear.
const ColunaChave = "id"

// Cabecalhos define o cabeçalho canônico de cada aba, na ordem escrita.
var Cabecalhos = map[string][]string{
	TabelaDemandas: {
		"id", "titulo", "categoria", "criticidade", "descricao",
		"localizacao", "status", "data_criacao", "data_atualizacao",
	},
	TabelaUsuarios: {
		"id", "email", "nome", "senha_hash", "tipo", "data_criacao",
	},
}

// RowStore abstrai o backend tabular remoto. Posições de linha são 1-based e
// contam o cabeçalho (primeira linha de dados = posição 2); DeleteRow desloca
// as posições seguintes. Nenhuma operação é transacional: leitura seguida de
// escrita pode perder atualizações concorrentes (last write wins).
type RowStore interface {
	// ListAll devolve todas as linhas de dados da aba; aba vazia devolve nil.
	ListAll(ctx context.Context, tabela string) ([]Row, error)

	// FindByKey varre a aba e devolve a primeira linha cuja coluna chave é
	// igual a chave (comparação de string), junto com a posição da linha.
	// Devolve ErrLinhaNaoEncontrada quando não há correspondência.
	FindByKey(ctx context.Context, tabela, chave string) (Row, int, error)

	// Append adiciona uma linha ao final da aba, na ordem do cabeçalho.
	Append(ctx context.Context, tabela string, linha Row) error

	// UpdateCells sobrescreve células nomeadas da linha na posição dada.
	UpdateCells(ctx context.Context, tabela string, posicao int, celulas map[string]string) error

	// DeleteRow remove fisicamente a linha na posição dada.
	DeleteRow(ctx context.Context, tabela string, posicao int) error
}
