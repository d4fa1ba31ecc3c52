package sheets

import (
	"context"
	"sync"
)

// MemoryStore implementa RowStore em memória, com a mesma semântica de
// posições da planilha (cabeçalho na linha 1, dados a partir da linha 2).
// Serve para desenvolvimento local sem credenciais e para os testes.
type MemoryStore struct {
	mu      sync.Mutex
	tabelas map[string][][]string
}

// NewMemoryStore cria o store já com as abas conhecidas e seus cabeçalhos.
func NewMemoryStore() *MemoryStore {
	tabelas := make(map[string][][]string, len(Cabecalhos))
	for tabela, cabecalho := range Cabecalhos {
		tabelas[tabela] = [][]string{append([]string(nil), cabecalho...)}
	}
	return &MemoryStore{tabelas: tabelas}
}

// ListAll implementa RowStore.
func (m *MemoryStore) ListAll(ctx context.Context, tabela string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	valores := m.tabelas[tabela]
	if len(valores) <= 1 {
		return nil, nil
	}

	cabecalho := valores[0]
	linhas := make([]Row, 0, len(valores)-1)
	for _, celulas := range valores[1:] {
		linhas = append(linhas, montaLinhaStrings(cabecalho, celulas))
	}
	return linhas, nil
}

// FindByKey implementa RowStore.
func (m *MemoryStore) FindByKey(ctx context.Context, tabela, chave string) (Row, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	valores := m.tabelas[tabela]
	if len(valores) <= 1 {
		return nil, 0, ErrLinhaNaoEncontrada
	}

	cabecalho := valores[0]
	chaveIdx := indiceColuna(cabecalho, ColunaChave)
	if chaveIdx < 0 {
		return nil, 0, ErrLinhaNaoEncontrada
	}

	for i, celulas := range valores[1:] {
		if chaveIdx < len(celulas) && celulas[chaveIdx] == chave {
			return montaLinhaStrings(cabecalho, celulas), i + 2, nil
		}
	}
	return nil, 0, ErrLinhaNaoEncontrada
}

// Append implementa RowStore.
func (m *MemoryStore) Append(ctx context.Context, tabela string, linha Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cabecalho := m.tabelas[tabela][0]
	celulas := make([]string, len(cabecalho))
	for i, coluna := range cabecalho {
		celulas[i] = linha[coluna]
	}
	m.tabelas[tabela] = append(m.tabelas[tabela], celulas)
	return nil
}

// UpdateCells implementa RowStore.
func (m *MemoryStore) UpdateCells(ctx context.Context, tabela string, posicao int, celulas map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	valores := m.tabelas[tabela]
	if posicao < 2 || posicao > len(valores) {
		return ErrLinhaNaoEncontrada
	}

	cabecalho := valores[0]
	alvo := valores[posicao-1]
	for coluna, valor := range celulas {
		idx := indiceColuna(cabecalho, coluna)
		if idx >= 0 && idx < len(alvo) {
			alvo[idx] = valor
		}
	}
	return nil
}

// DeleteRow implementa RowStore. Posições seguintes sobem uma linha.
func (m *MemoryStore) DeleteRow(ctx context.Context, tabela string, posicao int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	valores := m.tabelas[tabela]
	if posicao < 2 || posicao > len(valores) {
		return ErrLinhaNaoEncontrada
	}
	m.tabelas[tabela] = append(valores[:posicao-1], valores[posicao:]...)
	return nil
}

func montaLinhaStrings(cabecalho, celulas []string) Row {
	linha := make(Row, len(cabecalho))
	for i, coluna := range cabecalho {
		if i < len(celulas) {
			linha[coluna] = celulas[i]
		} else {
			linha[coluna] = ""
		}
	}
	return linha
}
