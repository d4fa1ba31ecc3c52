package sheets

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client implementa RowStore sobre uma planilha do Google Sheets.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string

	mu       sync.Mutex
	sheetIDs map[string]int64
}

// New autentica com a conta de serviço e garante que as abas conhecidas
// existem com seus cabeçalhos antes de qualquer outra operação.
func New(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("credenciais: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("credenciais: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets: %w", err)
	}

	c := &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetIDs:      make(map[string]int64),
	}

	for tabela, cabecalho := range Cabecalhos {
		if err := c.ensureHeader(ctx, tabela, cabecalho); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ListAll implementa RowStore.
func (c *Client) ListAll(ctx context.Context, tabela string) ([]Row, error) {
	valores, err := c.valores(ctx, tabela)
	if err != nil {
		return nil, err
	}
	if len(valores) <= 1 {
		return nil, nil
	}

	cabecalho := aStrings(valores[0])
	linhas := make([]Row, 0, len(valores)-1)
	for _, bruta := range valores[1:] {
		linhas = append(linhas, montaLinha(cabecalho, bruta))
	}
	return linhas, nil
}

// FindByKey implementa RowStore. Varredura linear: a planilha não indexa nada.
func (c *Client) FindByKey(ctx context.Context, tabela, chave string) (Row, int, error) {
	valores, err := c.valores(ctx, tabela)
	if err != nil {
		return nil, 0, err
	}
	if len(valores) <= 1 {
		return nil, 0, ErrLinhaNaoEncontrada
	}

	cabecalho := aStrings(valores[0])
	chaveIdx := indiceColuna(cabecalho, ColunaChave)
	if chaveIdx < 0 {
		return nil, 0, ErrLinhaNaoEncontrada
	}

	for i, bruta := range valores[1:] {
		celulas := aStrings(bruta)
		if chaveIdx < len(celulas) && celulas[chaveIdx] == chave {
			return montaLinha(cabecalho, bruta), i + 2, nil
		}
	}
	return nil, 0, ErrLinhaNaoEncontrada
}

// Append implementa RowStore.
func (c *Client) Append(ctx context.Context, tabela string, linha Row) error {
	cabecalho := Cabecalhos[tabela]
	celulas := make([]interface{}, len(cabecalho))
	for i, coluna := range cabecalho {
		celulas[i] = linha[coluna]
	}

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{celulas}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, tabela, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: append em %s: %v", ErrIndisponivel, tabela, err)
	}
	return nil
}

// UpdateCells implementa RowStore. Colunas fora do cabeçalho são ignoradas.
func (c *Client) UpdateCells(ctx context.Context, tabela string, posicao int, celulas map[string]string) error {
	cabecalho := Cabecalhos[tabela]

	var dados []*sheetsapi.ValueRange
	for coluna, valor := range celulas {
		idx := indiceColuna(cabecalho, coluna)
		if idx < 0 {
			continue
		}
		dados = append(dados, &sheetsapi.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", tabela, letraColuna(idx), posicao),
			Values: [][]interface{}{{valor}},
		})
	}
	if len(dados) == 0 {
		return nil
	}

	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             dados,
	}
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: update em %s: %v", ErrIndisponivel, tabela, err)
	}
	return nil
}

// DeleteRow implementa RowStore. As linhas seguintes sobem uma posição.
func (c *Client) DeleteRow(ctx context.Context, tabela string, posicao int) error {
	sheetID, err := c.sheetID(ctx, tabela)
	if err != nil {
		return err
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(posicao - 1),
					EndIndex:   int64(posicao),
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: delete em %s: %v", ErrIndisponivel, tabela, err)
	}
	return nil
}

func (c *Client) valores(ctx context.Context, tabela string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tabela).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: leitura de %s: %v", ErrIndisponivel, tabela, err)
	}
	return resp.Values, nil
}

func (c *Client) ensureHeader(ctx context.Context, tabela string, cabecalho []string) error {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tabela+"!1:1").Context(ctx).Do()
	if err != nil {
		// Aba inexistente: cria e segue para escrever o cabeçalho.
		if err := c.addSheet(ctx, tabela); err != nil {
			return err
		}
	} else if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	celulas := make([]interface{}, len(cabecalho))
	for i, coluna := range cabecalho {
		celulas[i] = coluna
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{celulas}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, tabela+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: cabeçalho de %s: %v", ErrIndisponivel, tabela, err)
	}
	return nil
}

func (c *Client) addSheet(ctx context.Context, tabela string) error {
	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: tabela},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: criação da aba %s: %v", ErrIndisponivel, tabela, err)
	}
	return nil
}

func (c *Client) sheetID(ctx context.Context, tabela string) (int64, error) {
	c.mu.Lock()
	if id, ok := c.sheetIDs[tabela]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets(properties(sheetId,title))").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: metadados da planilha: %v", ErrIndisponivel, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			c.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	id, ok := c.sheetIDs[tabela]
	if !ok {
		return 0, fmt.Errorf("%w: aba %s não existe", ErrIndisponivel, tabela)
	}
	return id, nil
}

func montaLinha(cabecalho []string, bruta []interface{}) Row {
	linha := make(Row, len(cabecalho))
	celulas := aStrings(bruta)
	for i, coluna := range cabecalho {
		if i < len(celulas) {
			linha[coluna] = celulas[i]
		} else {
			linha[coluna] = ""
		}
	}
	return linha
}

func aStrings(bruta []interface{}) []string {
	out := make([]string, len(bruta))
	for i, v := range bruta {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}

func indiceColuna(cabecalho []string, coluna string) int {
	for i, c := range cabecalho {
		if c == coluna {
			return i
		}
	}
	return -1
}

// letraColuna converte índice 0-based em letra de coluna (A, B, ..., AA, AB).
func letraColuna(idx int) string {
	letras := ""
	for idx >= 0 {
		letras = string(rune('A'+idx%26)) + letras
		idx = idx/26 - 1
	}
	return letras
}
