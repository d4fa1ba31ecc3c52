package util

import "time"

// FormatoData é o formato de dia usado em toda a planilha (DD/MM/YYYY).
// O resolvedor de períodos e o dashboard dependem dele: não mudar.
const FormatoData = "02/01/2006"

// FormatoMes agrupa datas por mês nos gráficos (MM/YYYY).
const FormatoMes = "01/2006"

// ParseData interpreta uma data de dia no formato da planilha.
func ParseData(valor string) (time.Time, error) {
	return time.Parse(FormatoData, valor)
}

// FormatData serializa uma data no formato da planilha.
func FormatData(t time.Time) string {
	return t.Format(FormatoData)
}
