package transform

import (
	"strconv"
	"strings"
	"time"
)

// ParseNumber разбирает числовое значение ячейки. Запятая принимается
// как десятичный разделитель (европейская локаль листа).
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatNumber форматирует число для записи в ячейку таблицы
// (без хвостовых нулей, детерминированно между запусками)
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LoadTimestamp форматирует замороженную метку времени запуска в ISO-8601 (UTC).
// Одна и та же метка используется всеми строками одного запуска.
func LoadTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
