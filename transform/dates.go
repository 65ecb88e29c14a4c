package transform

import (
	"regexp"
	"strconv"
	"time"
)

var (
	isoPrefixPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	dottedDatePattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2,4})$`)
)

// NormalizeDateISO приводит дату к виду YYYY-MM-DD.
// Поддерживаются два формата: уже нормализованный ISO-префикс (берутся
// первые 10 символов) и d.m.yy / d.m.yyyy с переносом двузначного года
// (< 50 — двухтысячные, иначе тысяча девятисотые).
// Нераспознанное или календарно невозможное значение дает пустую строку.
func NormalizeDateISO(raw string) string {
	if raw == "" {
		return ""
	}

	if isoPrefixPattern.MatchString(raw) {
		return raw[:10]
	}

	m := dottedDatePattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	// time.Date нормализует переполнения (32 января → 1 февраля),
	// поэтому проверяем, что компоненты не изменились
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return ""
	}
	return d.Format("2006-01-02")
}
