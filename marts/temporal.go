package marts

import (
	"strings"

	"github.com/LilVoxy/chorus_etl/transform"
)

// safeStr возвращает значение поля строки-словаря с обрезкой пробелов
func safeStr(record map[string]string, field string) string {
	return strings.TrimSpace(record[field])
}

// safeFloat разбирает числовое поле, возвращая значение по умолчанию
// при пустом или неразборчивом содержимом
func safeFloat(record map[string]string, field string, def float64) float64 {
	v, ok := transform.ParseNumber(record[field])
	if !ok {
		return def
	}
	return v
}

// VoicePartForDate разрешает, какая партия действовала у хориста на дату:
// среди интервалов с valid_from ≤ date и (valid_to пуст ИЛИ date ≤ valid_to)
// побеждает интервал с максимальным valid_from; при равенстве valid_from —
// первый по порядку таблицы. Пустая строка, если ни один интервал не подходит.
// Это единственный примитив темпорального разрешения, переиспользуемый
// всеми витринами.
func VoicePartForDate(choristerID, dateISO string, assignments []map[string]string) string {
	if dateISO == "" {
		return ""
	}

	bestFrom := ""
	bestPart := ""
	found := false

	for _, a := range assignments {
		if safeStr(a, "chorister_id") != choristerID {
			continue
		}
		validFrom := transform.NormalizeDateISO(safeStr(a, "valid_from"))
		if validFrom == "" {
			continue
		}
		if dateISO < validFrom {
			continue
		}
		validTo := transform.NormalizeDateISO(safeStr(a, "valid_to"))
		if validTo != "" && dateISO > validTo {
			continue
		}
		if !found || validFrom > bestFrom {
			found = true
			bestFrom = validFrom
			bestPart = safeStr(a, "voice_part")
		}
	}
	return bestPart
}
