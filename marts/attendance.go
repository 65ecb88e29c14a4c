package marts

import (
	"github.com/LilVoxy/chorus_etl/transform"
)

// MartAttendanceHeader — заголовок витрины посещаемости
var MartAttendanceHeader = []string{
	"rehearsal_date",
	"chorister_id",
	"full_name",
	"joined_date",
	"voice_part",
	"hours_attended",
	"attended_flag",
	"missed_flag",
	"available_flag",
}

// joinedDateISO возвращает дату вступления хориста в ISO-виде.
// Отсутствующая дата дает пустую строку (хорист никогда не «доступен»),
// но присутствующая и при этом неразборчивая — фатальная ошибка:
// флаг доступности нельзя молча занулить.
func joinedDateISO(chorister map[string]string, choristerID string) (string, error) {
	raw := safeStr(chorister, "joined_date")
	if raw == "" {
		return "", nil
	}
	iso := transform.NormalizeDateISO(raw)
	if iso == "" {
		return "", &transform.DataQualityError{
			Kind:   transform.ErrKindBadJoinedDate,
			Entity: choristerID,
			Raw:    raw,
			Detail: "дата вступления не приводится к YYYY-MM-DD",
		}
	}
	return iso, nil
}

// BuildMartAttendance строит mart_attendance: одна строка на факт
// посещаемости, обогащенная именем хориста, датой вступления и партией,
// действовавшей на дату репетиции. available_flag = 1, только если
// репетиция не раньше вступления.
func BuildMartAttendance(
	dimChorister []map[string]string,
	dimChoristerAssignment []map[string]string,
	factAttendance []map[string]string,
) ([]string, [][]string, error) {
	choristerByID := make(map[string]map[string]string, len(dimChorister))
	for _, r := range dimChorister {
		if id := safeStr(r, "chorister_id"); id != "" {
			choristerByID[id] = r
		}
	}

	rows := [][]string{}
	for _, fa := range factAttendance {
		rawDate := safeStr(fa, "rehearsal_date")
		dateISO := transform.NormalizeDateISO(rawDate)
		if dateISO == "" {
			dateISO = rawDate
		}
		choristerID := safeStr(fa, "chorister_id")
		hours := safeFloat(fa, "hours_attended", 0)

		missedFlag := "0"
		if safeFloat(fa, "missed_flag", 0) != 0 {
			missedFlag = "1"
		}

		chorister := choristerByID[choristerID]
		fullName := safeStr(chorister, "full_name")
		joinedISO, err := joinedDateISO(chorister, choristerID)
		if err != nil {
			return nil, nil, err
		}
		joinedDisplay := joinedISO
		if joinedDisplay == "" {
			joinedDisplay = safeStr(chorister, "joined_date")
		}

		voicePart := VoicePartForDate(choristerID, dateISO, dimChoristerAssignment)

		attendedFlag := "0"
		if hours > 0 {
			attendedFlag = "1"
		}
		availableFlag := "0"
		if joinedISO != "" && dateISO >= joinedISO {
			availableFlag = "1"
		}

		rows = append(rows, []string{
			dateISO,
			choristerID,
			fullName,
			joinedDisplay,
			voicePart,
			transform.FormatNumber(hours),
			attendedFlag,
			missedFlag,
			availableFlag,
		})
	}
	return MartAttendanceHeader, rows, nil
}
