package transform

import (
	"fmt"
	"time"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/utils"
)

// DateColumn — колонка дат RAW-листа после нормализации заголовка
type DateColumn struct {
	Index int
	ISO   string
}

// RetainDateColumns нормализует заголовки колонок дат начиная с указанного
// смещения. Колонка с нераспознаваемым заголовком отбрасывается молча —
// сразу за датами могут идти служебные колонки. Две разные колонки,
// нормализующиеся в одну дату, — фатальная ошибка: целевая колонка
// факта неоднозначна.
func RetainDateColumns(header []string, start int) ([]DateColumn, error) {
	columns := []DateColumn{}
	seen := make(map[string]int)

	for idx := start; idx < len(header); idx++ {
		raw := extractors.CellAt(header, idx)
		if raw == "" {
			continue
		}
		iso := NormalizeDateISO(raw)
		if iso == "" {
			continue
		}
		if prev, ok := seen[iso]; ok {
			return nil, &DataQualityError{
				Kind:   ErrKindDuplicateDateColumn,
				Date:   iso,
				Raw:    raw,
				Detail: fmt.Sprintf("колонки %d и %d дают одну и ту же дату", prev, idx),
			}
		}
		seen[iso] = idx
		columns = append(columns, DateColumn{Index: idx, ISO: iso})
	}
	return columns, nil
}

// AttendanceFactsProcessor разворачивает широкие колонки дат в длинные
// факты посещаемости
type AttendanceFactsProcessor struct {
	logger *utils.ETLLogger
}

// NewAttendanceFactsProcessor создает новый экземпляр AttendanceFactsProcessor
func NewAttendanceFactsProcessor(logger *utils.ETLLogger) *AttendanceFactsProcessor {
	return &AttendanceFactsProcessor{logger: logger}
}

// ProcessAttendanceFacts строит fact_attendance: ровно одна строка на пару
// (хорист, удержанная колонка даты). Политика замкнутого мира: пустая ячейка
// дает hours=0 и missed_flag=1, непустая обязана разобраться как
// неотрицательное число (запятая как десятичный разделитель допустима),
// все прочее — фатальная ошибка с контекстом для диагностики.
func (p *AttendanceFactsProcessor) ProcessAttendanceFacts(
	grid [][]string,
	schema extractors.Schema,
	index IdentityIndex,
	loadTS time.Time,
) ([]models.AttendanceFact, error) {
	facts := []models.AttendanceFact{}
	if !schema.OK || len(grid) == 0 {
		return facts, nil
	}

	dateColumns, err := RetainDateColumns(grid[0], extractors.DateColumnsStart)
	if err != nil {
		return nil, err
	}

	nowISO := LoadTimestamp(loadTS)

	for _, row := range grid[1:] {
		tag := extractors.CellAt(row, schema.TagIdx)
		if !isChoristerRow(tag) {
			continue
		}

		fullName := extractors.CellAt(row, schema.WhoIdx)
		if fullName == "" {
			continue
		}

		joinedDate := extractors.CellAt(row, schema.JoinedIdx)
		choristerID, ok := index.ByKey[ChoristerKey{FullName: fullName, JoinedDate: joinedDate}]
		if !ok {
			choristerID = fullName
		}

		for _, column := range dateColumns {
			raw := extractors.CellAt(row, column.Index)
			if raw == "" {
				facts = append(facts, models.AttendanceFact{
					RehearsalDate: column.ISO,
					ChoristerID:   choristerID,
					HoursAttended: 0,
					MissedFlag:    1,
					LoadTS:        nowISO,
				})
				continue
			}

			hours, parsed := ParseNumber(raw)
			if !parsed || hours < 0 {
				return nil, &DataQualityError{
					Kind:   ErrKindBadAttendanceValue,
					Entity: choristerID,
					Date:   column.ISO,
					Raw:    raw,
					Detail: "часы посещения должны быть неотрицательным числом",
				}
			}

			missedFlag := 0
			if hours == 0 {
				missedFlag = 1
			}
			facts = append(facts, models.AttendanceFact{
				RehearsalDate: column.ISO,
				ChoristerID:   choristerID,
				HoursAttended: hours,
				MissedFlag:    missedFlag,
				LoadTS:        nowISO,
			})
		}
	}

	p.logger.Debug("Факты посещаемости построены: %d строк по %d датам", len(facts), len(dateColumns))
	return facts, nil
}
