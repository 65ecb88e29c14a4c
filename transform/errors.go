package transform

import "fmt"

// Виды фатальных ошибок качества данных
const (
	ErrKindDuplicateDateColumn = "duplicate_date_column"
	ErrKindBadAttendanceValue  = "bad_attendance_value"
	ErrKindBadJoinedDate       = "bad_joined_date"
)

// DataQualityError — фатальная ошибка качества данных. В отличие от
// деградации при несоответствии схемы, нарушение качества данных обязано
// прервать весь запуск: витрины рассчитывают на полноту фактов.
// Ошибка несет контекст (сущность, дату, сырое значение), достаточный
// для диагностики без повторного запуска.
type DataQualityError struct {
	Kind   string
	Entity string
	Date   string
	Raw    string
	Detail string
}

// Error возвращает текстовое описание ошибки
func (e *DataQualityError) Error() string {
	msg := fmt.Sprintf("нарушение качества данных (%s)", e.Kind)
	if e.Entity != "" {
		msg += fmt.Sprintf(": сущность %q", e.Entity)
	}
	if e.Date != "" {
		msg += fmt.Sprintf(", дата %s", e.Date)
	}
	if e.Raw != "" {
		msg += fmt.Sprintf(", значение %q", e.Raw)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
