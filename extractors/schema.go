package extractors

import "strings"

// Фиксированные колонки RAW-листа: A=Tag, B=Joined, C=tgid, D=Who;
// колонки дат начинаются с E (индекс 4)
const DateColumnsStart = 4

// Имена обязательных колонок RAW-листа
const (
	ColumnTag    = "Tag"
	ColumnJoined = "Joined"
	ColumnTGID   = "tgid"
	ColumnWho    = "Who"
)

// SongTag — сентинельное значение Tag, помечающее строку песни
const SongTag = "Song"

// Schema содержит позиции именованных колонок широкого RAW-листа.
// OK == false означает деградированный режим: обязательные колонки не найдены,
// и все построители обязаны вернуть пустые таблицы (только заголовок),
// а не ошибку.
type Schema struct {
	TagIdx    int
	JoinedIdx int
	TGIDIdx   int // -1, если колонка отсутствует (tgid необязательна)
	WhoIdx    int
	OK        bool
}

// IndexByName строит отображение имя колонки → индекс
func IndexByName(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for idx, name := range header {
		if _, seen := index[name]; !seen {
			index[name] = idx
		}
	}
	return index
}

// DetectSchema сопоставляет строку заголовка с позициями обязательных колонок.
// Отсутствие любой обязательной колонки не является ошибкой — возвращается
// схема с OK == false, и дальнейшая обработка деградирует до пустых таблиц.
func DetectSchema(header []string) Schema {
	index := IndexByName(header)

	schema := Schema{TagIdx: -1, JoinedIdx: -1, TGIDIdx: -1, WhoIdx: -1}
	if idx, ok := index[ColumnTag]; ok {
		schema.TagIdx = idx
	}
	if idx, ok := index[ColumnJoined]; ok {
		schema.JoinedIdx = idx
	}
	if idx, ok := index[ColumnTGID]; ok {
		schema.TGIDIdx = idx
	}
	if idx, ok := index[ColumnWho]; ok {
		schema.WhoIdx = idx
	}

	schema.OK = schema.TagIdx >= 0 && schema.JoinedIdx >= 0 && schema.WhoIdx >= 0
	return schema
}

// CellAt безопасно возвращает значение ячейки строки по индексу колонки.
// Выход за границы короткой строки дает пустую строку.
func CellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
