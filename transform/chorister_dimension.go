package transform

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/utils"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonWordPattern    = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// NormalizeName нормализует полное имя для сопоставления с ручными таблицами:
// нижний регистр, пробелы схлопываются в «_», все не-словесные символы
// (с учетом Unicode) отбрасываются. Идемпотентна.
func NormalizeName(fullName string) string {
	name := strings.ToLower(strings.TrimSpace(fullName))
	name = whitespacePattern.ReplaceAllString(name, "_")
	name = nonWordPattern.ReplaceAllString(name, "")
	return name
}

// ChoristerKey — точный ключ идентичности хориста в пределах запуска
type ChoristerKey struct {
	FullName   string
	JoinedDate string
}

// IdentityIndex содержит индексы идентичности, построенные резолвером
// и потребляемые последующими стадиями
type IdentityIndex struct {
	// ByKey — точный ключ (full_name, joined_date) → chorister_id
	ByKey map[ChoristerKey]string
	// ByNormalized — нормализованное имя → chorister_id (первое вхождение побеждает).
	// Позволяет ручным таблицам ссылаться на хориста по имени, набранному
	// человеком, без учета регистра и пунктуации.
	ByNormalized map[string]string
}

// NewIdentityIndex создает пустой индекс идентичности
func NewIdentityIndex() IdentityIndex {
	return IdentityIndex{
		ByKey:        make(map[ChoristerKey]string),
		ByNormalized: make(map[string]string),
	}
}

// ChoristerDimensionProcessor строит измерение dim_chorister из RAW-листа
type ChoristerDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewChoristerDimensionProcessor создает новый экземпляр ChoristerDimensionProcessor
func NewChoristerDimensionProcessor(logger *utils.ETLLogger) *ChoristerDimensionProcessor {
	return &ChoristerDimensionProcessor{logger: logger}
}

// isChoristerRow определяет, описывает ли строка хориста:
// Tag непустой и не является сентинелем строки песни
func isChoristerRow(tag string) bool {
	return tag != "" && tag != extractors.SongTag
}

// ProcessChoristerDimension назначает каждому хористу детерминированный
// человекочитаемый идентификатор. Первое вхождение имени получает
// chorister_id = full_name; повторные — «full_name | joined_date», чтобы
// оператор мог прочитать идентификатор без расшифровки счетчиков.
// Полные дубликаты (совпадают и имя, и дата вступления) получают числовой
// суффикс « (2)», « (3)», как повторные названия в измерении песен.
// При деградированной схеме возвращаются пустая таблица и пустые индексы.
func (p *ChoristerDimensionProcessor) ProcessChoristerDimension(
	grid [][]string,
	schema extractors.Schema,
	loadTS time.Time,
) ([]models.ChoristerRecord, IdentityIndex) {
	records := []models.ChoristerRecord{}
	index := NewIdentityIndex()

	if !schema.OK || len(grid) == 0 {
		return records, index
	}

	nowISO := LoadTimestamp(loadTS)
	seenNames := make(map[string]int)
	usedIDs := make(map[string]int)

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
		tgid := extractors.CellAt(row, schema.TGIDIdx)

		seenNames[fullName]++
		choristerID := fullName
		if seenNames[fullName] > 1 {
			// Дизамбигуация по дате вступления, а не по счетчику
			choristerID = fullName + " | " + joinedDate
		}
		usedIDs[choristerID]++
		if count := usedIDs[choristerID]; count > 1 {
			// Полный дубликат: дата вступления не различает, остается счетчик
			choristerID = fmt.Sprintf("%s (%d)", choristerID, count)
		}

		records = append(records, models.ChoristerRecord{
			ChoristerID: choristerID,
			TGID:        tgid,
			FullName:    fullName,
			JoinedDate:  joinedDate,
			CreatedAt:   nowISO,
			UpdatedAt:   nowISO,
		})

		key := ChoristerKey{FullName: fullName, JoinedDate: joinedDate}
		if _, ok := index.ByKey[key]; !ok {
			index.ByKey[key] = choristerID
		}

		normalized := NormalizeName(fullName)
		if _, ok := index.ByNormalized[normalized]; !ok {
			index.ByNormalized[normalized] = choristerID
		}
	}

	p.logger.Debug("Измерение хористов построено: %d записей", len(records))
	return records, index
}
