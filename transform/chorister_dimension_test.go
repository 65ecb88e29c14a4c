package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/utils"
)

var testLoadTS = time.Date(2024, 11, 20, 12, 0, 0, 0, time.UTC)

func testLogger() *utils.ETLLogger {
	return utils.NewETLLogger(false)
}

func choristerGrid() [][]string {
	return [][]string{
		{"Tag", "Joined", "tgid", "Who", "16.06.24", "23.06.24"},
		{"Soprano", "16.06.24", "123", "Мария Дидуренко", "2", "2,5"},
		{"Alto", "01.02.23", "", "Анна Иванова", "", "2"},
		{"Song", "", "", "Калинка", "30", ""},
		{"Tenor", "02.10.24", "", "Анна Иванова", "2", ""},
		{"", "01.01.24", "", "Строка без тега", "1", ""},
	}
}

func TestNormalizeName(t *testing.T) {
	// Нормализация нечувствительна к регистру и лишним пробелам
	assert.Equal(t, NormalizeName("Мария Дидуренко"), NormalizeName("мария   дидуренко"))
	assert.Equal(t, "мария_дидуренко", NormalizeName("  Мария Дидуренко!  "))

	// Идемпотентность
	once := NormalizeName("Анна Иванова")
	assert.Equal(t, once, NormalizeName(once))
}

func TestProcessChoristerDimension(t *testing.T) {
	grid := choristerGrid()
	schema := extractors.DetectSchema(grid[0])
	require.True(t, schema.OK)

	processor := NewChoristerDimensionProcessor(testLogger())
	records, index := processor.ProcessChoristerDimension(grid, schema, testLoadTS)

	require.Len(t, records, 3)

	// Первое вхождение имени получает идентификатор без суффикса
	assert.Equal(t, "Мария Дидуренко", records[0].ChoristerID)
	assert.Equal(t, "123", records[0].TGID)
	assert.Equal(t, "Анна Иванова", records[1].ChoristerID)

	// Повторное вхождение дизамбигуируется датой вступления
	assert.Equal(t, "Анна Иванова | 02.10.24", records[2].ChoristerID)

	// Идентификаторы уникальны
	seen := map[string]bool{}
	for _, r := range records {
		assert.False(t, seen[r.ChoristerID], "дубликат chorister_id %q", r.ChoristerID)
		seen[r.ChoristerID] = true
	}

	// Точный индекс ведет к правильным идентификаторам
	assert.Equal(t, "Анна Иванова",
		index.ByKey[ChoristerKey{FullName: "Анна Иванова", JoinedDate: "01.02.23"}])
	assert.Equal(t, "Анна Иванова | 02.10.24",
		index.ByKey[ChoristerKey{FullName: "Анна Иванова", JoinedDate: "02.10.24"}])

	// Нормализованный индекс: первое вхождение побеждает
	assert.Equal(t, "Анна Иванова", index.ByNormalized[NormalizeName("анна  иванова")])
}

func TestProcessChoristerDimensionFullDuplicates(t *testing.T) {
	// Три строки с одинаковыми именем и датой вступления:
	// дата не различает, уникальность сохраняет счетчик
	grid := [][]string{
		{"Tag", "Joined", "tgid", "Who", "16.06.24"},
		{"Soprano", "01.01.24", "", "Анна Иванова", "2"},
		{"Alto", "01.01.24", "", "Анна Иванова", "2"},
		{"Tenor", "01.01.24", "", "Анна Иванова", "2"},
	}
	schema := extractors.DetectSchema(grid[0])
	require.True(t, schema.OK)

	processor := NewChoristerDimensionProcessor(testLogger())
	records, index := processor.ProcessChoristerDimension(grid, schema, testLoadTS)

	require.Len(t, records, 3)
	assert.Equal(t, "Анна Иванова", records[0].ChoristerID)
	assert.Equal(t, "Анна Иванова | 01.01.24", records[1].ChoristerID)
	assert.Equal(t, "Анна Иванова | 01.01.24 (2)", records[2].ChoristerID)

	// Индексы по-прежнему отдают первое вхождение
	assert.Equal(t, "Анна Иванова",
		index.ByKey[ChoristerKey{FullName: "Анна Иванова", JoinedDate: "01.01.24"}])
	assert.Equal(t, "Анна Иванова", index.ByNormalized[NormalizeName("Анна Иванова")])
}

func TestProcessChoristerDimensionDeterministic(t *testing.T) {
	grid := choristerGrid()
	schema := extractors.DetectSchema(grid[0])
	processor := NewChoristerDimensionProcessor(testLogger())

	first, _ := processor.ProcessChoristerDimension(grid, schema, testLoadTS)
	second, _ := processor.ProcessChoristerDimension(grid, schema, testLoadTS)
	assert.Equal(t, first, second)
}

func TestProcessChoristerDimensionDegradedSchema(t *testing.T) {
	grid := [][]string{
		{"Имя", "Дата"},
		{"Мария Дидуренко", "16.06.24"},
	}
	schema := extractors.DetectSchema(grid[0])
	require.False(t, schema.OK)

	processor := NewChoristerDimensionProcessor(testLogger())
	records, index := processor.ProcessChoristerDimension(grid, schema, testLoadTS)

	// Деградированный режим: пустая таблица вместо ошибки
	assert.Empty(t, records)
	assert.Empty(t, index.ByKey)
	assert.Empty(t, index.ByNormalized)
}
