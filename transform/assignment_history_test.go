package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/models"
)

func TestVoicePartFromTag(t *testing.T) {
	tests := []struct {
		tag      string
		part     string
		isActive bool
	}{
		{"Soprano", "soprano", true},
		{"alto", "alto", true},
		{"ex-Alto", "alto", false},
		{"Ex Tenor", "tenor", false},
		{"EX_bass", "bass", false},
		{"exAlto", "alto", false},
	}

	for _, tt := range tests {
		part, isActive := voicePartFromTag(tt.tag)
		assert.Equal(t, tt.part, part, "тег %q", tt.tag)
		assert.Equal(t, tt.isActive, isActive, "тег %q", tt.tag)
	}
}

func TestProcessAssignmentHistoryFromTags(t *testing.T) {
	grid := [][]string{
		{"Tag", "Joined", "tgid", "Who"},
		{"Soprano", "16.06.24", "", "Мария Дидуренко"},
		{"ex-Alto", "01.02.23", "", "Анна Иванова"},
	}
	schema := extractors.DetectSchema(grid[0])
	require.True(t, schema.OK)

	dimProcessor := NewChoristerDimensionProcessor(testLogger())
	_, index := dimProcessor.ProcessChoristerDimension(grid, schema, testLoadTS)

	processor := NewAssignmentHistoryProcessor(testLogger(), nil)
	intervals := processor.ProcessAssignmentHistory(grid, schema, index)

	require.Len(t, intervals, 2)

	assert.Equal(t, models.AssignmentInterval{
		AssignmentID: "Мария Дидуренко | soprano | 16.06.24",
		ChoristerID:  "Мария Дидуренко",
		VoicePart:    "soprano",
		IsActive:     true,
		ValidFrom:    "16.06.24",
		ValidTo:      "",
	}, intervals[0])

	// Тег с префиксом «ex» дает закрытую неактивную партию
	assert.Equal(t, "alto", intervals[1].VoicePart)
	assert.False(t, intervals[1].IsActive)
	assert.Equal(t, "01.02.23", intervals[1].ValidFrom)
}

func TestProcessAssignmentHistoryOverridesWin(t *testing.T) {
	grid := [][]string{
		{"Tag", "Joined", "tgid", "Who"},
		{"Alto", "16.06.24", "", "Мария Дидуренко"},
	}
	schema := extractors.DetectSchema(grid[0])

	overrides := models.OverrideTable{
		"мария_дидуренко": {
			{VoicePart: "soprano", ValidFrom: "16.06.24", ValidTo: "01.10.24"},
			{VoicePart: "alto", ValidFrom: "02.10.24", ValidTo: ""},
		},
	}

	dimProcessor := NewChoristerDimensionProcessor(testLogger())
	_, index := dimProcessor.ProcessChoristerDimension(grid, schema, testLoadTS)

	processor := NewAssignmentHistoryProcessor(testLogger(), overrides)
	intervals := processor.ProcessAssignmentHistory(grid, schema, index)

	// Ручная таблица полностью вытесняет вывод из тега
	require.Len(t, intervals, 2)
	assert.Equal(t, "soprano", intervals[0].VoicePart)
	assert.Equal(t, "01.10.24", intervals[0].ValidTo)
	assert.Equal(t, "alto", intervals[1].VoicePart)

	// Записи ручной таблицы всегда активны, даже для закрытого периода
	assert.True(t, intervals[0].IsActive)
	assert.True(t, intervals[1].IsActive)

	assert.Equal(t, "Мария Дидуренко | soprano | 16.06.24", intervals[0].AssignmentID)
}

func TestProcessAssignmentHistoryMissingKeyFallsBack(t *testing.T) {
	grid := [][]string{
		{"Tag", "Joined", "tgid", "Who"},
		{"Soprano", "16.06.24", "", "Мария Дидуренко"},
	}
	schema := extractors.DetectSchema(grid[0])

	// Пустой индекс: защитный вырожденный случай не должен падать
	processor := NewAssignmentHistoryProcessor(testLogger(), nil)
	intervals := processor.ProcessAssignmentHistory(grid, schema, NewIdentityIndex())

	require.Len(t, intervals, 1)
	assert.Equal(t, "Мария Дидуренко", intervals[0].ChoristerID)
}
