package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/chorus_etl/extractors"
)

func songGrid() [][]string {
	return [][]string{
		{"Tag", "Joined", "tgid", "Who", "16.06.24", "23.06.24"},
		{"Soprano", "16.06.24", "", "Мария Дидуренко", "2", "2"},
		{"Song", "", "", "Калинка", "30", ""},
		{"Song", "", "", "Ой у лузі", "", "45,5"},
		{"Song", "", "", "Калинка", "15", "abc"},
	}
}

func TestProcessSongDimension(t *testing.T) {
	grid := songGrid()
	schema := extractors.DetectSchema(grid[0])

	processor := NewSongDimensionProcessor(testLogger())
	records, songIDs := processor.ProcessSongDimension(grid, schema, testLoadTS)

	require.Len(t, records, 3)

	// Повторное название получает числовой суффикс в порядке строк источника
	assert.Equal(t, "Калинка", records[0].SongID)
	assert.Equal(t, "Ой у лузі", records[1].SongID)
	assert.Equal(t, "Калинка (2)", records[2].SongID)
	assert.Equal(t, "Калинка", records[2].SongName)

	assert.Equal(t, []string{"Калинка", "Ой у лузі", "Калинка (2)"}, songIDs)
}

func TestProcessSongTimeFacts(t *testing.T) {
	grid := songGrid()
	schema := extractors.DetectSchema(grid[0])

	dimProcessor := NewSongDimensionProcessor(testLogger())
	_, songIDs := dimProcessor.ProcessSongDimension(grid, schema, testLoadTS)

	processor := NewSongTimeFactsProcessor(testLogger())
	facts, err := processor.ProcessSongTimeFacts(grid, schema, songIDs, testLoadTS)
	require.NoError(t, err)

	// Пустые и неразборчивые ячейки пропускаются молча
	require.Len(t, facts, 3)

	assert.Equal(t, "Калинка", facts[0].SongID)
	assert.Equal(t, "2024-06-16", facts[0].RehearsalDate)
	assert.Equal(t, 30.0, facts[0].MinutesSpent)

	assert.Equal(t, "Ой у лузі", facts[1].SongID)
	assert.Equal(t, 45.5, facts[1].MinutesSpent)

	// N-я строка Song получает ровно N-й song_id
	assert.Equal(t, "Калинка (2)", facts[2].SongID)
	assert.Equal(t, 15.0, facts[2].MinutesSpent)
}

func TestProcessSongTimeFactsNoSongs(t *testing.T) {
	grid := songGrid()
	schema := extractors.DetectSchema(grid[0])

	processor := NewSongTimeFactsProcessor(testLogger())
	facts, err := processor.ProcessSongTimeFacts(grid, schema, nil, testLoadTS)
	require.NoError(t, err)
	assert.Empty(t, facts)
}
