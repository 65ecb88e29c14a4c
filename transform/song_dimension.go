package transform

import (
	"fmt"
	"time"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/utils"
)

// SongDimensionProcessor строит измерение dim_song из строк RAW-листа
// с тегом Song (название песни — в колонке Who)
type SongDimensionProcessor struct {
	logger *utils.ETLLogger
}

// NewSongDimensionProcessor создает новый экземпляр SongDimensionProcessor
func NewSongDimensionProcessor(logger *utils.ETLLogger) *SongDimensionProcessor {
	return &SongDimensionProcessor{logger: logger}
}

// ProcessSongDimension строит измерение песен и упорядоченный список song_id.
// song_id — читаемое название; повторное название получает числовой суффикс
// « (2)», « (3)» в порядке строк источника. Список song_id возвращается,
// чтобы факты времени песен использовали ровно тот же идентификатор для
// N-й строки Song.
func (p *SongDimensionProcessor) ProcessSongDimension(
	grid [][]string,
	schema extractors.Schema,
	loadTS time.Time,
) ([]models.SongRecord, []string) {
	records := []models.SongRecord{}
	songIDsOrdered := []string{}

	if !schema.OK || len(grid) == 0 {
		return records, songIDsOrdered
	}

	nowISO := LoadTimestamp(loadTS)
	seenTitles := make(map[string]int)

	for _, row := range grid[1:] {
		tag := extractors.CellAt(row, schema.TagIdx)
		if tag != extractors.SongTag {
			continue
		}

		songName := extractors.CellAt(row, schema.WhoIdx)
		if songName == "" {
			continue
		}

		seenTitles[songName]++
		songID := songName
		if count := seenTitles[songName]; count > 1 {
			songID = fmt.Sprintf("%s (%d)", songName, count)
		}

		songIDsOrdered = append(songIDsOrdered, songID)
		records = append(records, models.SongRecord{
			SongID:    songID,
			SongName:  songName,
			CreatedAt: nowISO,
			UpdatedAt: nowISO,
		})
	}

	p.logger.Debug("Измерение песен построено: %d записей", len(records))
	return records, songIDsOrdered
}
