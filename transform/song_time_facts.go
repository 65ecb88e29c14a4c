package transform

import (
	"time"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/utils"
)

// SongTimeFactsProcessor разворачивает строки Song × колонки дат в факты
// времени репетиций песен
type SongTimeFactsProcessor struct {
	logger *utils.ETLLogger
}

// NewSongTimeFactsProcessor создает новый экземпляр SongTimeFactsProcessor
func NewSongTimeFactsProcessor(logger *utils.ETLLogger) *SongTimeFactsProcessor {
	return &SongTimeFactsProcessor{logger: logger}
}

// ProcessSongTimeFacts строит fact_song_time. Строки Song сканируются в
// порядке источника, один к одному с заранее построенным списком song_id —
// так идентичность песни и ее время делят ровно N-ю строку Song.
// Учет времени песен ведется по возможности: пустая или неразборчивая
// ячейка молча пропускается, в отличие от строгой посещаемости.
func (p *SongTimeFactsProcessor) ProcessSongTimeFacts(
	grid [][]string,
	schema extractors.Schema,
	songIDsOrdered []string,
	loadTS time.Time,
) ([]models.SongTimeFact, error) {
	facts := []models.SongTimeFact{}
	if !schema.OK || len(grid) == 0 || len(songIDsOrdered) == 0 {
		return facts, nil
	}

	dateColumns, err := RetainDateColumns(grid[0], extractors.DateColumnsStart)
	if err != nil {
		return nil, err
	}

	nowISO := LoadTimestamp(loadTS)
	songIndex := 0

	for _, row := range grid[1:] {
		tag := extractors.CellAt(row, schema.TagIdx)
		if tag != extractors.SongTag {
			continue
		}
		// Строки Song без названия не попали в dim_song — пропускаем их и здесь,
		// иначе соответствие N-й строки Song и N-го song_id разойдется
		if extractors.CellAt(row, schema.WhoIdx) == "" {
			continue
		}

		if songIndex >= len(songIDsOrdered) {
			break
		}
		songID := songIDsOrdered[songIndex]
		songIndex++

		for _, column := range dateColumns {
			minutes, parsed := ParseNumber(extractors.CellAt(row, column.Index))
			if !parsed {
				continue
			}
			facts = append(facts, models.SongTimeFact{
				RehearsalDate: column.ISO,
				SongID:        songID,
				MinutesSpent:  minutes,
				LoadTS:        nowISO,
			})
		}
	}

	p.logger.Debug("Факты времени песен построены: %d строк", len(facts))
	return facts, nil
}
