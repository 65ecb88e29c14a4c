package transform

import (
	"fmt"
	"time"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/utils"
)

// Transformer координирует преобразование широкого RAW-листа в таблицы
// измерений и фактов хранилища
type Transformer struct {
	logger             *utils.ETLLogger
	choristerProcessor *ChoristerDimensionProcessor
	historyProcessor   *AssignmentHistoryProcessor
	songProcessor      *SongDimensionProcessor
	attendanceProc     *AttendanceFactsProcessor
	songTimeProc       *SongTimeFactsProcessor
}

// NewTransformer создает новый экземпляр Transformer
func NewTransformer(logger *utils.ETLLogger, overrides models.OverrideTable) *Transformer {
	return &Transformer{
		logger:             logger,
		choristerProcessor: NewChoristerDimensionProcessor(logger),
		historyProcessor:   NewAssignmentHistoryProcessor(logger, overrides),
		songProcessor:      NewSongDimensionProcessor(logger),
		attendanceProc:     NewAttendanceFactsProcessor(logger),
		songTimeProc:       NewSongTimeFactsProcessor(logger),
	}
}

// Transform выполняет полный процесс преобразования RAW-листа.
// loadTS — замороженная метка времени запуска: все created_at/updated_at/load_ts
// одного запуска совпадают, поэтому повторный запуск на неизменном входе
// с той же меткой дает побайтно идентичные таблицы.
func (t *Transformer) Transform(
	grid [][]string,
	schema extractors.Schema,
	loadTS time.Time,
) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.LogTransformStart()

	transformedData := &models.TransformedData{}

	// 1. Измерение хористов и индексы идентичности
	t.logger.Info("Построение измерения хористов...")
	choristers, index := t.choristerProcessor.ProcessChoristerDimension(grid, schema, loadTS)
	transformedData.Choristers = choristers

	// 2. История партий (SCD type 2)
	t.logger.Info("Построение истории партий...")
	transformedData.Assignments = t.historyProcessor.ProcessAssignmentHistory(grid, schema, index)

	// 3. Измерение песен
	t.logger.Info("Построение измерения песен...")
	songs, songIDsOrdered := t.songProcessor.ProcessSongDimension(grid, schema, loadTS)
	transformedData.Songs = songs

	// 4. Факты посещаемости (строгий разбор)
	t.logger.Info("Разворачивание фактов посещаемости...")
	attendance, err := t.attendanceProc.ProcessAttendanceFacts(grid, schema, index, loadTS)
	if err != nil {
		t.logger.Error("Ошибка при разворачивании фактов посещаемости: %v", err)
		return nil, fmt.Errorf("ошибка при разворачивании фактов посещаемости: %w", err)
	}
	transformedData.Attendance = attendance

	// 5. Факты времени песен (по возможности)
	t.logger.Info("Разворачивание фактов времени песен...")
	songTime, err := t.songTimeProc.ProcessSongTimeFacts(grid, schema, songIDsOrdered, loadTS)
	if err != nil {
		t.logger.Error("Ошибка при разворачивании фактов времени песен: %v", err)
		return nil, fmt.Errorf("ошибка при разворачивании фактов времени песен: %w", err)
	}
	transformedData.SongTime = songTime

	t.logger.LogTransformComplete(
		len(transformedData.Choristers),
		len(transformedData.Assignments),
		len(transformedData.Songs),
		time.Since(startTime),
	)
	return transformedData, nil
}
