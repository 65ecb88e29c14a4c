package models

import (
	"fmt"
	"time"

	"github.com/LilVoxy/chorus_etl/storage"
)

// ETLLogHeader — заголовок журнала запусков etl_log
var ETLLogHeader = []string{
	"run_id",
	"run_ts",
	"status",
	"rows_dim_chorister",
	"rows_dim_chorister_assignment",
	"rows_dim_song",
	"rows_fact_attendance",
	"rows_fact_song_time",
	"error_message",
}

// maxErrorMessageLen — ограничение длины сообщения об ошибке в журнале
const maxErrorMessageLen = 500

// SheetsRunLogRepository ведет append-only журнал запусков ETL
// во вкладке etl_log целевого документа
type SheetsRunLogRepository struct {
	store storage.TableStore
}

// NewSheetsRunLogRepository создает новый экземпляр SheetsRunLogRepository
func NewSheetsRunLogRepository(store storage.TableStore) *SheetsRunLogRepository {
	return &SheetsRunLogRepository{store: store}
}

// Append дописывает одну запись о запуске в журнал.
// На первом запуске перед записью дописывается заголовок.
func (r *SheetsRunLogRepository) Append(runLog *ETLRunLog) error {
	if err := r.store.EnsureTable(TableETLLog); err != nil {
		return fmt.Errorf("ошибка при создании вкладки %s: %w", TableETLLog, err)
	}

	existing, err := r.store.ReadRawRange(TableETLLog + "!A1:A1")
	if err != nil {
		return fmt.Errorf("ошибка при проверке заголовка %s: %w", TableETLLog, err)
	}

	rows := [][]string{}
	if len(existing) == 0 {
		rows = append(rows, ETLLogHeader)
	}

	// Короткое сообщение без секретов; обрезаем по рунам, не по байтам
	errorMessage := runLog.ErrorMessage
	if runes := []rune(errorMessage); len(runes) > maxErrorMessageLen {
		errorMessage = string(runes[:maxErrorMessageLen])
	}

	rows = append(rows, []string{
		runLog.RunID,
		runLog.RunTS.UTC().Format(time.RFC3339),
		runLog.Status,
		fmt.Sprintf("%d", runLog.RowsDimChorister),
		fmt.Sprintf("%d", runLog.RowsDimChoristerAssignment),
		fmt.Sprintf("%d", runLog.RowsDimSong),
		fmt.Sprintf("%d", runLog.RowsFactAttendance),
		fmt.Sprintf("%d", runLog.RowsFactSongTime),
		errorMessage,
	})

	if err := r.store.AppendRows(TableETLLog+"!A:I", rows); err != nil {
		return fmt.Errorf("ошибка при дозаписи журнала запусков: %w", err)
	}
	return nil
}
