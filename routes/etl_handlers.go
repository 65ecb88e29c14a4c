// routes/etl_handlers.go
package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/LilVoxy/chorus_etl/models"
)

// ETLStatusProvider — источник сведений о запусках ETL для HTTP-интерфейса
type ETLStatusProvider interface {
	// LastRun возвращает запись о последнем завершенном запуске (nil, если запусков не было)
	LastRun() *models.ETLRunLog
	// TriggerRun запускает ETL-процесс вне расписания
	TriggerRun()
}

// RunStatusResponse структура ответа API для статуса последнего запуска
type RunStatusResponse struct {
	RunID                      string    `json:"runId"`
	RunTS                      time.Time `json:"runTs"`
	Status                     string    `json:"status"`
	RowsDimChorister           int       `json:"rowsDimChorister"`
	RowsDimChoristerAssignment int       `json:"rowsDimChoristerAssignment"`
	RowsDimSong                int       `json:"rowsDimSong"`
	RowsFactAttendance         int       `json:"rowsFactAttendance"`
	RowsFactSongTime           int       `json:"rowsFactSongTime"`
	ErrorMessage               string    `json:"errorMessage,omitempty"`
}

// GetStatusHandler обрабатывает запросы на получение статуса последнего запуска ETL
func GetStatusHandler(provider ETLStatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastRun := provider.LastRun()
		if lastRun == nil {
			http.Error(w, "Запусков ETL еще не было", http.StatusNotFound)
			return
		}

		response := RunStatusResponse{
			RunID:                      lastRun.RunID,
			RunTS:                      lastRun.RunTS,
			Status:                     lastRun.Status,
			RowsDimChorister:           lastRun.RowsDimChorister,
			RowsDimChoristerAssignment: lastRun.RowsDimChoristerAssignment,
			RowsDimSong:                lastRun.RowsDimSong,
			RowsFactAttendance:         lastRun.RowsFactAttendance,
			RowsFactSongTime:           lastRun.RowsFactSongTime,
			ErrorMessage:               lastRun.ErrorMessage,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Printf("Ошибка при сериализации статуса ETL: %v", err)
		}
	}
}

// TriggerRunHandler обрабатывает запросы на ручной запуск ETL
func TriggerRunHandler(provider ETLStatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider.TriggerRun()
		w.WriteHeader(http.StatusAccepted)
		if _, err := w.Write([]byte("Запуск ETL принят\n")); err != nil {
			log.Printf("Ошибка при записи ответа: %v", err)
		}
	}
}
