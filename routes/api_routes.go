// routes/api_routes.go
package routes

import (
	"github.com/gorilla/mux"
)

// SetupRoutes настраивает маршруты служебного HTTP-интерфейса ETL
func SetupRoutes(router *mux.Router, provider ETLStatusProvider) {
	// Статус последнего запуска
	router.HandleFunc("/api/etl/status", GetStatusHandler(provider)).Methods("GET")

	// Ручной запуск вне расписания
	router.HandleFunc("/api/etl/run", TriggerRunHandler(provider)).Methods("POST")
}
