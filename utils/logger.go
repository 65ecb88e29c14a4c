package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// ETLLogger представляет логгер для ETL-процесса.
// Пишет одновременно в лог-файл и в стандартный вывод.
type ETLLogger struct {
	out       *log.Logger
	isVerbose bool
}

// NewETLLogger создает новый экземпляр логгера для ETL
func NewETLLogger(verbose bool) *ETLLogger {
	// Создаем или открываем лог-файл за текущую дату
	logFileName := fmt.Sprintf("chorus_etl_%s.log", time.Now().Format("2006-01-02"))

	file, err := os.OpenFile(logFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Не удалось открыть или создать файл лога: %v", err)
	}

	return newETLLoggerWithWriter(io.MultiWriter(file, os.Stdout), verbose)
}

func newETLLoggerWithWriter(w io.Writer, verbose bool) *ETLLogger {
	return &ETLLogger{
		out:       log.New(w, "", log.Ldate|log.Ltime),
		isVerbose: verbose,
	}
}

// Info логирует информационное сообщение
func (l *ETLLogger) Info(format string, v ...interface{}) {
	l.out.Println("INFO:", fmt.Sprintf(format, v...))
}

// Error логирует сообщение об ошибке
func (l *ETLLogger) Error(format string, v ...interface{}) {
	l.out.Println("ERROR:", fmt.Sprintf(format, v...))
}

// Debug логирует отладочное сообщение (только если включен verbose режим)
func (l *ETLLogger) Debug(format string, v ...interface{}) {
	if !l.isVerbose {
		return
	}
	l.out.Println("DEBUG:", fmt.Sprintf(format, v...))
}

// LogETLStart логирует начало ETL-процесса
func (l *ETLLogger) LogETLStart() {
	l.Info("Начало выполнения ETL-процесса")
}

// LogETLComplete логирует завершение ETL-процесса
func (l *ETLLogger) LogETLComplete(startTime time.Time, choristers, songs, attendanceFacts, songTimeFacts int) {
	duration := time.Since(startTime)
	l.Info("ETL-процесс завершён. Длительность: %v", duration)
	l.Info("Обработано: %d хористов, %d песен, %d фактов посещаемости, %d фактов времени репетиций",
		choristers, songs, attendanceFacts, songTimeFacts)
}

// LogTransformStart логирует начало фазы преобразования данных
func (l *ETLLogger) LogTransformStart() {
	l.Info("Начало фазы Transform (Преобразование данных)")
}

// LogTransformComplete логирует завершение фазы преобразования данных
func (l *ETLLogger) LogTransformComplete(choristers, assignments, songs int, duration time.Duration) {
	l.Info("Фаза Transform завершена. Длительность: %v", duration)
	l.Info("Построено: %d хористов, %d интервалов партий, %d песен", choristers, assignments, songs)
}
