package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/LilVoxy/chorus_etl/models"
)

// ETLConfig содержит конфигурацию для ETL-процесса
type ETLConfig struct {
	// Идентификатор исходного документа с широким листом посещаемости
	RawSpreadsheetID string

	// Идентификатор целевого документа-хранилища
	TargetSpreadsheetID string

	// Диапазон широкого RAW-листа в нотации A1
	RawRange string

	// Учетные данные сервисного аккаунта: путь к JSON-файлу (предпочтительно)
	// или сам JSON строкой
	ServiceAccountFile string
	ServiceAccountJSON string

	// Интервал запуска ETL в режиме scheduled
	RunInterval time.Duration

	// Адрес HTTP-сервера статуса (пустой — сервер не запускается)
	HTTPAddr string

	// Включение/отключение подробного логирования
	EnableDetailedLogging bool

	// Ручная таблица исключений истории партий: нормализованное имя →
	// периоды. Исходный лист несет только текущий тег, поэтому смены
	// партий задаются здесь.
	VoicePartOverrides models.OverrideTable
}

// DefaultVoicePartOverrides — курируемая вручную таблица исключений.
// Подавляющее большинство хористов выводится из тега автоматически;
// сюда попадают только те, чья партия менялась за время участия.
var DefaultVoicePartOverrides = models.OverrideTable{
	"мария_дидуренко": {
		{VoicePart: "soprano", ValidFrom: "16.06.24", ValidTo: "01.10.24"},
		{VoicePart: "alto", ValidFrom: "02.10.24", ValidTo: ""},
	},
}

// GetConfig возвращает конфигурацию ETL из переменных окружения.
// Переменные подхватываются из .env, если файл существует.
func GetConfig() (ETLConfig, error) {
	// Отсутствие .env не является ошибкой: в проде переменные заданы окружением
	_ = godotenv.Load()

	config := ETLConfig{
		RawRange:              "main!A:ZZ",
		RunInterval:           24 * time.Hour,
		HTTPAddr:              ":8090",
		EnableDetailedLogging: true,
		VoicePartOverrides:    DefaultVoicePartOverrides,
	}

	config.RawSpreadsheetID = os.Getenv("RAW_SPREADSHEET_ID")
	if config.RawSpreadsheetID == "" {
		return config, fmt.Errorf("не задана переменная окружения RAW_SPREADSHEET_ID")
	}

	config.TargetSpreadsheetID = os.Getenv("TARGET_SPREADSHEET_ID")
	if config.TargetSpreadsheetID == "" {
		return config, fmt.Errorf("не задана переменная окружения TARGET_SPREADSHEET_ID")
	}

	config.ServiceAccountFile = os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	config.ServiceAccountJSON = os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON")
	if config.ServiceAccountFile == "" && config.ServiceAccountJSON == "" {
		return config, fmt.Errorf(
			"не заданы учетные данные сервисного аккаунта: нужна GOOGLE_SERVICE_ACCOUNT_FILE (рекомендуется) или GOOGLE_SERVICE_ACCOUNT_JSON")
	}

	if v := os.Getenv("RAW_RANGE"); v != "" {
		config.RawRange = v
	}
	if v := os.Getenv("ETL_RUN_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil {
			return config, fmt.Errorf("неверный формат ETL_RUN_INTERVAL: %w", err)
		}
		config.RunInterval = interval
	}
	if v := os.Getenv("ETL_HTTP_ADDR"); v != "" {
		config.HTTPAddr = v
	}
	if v := os.Getenv("ETL_DETAILED_LOGGING"); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return config, fmt.Errorf("неверный формат ETL_DETAILED_LOGGING: %w", err)
		}
		config.EnableDetailedLogging = verbose
	}

	return config, nil
}
