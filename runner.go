package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/LilVoxy/chorus_etl/config"
	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/load"
	"github.com/LilVoxy/chorus_etl/marts"
	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/storage"
	"github.com/LilVoxy/chorus_etl/transform"
	"github.com/LilVoxy/chorus_etl/utils"
)

// ETLRunner координирует полный цикл ETL: извлечение RAW-листа,
// преобразование, загрузку таблиц хранилища и построение витрин
type ETLRunner struct {
	config      config.ETLConfig
	logger      *utils.ETLLogger
	rawStore    storage.TableStore
	dbStore     storage.TableStore
	extractor   *extractors.RawExtractor
	transformer *transform.Transformer
	loadManager *load.LoadManager
	martBuilder *marts.MartBuilder
	runLogRepo  *models.SheetsRunLogRepository

	// runMu гарантирует, что запуски (по расписанию и ручные) не пересекаются
	runMu sync.Mutex

	stateMu sync.Mutex
	lastRun *models.ETLRunLog
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner() (*ETLRunner, error) {
	// Получаем конфигурацию
	etlConfig, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}

	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация ETL Runner")

	// Подключаемся к Google Sheets API
	service, err := config.ConnectSheets(context.Background(), etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к Google Sheets: %w", err)
	}

	rawStore := storage.NewSheetsStore(service, etlConfig.RawSpreadsheetID)
	dbStore := storage.NewSheetsStore(service, etlConfig.TargetSpreadsheetID)

	return newETLRunnerWithStores(etlConfig, logger, rawStore, dbStore), nil
}

// newETLRunnerWithStores собирает ETLRunner поверх готовых хранилищ
func newETLRunnerWithStores(
	etlConfig config.ETLConfig,
	logger *utils.ETLLogger,
	rawStore storage.TableStore,
	dbStore storage.TableStore,
) *ETLRunner {
	return &ETLRunner{
		config:      etlConfig,
		logger:      logger,
		rawStore:    rawStore,
		dbStore:     dbStore,
		extractor:   extractors.NewRawExtractor(rawStore, logger, etlConfig.RawRange),
		transformer: transform.NewTransformer(logger, etlConfig.VoicePartOverrides),
		loadManager: load.NewLoadManager(dbStore, logger),
		martBuilder: marts.NewMartBuilder(dbStore, logger),
		runLogRepo:  models.NewSheetsRunLogRepository(dbStore),
	}
}

// ExecuteETL выполняет полный ETL процесс и дописывает запись в журнал etl_log.
// Конвейер либо завершается целиком, либо падает с ошибкой; сама ошибка
// не перехватывается нигде, кроме этого уровня оркестрации.
func (r *ETLRunner) ExecuteETL() error {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	startTime := time.Now().UTC()
	r.logger.LogETLStart()

	runLog := &models.ETLRunLog{
		RunID:  uuid.NewString(),
		RunTS:  startTime,
		Status: "in_progress",
	}

	pipelineErr := r.runPipeline(runLog, startTime)
	if pipelineErr != nil {
		runLog.Status = "failed"
		runLog.ErrorMessage = pipelineErr.Error()
		r.logger.Error("ETL процесс завершился с ошибкой: %v", pipelineErr)
	} else {
		runLog.Status = "success"
		r.logger.LogETLComplete(startTime,
			runLog.RowsDimChorister,
			runLog.RowsDimSong,
			runLog.RowsFactAttendance,
			runLog.RowsFactSongTime)
	}

	// Журнал пишется и при успехе, и при ошибке; сбой записи журнала
	// не меняет исход самого запуска
	if err := r.runLogRepo.Append(runLog); err != nil {
		r.logger.Error("Ошибка при записи журнала запусков: %v", err)
	}

	r.stateMu.Lock()
	r.lastRun = runLog
	r.stateMu.Unlock()

	return pipelineErr
}

// runPipeline выполняет фазы конвейера и заполняет счетчики строк журнала
func (r *ETLRunner) runPipeline(runLog *models.ETLRunLog, startTime time.Time) error {
	// Легкая проверка доступности исходного документа
	if pinger, ok := r.rawStore.(interface{ Ping() error }); ok {
		if err := pinger.Ping(); err != nil {
			return fmt.Errorf("исходный документ недоступен: %w", err)
		}
	}

	// 1. Фаза извлечения данных (Extract)
	grid, schema, err := r.extractor.Extract()
	if err != nil {
		return fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	// 2. Фаза трансформации данных (Transform)
	transformedData, err := r.transformer.Transform(grid, schema, startTime)
	if err != nil {
		return fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	runLog.RowsDimChorister = len(transformedData.Choristers)
	runLog.RowsDimChoristerAssignment = len(transformedData.Assignments)
	runLog.RowsDimSong = len(transformedData.Songs)
	runLog.RowsFactAttendance = len(transformedData.Attendance)
	runLog.RowsFactSongTime = len(transformedData.SongTime)

	// 3. Фаза загрузки данных (Load)
	if err := r.loadManager.Load(transformedData); err != nil {
		return fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	// 4. Построение витрин из сохраненных таблиц
	if err := r.martBuilder.BuildMarts(); err != nil {
		return fmt.Errorf("ошибка при построении витрин: %w", err)
	}

	return nil
}

// LastRun возвращает запись о последнем завершенном запуске
func (r *ETLRunner) LastRun() *models.ETLRunLog {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.lastRun
}

// TriggerRun запускает ETL-процесс вне расписания (для HTTP-интерфейса)
func (r *ETLRunner) TriggerRun() {
	go func() {
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при ручном запуске ETL: %v", err)
		}
	}()
}

// StartScheduler запускает планировщик для регулярного выполнения ETL
func (r *ETLRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
}
