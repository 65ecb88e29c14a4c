package marts

import (
	"fmt"
	"strings"
	"time"

	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/storage"
	"github.com/LilVoxy/chorus_etl/utils"
)

// MartBuilder строит три витрины из сохраненных таблиц измерений и фактов.
// Витрины читаются не из промежуточных структур запуска, а заново из
// хранилища — так они перестраиваемы и без полного прогона ETL.
type MartBuilder struct {
	store  storage.TableStore
	logger *utils.ETLLogger
}

// NewMartBuilder создает новый экземпляр MartBuilder
func NewMartBuilder(store storage.TableStore, logger *utils.ETLLogger) *MartBuilder {
	return &MartBuilder{
		store:  store,
		logger: logger,
	}
}

// BuildMarts читает пять таблиц измерений и фактов, строит три витрины и
// записывает их с полной перезаписью. Отсутствие любой из исходных таблиц —
// фатальная именованная ошибка, а не пустая витрина.
func (b *MartBuilder) BuildMarts() error {
	startTime := time.Now()
	b.logger.Info("Начало построения витрин")

	titles, err := b.store.TableTitles()
	if err != nil {
		return fmt.Errorf("ошибка при получении списка таблиц: %w", err)
	}
	existing := make(map[string]bool, len(titles))
	for _, title := range titles {
		existing[title] = true
	}
	missing := []string{}
	for _, name := range models.RequiredTablesForMarts {
		if !existing[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("для построения витрин отсутствуют таблицы: %s — сначала выполните полный ETL",
			strings.Join(missing, ", "))
	}

	dimChorister, err := b.store.ReadTable(models.TableDimChorister)
	if err != nil {
		return fmt.Errorf("ошибка при чтении dim_chorister: %w", err)
	}
	dimChoristerAssignment, err := b.store.ReadTable(models.TableDimChoristerAssignment)
	if err != nil {
		return fmt.Errorf("ошибка при чтении dim_chorister_assignment: %w", err)
	}
	dimSong, err := b.store.ReadTable(models.TableDimSong)
	if err != nil {
		return fmt.Errorf("ошибка при чтении dim_song: %w", err)
	}
	factAttendance, err := b.store.ReadTable(models.TableFactAttendance)
	if err != nil {
		return fmt.Errorf("ошибка при чтении fact_attendance: %w", err)
	}
	factSongTime, err := b.store.ReadTable(models.TableFactSongTime)
	if err != nil {
		return fmt.Errorf("ошибка при чтении fact_song_time: %w", err)
	}

	// 1. Витрина посещаемости
	headerA, rowsA, err := BuildMartAttendance(dimChorister, dimChoristerAssignment, factAttendance)
	if err != nil {
		b.logger.Error("Ошибка при построении mart_attendance: %v", err)
		return fmt.Errorf("ошибка при построении mart_attendance: %w", err)
	}
	if err := b.store.WriteTableOverwrite(models.TableMartAttendance, headerA, rowsA); err != nil {
		return fmt.Errorf("ошибка при записи mart_attendance: %w", err)
	}

	// 2. Витрина репетиций песен
	headerS, rowsS := BuildMartSongRehearsal(dimSong, factSongTime)
	if err := b.store.WriteTableOverwrite(models.TableMartSongRehearsal, headerS, rowsS); err != nil {
		return fmt.Errorf("ошибка при записи mart_song_rehearsal: %w", err)
	}

	// 3. Витрина «хорист × песня»
	headerCS, rowsCS := BuildMartChoristerSong(
		dimChorister, dimChoristerAssignment, dimSong, factAttendance, factSongTime)
	if err := b.store.WriteTableOverwrite(models.TableMartChoristerSong, headerCS, rowsCS); err != nil {
		return fmt.Errorf("ошибка при записи mart_chorister_song: %w", err)
	}

	b.logger.Info("Витрины построены: %d mart_attendance, %d mart_song_rehearsal, %d mart_chorister_song. Длительность: %v",
		len(rowsA), len(rowsS), len(rowsCS), time.Since(startTime))
	return nil
}
