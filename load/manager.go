package load

import (
	"fmt"
	"strconv"
	"time"

	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/storage"
	"github.com/LilVoxy/chorus_etl/transform"
	"github.com/LilVoxy/chorus_etl/utils"
)

// LoadManager отвечает за запись таблиц измерений и фактов в целевой документ.
// Каждая таблица пишется полностью заново (очистка, затем заголовок и строки):
// читатель в середине запуска видит либо старую, либо новую таблицу,
// но не их смесь. Межтабличной транзакции нет.
type LoadManager struct {
	store  storage.TableStore
	logger *utils.ETLLogger
}

// NewLoadManager создает новый экземпляр LoadManager
func NewLoadManager(store storage.TableStore, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		store:  store,
		logger: logger,
	}
}

// Load выполняет фазу загрузки: перезаписывает все пять таблиц хранилища
func (m *LoadManager) Load(data *models.TransformedData) error {
	startTime := time.Now()
	m.logger.Info("Начало фазы Load (Загрузка данных)")

	// 1. Измерение хористов
	m.logger.Info("Запись dim_chorister...")
	if err := m.store.WriteTableOverwrite(
		models.TableDimChorister,
		models.DimChoristerHeader,
		choristerRows(data.Choristers),
	); err != nil {
		m.logger.Error("Ошибка при записи dim_chorister: %v", err)
		return fmt.Errorf("ошибка при записи dim_chorister: %w", err)
	}

	// 2. История партий
	m.logger.Info("Запись dim_chorister_assignment...")
	if err := m.store.WriteTableOverwrite(
		models.TableDimChoristerAssignment,
		models.DimChoristerAssignmentHeader,
		assignmentRows(data.Assignments),
	); err != nil {
		m.logger.Error("Ошибка при записи dim_chorister_assignment: %v", err)
		return fmt.Errorf("ошибка при записи dim_chorister_assignment: %w", err)
	}

	// 3. Измерение песен
	m.logger.Info("Запись dim_song...")
	if err := m.store.WriteTableOverwrite(
		models.TableDimSong,
		models.DimSongHeader,
		songRows(data.Songs),
	); err != nil {
		m.logger.Error("Ошибка при записи dim_song: %v", err)
		return fmt.Errorf("ошибка при записи dim_song: %w", err)
	}

	// 4. Факты посещаемости
	m.logger.Info("Запись fact_attendance...")
	if err := m.store.WriteTableOverwrite(
		models.TableFactAttendance,
		models.FactAttendanceHeader,
		attendanceRows(data.Attendance),
	); err != nil {
		m.logger.Error("Ошибка при записи fact_attendance: %v", err)
		return fmt.Errorf("ошибка при записи fact_attendance: %w", err)
	}

	// 5. Факты времени песен
	m.logger.Info("Запись fact_song_time...")
	if err := m.store.WriteTableOverwrite(
		models.TableFactSongTime,
		models.FactSongTimeHeader,
		songTimeRows(data.SongTime),
	); err != nil {
		m.logger.Error("Ошибка при записи fact_song_time: %v", err)
		return fmt.Errorf("ошибка при записи fact_song_time: %w", err)
	}

	m.logger.Info("Фаза Load завершена. Длительность: %v", time.Since(startTime))
	return nil
}

func choristerRows(records []models.ChoristerRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ChoristerID, r.TGID, r.FullName, r.JoinedDate, r.CreatedAt, r.UpdatedAt,
		})
	}
	return rows
}

func assignmentRows(intervals []models.AssignmentInterval) [][]string {
	rows := make([][]string, 0, len(intervals))
	for _, a := range intervals {
		rows = append(rows, []string{
			a.AssignmentID,
			a.ChoristerID,
			a.VoicePart,
			strconv.FormatBool(a.IsActive),
			a.ValidFrom,
			a.ValidTo,
		})
	}
	return rows
}

func songRows(records []models.SongRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, s := range records {
		rows = append(rows, []string{s.SongID, s.SongName, s.CreatedAt, s.UpdatedAt})
	}
	return rows
}

func attendanceRows(facts []models.AttendanceFact) [][]string {
	rows := make([][]string, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, []string{
			f.RehearsalDate,
			f.ChoristerID,
			transform.FormatNumber(f.HoursAttended),
			strconv.Itoa(f.MissedFlag),
			f.LoadTS,
		})
	}
	return rows
}

func songTimeRows(facts []models.SongTimeFact) [][]string {
	rows := make([][]string, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, []string{
			f.RehearsalDate,
			f.SongID,
			transform.FormatNumber(f.MinutesSpent),
			f.LoadTS,
		})
	}
	return rows
}
