package models

import (
	"time"
)

// Имена вкладок (таблиц) в целевом документе хранилища
const (
	TableDimChorister           = "dim_chorister"
	TableDimChoristerAssignment = "dim_chorister_assignment"
	TableDimSong                = "dim_song"
	TableFactAttendance         = "fact_attendance"
	TableFactSongTime           = "fact_song_time"
	TableMartAttendance         = "mart_attendance"
	TableMartSongRehearsal      = "mart_song_rehearsal"
	TableMartChoristerSong      = "mart_chorister_song"
	TableETLLog                 = "etl_log"
)

// Заголовки таблиц хранилища
var (
	DimChoristerHeader = []string{
		"chorister_id", "tgid", "full_name", "joined_date", "created_at", "updated_at",
	}
	DimChoristerAssignmentHeader = []string{
		"assignment_id", "chorister_id", "voice_part", "is_active", "valid_from", "valid_to",
	}
	DimSongHeader = []string{
		"song_id", "song_name", "created_at", "updated_at",
	}
	FactAttendanceHeader = []string{
		"rehearsal_date", "chorister_id", "hours_attended", "missed_flag", "load_ts",
	}
	FactSongTimeHeader = []string{
		"rehearsal_date", "song_id", "minutes_spent", "load_ts",
	}
)

// RequiredTablesForMarts — таблицы, которые обязаны существовать до построения витрин
var RequiredTablesForMarts = []string{
	TableDimChorister,
	TableDimChoristerAssignment,
	TableDimSong,
	TableFactAttendance,
	TableFactSongTime,
}

// ChoristerRecord представляет строку измерения dim_chorister
type ChoristerRecord struct {
	ChoristerID string
	TGID        string
	FullName    string
	JoinedDate  string
	CreatedAt   string
	UpdatedAt   string
}

// AssignmentInterval представляет строку измерения dim_chorister_assignment —
// один непрерывный период, в течение которого хорист пел указанную партию (SCD type 2)
type AssignmentInterval struct {
	AssignmentID string
	ChoristerID  string
	VoicePart    string
	IsActive     bool
	ValidFrom    string
	ValidTo      string
}

// SongRecord представляет строку измерения dim_song
type SongRecord struct {
	SongID    string
	SongName  string
	CreatedAt string
	UpdatedAt string
}

// AttendanceFact представляет факт посещаемости: ровно одна строка
// на пару (хорист, дата репетиции)
type AttendanceFact struct {
	RehearsalDate string
	ChoristerID   string
	HoursAttended float64
	MissedFlag    int
	LoadTS        string
}

// SongTimeFact представляет факт времени, потраченного на песню на репетиции
type SongTimeFact struct {
	RehearsalDate string
	SongID        string
	MinutesSpent  float64
	LoadTS        string
}

// OverridePeriod — один период из ручной таблицы исключений истории партий.
// Пустой ValidTo означает «действует до сих пор».
type OverridePeriod struct {
	VoicePart string
	ValidFrom string
	ValidTo   string
}

// OverrideTable — ручная таблица исключений: нормализованное имя хориста →
// последовательность периодов партий. Периоды курируются вручную и
// считаются непересекающимися.
type OverrideTable map[string][]OverridePeriod

// TransformedData содержит результат фазы Transform
type TransformedData struct {
	Choristers  []ChoristerRecord
	Assignments []AssignmentInterval
	Songs       []SongRecord
	Attendance  []AttendanceFact
	SongTime    []SongTimeFact
}

// ETLRunLog содержит запись журнала о запуске ETL
type ETLRunLog struct {
	RunID                      string
	RunTS                      time.Time
	Status                     string // 'success', 'failed', 'in_progress'
	RowsDimChorister           int
	RowsDimChoristerAssignment int
	RowsDimSong                int
	RowsFactAttendance         int
	RowsFactSongTime           int
	ErrorMessage               string
}
