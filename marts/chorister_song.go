package marts

import (
	"sort"

	"github.com/LilVoxy/chorus_etl/transform"
)

// MartChoristerSongHeader — заголовок витрины «хорист × песня»
var MartChoristerSongHeader = []string{
	"rehearsal_date",
	"chorister_id",
	"full_name",
	"joined_date",
	"voice_part",
	"song_id",
	"song_name",
	"minutes_spent",
	"hours_spent",
}

type songTime struct {
	songID  string
	minutes float64
}

// BuildMartChoristerSong строит mart_chorister_song: декартово произведение,
// по каждой дате, хористов, присутствовавших на репетиции (часы > 0),
// и песен, репетировавшихся в тот день. Модель грубая: она не знает,
// кто какую песню пел, только что оба были на одной дате.
// Порядок строк детерминирован: даты и хористы по возрастанию,
// песни в порядке фактов.
func BuildMartChoristerSong(
	dimChorister []map[string]string,
	dimChoristerAssignment []map[string]string,
	dimSong []map[string]string,
	factAttendance []map[string]string,
	factSongTime []map[string]string,
) ([]string, [][]string) {
	choristerByID := make(map[string]map[string]string, len(dimChorister))
	for _, r := range dimChorister {
		if id := safeStr(r, "chorister_id"); id != "" {
			choristerByID[id] = r
		}
	}
	songByID := make(map[string]map[string]string, len(dimSong))
	for _, r := range dimSong {
		if id := safeStr(r, "song_id"); id != "" {
			songByID[id] = r
		}
	}

	// По датам: хористы, присутствовавшие на репетиции (часы > 0)
	attendingByDate := make(map[string][]string)
	attendingSeen := make(map[string]map[string]bool)
	for _, fa := range factAttendance {
		date := transform.NormalizeDateISO(safeStr(fa, "rehearsal_date"))
		if date == "" {
			date = safeStr(fa, "rehearsal_date")
		}
		if date == "" {
			continue
		}
		if safeFloat(fa, "hours_attended", 0) <= 0 {
			continue
		}
		choristerID := safeStr(fa, "chorister_id")
		if attendingSeen[date] == nil {
			attendingSeen[date] = make(map[string]bool)
		}
		if attendingSeen[date][choristerID] {
			continue
		}
		attendingSeen[date][choristerID] = true
		attendingByDate[date] = append(attendingByDate[date], choristerID)
	}

	// По датам: песни и потраченные минуты, в порядке фактов
	songsByDate := make(map[string][]songTime)
	for _, fs := range factSongTime {
		date := transform.NormalizeDateISO(safeStr(fs, "rehearsal_date"))
		if date == "" {
			date = safeStr(fs, "rehearsal_date")
		}
		if date == "" {
			continue
		}
		songsByDate[date] = append(songsByDate[date], songTime{
			songID:  safeStr(fs, "song_id"),
			minutes: safeFloat(fs, "minutes_spent", 0),
		})
	}

	dates := make([]string, 0, len(attendingByDate))
	for date := range attendingByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := [][]string{}
	for _, date := range dates {
		choristerIDs := attendingByDate[date]
		sort.Strings(choristerIDs)
		songs := songsByDate[date]

		for _, choristerID := range choristerIDs {
			chorister := choristerByID[choristerID]
			fullName := safeStr(chorister, "full_name")
			joinedDate := safeStr(chorister, "joined_date")
			voicePart := VoicePartForDate(choristerID, date, dimChoristerAssignment)

			for _, song := range songs {
				rows = append(rows, []string{
					date,
					choristerID,
					fullName,
					joinedDate,
					voicePart,
					song.songID,
					safeStr(songByID[song.songID], "song_name"),
					transform.FormatNumber(song.minutes),
					transform.FormatNumber(song.minutes / 60.0),
				})
			}
		}
	}
	return MartChoristerSongHeader, rows
}
