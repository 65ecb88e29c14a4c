package marts

import (
	"github.com/LilVoxy/chorus_etl/transform"
)

// MartSongRehearsalHeader — заголовок витрины репетиций песен
var MartSongRehearsalHeader = []string{
	"rehearsal_date",
	"song_id",
	"song_name",
	"minutes_spent",
	"hours_spent",
}

// BuildMartSongRehearsal строит mart_song_rehearsal: одна строка на факт
// времени песни, обогащенная названием и часовым эквивалентом минут
func BuildMartSongRehearsal(
	dimSong []map[string]string,
	factSongTime []map[string]string,
) ([]string, [][]string) {
	songByID := make(map[string]map[string]string, len(dimSong))
	for _, r := range dimSong {
		if id := safeStr(r, "song_id"); id != "" {
			songByID[id] = r
		}
	}

	rows := [][]string{}
	for _, fs := range factSongTime {
		rawDate := safeStr(fs, "rehearsal_date")
		dateISO := transform.NormalizeDateISO(rawDate)
		if dateISO == "" {
			dateISO = rawDate
		}
		songID := safeStr(fs, "song_id")
		minutes := safeFloat(fs, "minutes_spent", 0)

		rows = append(rows, []string{
			dateISO,
			songID,
			safeStr(songByID[songID], "song_name"),
			transform.FormatNumber(minutes),
			transform.FormatNumber(minutes / 60.0),
		})
	}
	return MartSongRehearsalHeader, rows
}
