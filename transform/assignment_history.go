package transform

import (
	"strings"

	"github.com/LilVoxy/chorus_etl/extractors"
	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/utils"
)

// AssignmentHistoryProcessor строит историю партий dim_chorister_assignment
// (SCD type 2). Для большинства хористов единственный интервал выводится из
// текущего тега; для немногих, сменивших партию за время участия, действует
// ручная таблица исключений, и ее периоды всегда побеждают.
type AssignmentHistoryProcessor struct {
	logger    *utils.ETLLogger
	overrides models.OverrideTable
}

// NewAssignmentHistoryProcessor создает новый экземпляр AssignmentHistoryProcessor
func NewAssignmentHistoryProcessor(logger *utils.ETLLogger, overrides models.OverrideTable) *AssignmentHistoryProcessor {
	if overrides == nil {
		overrides = models.OverrideTable{}
	}
	return &AssignmentHistoryProcessor{
		logger:    logger,
		overrides: overrides,
	}
}

// makeAssignmentID собирает составной идентификатор интервала
func makeAssignmentID(choristerID, voicePart, validFrom string) string {
	return choristerID + " | " + voicePart + " | " + validFrom
}

// voicePartFromTag выводит (партия, активность) из значения тега.
// Тег, начинающийся с «ex» (без учета регистра), обозначает прошлую партию;
// сама партия — остаток тега без префикса и разделителей « -_», в нижнем
// регистре. Любой иной тег — текущая активная партия в нижнем регистре.
func voicePartFromTag(tag string) (string, bool) {
	if strings.HasPrefix(strings.ToLower(tag), "ex") {
		part := strings.TrimLeft(tag[2:], " -_")
		return strings.ToLower(part), false
	}
	return strings.ToLower(tag), true
}

// ProcessAssignmentHistory строит интервалы действия партий по хористам.
// Исходный лист несет только текущий тег, поэтому смены партий представимы
// исключительно через ручную таблицу: ее записи помечаются активными на свой
// период, даже если период уже закрыт. Непрерывность периодов не проверяется —
// это курируемые данные, а не выводимый инвариант.
func (p *AssignmentHistoryProcessor) ProcessAssignmentHistory(
	grid [][]string,
	schema extractors.Schema,
	index IdentityIndex,
) []models.AssignmentInterval {
	intervals := []models.AssignmentInterval{}
	if !schema.OK || len(grid) == 0 {
		return intervals
	}

	for _, row := range grid[1:] {
		tag := extractors.CellAt(row, schema.TagIdx)
		if !isChoristerRow(tag) {
			continue
		}

		fullName := extractors.CellAt(row, schema.WhoIdx)
		if fullName == "" {
			continue
		}

		joinedDate := extractors.CellAt(row, schema.JoinedIdx)

		choristerID, ok := index.ByKey[ChoristerKey{FullName: fullName, JoinedDate: joinedDate}]
		if !ok {
			// Защитный вырожденный случай: ключ не найден — используем имя как есть
			choristerID = fullName
		}

		if periods, ok := p.overrides[NormalizeName(fullName)]; ok {
			for _, period := range periods {
				intervals = append(intervals, models.AssignmentInterval{
					AssignmentID: makeAssignmentID(choristerID, period.VoicePart, period.ValidFrom),
					ChoristerID:  choristerID,
					VoicePart:    period.VoicePart,
					IsActive:     true,
					ValidFrom:    period.ValidFrom,
					ValidTo:      period.ValidTo,
				})
			}
			continue
		}

		voicePart, isActive := voicePartFromTag(tag)
		intervals = append(intervals, models.AssignmentInterval{
			AssignmentID: makeAssignmentID(choristerID, voicePart, joinedDate),
			ChoristerID:  choristerID,
			VoicePart:    voicePart,
			IsActive:     isActive,
			ValidFrom:    joinedDate,
			ValidTo:      "",
		})
	}

	p.logger.Debug("История партий построена: %d интервалов", len(intervals))
	return intervals
}
