package extractors

import (
	"fmt"

	"github.com/LilVoxy/chorus_etl/storage"
	"github.com/LilVoxy/chorus_etl/utils"
)

// RawExtractor извлекает широкий RAW-лист посещаемости из исходного документа
type RawExtractor struct {
	store   storage.TableStore
	logger  *utils.ETLLogger
	rangeA1 string
}

// NewRawExtractor создает новый экземпляр RawExtractor
func NewRawExtractor(store storage.TableStore, logger *utils.ETLLogger, rangeA1 string) *RawExtractor {
	return &RawExtractor{
		store:   store,
		logger:  logger,
		rangeA1: rangeA1,
	}
}

// Extract читает сырую сетку значений и определяет схему по строке заголовка.
// Отсутствие обязательных колонок не является ошибкой: возвращается схема
// с OK == false, и построители деградируют до пустых таблиц.
func (e *RawExtractor) Extract() ([][]string, Schema, error) {
	grid, err := e.store.ReadRawRange(e.rangeA1)
	if err != nil {
		return nil, Schema{}, fmt.Errorf("ошибка при чтении RAW-листа: %w", err)
	}

	if len(grid) == 0 {
		e.logger.Error("RAW-лист пуст: заголовок не найден")
		return grid, Schema{TagIdx: -1, JoinedIdx: -1, TGIDIdx: -1, WhoIdx: -1}, nil
	}

	schema := DetectSchema(grid[0])
	if !schema.OK {
		e.logger.Error("Схема RAW-листа не соответствует ожидаемой (нужны колонки %s, %s, %s) — таблицы будут пустыми",
			ColumnTag, ColumnJoined, ColumnWho)
	} else {
		e.logger.Debug("Схема RAW-листа определена: Tag=%d, Joined=%d, tgid=%d, Who=%d",
			schema.TagIdx, schema.JoinedIdx, schema.TGIDIdx, schema.WhoIdx)
	}

	e.logger.Info("Извлечено %d строк RAW-листа", len(grid))
	return grid, schema, nil
}
