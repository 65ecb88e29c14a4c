package marts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/chorus_etl/models"
	"github.com/LilVoxy/chorus_etl/storage"
	"github.com/LilVoxy/chorus_etl/utils"
)

func TestBuildMartsMissingTableFatal(t *testing.T) {
	store := storage.NewMemoryStore()
	// Создаем только часть обязательных таблиц
	require.NoError(t, store.WriteTableOverwrite(models.TableDimChorister, models.DimChoristerHeader, nil))
	require.NoError(t, store.WriteTableOverwrite(models.TableDimSong, models.DimSongHeader, nil))

	builder := NewMartBuilder(store, utils.NewETLLogger(false))
	err := builder.BuildMarts()

	// Отсутствующая таблица — фатальная именованная ошибка, а не пустая витрина
	require.Error(t, err)
	assert.Contains(t, err.Error(), models.TableFactAttendance)
	assert.Contains(t, err.Error(), models.TableDimChoristerAssignment)
	assert.NotContains(t, err.Error(), models.TableDimSong+",")
}

func TestBuildMartsEmptyFacts(t *testing.T) {
	store := storage.NewMemoryStore()
	for _, name := range models.RequiredTablesForMarts {
		require.NoError(t, store.EnsureTable(name))
	}
	require.NoError(t, store.WriteTableOverwrite(models.TableDimChorister, models.DimChoristerHeader, nil))
	require.NoError(t, store.WriteTableOverwrite(models.TableDimChoristerAssignment, models.DimChoristerAssignmentHeader, nil))
	require.NoError(t, store.WriteTableOverwrite(models.TableDimSong, models.DimSongHeader, nil))
	require.NoError(t, store.WriteTableOverwrite(models.TableFactAttendance, models.FactAttendanceHeader, nil))
	require.NoError(t, store.WriteTableOverwrite(models.TableFactSongTime, models.FactSongTimeHeader, nil))

	builder := NewMartBuilder(store, utils.NewETLLogger(false))
	require.NoError(t, builder.BuildMarts())

	// Пустые факты дают витрины из одного заголовка
	martA := store.Raw(models.TableMartAttendance)
	require.Len(t, martA, 1)
	assert.Equal(t, MartAttendanceHeader, martA[0])

	martS := store.Raw(models.TableMartSongRehearsal)
	require.Len(t, martS, 1)

	martCS := store.Raw(models.TableMartChoristerSong)
	require.Len(t, martCS, 1)
}
