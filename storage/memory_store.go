package storage

import (
	"fmt"
	"strings"
	"sync"
)

// MemoryStore — реализация TableStore в памяти.
// Используется в тестах вместо реального документа Google Sheets.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][][]string
	order  []string
}

// NewMemoryStore создает новый экземпляр MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][][]string),
	}
}

// tabName извлекает имя вкладки из диапазона в нотации A1
func tabName(rangeA1 string) string {
	if idx := strings.Index(rangeA1, "!"); idx >= 0 {
		return rangeA1[:idx]
	}
	return rangeA1
}

// SetRaw задает содержимое вкладки целиком (подготовка данных теста)
func (s *MemoryStore) SetRaw(name string, grid [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(name)
	s.tables[name] = grid
}

// Raw возвращает текущее содержимое вкладки
func (s *MemoryStore) Raw(name string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[name]
}

func (s *MemoryStore) ensureLocked(name string) {
	if _, ok := s.tables[name]; !ok {
		s.tables[name] = nil
		s.order = append(s.order, name)
	}
}

// TableTitles возвращает имена всех вкладок в порядке создания
func (s *MemoryStore) TableTitles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	titles := make([]string, len(s.order))
	copy(titles, s.order)
	return titles, nil
}

// EnsureTable создает вкладку, если ее еще нет
func (s *MemoryStore) EnsureTable(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(name)
	return nil
}

// ReadRawRange возвращает содержимое вкладки (координаты диапазона игнорируются)
func (s *MemoryStore) ReadRawRange(rangeA1 string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := tabName(rangeA1)
	if _, ok := s.tables[name]; !ok {
		return nil, fmt.Errorf("вкладка %s не существует", name)
	}
	return s.tables[name], nil
}

// ReadTable читает таблицу как словари колонка→значение
func (s *MemoryStore) ReadTable(name string) ([]map[string]string, error) {
	grid, err := s.ReadRawRange(name)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, nil
	}

	header := grid[0]
	records := make([]map[string]string, 0, len(grid)-1)
	for _, row := range grid[1:] {
		record := make(map[string]string, len(header))
		for idx, column := range header {
			if idx < len(row) {
				record[column] = row[idx]
			} else {
				record[column] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}

// WriteTableOverwrite перезаписывает таблицу целиком
func (s *MemoryStore) WriteTableOverwrite(name string, header []string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(name)

	grid := make([][]string, 0, len(rows)+1)
	grid = append(grid, append([]string(nil), header...))
	for _, row := range rows {
		grid = append(grid, append([]string(nil), row...))
	}
	s.tables[name] = grid
	return nil
}

// AppendRows дописывает строки в конец вкладки
func (s *MemoryStore) AppendRows(rangeA1 string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := tabName(rangeA1)
	s.ensureLocked(name)
	for _, row := range rows {
		s.tables[name] = append(s.tables[name], append([]string(nil), row...))
	}
	return nil
}
