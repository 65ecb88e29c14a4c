package storage

import (
	"fmt"
	"strings"

	sheets "google.golang.org/api/sheets/v4"
)

// SheetsStore реализует TableStore поверх Google Sheets API.
// Один экземпляр соответствует одному документу (spreadsheet).
type SheetsStore struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsStore создает новый экземпляр SheetsStore
func NewSheetsStore(service *sheets.Service, spreadsheetID string) *SheetsStore {
	return &SheetsStore{
		service:       service,
		spreadsheetID: spreadsheetID,
	}
}

// Ping выполняет легкую проверку доступности документа (без чтения данных)
func (s *SheetsStore) Ping() error {
	_, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("spreadsheetId").
		Do()
	if err != nil {
		return fmt.Errorf("документ %s недоступен: %w", s.spreadsheetID, err)
	}
	return nil
}

// TableTitles возвращает имена всех вкладок документа
func (s *SheetsStore) TableTitles() ([]string, error) {
	metadata, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Do()
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении списка вкладок: %w", err)
	}

	titles := make([]string, 0, len(metadata.Sheets))
	for _, sheet := range metadata.Sheets {
		if sheet.Properties != nil {
			titles = append(titles, sheet.Properties.Title)
		}
	}
	return titles, nil
}

// EnsureTable создает вкладку с указанным именем, если она еще не существует
func (s *SheetsStore) EnsureTable(name string) error {
	titles, err := s.TableTitles()
	if err != nil {
		return err
	}
	for _, title := range titles {
		if title == name {
			return nil
		}
	}

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: name,
					},
				},
			},
		},
	}
	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, request).Do(); err != nil {
		return fmt.Errorf("ошибка при создании вкладки %s: %w", name, err)
	}
	return nil
}

// ReadRawRange читает диапазон в нотации A1 как сырые строковые значения
func (s *SheetsStore) ReadRawRange(rangeA1 string) ([][]string, error) {
	result, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rangeA1).Do()
	if err != nil {
		return nil, fmt.Errorf("ошибка при чтении диапазона %s: %w", rangeA1, err)
	}

	grid := make([][]string, 0, len(result.Values))
	for _, row := range result.Values {
		cells := make([]string, 0, len(row))
		for _, value := range row {
			cells = append(cells, cellString(value))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// ReadTable читает таблицу как словари колонка→значение (первая строка — заголовок)
func (s *SheetsStore) ReadTable(name string) ([]map[string]string, error) {
	grid, err := s.ReadRawRange(fmt.Sprintf("%s!A1:ZZ", name))
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
			// Короткие строки дополняются пустыми значениями
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

// WriteTableOverwrite идемпотентно перезаписывает таблицу целиком:
// создает вкладку при необходимости, очищает ее, затем пишет заголовок и строки
func (s *SheetsStore) WriteTableOverwrite(name string, header []string, rows [][]string) error {
	if err := s.EnsureTable(name); err != nil {
		return err
	}

	valuesAPI := s.service.Spreadsheets.Values

	// Очищаем прежнее содержимое, чтобы повторные запуски не накапливали данные
	if _, err := valuesAPI.Clear(s.spreadsheetID, name, &sheets.ClearValuesRequest{}).Do(); err != nil {
		return fmt.Errorf("ошибка при очистке таблицы %s: %w", name, err)
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toInterfaceRow(header))
	for _, row := range rows {
		values = append(values, toInterfaceRow(row))
	}

	body := &sheets.ValueRange{Values: values}
	_, err := valuesAPI.Update(s.spreadsheetID, fmt.Sprintf("%s!A1", name), body).
		ValueInputOption("USER_ENTERED").
		Do()
	if err != nil {
		return fmt.Errorf("ошибка при записи таблицы %s: %w", name, err)
	}
	return nil
}

// AppendRows дописывает строки в конец указанного диапазона
func (s *SheetsStore) AppendRows(rangeA1 string, rows [][]string) error {
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, toInterfaceRow(row))
	}

	body := &sheets.ValueRange{Values: values}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, rangeA1, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return fmt.Errorf("ошибка при дозаписи строк в %s: %w", rangeA1, err)
	}
	return nil
}

// cellString приводит значение ячейки API к строке с обрезкой пробелов
func cellString(value interface{}) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

func toInterfaceRow(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
