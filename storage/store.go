package storage

// TableStore — абстракция табличного хранилища (документ с вкладками-таблицами).
// Ядро ETL не знает про аутентификацию, повторные попытки и детали API —
// это зона ответственности реализации.
type TableStore interface {
	// ReadTable читает таблицу как последовательность словарей колонка→значение.
	// Первая строка вкладки считается заголовком; короткие строки дополняются
	// пустыми значениями.
	ReadTable(name string) ([]map[string]string, error)

	// WriteTableOverwrite идемпотентно перезаписывает таблицу целиком:
	// создает вкладку при отсутствии, очищает прежнее содержимое,
	// затем пишет заголовок и строки.
	WriteTableOverwrite(name string, header []string, rows [][]string) error

	// ReadRawRange читает диапазон в нотации A1 как сырые значения ячеек
	// (заголовок — первая строка). Используется для широкого исходного листа.
	ReadRawRange(rangeA1 string) ([][]string, error)

	// AppendRows дописывает строки в конец таблицы (неидемпотентная операция,
	// используется только для журнала запусков).
	AppendRows(rangeA1 string, rows [][]string) error

	// EnsureTable создает вкладку с указанным именем, если ее еще нет.
	EnsureTable(name string) error

	// TableTitles возвращает имена всех вкладок документа.
	TableTitles() ([]string, error)
}
