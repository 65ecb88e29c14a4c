package config

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Область доступа API: чтение и запись таблиц
var sheetsScopes = []string{sheets.SpreadsheetsScope}

// ConnectSheets создает клиент Google Sheets API по учетным данным
// сервисного аккаунта из конфигурации
func ConnectSheets(ctx context.Context, config ETLConfig) (*sheets.Service, error) {
	options := []option.ClientOption{
		option.WithScopes(sheetsScopes...),
	}

	switch {
	case config.ServiceAccountFile != "":
		options = append(options, option.WithCredentialsFile(config.ServiceAccountFile))
	case config.ServiceAccountJSON != "":
		options = append(options, option.WithCredentialsJSON([]byte(config.ServiceAccountJSON)))
	default:
		return nil, fmt.Errorf("учетные данные сервисного аккаунта не предоставлены")
	}

	service, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании клиента Sheets API: %w", err)
	}

	log.Println("Успешное подключение к Google Sheets API")
	return service, nil
}
