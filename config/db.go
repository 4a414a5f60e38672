package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB открывает подключение к базе данных и возвращает его.
// Хэндл передается хендлерам явно, глобального состояния нет.
func ConnectDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
		AppConfig.DBHost,
		AppConfig.DBUser,
		AppConfig.DBPassword,
		AppConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Ошибки уникальных ограничений приходят как gorm.ErrDuplicatedKey,
		// без разбора текста ошибки драйвера.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
