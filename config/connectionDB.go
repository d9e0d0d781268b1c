package config

import (
	"coinfolio/internal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectionDb opens the database and prepares the schema. TranslateError
// turns unique-constraint violations into gorm.ErrDuplicatedKey so the
// repositories can classify them.
func ConnectionDb(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.SetupJoinTable(&entity.User{}, "Roles", &entity.UserRole{}); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Role{}, &entity.Post{}); err != nil {
		return nil, err
	}
	return db, nil
}
