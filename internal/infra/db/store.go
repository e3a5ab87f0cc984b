package db

import (
	"fmt"

	"github.com/JDVlist/iot-sensors-backend/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func NewStore(database config.Database) (*Store, error) {
	gdb, err := gorm.Open(postgres.Open(database.URI), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{DB: gdb}, nil
}

// EnsureSchema creates the tables backing the persisted entities when they
// are absent. It never alters or drops an existing table; there is no
// migration path. Runs once before the service accepts requests.
func (s *Store) EnsureSchema() error {
	if s == nil || s.DB == nil {
		return errDBUnavailable
	}
	migrator := s.DB.Migrator()
	for _, model := range []any{&MeasurementModel{}, &HeroModel{}} {
		if migrator.HasTable(model) {
			continue
		}
		if err := migrator.CreateTable(model); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}
