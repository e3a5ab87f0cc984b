package db

import (
	"context"
	"testing"
	"time"

	"github.com/JDVlist/iot-sensors-backend/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := &Store{DB: gdb}
	if err := store.EnsureSchema(); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	store := setupTestStore(t)

	repo := NewMeasurementRepository(store.DB)
	created, err := repo.Create(context.Background(), domain.Measurement{
		DeviceID:  "esp32-1",
		Sensor:    "temp",
		Value:     21.5,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// A second ensure must neither fail nor touch existing rows.
	if err := store.EnsureSchema(); err != nil {
		t.Fatalf("second ensure schema: %v", err)
	}
	got, err := repo.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != created.ID {
		t.Fatalf("expected the inserted row to survive, got %+v", got)
	}
}

func TestMeasurementRepositoryCreate(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMeasurementRepository(store.DB)

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(context.Background(), domain.Measurement{
		DeviceID:  "esp32-1",
		Sensor:    "temp",
		Value:     21.5,
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected store-assigned id")
	}
	if created.DeviceID != "esp32-1" || created.Sensor != "temp" || created.Value != 21.5 {
		t.Fatalf("unexpected record: %+v", created)
	}
	if !created.Timestamp.Equal(ts) {
		t.Fatalf("timestamp = %v, want %v", created.Timestamp, ts)
	}
	if created.Timestamp.Location() != time.UTC {
		t.Fatalf("timestamp location = %v, want UTC", created.Timestamp.Location())
	}
}

func TestMeasurementRepositoryCreateAssignsDistinctIDs(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMeasurementRepository(store.DB)

	seen := make(map[int64]bool)
	for i := 0; i < 5; i++ {
		created, err := repo.Create(context.Background(), domain.Measurement{
			DeviceID:  "esp32-1",
			Sensor:    "temp",
			Value:     float64(i),
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[created.ID] {
			t.Fatalf("id %d assigned twice", created.ID)
		}
		seen[created.ID] = true
	}
}

func TestMeasurementRepositoryList(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMeasurementRepository(store.DB)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(context.Background(), domain.Measurement{
			DeviceID:  "esp32-1",
			Sensor:    "temp",
			Value:     float64(i),
			Timestamp: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	got, err := repo.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].ID <= got[i-1].ID {
			t.Fatalf("expected ascending id order, got %+v", got)
		}
	}

	// Idempotent with no intervening writes.
	again, err := repo.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	for i := range got {
		if again[i].ID != got[i].ID {
			t.Fatalf("repeated list differs: %+v vs %+v", again, got)
		}
	}
}

func TestMeasurementRepositoryListEmpty(t *testing.T) {
	store := setupTestStore(t)
	repo := NewMeasurementRepository(store.DB)

	got, err := repo.List(context.Background(), 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestMeasurementRepositoryNilDB(t *testing.T) {
	repo := NewMeasurementRepository(nil)
	if _, err := repo.Create(context.Background(), domain.Measurement{}); err == nil {
		t.Fatal("expected error on nil db")
	}
	if _, err := repo.List(context.Background(), 10); err == nil {
		t.Fatal("expected error on nil db")
	}
}
