package db

import (
	"context"

	"github.com/JDVlist/iot-sensors-backend/internal/domain"

	"gorm.io/gorm"
)

type MeasurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// Create inserts a single measurement and re-reads the row so the caller
// gets every store-generated field. The insert is one atomic statement; on
// failure no partial row exists.
func (r *MeasurementRepository) Create(ctx context.Context, m domain.Measurement) (domain.Measurement, error) {
	if r.db == nil {
		return domain.Measurement{}, errDBUnavailable
	}
	model := MeasurementModel{
		DeviceID:  m.DeviceID,
		Sensor:    m.Sensor,
		Value:     m.Value,
		Timestamp: m.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Measurement{}, err
	}
	if err := r.db.WithContext(ctx).First(&model, model.ID).Error; err != nil {
		return domain.Measurement{}, err
	}
	return measurementFromModel(model), nil
}

// List returns at most limit measurements in id order. The bound is
// validated at the request boundary before this is called.
func (r *MeasurementRepository) List(ctx context.Context, limit int) ([]domain.Measurement, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []MeasurementModel
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Measurement, 0, len(models))
	for _, model := range models {
		out = append(out, measurementFromModel(model))
	}
	return out, nil
}

func measurementFromModel(model MeasurementModel) domain.Measurement {
	return domain.Measurement{
		ID:        model.ID,
		DeviceID:  model.DeviceID,
		Sensor:    model.Sensor,
		Value:     model.Value,
		Timestamp: model.Timestamp.UTC(),
	}
}
