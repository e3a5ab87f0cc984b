package db

import (
	"context"

	"github.com/JDVlist/iot-sensors-backend/internal/domain"

	"gorm.io/gorm"
)

type HeroRepository struct {
	db *gorm.DB
}

func NewHeroRepository(db *gorm.DB) *HeroRepository {
	return &HeroRepository{db: db}
}

func (r *HeroRepository) Create(ctx context.Context, h domain.Hero) (domain.Hero, error) {
	if r.db == nil {
		return domain.Hero{}, errDBUnavailable
	}
	model := HeroModel{
		Name:       h.Name,
		SecretName: h.SecretName,
		Age:        h.Age,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Hero{}, err
	}
	if err := r.db.WithContext(ctx).First(&model, model.ID).Error; err != nil {
		return domain.Hero{}, err
	}
	return heroFromModel(model), nil
}

func (r *HeroRepository) List(ctx context.Context, limit int) ([]domain.Hero, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []HeroModel
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Hero, 0, len(models))
	for _, model := range models {
		out = append(out, heroFromModel(model))
	}
	return out, nil
}

func heroFromModel(model HeroModel) domain.Hero {
	return domain.Hero{
		ID:         model.ID,
		Name:       model.Name,
		SecretName: model.SecretName,
		Age:        model.Age,
	}
}
