package db

import "time"

type MeasurementModel struct {
	ID        int64     `gorm:"primaryKey"`
	DeviceID  string    `gorm:"index;not null"`
	Sensor    string    `gorm:"index;not null"`
	Value     float64   `gorm:"not null"`
	Timestamp time.Time `gorm:"not null"`
}

func (MeasurementModel) TableName() string {
	return "measurements"
}

type HeroModel struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"index;not null"`
	SecretName string `gorm:"not null"`
	Age        *int   `gorm:"index"`
}

func (HeroModel) TableName() string {
	return "heroes"
}
