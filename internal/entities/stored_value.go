package entities

import "time"

type StoredValue struct {
	ID        string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt time.Time
}
