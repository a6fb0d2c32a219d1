package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is carrier reference data used to name flights that only carry
// a two-character designator
type Airline struct {
	ID        uint
	Code      string
	Name      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
