package entities

import (
	"github.com/google/uuid"
)

// Tag is reference data seeded by administrators, never written by the API.
type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"uniqueIndex" json:"name"`
	Color string    `gorm:"uniqueIndex" json:"color"` // hex string, e.g. #49b64e
	Slug  string    `gorm:"uniqueIndex" json:"slug"`

	Timestamp
}

// Ingredient is reference data; the (name, measurement_unit) pair is unique.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name            string    `gorm:"uniqueIndex:idx_ingredient_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"uniqueIndex:idx_ingredient_name_unit" json:"measurement_unit"`

	Timestamp
}
