// Package models contains the domain models for the application,
// configured to work using GORM as the ORM.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a company entity in the database.
// It uses a UUID as the primary key and includes standard timestamp fields.
// No uniqueness constraint on the name and no range check on the founding
// year: the listing is fixture data, not user input.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	// Name is the company's display name.
	Name string `gorm:"size:255" json:"name"`
	// CEO is the name of the company's chief executive.
	CEO string `gorm:"size:255" json:"ceo"`
	// Origin is a free-form location string.
	Origin string `gorm:"size:255" json:"origin"`
	// EstYear is the founding year.
	EstYear int `json:"est_year"`
	// CreatedAt records the timestamp when the company was created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt records the timestamp when the company was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}
