package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthorizedPlate is a whitelist entry. Plate keeps the representation the
// operator entered ("ABC-1234"); NormalizedPlate is its canonical form and the
// sole lookup key. The unique index on NormalizedPlate is what makes
// concurrent creates of the same plate resolve to exactly one success.
type AuthorizedPlate struct {
	ID              uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Plate           string    `json:"plate" gorm:"size:16;not null"`
	NormalizedPlate string    `json:"normalized_plate" gorm:"uniqueIndex;size:16;not null"`
	Description     string    `json:"description,omitempty" gorm:"size:255"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *AuthorizedPlate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
