package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessStatus classifies an access attempt. The set is closed: a plate is
// either on the whitelist or it is not.
type AccessStatus string

const (
	// AccessStatusAuthorized marks an attempt whose normalized plate matched a
	// whitelist entry.
	AccessStatusAuthorized AccessStatus = "Authorized"
	// AccessStatusDenied marks an attempt with no whitelist match.
	AccessStatusDenied AccessStatus = "Denied"
)

// Valid reports whether s is one of the two known statuses.
func (s AccessStatus) Valid() bool {
	return s == AccessStatusAuthorized || s == AccessStatusDenied
}

// AccessLog is one recorded access attempt. Rows are append-only: they are
// never updated or deleted, and AuthorizedPlateID is left as written even if
// the referenced whitelist entry is removed later.
//
// PlateStringDetected keeps the raw string as received from the capture
// device, unnormalized, so misreads stay visible for later analysis.
// AuthorizedPlateID is set if and only if Status is Authorized.
type AccessLog struct {
	ID                  uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	Timestamp           time.Time    `json:"timestamp" gorm:"not null;index"`
	PlateStringDetected string       `json:"plate_string_detected" gorm:"size:64;not null"`
	Status              AccessStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ImageStorageKey     string       `json:"image_storage_key" gorm:"size:255;not null"`
	AuthorizedPlateID   *uuid.UUID   `json:"authorized_plate_id,omitempty" gorm:"type:char(36);index"`

	// Relations
	AuthorizedPlate *AuthorizedPlate `json:"-" gorm:"foreignKey:AuthorizedPlateID"`
}

// BeforeCreate sets UUID and timestamp before creating the record.
func (l *AccessLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	return nil
}
