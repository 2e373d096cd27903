package models

import (
	"time"

	"gorm.io/gorm"
)

// Subject is the person (or anonymous visitor) consent is recorded for.
// SubjectID is the external handle handed to browser SDKs; ExternalID lets
// an integrator link the row to their own user table.
type Subject struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	SubjectID        string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"subject_id"`
	ExternalID       *string        `gorm:"type:varchar(255);index" json:"external_id,omitempty"`
	IdentityProvider string         `gorm:"type:varchar(100)" json:"identity_provider,omitempty"`
	IsIdentified     bool           `gorm:"not null;default:false" json:"is_identified"`
	LastIPAddress    string         `gorm:"type:varchar(45)" json:"last_ip_address,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
