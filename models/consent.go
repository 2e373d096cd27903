package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ConsentStatusActive    = "active"
	ConsentStatusWithdrawn = "withdrawn"
	ConsentStatusExpired   = "expired"
)

const (
	PurposeStatusAccepted = "accepted"
	PurposeStatusRejected = "rejected"
)

// Consent records that a subject agreed to a set of purposes for a domain
// under a specific policy version. The accepted/rejected outcome per purpose
// lives in ConsentPurposeJunction rows.
type Consent struct {
	ID         uint           `gorm:"primaryKey;autoIncrement;column:consent_id" json:"id"`
	SubjectID  uint           `gorm:"index;not null" json:"subject_id"`
	DomainID   uint           `gorm:"index;not null" json:"domain_id"`
	PolicyID   uint           `gorm:"index;not null" json:"policy_id"`
	Status     string         `gorm:"type:varchar(20);index;not null;default:active" json:"status"`
	GivenAt    time.Time      `json:"given_at"`
	ValidUntil *time.Time     `json:"valid_until,omitempty"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent  string         `gorm:"type:varchar(500)" json:"user_agent,omitempty"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`

	Purposes []ConsentPurposeJunction `gorm:"foreignKey:ConsentID" json:"purposes,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ConsentPurposeJunction links one consent to one purpose with the outcome
// the subject chose for that purpose.
type ConsentPurposeJunction struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ConsentID uint   `gorm:"index;not null" json:"consent_id"`
	PurposeID uint   `gorm:"index;not null" json:"purpose_id"`
	Status    string `gorm:"type:varchar(20);not null;default:accepted" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
