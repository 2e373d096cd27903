package models

import (
	"time"

	"gorm.io/gorm"
)

// Policy types. cookie_banner is the default the browser widget asks for.
const (
	PolicyTypeCookieBanner  = "cookie_banner"
	PolicyTypePrivacyPolicy = "privacy_policy"
	PolicyTypeDPA           = "dpa"
)

// ConsentPolicy is a versioned policy document. At most one policy per type
// is active at a time; publishing a new version deactivates the previous one.
type ConsentPolicy struct {
	ID             uint           `gorm:"primaryKey;autoIncrement;column:policy_id" json:"id"`
	Type           string         `gorm:"type:varchar(50);index;not null" json:"type"`
	Version        string         `gorm:"type:varchar(50);not null" json:"version"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	EffectiveDate  time.Time      `json:"effective_date"`
	ExpirationDate *time.Time     `json:"expiration_date,omitempty"`
	Content        string         `gorm:"type:text" json:"content,omitempty"`
	ContentHash    string         `gorm:"type:varchar(64)" json:"content_hash,omitempty"`
	IsActive       bool           `gorm:"index;not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
