package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Domain is a site or app consent applies to, e.g. "example.com".
type Domain struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description    string         `gorm:"type:varchar(500)" json:"description,omitempty"`
	AllowedOrigins datatypes.JSON `json:"allowed_origins,omitempty"`
	IsVerified     bool           `gorm:"not null;default:false" json:"is_verified"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
