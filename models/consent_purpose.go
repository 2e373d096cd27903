package models

import (
	"time"

	"gorm.io/gorm"
)

// Baseline purpose codes seeded at first boot.
const (
	PurposeNecessary  = "necessary"
	PurposeFunctional = "functional"
	PurposeAnalytics  = "analytics"
	PurposeMarketing  = "marketing"
)

// ConsentPurpose is a named category of data processing that consent can be
// granted or withdrawn for. Code is the stable slug clients send.
type ConsentPurpose struct {
	ID           uint   `gorm:"primaryKey;autoIncrement;column:purpose_id" json:"id"`
	Code         string `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Description  string `gorm:"type:varchar(500)" json:"description,omitempty"`
	IsEssential  bool   `gorm:"not null;default:false" json:"is_essential"`
	DataCategory string `gorm:"type:varchar(100)" json:"data_category,omitempty"`
	LegalBasis   string `gorm:"type:varchar(100)" json:"legal_basis,omitempty"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
