package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RecordActionConsentGiven     = "consent_given"
	RecordActionConsentWithdrawn = "consent_withdrawn"
)

// ConsentRecord is the append-only action trail per subject. One row is
// written inside the same transaction as the consent change it describes.
type ConsentRecord struct {
	ID         uint           `gorm:"primaryKey;autoIncrement;column:record_id" json:"id"`
	SubjectID  uint           `gorm:"index;not null" json:"subject_id"`
	ConsentID  *uint          `gorm:"index" json:"consent_id,omitempty"`
	ActionType string         `gorm:"type:varchar(50);index;not null" json:"action_type"`
	Details    datatypes.JSON `json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
