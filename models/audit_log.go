package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditActionCreate   = "create"
	AuditActionUpdate   = "update"
	AuditActionWithdraw = "withdraw"
	AuditActionDelete   = "delete"
)

// AuditLog is the entity-level audit trail: which entity changed, how, and
// on whose behalf. Changes holds a JSON snapshot of the relevant fields.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityType string         `gorm:"type:varchar(100);index:idx_audit_entity;not null" json:"entity_type"`
	EntityID   uint           `gorm:"index:idx_audit_entity;not null" json:"entity_id"`
	ActionType string         `gorm:"type:varchar(50);index;not null" json:"action_type"`
	SubjectID  *uint          `gorm:"index" json:"subject_id,omitempty"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address,omitempty"`
	UserAgent  string         `gorm:"type:varchar(500)" json:"user_agent,omitempty"`
	Changes    datatypes.JSON `json:"changes,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
