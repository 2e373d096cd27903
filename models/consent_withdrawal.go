package models

import "time"

const (
	WithdrawalMethodAPI              = "api"
	WithdrawalMethodBanner           = "banner"
	WithdrawalMethodPreferenceCenter = "preference_center"
)

// ConsentWithdrawal captures the revocation of a previously given consent.
type ConsentWithdrawal struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:withdrawal_id" json:"id"`
	ConsentID uint      `gorm:"index;not null" json:"consent_id"`
	SubjectID uint      `gorm:"index;not null" json:"subject_id"`
	RevokedAt time.Time `json:"revoked_at"`
	Reason    string    `gorm:"type:varchar(500)" json:"reason,omitempty"`
	Method    string    `gorm:"type:varchar(50)" json:"method,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
