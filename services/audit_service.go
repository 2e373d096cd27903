package services

import (
	"encoding/json"

	"consent-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService writes and queries the entity-level audit trail.
type AuditService struct {
	DB *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

// Record writes one audit row inside tx. changes is marshalled to JSON;
// a marshal failure drops the snapshot but never the row.
func (s *AuditService) Record(tx *gorm.DB, entry *models.AuditLog, changes interface{}) error {
	if tx == nil {
		tx = s.DB
	}
	if changes != nil {
		if raw, err := json.Marshal(changes); err == nil {
			entry.Changes = datatypes.JSON(raw)
		}
	}
	return tx.Create(entry).Error
}

// AuditFilter narrows List results. Zero values mean "no filter".
type AuditFilter struct {
	EntityType string
	EntityID   uint
	Limit      int
	Offset     int
}

func (s *AuditService) List(filter AuditFilter) ([]models.AuditLog, error) {
	q := s.DB.Order("id desc")
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != 0 {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q = q.Limit(limit)
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var out []models.AuditLog
	err := q.Find(&out).Error
	return out, err
}
