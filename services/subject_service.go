package services

import (
	"errors"
	"net/http"

	"consent-backend/models"
	"consent-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubjectService resolves and manages consent subjects.
type SubjectService struct {
	DB *gorm.DB
}

func NewSubjectService(db *gorm.DB) *SubjectService {
	return &SubjectService{DB: db}
}

// FindOrCreate resolves a subject by its external handle, or by the
// integrator's own id, creating an anonymous subject when neither matches.
// Runs inside tx so consent creation stays atomic.
func (s *SubjectService) FindOrCreate(tx *gorm.DB, subjectID, externalID, ipAddress string) (*models.Subject, error) {
	if tx == nil {
		tx = s.DB
	}

	var subject models.Subject

	if subjectID != "" {
		err := tx.Where("subject_id = ?", subjectID).First(&subject).Error
		if err == nil {
			return &subject, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if externalID != "" {
		err := tx.Where("external_id = ?", externalID).First(&subject).Error
		if err == nil {
			return &subject, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	subject = models.Subject{
		SubjectID:     uuid.NewString(),
		IsIdentified:  externalID != "",
		LastIPAddress: ipAddress,
	}
	if externalID != "" {
		subject.ExternalID = &externalID
	}

	if err := tx.Create(&subject).Error; err != nil {
		return nil, utils.NewAPIError(utils.CodeSubjectCreationFailed, http.StatusInternalServerError, "failed to create subject")
	}
	return &subject, nil
}

// GetBySubjectID looks a subject up by its external uuid handle.
func (s *SubjectService) GetBySubjectID(subjectID string) (*models.Subject, error) {
	var subject models.Subject
	err := s.DB.Where("subject_id = ?", subjectID).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound(utils.CodeSubjectNotFound, "subject not found")
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// ConsentsForSubject lists a subject's consents newest first, purposes
// preloaded.
func (s *SubjectService) ConsentsForSubject(subjectID uint) ([]models.Consent, error) {
	var consents []models.Consent
	err := s.DB.
		Preload("Purposes").
		Where("subject_id = ?", subjectID).
		Order("consent_id desc").
		Find(&consents).Error
	return consents, err
}
