package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"consent-backend/models"
	"consent-backend/utils"

	"gorm.io/gorm"
)

// PolicyService manages versioned consent policies.
type PolicyService struct {
	DB *gorm.DB
}

func NewPolicyService(db *gorm.DB) *PolicyService {
	return &PolicyService{DB: db}
}

func (s *PolicyService) List() ([]models.ConsentPolicy, error) {
	var out []models.ConsentPolicy
	err := s.DB.Order("policy_id desc").Find(&out).Error
	return out, err
}

func (s *PolicyService) GetByID(id uint) (*models.ConsentPolicy, error) {
	var policy models.ConsentPolicy
	err := s.DB.First(&policy, "policy_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound(utils.CodePolicyNotFound, "policy not found")
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// LatestActive returns the currently active policy of the given type.
// Expired policies do not qualify.
func (s *PolicyService) LatestActive(tx *gorm.DB, policyType string) (*models.ConsentPolicy, error) {
	if tx == nil {
		tx = s.DB
	}
	if policyType == "" {
		policyType = models.PolicyTypeCookieBanner
	}

	now := time.Now().UTC()
	var policy models.ConsentPolicy
	err := tx.
		Where("type = ? AND is_active = ?", policyType, true).
		Where("effective_date <= ?", now).
		Where("expiration_date IS NULL OR expiration_date > ?", now).
		Order("policy_id desc").
		First(&policy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound(utils.CodePolicyNotFound, "no active policy of type "+policyType)
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// Publish creates a new policy version and deactivates the previous active
// version of the same type in one transaction.
func (s *PolicyService) Publish(policy *models.ConsentPolicy) error {
	if policy == nil {
		return utils.ErrInvalidRequest("policy payload is required")
	}
	if strings.TrimSpace(policy.Name) == "" {
		return utils.ErrInvalidRequest("policy name is required")
	}
	if policy.Type == "" {
		policy.Type = models.PolicyTypeCookieBanner
	}
	if policy.Version == "" {
		policy.Version = "1.0"
	}
	if policy.EffectiveDate.IsZero() {
		policy.EffectiveDate = time.Now().UTC()
	}
	if policy.Content != "" && policy.ContentHash == "" {
		hash := sha256.Sum256([]byte(policy.Content))
		policy.ContentHash = hex.EncodeToString(hash[:])
	}
	policy.IsActive = true

	return s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.ConsentPolicy{}).
			Where("type = ? AND is_active = ?", policy.Type, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Create(policy).Error
	})
}
