package services

import (
	"errors"
	"strings"

	"consent-backend/models"
	"consent-backend/utils"

	"gorm.io/gorm"
)

// PurposeService manages the catalog of processing purposes.
type PurposeService struct {
	DB *gorm.DB
}

func NewPurposeService(db *gorm.DB) *PurposeService {
	return &PurposeService{DB: db}
}

func (s *PurposeService) Create(purpose *models.ConsentPurpose) error {
	if purpose == nil {
		return utils.ErrInvalidRequest("purpose payload is required")
	}
	purpose.Code = strings.ToLower(strings.TrimSpace(purpose.Code))
	if purpose.Code == "" {
		return utils.ErrInvalidRequest("purpose code is required")
	}
	if strings.TrimSpace(purpose.Name) == "" {
		return utils.ErrInvalidRequest("purpose name is required")
	}
	purpose.IsActive = true

	var existing models.ConsentPurpose
	err := s.DB.Where("code = ?", purpose.Code).First(&existing).Error
	if err == nil {
		return utils.ErrConflict(utils.CodeConflict, "purpose code already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.DB.Create(purpose).Error
}

func (s *PurposeService) List(onlyActive bool) ([]models.ConsentPurpose, error) {
	var out []models.ConsentPurpose
	q := s.DB.Order("purpose_id asc")
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&out).Error
	return out, err
}

func (s *PurposeService) GetByCode(code string) (*models.ConsentPurpose, error) {
	var purpose models.ConsentPurpose
	err := s.DB.Where("code = ?", strings.ToLower(strings.TrimSpace(code))).First(&purpose).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound(utils.CodePurposeNotFound, "purpose not found")
	}
	if err != nil {
		return nil, err
	}
	return &purpose, nil
}

// FindByCodes resolves each code to a purpose row. Unknown or inactive codes
// fail the whole lookup so consents never reference half-resolved purposes.
func (s *PurposeService) FindByCodes(tx *gorm.DB, codes []string) ([]models.ConsentPurpose, error) {
	if tx == nil {
		tx = s.DB
	}
	if len(codes) == 0 {
		return nil, utils.ErrInvalidRequest("at least one purpose code is required")
	}

	normalized := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		normalized = append(normalized, code)
	}
	if len(normalized) == 0 {
		return nil, utils.ErrInvalidRequest("at least one purpose code is required")
	}

	var purposes []models.ConsentPurpose
	err := tx.Where("code IN ? AND is_active = ?", normalized, true).Find(&purposes).Error
	if err != nil {
		return nil, err
	}

	if len(purposes) != len(normalized) {
		found := make(map[string]bool, len(purposes))
		for _, p := range purposes {
			found[p.Code] = true
		}
		missing := make([]string, 0)
		for _, code := range normalized {
			if !found[code] {
				missing = append(missing, code)
			}
		}
		return nil, utils.ErrNotFound(utils.CodePurposeNotFound, "unknown purpose codes").
			WithMeta(map[string]interface{}{"codes": missing})
	}

	return purposes, nil
}

func (s *PurposeService) Update(code string, updates *models.ConsentPurpose) (*models.ConsentPurpose, error) {
	purpose, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	patch := map[string]interface{}{}
	if updates.Name != "" {
		patch["name"] = updates.Name
	}
	if updates.Description != "" {
		patch["description"] = updates.Description
	}
	if updates.DataCategory != "" {
		patch["data_category"] = updates.DataCategory
	}
	if updates.LegalBasis != "" {
		patch["legal_basis"] = updates.LegalBasis
	}
	if len(patch) == 0 {
		return purpose, nil
	}

	if err := s.DB.Model(purpose).Updates(patch).Error; err != nil {
		return nil, err
	}
	return purpose, nil
}

// Delete soft-deletes a purpose. Essential purposes are protected.
func (s *PurposeService) Delete(code string) error {
	purpose, err := s.GetByCode(code)
	if err != nil {
		return err
	}
	if purpose.IsEssential {
		return utils.ErrConflict(utils.CodePurposeInUse, "essential purposes cannot be deleted")
	}
	return s.DB.Delete(purpose).Error
}
