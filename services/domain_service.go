package services

import (
	"errors"
	"strings"

	"consent-backend/models"
	"consent-backend/utils"

	"gorm.io/gorm"
)

// DomainService manages the domains consent applies to.
type DomainService struct {
	DB *gorm.DB
}

func NewDomainService(db *gorm.DB) *DomainService {
	return &DomainService{DB: db}
}

func (s *DomainService) Create(domain *models.Domain) error {
	if domain == nil || strings.TrimSpace(domain.Name) == "" {
		return utils.ErrInvalidRequest("domain name is required")
	}
	domain.Name = normalizeDomainName(domain.Name)
	return s.DB.Create(domain).Error
}

func (s *DomainService) List() ([]models.Domain, error) {
	var out []models.Domain
	err := s.DB.Order("name asc").Find(&out).Error
	return out, err
}

func (s *DomainService) GetByName(name string) (*models.Domain, error) {
	var domain models.Domain
	err := s.DB.Where("name = ?", normalizeDomainName(name)).First(&domain).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound(utils.CodeDomainNotFound, "domain not found")
	}
	if err != nil {
		return nil, err
	}
	return &domain, nil
}

// FindOrCreate resolves a domain by name, creating an unverified row for
// first-seen domains. Runs inside tx when given one.
func (s *DomainService) FindOrCreate(tx *gorm.DB, name string) (*models.Domain, error) {
	if tx == nil {
		tx = s.DB
	}
	name = normalizeDomainName(name)
	if name == "" {
		return nil, utils.ErrInvalidRequest("domain name is required")
	}

	var domain models.Domain
	err := tx.Where("name = ?", name).First(&domain).Error
	if err == nil {
		return &domain, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	domain = models.Domain{Name: name, IsActive: true}
	if err := tx.Create(&domain).Error; err != nil {
		return nil, err
	}
	return &domain, nil
}

func normalizeDomainName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
