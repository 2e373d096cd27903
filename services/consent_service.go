package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"consent-backend/models"
	"consent-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ConsentService implements the consent lifecycle: give, verify, withdraw.
// All multi-row writes go through one DB transaction so a consent is never
// persisted without its purpose junctions, record, and audit row.
type ConsentService struct {
	DB       *gorm.DB
	Subjects *SubjectService
	Domains  *DomainService
	Policies *PolicyService
	Purposes *PurposeService
	Audit    *AuditService
	Cache    *VerifyCache
	Notifier *WebhookNotifier
}

func NewConsentService(
	db *gorm.DB,
	subjects *SubjectService,
	domains *DomainService,
	policies *PolicyService,
	purposes *PurposeService,
	audit *AuditService,
	cache *VerifyCache,
	notifier *WebhookNotifier,
) *ConsentService {
	return &ConsentService{
		DB:       db,
		Subjects: subjects,
		Domains:  domains,
		Policies: policies,
		Purposes: purposes,
		Audit:    audit,
		Cache:    cache,
		Notifier: notifier,
	}
}

// CreateConsentInput carries everything needed to record a consent.
// Preferences maps purpose code to the subject's choice; every code must
// resolve to a known active purpose.
type CreateConsentInput struct {
	SubjectID   string                 `json:"subject_id"`
	ExternalID  string                 `json:"external_id"`
	Domain      string                 `json:"domain"`
	PolicyID    *uint                  `json:"policy_id"`
	PolicyType  string                 `json:"policy_type"`
	Preferences map[string]bool        `json:"preferences"`
	ValidUntil  *time.Time             `json:"valid_until"`
	Metadata    map[string]interface{} `json:"metadata"`
	IPAddress   string                 `json:"-"`
	UserAgent   string                 `json:"-"`
}

// ConsentResult is the created consent plus the resolved subject handle.
type ConsentResult struct {
	Consent   *models.Consent `json:"consent"`
	SubjectID string          `json:"subject_id"`
	Domain    string          `json:"domain"`
	Accepted  []string        `json:"accepted_purposes"`
	Rejected  []string        `json:"rejected_purposes,omitempty"`
}

// Create resolves subject, domain, policy, and purposes, then inserts the
// consent, its purpose junctions, a consent record, and an audit log row
// atomically.
func (s *ConsentService) Create(ctx context.Context, in CreateConsentInput) (*ConsentResult, error) {
	if in.Domain == "" {
		return nil, utils.ErrInvalidRequest("domain is required")
	}
	if len(in.Preferences) == 0 {
		return nil, utils.ErrInvalidRequest("preferences are required")
	}

	// normalize keys the same way FindByCodes normalizes codes; when two
	// keys collapse to the same code, an accept wins over a reject
	prefs := make(map[string]bool, len(in.Preferences))
	for code, chosen := range in.Preferences {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		prefs[code] = prefs[code] || chosen
	}
	if len(prefs) == 0 {
		return nil, utils.ErrInvalidRequest("preferences are required")
	}

	codes := make([]string, 0, len(prefs))
	for code := range prefs {
		codes = append(codes, code)
	}

	var result ConsentResult

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		subject, err := s.Subjects.FindOrCreate(tx, in.SubjectID, in.ExternalID, in.IPAddress)
		if err != nil {
			return err
		}

		domain, err := s.Domains.FindOrCreate(tx, in.Domain)
		if err != nil {
			return err
		}

		var policy *models.ConsentPolicy
		if in.PolicyID != nil {
			var p models.ConsentPolicy
			if err := tx.First(&p, "policy_id = ?", *in.PolicyID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.ErrNotFound(utils.CodePolicyNotFound, "policy not found")
				}
				return err
			}
			policy = &p
		} else {
			policy, err = s.Policies.LatestActive(tx, in.PolicyType)
			if err != nil {
				return err
			}
		}

		purposes, err := s.Purposes.FindByCodes(tx, codes)
		if err != nil {
			return err
		}

		consent := models.Consent{
			SubjectID:  subject.ID,
			DomainID:   domain.ID,
			PolicyID:   policy.ID,
			Status:     models.ConsentStatusActive,
			GivenAt:    time.Now().UTC(),
			ValidUntil: in.ValidUntil,
			IPAddress:  in.IPAddress,
			UserAgent:  in.UserAgent,
		}
		if in.ValidUntil == nil && policy.ExpirationDate != nil {
			consent.ValidUntil = policy.ExpirationDate
		}
		if len(in.Metadata) > 0 {
			if raw, err := json.Marshal(in.Metadata); err == nil {
				consent.Metadata = datatypes.JSON(raw)
			}
		}

		if err := tx.Create(&consent).Error; err != nil {
			return err
		}

		accepted := make([]string, 0, len(purposes))
		rejected := make([]string, 0)
		junctions := make([]models.ConsentPurposeJunction, 0, len(purposes))
		for _, p := range purposes {
			// essential purposes cannot be opted out of
			status := models.PurposeStatusRejected
			if prefs[p.Code] || p.IsEssential {
				status = models.PurposeStatusAccepted
				accepted = append(accepted, p.Code)
			} else {
				rejected = append(rejected, p.Code)
			}
			junctions = append(junctions, models.ConsentPurposeJunction{
				ConsentID: consent.ID,
				PurposeID: p.ID,
				Status:    status,
			})
		}
		if err := tx.Create(&junctions).Error; err != nil {
			return err
		}
		consent.Purposes = junctions

		details, _ := json.Marshal(map[string]interface{}{
			"domain":   domain.Name,
			"policy":   policy.Version,
			"accepted": accepted,
			"rejected": rejected,
		})
		record := models.ConsentRecord{
			SubjectID:  subject.ID,
			ConsentID:  &consent.ID,
			ActionType: models.RecordActionConsentGiven,
			Details:    datatypes.JSON(details),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		audit := models.AuditLog{
			EntityType: "consent",
			EntityID:   consent.ID,
			ActionType: models.AuditActionCreate,
			SubjectID:  &subject.ID,
			IPAddress:  in.IPAddress,
			UserAgent:  in.UserAgent,
		}
		if err := s.Audit.Record(tx, &audit, map[string]interface{}{
			"status":   consent.Status,
			"accepted": accepted,
			"rejected": rejected,
		}); err != nil {
			return err
		}

		result = ConsentResult{
			Consent:   &consent,
			SubjectID: subject.SubjectID,
			Domain:    domain.Name,
			Accepted:  accepted,
			Rejected:  rejected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, result.SubjectID, result.Domain)
	s.Notifier.Notify(ConsentEvent{
		Type:      EventConsentGiven,
		SubjectID: result.SubjectID,
		Domain:    result.Domain,
		ConsentID: result.Consent.ID,
		Purposes:  result.Accepted,
	})

	return &result, nil
}

// VerifyConsentInput asks whether valid consent exists for every listed
// purpose code.
type VerifyConsentInput struct {
	SubjectID string   `json:"subject_id"`
	Domain    string   `json:"domain"`
	PolicyID  *uint    `json:"policy_id"`
	Purposes  []string `json:"purposes"`
}

// VerificationResult reports the outcome and, when invalid, why.
type VerificationResult struct {
	IsValid   bool            `json:"is_valid"`
	Reasons   []string        `json:"reasons,omitempty"`
	ConsentID uint            `json:"consent_id,omitempty"`
	Consent   *models.Consent `json:"consent,omitempty"`
}

// Verify checks for an active, unexpired consent for subject+domain covering
// all requested purposes. Missing subjects or consents yield IsValid=false
// rather than an error: absence of consent is a normal answer here.
func (s *ConsentService) Verify(ctx context.Context, in VerifyConsentInput) (*VerificationResult, error) {
	if in.SubjectID == "" {
		return nil, utils.ErrInvalidRequest("subject_id is required")
	}
	if in.Domain == "" {
		return nil, utils.ErrInvalidRequest("domain is required")
	}
	if len(in.Purposes) == 0 {
		return nil, utils.ErrInvalidRequest("at least one purpose is required")
	}

	cached, gen, ok := s.Cache.Get(ctx, in.SubjectID, in.Domain, in.Purposes)
	if ok {
		return cached, nil
	}

	result := &VerificationResult{}

	var subject models.Subject
	err := s.DB.WithContext(ctx).Where("subject_id = ?", in.SubjectID).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.Reasons = append(result.Reasons, "subject not found")
		s.Cache.Set(ctx, in.SubjectID, in.Domain, in.Purposes, gen, result)
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	domain, err := s.Domains.GetByName(in.Domain)
	if err != nil {
		var apiErr *utils.APIError
		if errors.As(err, &apiErr) && apiErr.Code == utils.CodeDomainNotFound {
			result.Reasons = append(result.Reasons, "domain not found")
			s.Cache.Set(ctx, in.SubjectID, in.Domain, in.Purposes, gen, result)
			return result, nil
		}
		return nil, err
	}

	q := s.DB.WithContext(ctx).
		Preload("Purposes").
		Where("subject_id = ? AND domain_id = ? AND status = ?",
			subject.ID, domain.ID, models.ConsentStatusActive)
	if in.PolicyID != nil {
		q = q.Where("policy_id = ?", *in.PolicyID)
	}

	var consent models.Consent
	err = q.Order("consent_id desc").First(&consent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.Reasons = append(result.Reasons, "no active consent for subject and domain")
		s.Cache.Set(ctx, in.SubjectID, in.Domain, in.Purposes, gen, result)
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	if consent.ValidUntil != nil && consent.ValidUntil.Before(time.Now().UTC()) {
		result.Reasons = append(result.Reasons, "consent has expired")
		s.Cache.Set(ctx, in.SubjectID, in.Domain, in.Purposes, gen, result)
		return result, nil
	}

	purposes, err := s.Purposes.FindByCodes(s.DB.WithContext(ctx), in.Purposes)
	if err != nil {
		return nil, err
	}

	acceptedByID := make(map[uint]bool, len(consent.Purposes))
	for _, j := range consent.Purposes {
		if j.Status == models.PurposeStatusAccepted {
			acceptedByID[j.PurposeID] = true
		}
	}
	for _, p := range purposes {
		if !acceptedByID[p.ID] {
			result.Reasons = append(result.Reasons, "purpose not accepted: "+p.Code)
		}
	}

	if len(result.Reasons) == 0 {
		result.IsValid = true
		result.ConsentID = consent.ID
		result.Consent = &consent
	}

	s.Cache.Set(ctx, in.SubjectID, in.Domain, in.Purposes, gen, result)
	return result, nil
}

// WithdrawConsentInput revokes a consent by id for the given subject.
type WithdrawConsentInput struct {
	SubjectID string `json:"subject_id"`
	ConsentID uint   `json:"consent_id"`
	Reason    string `json:"reason"`
	Method    string `json:"method"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// Withdraw marks the consent withdrawn and writes the withdrawal, record,
// and audit rows in one transaction.
func (s *ConsentService) Withdraw(ctx context.Context, in WithdrawConsentInput) (*models.ConsentWithdrawal, error) {
	if in.SubjectID == "" {
		return nil, utils.ErrInvalidRequest("subject_id is required")
	}
	if in.ConsentID == 0 {
		return nil, utils.ErrInvalidRequest("consent_id is required")
	}
	if in.Method == "" {
		in.Method = models.WithdrawalMethodAPI
	}

	var withdrawal models.ConsentWithdrawal
	var domainName string

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject models.Subject
		if err := tx.Where("subject_id = ?", in.SubjectID).First(&subject).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrNotFound(utils.CodeSubjectNotFound, "subject not found")
			}
			return err
		}

		var consent models.Consent
		err := tx.Where("consent_id = ? AND subject_id = ?", in.ConsentID, subject.ID).First(&consent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrNotFound(utils.CodeConsentNotFound, "consent not found")
		}
		if err != nil {
			return err
		}
		if consent.Status == models.ConsentStatusWithdrawn {
			return utils.ErrConflict(utils.CodeConsentAlreadyWithdrawn, "consent is already withdrawn")
		}

		var domain models.Domain
		if err := tx.First(&domain, "id = ?", consent.DomainID).Error; err == nil {
			domainName = domain.Name
		}

		if err := tx.Model(&models.Consent{}).
			Where("consent_id = ?", consent.ID).
			Update("status", models.ConsentStatusWithdrawn).Error; err != nil {
			return err
		}

		withdrawal = models.ConsentWithdrawal{
			ConsentID: consent.ID,
			SubjectID: subject.ID,
			RevokedAt: time.Now().UTC(),
			Reason:    in.Reason,
			Method:    in.Method,
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}

		record := models.ConsentRecord{
			SubjectID:  subject.ID,
			ConsentID:  &consent.ID,
			ActionType: models.RecordActionConsentWithdrawn,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		audit := models.AuditLog{
			EntityType: "consent",
			EntityID:   consent.ID,
			ActionType: models.AuditActionWithdraw,
			SubjectID:  &subject.ID,
			IPAddress:  in.IPAddress,
			UserAgent:  in.UserAgent,
		}
		return s.Audit.Record(tx, &audit, map[string]interface{}{
			"status": models.ConsentStatusWithdrawn,
			"reason": in.Reason,
			"method": in.Method,
		})
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, in.SubjectID, domainName)
	s.Notifier.Notify(ConsentEvent{
		Type:      EventConsentWithdrawn,
		SubjectID: in.SubjectID,
		Domain:    domainName,
		ConsentID: in.ConsentID,
	})

	return &withdrawal, nil
}

// History lists a subject's consent records, newest first.
func (s *ConsentService) History(ctx context.Context, subjectID string) ([]models.ConsentRecord, error) {
	subject, err := s.Subjects.GetBySubjectID(subjectID)
	if err != nil {
		return nil, err
	}

	var records []models.ConsentRecord
	err = s.DB.WithContext(ctx).
		Where("subject_id = ?", subject.ID).
		Order("record_id desc").
		Find(&records).Error
	return records, err
}
