package controllers

import (
	"net/http"
	"strings"
	"time"

	"consent-backend/services"
	"consent-backend/utils"

	"github.com/gin-gonic/gin"
)

// ConsentController exposes the consent lifecycle endpoints.
type ConsentController struct {
	ConsentSvc *services.ConsentService
}

func NewConsentController(svc *services.ConsentService) *ConsentController {
	return &ConsentController{ConsentSvc: svc}
}

// POST /api/consent
func (cc *ConsentController) CreateConsent(c *gin.Context) {
	var req struct {
		SubjectID   string                 `json:"subjectId"`
		ExternalID  string                 `json:"externalId"`
		Domain      string                 `json:"domain" binding:"required"`
		PolicyID    *uint                  `json:"policyId"`
		PolicyType  string                 `json:"type"`
		Preferences map[string]bool        `json:"preferences" binding:"required"`
		ValidUntil  *time.Time             `json:"validUntil"`
		Metadata    map[string]interface{} `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, err.Error())
		return
	}

	result, err := cc.ConsentSvc.Create(c.Request.Context(), services.CreateConsentInput{
		SubjectID:   strings.TrimSpace(req.SubjectID),
		ExternalID:  strings.TrimSpace(req.ExternalID),
		Domain:      req.Domain,
		PolicyID:    req.PolicyID,
		PolicyType:  req.PolicyType,
		Preferences: req.Preferences,
		ValidUntil:  req.ValidUntil,
		Metadata:    req.Metadata,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, result)
}

// POST /api/consent/verify
func (cc *ConsentController) VerifyConsent(c *gin.Context) {
	var req struct {
		SubjectID string   `json:"subjectId" binding:"required"`
		Domain    string   `json:"domain" binding:"required"`
		PolicyID  *uint    `json:"policyId"`
		Purposes  []string `json:"purposes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, err.Error())
		return
	}

	result, err := cc.ConsentSvc.Verify(c.Request.Context(), services.VerifyConsentInput{
		SubjectID: req.SubjectID,
		Domain:    req.Domain,
		PolicyID:  req.PolicyID,
		Purposes:  req.Purposes,
	})
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, result)
}

// POST /api/consent/withdraw
func (cc *ConsentController) WithdrawConsent(c *gin.Context) {
	var req struct {
		SubjectID string `json:"subjectId" binding:"required"`
		ConsentID uint   `json:"consentId" binding:"required"`
		Reason    string `json:"reason"`
		Method    string `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, err.Error())
		return
	}

	withdrawal, err := cc.ConsentSvc.Withdraw(c.Request.Context(), services.WithdrawConsentInput{
		SubjectID: req.SubjectID,
		ConsentID: req.ConsentID,
		Reason:    req.Reason,
		Method:    req.Method,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, withdrawal)
}

// GET /api/consent/history?subjectId=...
func (cc *ConsentController) ConsentHistory(c *gin.Context) {
	subjectID := strings.TrimSpace(c.Query("subjectId"))
	if subjectID == "" {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, "subjectId query parameter is required")
		return
	}

	records, err := cc.ConsentSvc.History(c.Request.Context(), subjectID)
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, records)
}
