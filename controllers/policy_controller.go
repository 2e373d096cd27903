package controllers

import (
	"net/http"
	"strconv"
	"time"

	"consent-backend/models"
	"consent-backend/services"
	"consent-backend/utils"

	"github.com/gin-gonic/gin"
)

type PolicyController struct {
	PolicySvc *services.PolicyService
}

func NewPolicyController(svc *services.PolicyService) *PolicyController {
	return &PolicyController{PolicySvc: svc}
}

// GET /api/policies
func (pc *PolicyController) GetPolicies(c *gin.Context) {
	policies, err := pc.PolicySvc.List()
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, policies)
}

// GET /api/policies/:id
func (pc *PolicyController) GetPolicyByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, "invalid policy id")
		return
	}

	policy, err := pc.PolicySvc.GetByID(uint(id))
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, policy)
}

// POST /api/policies
func (pc *PolicyController) CreatePolicy(c *gin.Context) {
	var req struct {
		Type           string     `json:"type"`
		Version        string     `json:"version"`
		Name           string     `json:"name" binding:"required"`
		EffectiveDate  *time.Time `json:"effectiveDate"`
		ExpirationDate *time.Time `json:"expirationDate"`
		Content        string     `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, err.Error())
		return
	}

	policy := models.ConsentPolicy{
		Type:           req.Type,
		Version:        req.Version,
		Name:           req.Name,
		ExpirationDate: req.ExpirationDate,
		Content:        req.Content,
	}
	if req.EffectiveDate != nil {
		policy.EffectiveDate = *req.EffectiveDate
	}

	if err := pc.PolicySvc.Publish(&policy); err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, policy)
}
