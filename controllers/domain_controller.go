package controllers

import (
	"encoding/json"
	"net/http"

	"consent-backend/models"
	"consent-backend/services"
	"consent-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type DomainController struct {
	DomainSvc *services.DomainService
}

func NewDomainController(svc *services.DomainService) *DomainController {
	return &DomainController{DomainSvc: svc}
}

// GET /api/domains
func (dc *DomainController) GetDomains(c *gin.Context) {
	domains, err := dc.DomainSvc.List()
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, domains)
}

// GET /api/domains/:name
func (dc *DomainController) GetDomainByName(c *gin.Context) {
	domain, err := dc.DomainSvc.GetByName(c.Param("name"))
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, domain)
}

// POST /api/domains
func (dc *DomainController) CreateDomain(c *gin.Context) {
	var req struct {
		Name           string   `json:"name" binding:"required"`
		Description    string   `json:"description"`
		AllowedOrigins []string `json:"allowedOrigins"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, err.Error())
		return
	}

	domain := models.Domain{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if len(req.AllowedOrigins) > 0 {
		if raw, err := json.Marshal(req.AllowedOrigins); err == nil {
			domain.AllowedOrigins = datatypes.JSON(raw)
		}
	}

	if err := dc.DomainSvc.Create(&domain); err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, domain)
}
