package controllers

import (
	"net/http"
	"strconv"

	"consent-backend/models"
	"consent-backend/services"
	"consent-backend/utils"

	"github.com/gin-gonic/gin"
)

type PurposeController struct {
	PurposeSvc *services.PurposeService
}

func NewPurposeController(svc *services.PurposeService) *PurposeController {
	return &PurposeController{PurposeSvc: svc}
}

// GET /api/purposes?all=true
func (pc *PurposeController) GetPurposes(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	purposes, err := pc.PurposeSvc.List(!all)
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, purposes)
}

// POST /api/purposes
func (pc *PurposeController) CreatePurpose(c *gin.Context) {
	var req struct {
		Code         string `json:"code" binding:"required"`
		Name         string `json:"name" binding:"required"`
		Description  string `json:"description"`
		IsEssential  bool   `json:"isEssential"`
		DataCategory string `json:"dataCategory"`
		LegalBasis   string `json:"legalBasis"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, err.Error())
		return
	}

	purpose := models.ConsentPurpose{
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		IsEssential:  req.IsEssential,
		DataCategory: req.DataCategory,
		LegalBasis:   req.LegalBasis,
	}
	if err := pc.PurposeSvc.Create(&purpose); err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, purpose)
}

// PUT /api/purposes/:code
func (pc *PurposeController) UpdatePurpose(c *gin.Context) {
	var req struct {
		Name         string `json:"name"`
		Description  string `json:"description"`
		DataCategory string `json:"dataCategory"`
		LegalBasis   string `json:"legalBasis"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, utils.CodeInvalidRequest, err.Error())
		return
	}

	purpose, err := pc.PurposeSvc.Update(c.Param("code"), &models.ConsentPurpose{
		Name:         req.Name,
		Description:  req.Description,
		DataCategory: req.DataCategory,
		LegalBasis:   req.LegalBasis,
	})
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, purpose)
}

// DELETE /api/purposes/:code
func (pc *PurposeController) DeletePurpose(c *gin.Context) {
	if err := pc.PurposeSvc.Delete(c.Param("code")); err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "purpose deleted"})
}
