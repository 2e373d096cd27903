package controllers

import (
	"net/http"

	"consent-backend/services"
	"consent-backend/utils"

	"github.com/gin-gonic/gin"
)

// BannerController decides whether the consent banner should be shown and
// which purposes it must render.
type BannerController struct {
	PurposeSvc *services.PurposeService
}

func NewBannerController(svc *services.PurposeService) *BannerController {
	return &BannerController{PurposeSvc: svc}
}

// GET /api/show-consent-banner
func (bc *BannerController) ShowConsentBanner(c *gin.Context) {
	country, region := services.ClientLocation(c.Request.Header)
	jurisdiction := services.CheckJurisdiction(country)

	purposes, err := bc.PurposeSvc.List(true)
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"show_consent_banner": jurisdiction.ShowBanner,
		"jurisdiction": gin.H{
			"code":    jurisdiction.Code,
			"message": jurisdiction.Message,
		},
		"location": gin.H{
			"country_code": country,
			"region_code":  region,
		},
		"purposes": purposes,
	})
}
