package controllers

import (
	"net/http"
	"time"

	"consent-backend/config"
	"consent-backend/services"

	"github.com/gin-gonic/gin"
)

const serviceVersion = "1.0.0"

// GET /api/status
func GetStatus(c *gin.Context) {
	country, region := services.ClientLocation(c.Request.Header)

	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"version":   serviceVersion,
		"storage":   config.StorageDriver(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"client": gin.H{
			"ip":      c.ClientIP(),
			"country": country,
			"region":  region,
		},
	})
}
