package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consent-backend/controllers"
	"consent-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the API surface.
func SetupRouter(
	logger *zap.Logger,
	cc *controllers.ConsentController,
	bc *controllers.BannerController,
	sc *controllers.SubjectController,
	pc *controllers.PurposeController,
	plc *controllers.PolicyController,
	dc *controllers.DomainController,
	ac *controllers.AuditLogController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/status", controllers.GetStatus)
		api.GET("/show-consent-banner", bc.ShowConsentBanner)

		consent := api.Group("/consent")
		{
			consent.POST("", cc.CreateConsent)
			consent.POST("/verify", cc.VerifyConsent)
			consent.POST("/withdraw", cc.WithdrawConsent)
			consent.GET("/history", cc.ConsentHistory)
		}

		subjects := api.Group("/subjects")
		{
			subjects.GET("/:subjectId", sc.GetSubject)
			subjects.GET("/:subjectId/consents", sc.GetSubjectConsents)
		}

		purposes := api.Group("/purposes")
		{
			purposes.GET("", pc.GetPurposes)
			purposes.POST("", pc.CreatePurpose)
			purposes.PUT("/:code", pc.UpdatePurpose)
			purposes.DELETE("/:code", pc.DeletePurpose)
		}

		policies := api.Group("/policies")
		{
			policies.GET("", plc.GetPolicies)
			policies.GET("/:id", plc.GetPolicyByID)
			policies.POST("", plc.CreatePolicy)
		}

		domains := api.Group("/domains")
		{
			domains.GET("", dc.GetDomains)
			domains.GET("/:name", dc.GetDomainByName)
			domains.POST("", dc.CreateDomain)
		}

		api.GET("/audit-logs", ac.GetAuditLogs)
	}

	return r
}
