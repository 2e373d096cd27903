package controllers

import (
	"net/http"
	"strconv"

	"consent-backend/services"
	"consent-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuditLogController struct {
	AuditSvc *services.AuditService
}

func NewAuditLogController(svc *services.AuditService) *AuditLogController {
	return &AuditLogController{AuditSvc: svc}
}

// GET /api/audit-logs?entityType=consent&entityId=1&limit=50&offset=0
func (ac *AuditLogController) GetAuditLogs(c *gin.Context) {
	entityID, _ := strconv.ParseUint(c.Query("entityId"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	logs, err := ac.AuditSvc.List(services.AuditFilter{
		EntityType: c.Query("entityType"),
		EntityID:   uint(entityID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}
