package controllers

import (
	"net/http"

	"consent-backend/services"
	"consent-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectSvc *services.SubjectService
}

func NewSubjectController(svc *services.SubjectService) *SubjectController {
	return &SubjectController{SubjectSvc: svc}
}

// GET /api/subjects/:subjectId
func (sc *SubjectController) GetSubject(c *gin.Context) {
	subject, err := sc.SubjectSvc.GetBySubjectID(c.Param("subjectId"))
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, subject)
}

// GET /api/subjects/:subjectId/consents
func (sc *SubjectController) GetSubjectConsents(c *gin.Context) {
	subject, err := sc.SubjectSvc.GetBySubjectID(c.Param("subjectId"))
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}

	consents, err := sc.SubjectSvc.ConsentsForSubject(subject.ID)
	if err != nil {
		utils.JSONAPIError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, consents)
}
