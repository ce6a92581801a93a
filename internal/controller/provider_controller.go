package controller

import (
	"errors"

	"screener_backend/internal/service"
	"screener_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProviderController struct {
	ProviderService *service.ProviderService
}

func NewProviderController(providerService *service.ProviderService) *ProviderController {
	return &ProviderController{ProviderService: providerService}
}

func (c *ProviderController) handleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrProviderNotFound):
		util.NotFound(ctx, "No such provider")
	case errors.Is(err, util.ErrPatientNotFound):
		util.NotFound(ctx, "No such patient")
	case errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx, "No such assessment")
	case errors.Is(err, util.ErrNotOnCaseload):
		util.Forbidden(ctx, "Patient isn't on this provider's caseload")
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *ProviderController) Caseload(ctx *gin.Context) {
	patients, err := c.ProviderService.Caseload(ctx.Param("providerId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"patients": patients})
}

type onboardRequest struct {
	PatientID string `json:"patientId" binding:"required"`
}

func (c *ProviderController) OnboardPatient(ctx *gin.Context) {
	var req onboardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	link, err := c.ProviderService.OnboardPatient(ctx.Param("providerId"), req.PatientID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Created(ctx, link)
}

type assignRequest struct {
	AssessmentID string `json:"assessmentId" binding:"required"`
}

func (c *ProviderController) AssignAssessment(ctx *gin.Context) {
	var req assignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	instance, err := c.ProviderService.AssignAssessment(
		ctx.Param("providerId"), ctx.Param("patientId"), req.AssessmentID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"assessmentInstance": instance})
}

func (c *ProviderController) PatientInstances(ctx *gin.Context) {
	instances, err := c.ProviderService.InstancesForPatient(ctx.Param("providerId"), ctx.Param("patientId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessmentInstances": instances})
}
