package controller

import (
	"errors"

	"screener_backend/internal/service"
	"screener_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

func (c *AssessmentController) List(ctx *gin.Context) {
	assessments, err := c.AssessmentService.ListAssessments(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessments": assessments})
}

func (c *AssessmentController) GetContent(ctx *gin.Context) {
	content, err := c.AssessmentService.GetAssessmentContent(ctx.Request.Context(), ctx.Param("assessmentId"))
	if errors.Is(err, util.ErrAssessmentNotFound) {
		util.NotFound(ctx, "No such assessment")
		return
	} else if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// GetBySlug resolves the link a patient received into the instance and the
// assessment content to render. This route is unauthenticated: possession of
// the slug is the credential.
func (c *AssessmentController) GetBySlug(ctx *gin.Context) {
	instance, err := c.AssessmentService.GetInstanceBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if errors.Is(err, util.ErrInstanceNotFound) {
		util.NotFound(ctx, "No such assessment instance")
		return
	} else if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, instance)
}
