package controller

import (
	"errors"

	"screener_backend/internal/service"
	"screener_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PatientController struct {
	SubmissionService *service.SubmissionService
}

func NewPatientController(submissionService *service.SubmissionService) *PatientController {
	return &PatientController{SubmissionService: submissionService}
}

func (c *PatientController) handleError(ctx *gin.Context, err error) {
	var incomplete *service.IncompleteSubmissionError
	switch {
	case errors.Is(err, util.ErrPatientNotFound):
		util.NotFound(ctx, "No such patient")
	case errors.Is(err, util.ErrInstanceNotFound):
		util.NotFound(ctx, "No such assessment instance")
	case errors.Is(err, util.ErrNotAssignedToPatient):
		util.Unprocessable(ctx, "Assessment isn't assigned to specified patient")
	case errors.Is(err, util.ErrQuestionNotFound):
		util.Unprocessable(ctx, "No such assessment question")
	case errors.Is(err, util.ErrAnswerNotFound):
		util.Unprocessable(ctx, "No such assessment answer")
	case errors.Is(err, util.ErrQuestionNotInTarget):
		util.Unprocessable(ctx, "Question isn't part of target assessment")
	case errors.Is(err, util.ErrAnswerNotInTarget):
		util.Unprocessable(ctx, "Answer isn't valid for target assessment")
	case errors.Is(err, util.ErrAlreadySubmitted):
		util.Unprocessable(ctx, "Assessment responses have already been submitted")
	case errors.Is(err, util.ErrAlreadyAnswered):
		util.Conflict(ctx, "Question has already been answered")
	case errors.As(err, &incomplete):
		util.Unprocessable(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func (c *PatientController) Instances(ctx *gin.Context) {
	instances, err := c.SubmissionService.InstancesForPatient(ctx.Param("patientId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessmentInstances": instances})
}

func (c *PatientController) Responses(ctx *gin.Context) {
	responses, err := c.SubmissionService.ResponsesForInstance(
		ctx.Param("patientId"), ctx.Param("assessmentInstanceId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"assessmentResponses": responses})
}

type responseRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	AnswerID   string `json:"answerId" binding:"required"`
}

func (c *PatientController) RecordResponse(ctx *gin.Context) {
	var req responseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	response, err := c.SubmissionService.RecordResponse(
		ctx.Param("patientId"), ctx.Param("assessmentInstanceId"),
		req.QuestionID, req.AnswerID)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"assessmentResponse": response})
}

func (c *PatientController) Submit(ctx *gin.Context) {
	result, err := c.SubmissionService.Submit(
		ctx.Request.Context(), ctx.Param("patientId"), ctx.Param("assessmentInstanceId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
