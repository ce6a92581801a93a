package util

import "errors"

var (
	ErrUserNotFound         = errors.New("no such user")
	ErrPatientNotFound      = errors.New("no such patient")
	ErrProviderNotFound     = errors.New("no such provider")
	ErrAssessmentNotFound   = errors.New("no such assessment")
	ErrInstanceNotFound     = errors.New("no such assessment instance")
	ErrQuestionNotFound     = errors.New("no such assessment question")
	ErrAnswerNotFound       = errors.New("no such assessment answer")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNotOnCaseload        = errors.New("patient isn't assigned to provider")
	ErrNotAssignedToPatient = errors.New("assessment isn't assigned to specified patient")
	ErrQuestionNotInTarget  = errors.New("question isn't part of target assessment")
	ErrAnswerNotInTarget    = errors.New("answer isn't valid for target assessment")
	ErrAlreadySubmitted     = errors.New("assessment responses have already been submitted")
	ErrAlreadyAnswered      = errors.New("question has already been answered for this instance")
)
