package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"
	"screener_backend/internal/util"

	"gorm.io/gorm"
)

// SubmissionService handles the patient side of an assessment instance:
// recording responses one question at a time and submitting the completed
// instance, which triggers rule evaluation.
type SubmissionService struct {
	UserRepo       *repository.UserRepository
	AssessmentRepo *repository.AssessmentRepository
	InstanceRepo   *repository.InstanceRepository
	RuleEngine     *RuleEngineService
}

func NewSubmissionService(userRepo *repository.UserRepository, assessmentRepo *repository.AssessmentRepository, instanceRepo *repository.InstanceRepository, ruleEngine *RuleEngineService) *SubmissionService {
	return &SubmissionService{
		UserRepo:       userRepo,
		AssessmentRepo: assessmentRepo,
		InstanceRepo:   instanceRepo,
		RuleEngine:     ruleEngine,
	}
}

// SubmissionResult is what a successful submission returns to the client.
type SubmissionResult struct {
	Instance                    *model.AssessmentInstance `json:"assessmentInstance"`
	FollowUpAssessmentsAssigned []string                  `json:"followUpAssessmentsAssigned"`
}

func (s *SubmissionService) findPatient(patientID string) (*model.User, error) {
	patient, err := s.UserRepo.FindByID(patientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPatientNotFound
	} else if err != nil {
		return nil, err
	}
	return patient, nil
}

// instanceForPatient loads the instance and checks it is assigned to the
// patient. The not-found check runs before the ownership check so a bad
// instance id never reveals another patient's assignment.
func (s *SubmissionService) instanceForPatient(patientID, instanceID string) (*model.AssessmentInstance, error) {
	if _, err := s.findPatient(patientID); err != nil {
		return nil, err
	}
	instance, err := s.InstanceRepo.FindByID(instanceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInstanceNotFound
	} else if err != nil {
		return nil, err
	}
	if instance.PatientID != patientID {
		return nil, util.ErrNotAssignedToPatient
	}
	return instance, nil
}

func (s *SubmissionService) InstancesForPatient(patientID string) ([]model.AssessmentInstance, error) {
	if _, err := s.findPatient(patientID); err != nil {
		return nil, err
	}
	return s.InstanceRepo.ForPatient(patientID)
}

func (s *SubmissionService) ResponsesForInstance(patientID, instanceID string) ([]model.AssessmentResponse, error) {
	instance, err := s.instanceForPatient(patientID, instanceID)
	if err != nil {
		return nil, err
	}
	return s.InstanceRepo.ResponsesForInstance(instance.ID)
}

// RecordResponse stores the patient's selected answer for one question. The
// question and answer must both belong to the instance's assessment, the
// instance must not have been submitted, and each question can only be
// answered once.
func (s *SubmissionService) RecordResponse(patientID, instanceID, questionID, answerID string) (*model.AssessmentResponse, error) {
	instance, err := s.instanceForPatient(patientID, instanceID)
	if err != nil {
		return nil, err
	}
	if instance.SubmittedAt != nil {
		return nil, util.ErrAlreadySubmitted
	}

	if _, err := s.AssessmentRepo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if _, err := s.AssessmentRepo.FindAnswerByID(answerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAnswerNotFound
		}
		return nil, err
	}

	inAssessment, err := s.AssessmentRepo.QuestionInAssessment(questionID, instance.AssessmentID)
	if err != nil {
		return nil, err
	}
	if !inAssessment {
		return nil, util.ErrQuestionNotInTarget
	}
	inAssessment, err = s.AssessmentRepo.AnswerInAssessment(answerID, instance.AssessmentID)
	if err != nil {
		return nil, err
	}
	if !inAssessment {
		return nil, util.ErrAnswerNotInTarget
	}

	response := &model.AssessmentResponse{
		AssessmentInstanceID: instance.ID,
		QuestionID:           questionID,
		AnswerID:             answerID,
	}
	err = s.InstanceRepo.CreateResponse(response)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrAlreadyAnswered
	} else if err != nil {
		return nil, err
	}
	return response, nil
}

// MissingQuestions returns the ids of the instance's assessment questions
// that have no recorded response yet. An empty result means the instance is
// complete and ready to submit.
func (s *SubmissionService) MissingQuestions(instance *model.AssessmentInstance) ([]string, error) {
	responses, err := s.InstanceRepo.ResponsesForInstance(instance.ID)
	if err != nil {
		return nil, err
	}
	answered := make(map[string]bool, len(responses))
	for _, response := range responses {
		answered[response.QuestionID] = true
	}

	questions, err := s.AssessmentRepo.QuestionsForAssessment(instance.AssessmentID)
	if err != nil {
		return nil, err
	}
	missing := []string{}
	for _, question := range questions {
		if !answered[question.ID] {
			missing = append(missing, question.ID)
		}
	}
	return missing, nil
}

// IncompleteSubmissionError reports how many questions are still unanswered.
type IncompleteSubmissionError struct {
	MissingQuestionIDs []string
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("%d assessment questions haven't been answered yet", len(e.MissingQuestionIDs))
}

// Submit validates the instance, runs the assessment's submission rules, and
// marks the instance submitted. Existence and already-submitted checks come
// before the completeness check, and nothing is written unless every check
// passes.
func (s *SubmissionService) Submit(ctx context.Context, patientID, instanceID string) (*SubmissionResult, error) {
	instance, err := s.instanceForPatient(patientID, instanceID)
	if err != nil {
		return nil, err
	}
	if instance.SubmittedAt != nil {
		return nil, util.ErrAlreadySubmitted
	}

	missing, err := s.MissingQuestions(instance)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &IncompleteSubmissionError{MissingQuestionIDs: missing}
	}

	assigned, err := s.RuleEngine.RunRules(ctx, instance)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.InstanceRepo.MarkSubmitted(instance.ID, now); err != nil {
		return nil, err
	}
	instance.SubmittedAt = &now

	return &SubmissionResult{
		Instance:                    instance,
		FollowUpAssessmentsAssigned: assigned,
	}, nil
}
