package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"
	"screener_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"screener_backend/pkg/logger"
	"screener_backend/pkg/monitoring"
	"screener_backend/pkg/tracing"
)

// RuleEngineService evaluates an assessment's submission rules when one of
// its instances is submitted, assigning follow-up assessments as the system
// actor. Rules are trusted configuration: any malformed rule aborts the whole
// run with an error rather than being skipped.
type RuleEngineService struct {
	RuleRepo       *repository.SubmissionRuleRepository
	InstanceRepo   *repository.InstanceRepository
	AssessmentRepo *repository.AssessmentRepository
	SystemUsers    *SystemUserService
}

func NewRuleEngineService(ruleRepo *repository.SubmissionRuleRepository, instanceRepo *repository.InstanceRepository, assessmentRepo *repository.AssessmentRepository, systemUsers *SystemUserService) *RuleEngineService {
	return &RuleEngineService{
		RuleRepo:       ruleRepo,
		InstanceRepo:   instanceRepo,
		AssessmentRepo: assessmentRepo,
		SystemUsers:    systemUsers,
	}
}

// RunRules evaluates every rule configured for the instance's assessment and
// returns the names of the follow-up assessments assigned, without
// duplicates. Assignments already made today for the same patient and target
// are suppressed and excluded from the result.
func (s *RuleEngineService) RunRules(ctx context.Context, instance *model.AssessmentInstance) ([]string, error) {
	ctx, span := tracing.Tracer.Start(ctx, "rule_engine.run")
	defer span.End()

	rules, err := s.RuleRepo.ForAssessment(instance.AssessmentID)
	if err != nil {
		return nil, err
	}
	assigned := []string{}
	if len(rules) == 0 {
		return assigned, nil
	}

	responses, err := s.InstanceRepo.ScoredResponses(instance.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, rule := range rules {
		monitoring.RulesEvaluated.WithLabelValues(instance.AssessmentID).Inc()

		filtered, err := applyFilter(rule, responses)
		if err != nil {
			return nil, err
		}
		score, err := computeScore(rule, filtered)
		if err != nil {
			return nil, err
		}
		hit, err := evalScore(rule, score)
		if err != nil {
			return nil, err
		}
		if !hit {
			continue
		}

		name, err := s.performAction(ctx, rule, instance)
		if err != nil {
			return nil, err
		}
		if name != "" && !seen[name] {
			seen[name] = true
			assigned = append(assigned, name)
		}
	}
	return assigned, nil
}

func applyFilter(rule model.SubmissionRule, responses []model.ScoredResponse) ([]model.ScoredResponse, error) {
	switch rule.FilterType {
	case model.FilterQuestionDomain:
		filtered := make([]model.ScoredResponse, 0, len(responses))
		for _, response := range responses {
			if response.DisorderID == rule.FilterValue {
				filtered = append(filtered, response)
			}
		}
		return filtered, nil
	default:
		return nil, fmt.Errorf("submission rule %s: unrecognized filter type %q", rule.ID, rule.FilterType)
	}
}

func computeScore(rule model.SubmissionRule, responses []model.ScoredResponse) (float64, error) {
	switch rule.ScoreOperation {
	case model.ScoreOpSum:
		var sum float64
		for _, response := range responses {
			if response.ValueType != model.AnswerValueNumber {
				return 0, fmt.Errorf("submission rule %s: cannot sum non-numeric answer for response %s", rule.ID, response.ResponseID)
			}
			value, err := strconv.ParseFloat(response.Value, 64)
			if err != nil {
				return 0, fmt.Errorf("submission rule %s: invalid numeric answer value %q", rule.ID, response.Value)
			}
			sum += value
		}
		return sum, nil
	default:
		return 0, fmt.Errorf("submission rule %s: unrecognized score operation %q", rule.ID, rule.ScoreOperation)
	}
}

func evalScore(rule model.SubmissionRule, score float64) (bool, error) {
	threshold, err := strconv.ParseFloat(rule.EvalValue, 64)
	if err != nil {
		return false, fmt.Errorf("submission rule %s: invalid eval value %q", rule.ID, rule.EvalValue)
	}
	switch rule.EvalOperation {
	case model.EvalOpEqual:
		return score == threshold, nil
	case model.EvalOpGreaterThan:
		return score > threshold, nil
	case model.EvalOpGreaterThanOrEqual:
		return score >= threshold, nil
	case model.EvalOpLessThan:
		return score < threshold, nil
	case model.EvalOpLessThanOrEqual:
		return score <= threshold, nil
	default:
		return false, fmt.Errorf("submission rule %s: unrecognized eval operation %q", rule.ID, rule.EvalOperation)
	}
}

// performAction executes a triggered rule's action. For assign_assessment it
// creates a fresh instance sent by the system actor, unless one for the same
// patient and target assessment was already sent today, in which case nothing
// is written and the empty string is returned.
func (s *RuleEngineService) performAction(ctx context.Context, rule model.SubmissionRule, instance *model.AssessmentInstance) (string, error) {
	switch rule.ActionType {
	case model.ActionAssignAssessment:
		target, err := s.AssessmentRepo.FindAssessmentByID(rule.ActionValue)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("submission rule %s: action targets unknown assessment %q", rule.ID, rule.ActionValue)
		} else if err != nil {
			return "", err
		}

		systemActorID, err := s.SystemUsers.AutomatedActionUserID()
		if err != nil {
			return "", err
		}

		now := time.Now()
		count, err := s.InstanceRepo.CountAssignmentsInWindow(
			systemActorID, instance.PatientID, target.ID,
			util.StartOfDay(now), util.StartOfDay(now, 1))
		if err != nil {
			return "", err
		}
		if count > 0 {
			monitoring.FollowUpsDeduplicated.Inc()
			logger.Log.Info("Follow-up already assigned today, skipping",
				zap.String("patientId", instance.PatientID),
				zap.String("assessment", target.Name))
			return "", nil
		}

		created := &model.AssessmentInstance{
			ProviderID:   systemActorID,
			PatientID:    instance.PatientID,
			AssessmentID: target.ID,
			Slug:         util.GenerateSlug(),
			SentAt:       &now,
		}
		if err := s.InstanceRepo.Create(created); err != nil {
			return "", err
		}
		monitoring.FollowUpsAssigned.Inc()
		logger.Log.Info("Assigned follow-up assessment",
			zap.String("patientId", instance.PatientID),
			zap.String("assessment", target.Name),
			zap.String("instanceId", created.ID))
		return target.Name, nil
	default:
		return "", fmt.Errorf("submission rule %s: unrecognized action type %q", rule.ID, rule.ActionType)
	}
}
