package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"
	"screener_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"screener_backend/pkg/logger"
)

const (
	assessmentListCacheKey   = "assessments:list"
	assessmentCacheKeyPrefix = "assessments:detail:"
	assessmentCacheTTL       = 10 * time.Minute
)

// SectionContent is a section with its shared answers and its questions, in
// display order.
type SectionContent struct {
	model.AssessmentSection
	Answers   []model.AssessmentAnswer   `json:"answers"`
	Questions []model.AssessmentQuestion `json:"questions"`
}

// AssessmentContent is the full deliverable form of an assessment, the shape
// a patient-facing client renders.
type AssessmentContent struct {
	model.Assessment
	Sections []SectionContent `json:"sections"`
}

// InstanceContent pairs an assessment instance with the content of the
// assessment it delivers.
type InstanceContent struct {
	model.AssessmentInstance
	Content *AssessmentContent `json:"content"`
}

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	InstanceRepo   *repository.InstanceRepository
	Redis          *redis.Client
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, instanceRepo *repository.InstanceRepository, rdb *redis.Client) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		InstanceRepo:   instanceRepo,
		Redis:          rdb,
	}
}

func (s *AssessmentService) ListAssessments(ctx context.Context) ([]model.Assessment, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, assessmentListCacheKey).Result()
		if err == nil {
			var cached []model.Assessment
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Assessment list cache read failed", zap.Error(err))
		}
	}

	assessments, err := s.AssessmentRepo.ListAssessments()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(assessments); err == nil {
			if err := s.Redis.Set(ctx, assessmentListCacheKey, data, assessmentCacheTTL).Err(); err != nil {
				logger.Log.Warn("Assessment list cache write failed", zap.Error(err))
			}
		}
	}
	return assessments, nil
}

// GetAssessmentContent loads an assessment with all its sections, answers and
// questions. Locked assessments never change, so the cached copy is safe for
// the full TTL.
func (s *AssessmentService) GetAssessmentContent(ctx context.Context, assessmentID string) (*AssessmentContent, error) {
	cacheKey := assessmentCacheKeyPrefix + assessmentID
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached AssessmentContent
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("Assessment cache read failed", zap.Error(err))
		}
	}

	assessment, err := s.AssessmentRepo.FindAssessmentByID(assessmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAssessmentNotFound
	} else if err != nil {
		return nil, err
	}

	sections, err := s.AssessmentRepo.SectionsForAssessment(assessmentID)
	if err != nil {
		return nil, err
	}

	content := &AssessmentContent{
		Assessment: *assessment,
		Sections:   make([]SectionContent, 0, len(sections)),
	}
	for _, section := range sections {
		answers, err := s.AssessmentRepo.AnswersForSection(section.ID)
		if err != nil {
			return nil, err
		}
		questions, err := s.AssessmentRepo.QuestionsForSection(section.ID)
		if err != nil {
			return nil, err
		}
		content.Sections = append(content.Sections, SectionContent{
			AssessmentSection: section,
			Answers:           answers,
			Questions:         questions,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(content); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, assessmentCacheTTL).Err(); err != nil {
				logger.Log.Warn("Assessment cache write failed", zap.Error(err))
			}
		}
	}
	return content, nil
}

// GetInstanceBySlug resolves the URL slug handed to a patient into the
// instance plus the deliverable content of its assessment.
func (s *AssessmentService) GetInstanceBySlug(ctx context.Context, slug string) (*InstanceContent, error) {
	instance, err := s.InstanceRepo.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInstanceNotFound
	} else if err != nil {
		return nil, err
	}

	content, err := s.GetAssessmentContent(ctx, instance.AssessmentID)
	if err != nil {
		return nil, err
	}
	return &InstanceContent{
		AssessmentInstance: *instance,
		Content:            content,
	}, nil
}
