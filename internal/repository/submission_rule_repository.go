package repository

import (
	"screener_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRuleRepository struct {
	DB *gorm.DB
}

func NewSubmissionRuleRepository(db *gorm.DB) *SubmissionRuleRepository {
	return &SubmissionRuleRepository{DB: db}
}

func (r *SubmissionRuleRepository) ForAssessment(assessmentID string) ([]model.SubmissionRule, error) {
	var rules []model.SubmissionRule
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("created_at asc").
		Find(&rules).Error
	return rules, err
}
