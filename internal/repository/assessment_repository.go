package repository

import (
	"screener_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) ListAssessments() ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Order("name asc").Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) FindAssessmentByID(id string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *AssessmentRepository) FindAssessmentByName(name string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("name = ?", name).First(&a).Error
	return &a, err
}

func (r *AssessmentRepository) SectionsForAssessment(assessmentID string) ([]model.AssessmentSection, error) {
	var sections []model.AssessmentSection
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("created_at asc").
		Find(&sections).Error
	return sections, err
}

func (r *AssessmentRepository) QuestionsForSection(sectionID string) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.Where("assessment_section_id = ?", sectionID).
		Order("display_order asc").
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) AnswersForSection(sectionID string) ([]model.AssessmentAnswer, error) {
	var as []model.AssessmentAnswer
	err := r.DB.Where("assessment_section_id = ?", sectionID).
		Order("display_order asc").
		Find(&as).Error
	return as, err
}

// QuestionsForAssessment returns every question across all of the
// assessment's sections.
func (r *AssessmentRepository) QuestionsForAssessment(assessmentID string) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.Table("assessment_questions").
		Select("assessment_questions.*").
		Joins("JOIN assessment_sections ON assessment_sections.id = assessment_questions.assessment_section_id").
		Where("assessment_sections.assessment_id = ?", assessmentID).
		Order("assessment_sections.created_at asc, assessment_questions.display_order asc").
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) QuestionInAssessment(questionID, assessmentID string) (bool, error) {
	var count int64
	err := r.DB.Table("assessment_questions").
		Joins("JOIN assessment_sections ON assessment_sections.id = assessment_questions.assessment_section_id").
		Where("assessment_questions.id = ? AND assessment_sections.assessment_id = ?", questionID, assessmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssessmentRepository) AnswerInAssessment(answerID, assessmentID string) (bool, error) {
	var count int64
	err := r.DB.Table("assessment_answers").
		Joins("JOIN assessment_sections ON assessment_sections.id = assessment_answers.assessment_section_id").
		Where("assessment_answers.id = ? AND assessment_sections.assessment_id = ?", answerID, assessmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssessmentRepository) FindQuestionByID(id string) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := r.DB.Where("id = ?", id).First(&q).Error
	return &q, err
}

func (r *AssessmentRepository) FindAnswerByID(id string) (*model.AssessmentAnswer, error) {
	var a model.AssessmentAnswer
	err := r.DB.Where("id = ?", id).First(&a).Error
	return &a, err
}
