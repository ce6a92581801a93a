package repository

import (
	"time"

	"screener_backend/internal/model"

	"gorm.io/gorm"
)

type InstanceRepository struct {
	DB *gorm.DB
}

func NewInstanceRepository(db *gorm.DB) *InstanceRepository {
	return &InstanceRepository{DB: db}
}

func (r *InstanceRepository) Create(instance *model.AssessmentInstance) error {
	return r.DB.Create(instance).Error
}

func (r *InstanceRepository) FindByID(id string) (*model.AssessmentInstance, error) {
	var instance model.AssessmentInstance
	err := r.DB.Where("id = ?", id).First(&instance).Error
	return &instance, err
}

func (r *InstanceRepository) FindBySlug(slug string) (*model.AssessmentInstance, error) {
	var instance model.AssessmentInstance
	err := r.DB.Where("slug = ?", slug).First(&instance).Error
	return &instance, err
}

func (r *InstanceRepository) ForPatient(patientID string) ([]model.AssessmentInstance, error) {
	var instances []model.AssessmentInstance
	err := r.DB.Where("patient_id = ?", patientID).
		Order("sent_at desc").
		Find(&instances).Error
	return instances, err
}

func (r *InstanceRepository) MarkSubmitted(id string, submittedAt time.Time) error {
	return r.DB.Model(&model.AssessmentInstance{}).
		Where("id = ? AND submitted_at IS NULL", id).
		Update("submitted_at", submittedAt).Error
}

// CountAssignmentsInWindow counts instances of an assessment sent by a
// provider to a patient with sent_at inside [from, to). The rule engine's
// assignment dedup is a calendar-day window over this count.
func (r *InstanceRepository) CountAssignmentsInWindow(providerID, patientID, assessmentID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AssessmentInstance{}).
		Where("provider_id = ? AND patient_id = ? AND assessment_id = ?", providerID, patientID, assessmentID).
		Where("sent_at >= ? AND sent_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *InstanceRepository) CreateResponse(response *model.AssessmentResponse) error {
	return r.DB.Create(response).Error
}

func (r *InstanceRepository) ResponsesForInstance(instanceID string) ([]model.AssessmentResponse, error) {
	var responses []model.AssessmentResponse
	err := r.DB.Where("assessment_instance_id = ?", instanceID).
		Find(&responses).Error
	return responses, err
}

// ScoredResponses loads the instance's responses joined to the disorder of
// each question and the value of each selected answer, which is everything
// the rule engine needs in a single query.
func (r *InstanceRepository) ScoredResponses(instanceID string) ([]model.ScoredResponse, error) {
	var rows []model.ScoredResponse
	err := r.DB.Table("assessment_responses").
		Select("assessment_responses.id as response_id, assessment_questions.disorder_id, assessment_answers.value_type, assessment_answers.value").
		Joins("JOIN assessment_questions ON assessment_questions.id = assessment_responses.question_id").
		Joins("JOIN assessment_answers ON assessment_answers.id = assessment_responses.answer_id").
		Where("assessment_responses.assessment_instance_id = ?", instanceID).
		Scan(&rows).Error
	return rows, err
}
