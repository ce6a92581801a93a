package model

import "time"

// AssessmentInstance is one assignment of an assessment to a patient by a
// provider (or by the automated system actor). The slug forms the URL handed
// to the patient. SubmittedAt stays nil until the patient submits; the
// transition is one-way.
type AssessmentInstance struct {
	UUIDBase
	ProviderID   string     `gorm:"index;type:varchar(36);not null" json:"providerId"`
	PatientID    string     `gorm:"index;type:varchar(36);not null" json:"patientId"`
	AssessmentID string     `gorm:"index;type:varchar(36);not null" json:"assessmentId"`
	Slug         string     `gorm:"size:36;unique;not null" json:"slug"`
	SentAt       *time.Time `json:"sentAt"`
	SubmittedAt  *time.Time `json:"submittedAt"`
}

func (AssessmentInstance) TableName() string {
	return "assessment_instances"
}

// AssessmentResponse records the answer a patient selected for one question
// of an instance. At most one response per (instance, question) pair.
type AssessmentResponse struct {
	UUIDBase
	AssessmentInstanceID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_responses_instance_question" json:"assessmentInstanceId"`
	QuestionID           string `gorm:"index;type:varchar(36);not null;uniqueIndex:idx_responses_instance_question" json:"questionId"`
	AnswerID             string `gorm:"type:varchar(36);not null" json:"answerId"`
}

func (AssessmentResponse) TableName() string {
	return "assessment_responses"
}

// PatientProvider links a patient to a provider's caseload. A nil
// OffboardedAt means the patient is currently on the caseload.
type PatientProvider struct {
	UUIDBase
	PatientID    string     `gorm:"index;type:varchar(36);not null" json:"patientId"`
	ProviderID   string     `gorm:"index;type:varchar(36);not null" json:"providerId"`
	OnboardedAt  time.Time  `gorm:"not null" json:"onboardedAt"`
	OffboardedAt *time.Time `json:"offboardedAt"`
}

func (PatientProvider) TableName() string {
	return "patient_providers"
}
