package model

type AssessmentSectionType string

const (
	SectionTypeStandard AssessmentSectionType = "standard"
)

type AnswerValueType string

const (
	AnswerValueNumber AnswerValueType = "number"
	AnswerValueText   AnswerValueType = "text"
)

// Assessment is a named questionnaire (usually a standardized screener like
// the PHQ-9), divided into sections. Once an assessment has been sent to a
// patient it is locked and its content must not change; new revisions are
// created as separate assessments with a version suffix in the name.
type Assessment struct {
	UUIDBase
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	FullName    string `gorm:"size:255;unique;not null" json:"fullName"`
	DisplayName string `gorm:"size:255" json:"displayName"`
	DisorderID  string `gorm:"index;type:varchar(36);not null" json:"disorderId"`
	Locked      bool   `gorm:"default:false" json:"locked"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// AssessmentSection groups a subset of an assessment's questions. All
// questions in a section share the section's candidate answers.
type AssessmentSection struct {
	UUIDBase
	AssessmentID string                `gorm:"index;type:varchar(36);not null" json:"assessmentId"`
	Type         AssessmentSectionType `gorm:"size:50;not null" json:"type"`
	Title        string                `gorm:"type:text;not null" json:"title"`
}

func (AssessmentSection) TableName() string {
	return "assessment_sections"
}

// AssessmentQuestion belongs to a section and is tagged with the disorder it
// measures. The disorder tag is the filter key used by submission rules.
type AssessmentQuestion struct {
	UUIDBase
	AssessmentSectionID string `gorm:"index;type:varchar(36);not null" json:"assessmentSectionId"`
	DisorderID          string `gorm:"index;type:varchar(36);not null" json:"disorderId"`
	Title               string `gorm:"type:text;not null" json:"title"`
	DisplayOrder        int    `gorm:"not null" json:"displayOrder"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// AssessmentAnswer is a candidate answer shared by every question in its
// section. Value is stored as text; ValueType says how to interpret it.
type AssessmentAnswer struct {
	UUIDBase
	AssessmentSectionID string          `gorm:"index;type:varchar(36);not null" json:"assessmentSectionId"`
	Title               string          `gorm:"type:text;not null" json:"title"`
	ValueType           AnswerValueType `gorm:"size:20;not null" json:"valueType"`
	Value               string          `gorm:"size:255;not null" json:"value"`
	DisplayOrder        int             `gorm:"not null" json:"displayOrder"`
}

func (AssessmentAnswer) TableName() string {
	return "assessment_answers"
}
