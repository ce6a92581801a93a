package model

// The four rule dimensions are closed string enums. Each recognized value has
// a constant here and exactly one case in the engine's switches; anything
// else is a configuration error that fails the whole run.

type SubmissionRuleFilterType string

const (
	FilterQuestionDomain SubmissionRuleFilterType = "question_domain"
)

type SubmissionRuleScoreOp string

const (
	ScoreOpSum SubmissionRuleScoreOp = "sum"
)

type SubmissionRuleEvalOp string

const (
	EvalOpEqual              SubmissionRuleEvalOp = "eq"
	EvalOpGreaterThan        SubmissionRuleEvalOp = "gt"
	EvalOpGreaterThanOrEqual SubmissionRuleEvalOp = "geq"
	EvalOpLessThan           SubmissionRuleEvalOp = "lt"
	EvalOpLessThanOrEqual    SubmissionRuleEvalOp = "leq"
)

type SubmissionRuleActionType string

const (
	ActionAssignAssessment SubmissionRuleActionType = "assign_assessment"
)

// SubmissionRule is declarative configuration evaluated when an instance of
// its assessment is submitted: filter the responses, score them, compare the
// score, and if the comparison holds perform the action. The engine only ever
// reads these rows.
type SubmissionRule struct {
	UUIDBase
	AssessmentID string `gorm:"index;type:varchar(36);not null" json:"assessmentId"`

	FilterType  SubmissionRuleFilterType `gorm:"size:50;not null" json:"filterType"`
	FilterValue string                   `gorm:"size:255;not null" json:"filterValue"`

	ScoreOperation SubmissionRuleScoreOp `gorm:"size:50;not null" json:"scoreOperation"`

	EvalOperation SubmissionRuleEvalOp `gorm:"size:20;not null" json:"evalOperation"`
	EvalValue     string               `gorm:"size:255;not null" json:"evalValue"`

	ActionType  SubmissionRuleActionType `gorm:"size:50;not null" json:"actionType"`
	ActionValue string                   `gorm:"size:255;not null" json:"actionValue"`
}

func (SubmissionRule) TableName() string {
	return "submission_rules"
}

// ScoredResponse is one row of the joined view the rule engine works on: a
// response joined to its question's disorder and its answer's value.
type ScoredResponse struct {
	ResponseID string          `json:"responseId"`
	DisorderID string          `json:"disorderId"`
	ValueType  AnswerValueType `json:"valueType"`
	Value      string          `json:"value"`
}
