package service

import (
	"fmt"
	"testing"
	"time"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"
	"screener_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"screener_backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Disorder{},
		&model.Assessment{},
		&model.AssessmentSection{},
		&model.AssessmentQuestion{},
		&model.AssessmentAnswer{},
		&model.AssessmentInstance{},
		&model.AssessmentResponse{},
		&model.PatientProvider{},
		&model.SubmissionRule{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testCatalog is a small two-assessment catalog: a screener with three
// questions in one disorder domain, and a follow-up assessment a rule can
// assign.
type testCatalog struct {
	disorder  model.Disorder
	screener  model.Assessment
	followUp  model.Assessment
	questions []model.AssessmentQuestion
	answers   []model.AssessmentAnswer
	provider  model.User
	patient   model.User
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

func seedTestCatalog(t *testing.T, db *gorm.DB) *testCatalog {
	t.Helper()
	c := &testCatalog{}

	c.disorder = model.Disorder{Name: "worry", DisplayName: "Worry"}
	mustCreate(t, db, &c.disorder)

	c.screener = model.Assessment{Name: "SCREEN", FullName: "General Screener", DisplayName: "Screener", DisorderID: c.disorder.ID, Locked: true}
	mustCreate(t, db, &c.screener)
	c.followUp = model.Assessment{Name: "FOLLOW", FullName: "Follow-Up Scale", DisplayName: "Follow-Up", DisorderID: c.disorder.ID}
	mustCreate(t, db, &c.followUp)

	section := model.AssessmentSection{AssessmentID: c.screener.ID, Type: model.SectionTypeStandard, Title: "Over the past week..."}
	mustCreate(t, db, &section)

	for i, value := range []string{"0", "1", "2"} {
		answer := model.AssessmentAnswer{
			AssessmentSectionID: section.ID,
			Title:               fmt.Sprintf("Answer %d", i),
			ValueType:           model.AnswerValueNumber,
			Value:               value,
			DisplayOrder:        i,
		}
		mustCreate(t, db, &answer)
		c.answers = append(c.answers, answer)
	}

	for i := 0; i < 3; i++ {
		question := model.AssessmentQuestion{
			AssessmentSectionID: section.ID,
			DisorderID:          c.disorder.ID,
			Title:               fmt.Sprintf("Question %d", i),
			DisplayOrder:        i,
		}
		mustCreate(t, db, &question)
		c.questions = append(c.questions, question)
	}

	c.provider = model.User{Type: model.UserTypeProvider, GivenName: "Pat", FamilyName: "Provider", Email: "provider@test.local"}
	mustCreate(t, db, &c.provider)
	c.patient = model.User{Type: model.UserTypePatient, GivenName: "Quinn", FamilyName: "Patient", Email: "patient@test.local"}
	mustCreate(t, db, &c.patient)
	mustCreate(t, db, &model.PatientProvider{PatientID: c.patient.ID, ProviderID: c.provider.ID, OnboardedAt: time.Now()})

	return c
}

// newInstance assigns the screener to the catalog's patient.
func (c *testCatalog) newInstance(t *testing.T, db *gorm.DB) *model.AssessmentInstance {
	t.Helper()
	now := time.Now()
	instance := &model.AssessmentInstance{
		ProviderID:   c.provider.ID,
		PatientID:    c.patient.ID,
		AssessmentID: c.screener.ID,
		Slug:         util.GenerateSlug(),
		SentAt:       &now,
	}
	mustCreate(t, db, instance)
	return instance
}

// answerAll records the answer at answerIdx for every screener question.
func (c *testCatalog) answerAll(t *testing.T, db *gorm.DB, instance *model.AssessmentInstance, answerIdx int) {
	t.Helper()
	for _, question := range c.questions {
		mustCreate(t, db, &model.AssessmentResponse{
			AssessmentInstanceID: instance.ID,
			QuestionID:           question.ID,
			AnswerID:             c.answers[answerIdx].ID,
		})
	}
}

// assignRule configures: sum of responses in the disorder domain compared to
// threshold assigns the follow-up.
func (c *testCatalog) assignRule(t *testing.T, db *gorm.DB, op model.SubmissionRuleEvalOp, threshold string) *model.SubmissionRule {
	t.Helper()
	rule := &model.SubmissionRule{
		AssessmentID:   c.screener.ID,
		FilterType:     model.FilterQuestionDomain,
		FilterValue:    c.disorder.ID,
		ScoreOperation: model.ScoreOpSum,
		EvalOperation:  op,
		EvalValue:      threshold,
		ActionType:     model.ActionAssignAssessment,
		ActionValue:    c.followUp.ID,
	}
	mustCreate(t, db, rule)
	return rule
}

func newRuleEngine(db *gorm.DB) *RuleEngineService {
	userRepo := repository.NewUserRepository(db)
	return NewRuleEngineService(
		repository.NewSubmissionRuleRepository(db),
		repository.NewInstanceRepository(db),
		repository.NewAssessmentRepository(db),
		NewSystemUserService(userRepo),
	)
}
