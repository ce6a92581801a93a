package database

import (
	"fmt"
	"testing"

	"screener_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
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

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func countWhere(t *testing.T, db *gorm.DB, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := db.Model(value)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("count %T: %v", value, err)
	}
	return count
}

func TestSeedReferenceData(t *testing.T) {
	db := newTestDB(t)

	if err := SeedReferenceData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if got := countWhere(t, db, &model.Disorder{}, ""); got != 5 {
		t.Fatalf("disorders %d, want 5", got)
	}
	if got := countWhere(t, db, &model.Assessment{}, ""); got != 4 {
		t.Fatalf("assessments %d, want 4", got)
	}

	var screener model.Assessment
	if err := db.Where("name = ?", "CCDS").First(&screener).Error; err != nil {
		t.Fatalf("load screener: %v", err)
	}
	if !screener.Locked {
		t.Fatal("screener is not locked")
	}

	sectionCounts := map[string]int64{
		"CCDS":   1,
		"PHQ-9":  1,
		"ASRM":   5,
		"ASSIST": 1,
	}
	questionCounts := map[string]int64{
		"CCDS":   8,
		"PHQ-9":  9,
		"ASRM":   5,
		"ASSIST": 10,
	}
	for name, want := range sectionCounts {
		var a model.Assessment
		if err := db.Where("name = ?", name).First(&a).Error; err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		got := countWhere(t, db, &model.AssessmentSection{}, "assessment_id = ?", a.ID)
		if got != want {
			t.Fatalf("%s sections %d, want %d", name, got, want)
		}

		var questions int64
		err := db.Table("assessment_questions").
			Joins("JOIN assessment_sections ON assessment_sections.id = assessment_questions.assessment_section_id").
			Where("assessment_sections.assessment_id = ?", a.ID).
			Count(&questions).Error
		if err != nil {
			t.Fatalf("count %s questions: %v", name, err)
		}
		if questions != questionCounts[name] {
			t.Fatalf("%s questions %d, want %d", name, questions, questionCounts[name])
		}
	}

	if got := countWhere(t, db, &model.SubmissionRule{}, "assessment_id = ?", screener.ID); got != 4 {
		t.Fatalf("screener rules %d, want 4", got)
	}

	// Demo users, caseload link and one pre-sent screener instance.
	if got := countWhere(t, db, &model.User{}, "type = ?", model.UserTypeProvider); got != 1 {
		t.Fatalf("providers %d, want 1", got)
	}
	if got := countWhere(t, db, &model.User{}, "type = ?", model.UserTypePatient); got != 1 {
		t.Fatalf("patients %d, want 1", got)
	}
	if got := countWhere(t, db, &model.PatientProvider{}, ""); got != 1 {
		t.Fatalf("caseload links %d, want 1", got)
	}
	if got := countWhere(t, db, &model.AssessmentInstance{}, "assessment_id = ?", screener.ID); got != 1 {
		t.Fatalf("screener instances %d, want 1", got)
	}
}

func TestSeedReferenceDataIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := SeedReferenceData(db); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedReferenceData(db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if got := countWhere(t, db, &model.Disorder{}, ""); got != 5 {
		t.Fatalf("disorders %d after reseed, want 5", got)
	}
	if got := countWhere(t, db, &model.Assessment{}, ""); got != 4 {
		t.Fatalf("assessments %d after reseed, want 4", got)
	}
}
