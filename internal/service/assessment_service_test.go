package service

import (
	"context"
	"errors"
	"testing"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"
	"screener_backend/internal/util"

	"gorm.io/gorm"
)

func newAssessmentService(db *gorm.DB) *AssessmentService {
	return NewAssessmentService(
		repository.NewAssessmentRepository(db),
		repository.NewInstanceRepository(db),
		nil,
	)
}

func TestGetAssessmentContent(t *testing.T) {
	db := newTestDB(t)
	catalog := seedTestCatalog(t, db)
	svc := newAssessmentService(db)

	content, err := svc.GetAssessmentContent(context.Background(), catalog.screener.ID)
	if err != nil {
		t.Fatalf("GetAssessmentContent: %v", err)
	}
	if content.Name != catalog.screener.Name {
		t.Fatalf("content for %s, want %s", content.Name, catalog.screener.Name)
	}
	if len(content.Sections) != 1 {
		t.Fatalf("sections %d, want 1", len(content.Sections))
	}
	section := content.Sections[0]
	if len(section.Questions) != 3 {
		t.Fatalf("questions %d, want 3", len(section.Questions))
	}
	if len(section.Answers) != 3 {
		t.Fatalf("answers %d, want 3", len(section.Answers))
	}
	for i := 1; i < len(section.Questions); i++ {
		if section.Questions[i].DisplayOrder < section.Questions[i-1].DisplayOrder {
			t.Fatal("questions not in display order")
		}
	}

	if _, err := svc.GetAssessmentContent(context.Background(), model.GenerateUUID()); !errors.Is(err, util.ErrAssessmentNotFound) {
		t.Fatalf("unknown assessment got %v, want ErrAssessmentNotFound", err)
	}
}

func TestGetInstanceBySlug(t *testing.T) {
	db := newTestDB(t)
	catalog := seedTestCatalog(t, db)
	svc := newAssessmentService(db)

	instance := catalog.newInstance(t, db)

	got, err := svc.GetInstanceBySlug(context.Background(), instance.Slug)
	if err != nil {
		t.Fatalf("GetInstanceBySlug: %v", err)
	}
	if got.ID != instance.ID {
		t.Fatalf("resolved instance %s, want %s", got.ID, instance.ID)
	}
	if got.Content == nil || got.Content.ID != catalog.screener.ID {
		t.Fatal("instance content missing or for wrong assessment")
	}

	if _, err := svc.GetInstanceBySlug(context.Background(), "nosuchsl"); !errors.Is(err, util.ErrInstanceNotFound) {
		t.Fatalf("unknown slug got %v, want ErrInstanceNotFound", err)
	}
}

func TestListAssessments(t *testing.T) {
	db := newTestDB(t)
	catalog := seedTestCatalog(t, db)
	svc := newAssessmentService(db)

	assessments, err := svc.ListAssessments(context.Background())
	if err != nil {
		t.Fatalf("ListAssessments: %v", err)
	}
	if len(assessments) != 2 {
		t.Fatalf("assessments %d, want 2", len(assessments))
	}
	names := map[string]bool{assessments[0].Name: true, assessments[1].Name: true}
	if !names[catalog.screener.Name] || !names[catalog.followUp.Name] {
		t.Fatalf("assessment names %v", names)
	}
}
