package service

import (
	"sync"
	"testing"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"
)

func TestAutomatedActionUserIDCreatesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemUserService(repository.NewUserRepository(db))

	first, err := svc.AutomatedActionUserID()
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if first == "" {
		t.Fatal("empty user id")
	}

	second, err := svc.AutomatedActionUserID()
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second != first {
		t.Fatalf("second call returned %s, want cached %s", second, first)
	}

	var users []model.User
	if err := db.Where("email = ?", AutomatedActionEmail).Find(&users).Error; err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("found %d system users, want 1", len(users))
	}
	if users[0].Type != model.UserTypeSystem {
		t.Fatalf("system user type %s, want %s", users[0].Type, model.UserTypeSystem)
	}
}

func TestAutomatedActionUserIDFindsExisting(t *testing.T) {
	db := newTestDB(t)

	existing := model.User{
		Type:       model.UserTypeSystem,
		GivenName:  "Automated",
		FamilyName: "Action",
		Email:      AutomatedActionEmail,
	}
	mustCreate(t, db, &existing)

	svc := NewSystemUserService(repository.NewUserRepository(db))
	id, err := svc.AutomatedActionUserID()
	if err != nil {
		t.Fatalf("AutomatedActionUserID: %v", err)
	}
	if id != existing.ID {
		t.Fatalf("got %s, want existing %s", id, existing.ID)
	}
}

func TestAutomatedActionUserIDConcurrent(t *testing.T) {
	db := newTestDB(t)
	svc := NewSystemUserService(repository.NewUserRepository(db))

	const goroutines = 8
	ids := make([]string, goroutines)
	errs := make([]error, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = svc.AutomatedActionUserID()
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("goroutine %d got %s, want %s", i, ids[i], ids[0])
		}
	}

	var count int64
	db.Model(&model.User{}).Where("email = ?", AutomatedActionEmail).Count(&count)
	if count != 1 {
		t.Fatalf("system user rows %d, want 1", count)
	}
}
