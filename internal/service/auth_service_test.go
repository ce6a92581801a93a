package service

import (
	"errors"
	"testing"
	"time"

	"screener_backend/internal/config"
	"screener_backend/internal/model"
	"screener_backend/internal/repository"
	"screener_backend/internal/util"

	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{
		Type:       model.UserTypeProvider,
		GivenName:  "Sam",
		FamilyName: "Clinician",
		Email:      "sam@test.local",
		Password:   "hunter22",
	}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	token, loggedIn, err := svc.Login("sam@test.local", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("logged in as %s, want %s", loggedIn.ID, user.ID)
	}

	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-secret!")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.UserType != model.UserTypeProvider {
		t.Fatalf("claims %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	first := &model.User{Type: model.UserTypePatient, GivenName: "A", FamilyName: "B", Email: "dup@test.local", Password: "password1"}
	if err := svc.Register(first); err != nil {
		t.Fatalf("Register: %v", err)
	}

	second := &model.User{Type: model.UserTypePatient, GivenName: "C", FamilyName: "D", Email: "dup@test.local", Password: "password2"}
	if err := svc.Register(second); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("got %v, want ErrEmailRegistered", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Type: model.UserTypePatient, GivenName: "A", FamilyName: "B", Email: "login@test.local", Password: "correct-horse"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login("login@test.local", "wrong"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong password got %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody@test.local", "correct-horse"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email got %v, want ErrInvalidCredentials", err)
	}
}
