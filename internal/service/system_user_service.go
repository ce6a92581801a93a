package service

import (
	"errors"
	"sync"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"screener_backend/pkg/logger"
)

// AutomatedActionEmail is reserved for the system actor that the rule engine
// records as the sender of automatically assigned assessments. The .invalid
// TLD can never resolve, so no real account can collide with it.
const AutomatedActionEmail = "automated-action@screener.invalid"

// SystemUserService provisions the automated-action user lazily and caches
// its id for the life of the process.
type SystemUserService struct {
	UserRepo *repository.UserRepository

	mu       sync.Mutex
	cachedID string
}

func NewSystemUserService(userRepo *repository.UserRepository) *SystemUserService {
	return &SystemUserService{UserRepo: userRepo}
}

// AutomatedActionUserID returns the id of the automated-action user, creating
// the row on first use. Two processes (or two goroutines) racing on first use
// both converge on the same row: the loser of the insert race hits the unique
// email constraint and re-reads the winner's row.
func (s *SystemUserService) AutomatedActionUserID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedID != "" {
		return s.cachedID, nil
	}

	user, err := s.UserRepo.FindByEmail(AutomatedActionEmail)
	if err == nil {
		s.cachedID = user.ID
		return s.cachedID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	created := &model.User{
		Type:       model.UserTypeSystem,
		GivenName:  "Automated",
		FamilyName: "Action",
		Email:      AutomatedActionEmail,
	}
	err = s.UserRepo.Create(created)
	if err == nil {
		logger.Log.Info("Provisioned automated-action user", zap.String("userId", created.ID))
		s.cachedID = created.ID
		return s.cachedID, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", err
	}

	user, err = s.UserRepo.FindByEmail(AutomatedActionEmail)
	if err != nil {
		return "", err
	}
	s.cachedID = user.ID
	return s.cachedID, nil
}
