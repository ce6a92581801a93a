package service

import (
	"errors"
	"time"

	"screener_backend/internal/model"
	"screener_backend/internal/repository"
	"screener_backend/internal/util"

	"gorm.io/gorm"
)

type ProviderService struct {
	UserRepo       *repository.UserRepository
	AssessmentRepo *repository.AssessmentRepository
	InstanceRepo   *repository.InstanceRepository
}

func NewProviderService(userRepo *repository.UserRepository, assessmentRepo *repository.AssessmentRepository, instanceRepo *repository.InstanceRepository) *ProviderService {
	return &ProviderService{
		UserRepo:       userRepo,
		AssessmentRepo: assessmentRepo,
		InstanceRepo:   instanceRepo,
	}
}

func (s *ProviderService) findProvider(providerID string) (*model.User, error) {
	provider, err := s.UserRepo.FindByID(providerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrProviderNotFound
	} else if err != nil {
		return nil, err
	}
	if provider.Type != model.UserTypeProvider {
		return nil, util.ErrProviderNotFound
	}
	return provider, nil
}

func (s *ProviderService) Caseload(providerID string) ([]model.User, error) {
	if _, err := s.findProvider(providerID); err != nil {
		return nil, err
	}
	return s.UserRepo.PatientsForProvider(providerID)
}

func (s *ProviderService) OnboardPatient(providerID, patientID string) (*model.PatientProvider, error) {
	if _, err := s.findProvider(providerID); err != nil {
		return nil, err
	}
	patient, err := s.UserRepo.FindByID(patientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPatientNotFound
	} else if err != nil {
		return nil, err
	}
	if patient.Type != model.UserTypePatient {
		return nil, util.ErrPatientNotFound
	}

	link := &model.PatientProvider{
		PatientID:   patient.ID,
		ProviderID:  providerID,
		OnboardedAt: time.Now(),
	}
	if err := s.UserRepo.AddToCaseload(link); err != nil {
		return nil, err
	}
	return link, nil
}

// AssignAssessment sends an assessment to a patient on the provider's
// caseload, minting the slug the patient will use to open it.
func (s *ProviderService) AssignAssessment(providerID, patientID, assessmentID string) (*model.AssessmentInstance, error) {
	if _, err := s.findProvider(providerID); err != nil {
		return nil, err
	}

	patient, err := s.UserRepo.FindByID(patientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPatientNotFound
	} else if err != nil {
		return nil, err
	}
	if patient.Type != model.UserTypePatient {
		return nil, util.ErrPatientNotFound
	}

	onCaseload, err := s.UserRepo.IsOnCaseload(providerID, patientID)
	if err != nil {
		return nil, err
	}
	if !onCaseload {
		return nil, util.ErrNotOnCaseload
	}

	if _, err := s.AssessmentRepo.FindAssessmentByID(assessmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	now := time.Now()
	instance := &model.AssessmentInstance{
		ProviderID:   providerID,
		PatientID:    patientID,
		AssessmentID: assessmentID,
		Slug:         util.GenerateSlug(),
		SentAt:       &now,
	}
	if err := s.InstanceRepo.Create(instance); err != nil {
		return nil, err
	}
	return instance, nil
}

func (s *ProviderService) InstancesForPatient(providerID, patientID string) ([]model.AssessmentInstance, error) {
	if _, err := s.findProvider(providerID); err != nil {
		return nil, err
	}
	onCaseload, err := s.UserRepo.IsOnCaseload(providerID, patientID)
	if err != nil {
		return nil, err
	}
	if !onCaseload {
		return nil, util.ErrNotOnCaseload
	}
	return s.InstanceRepo.ForPatient(patientID)
}
