package repository

import (
	"screener_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// PatientsForProvider returns the provider's active caseload, most recently
// onboarded first.
func (r *UserRepository) PatientsForProvider(providerID string) ([]model.User, error) {
	var patients []model.User
	err := r.DB.Table("users").
		Joins("JOIN patient_providers ON patient_providers.patient_id = users.id").
		Where("patient_providers.provider_id = ?", providerID).
		Where("patient_providers.offboarded_at IS NULL").
		Order("patient_providers.onboarded_at desc").
		Find(&patients).Error
	return patients, err
}

func (r *UserRepository) IsOnCaseload(providerID, patientID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PatientProvider{}).
		Where("provider_id = ? AND patient_id = ? AND offboarded_at IS NULL", providerID, patientID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) AddToCaseload(link *model.PatientProvider) error {
	return r.DB.Create(link).Error
}
