package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"interviewsystem/api/internal/models"
)

type CompanyRepository interface {
	FindByID(id uuid.UUID) (*models.Company, error)
	FindIDsByNameLike(name string) ([]uuid.UUID, error)
	FindOrCreateByName(name, email string) (*models.Company, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// FindByID implements CompanyRepository.
func (r *companyRepository) FindByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return &company, nil
}

// FindIDsByNameLike returns the ids of all companies whose display name
// contains name, case-insensitively. An empty result is not an error.
func (r *companyRepository) FindIDsByNameLike(name string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Company{}).
		Where("name ILIKE ?", "%"+name+"%").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search companies: %w", err)
	}
	return ids, nil
}

// FindOrCreateByName implements CompanyRepository.
func (r *companyRepository) FindOrCreateByName(name, email string) (*models.Company, error) {
	var company models.Company
	err := r.db.Where("name = ?", name).First(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	company = models.Company{Name: name, Email: email}
	if err := r.db.Create(&company).Error; err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &company, nil
}
