package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"interviewsystem/api/internal/models"
)

// ResponseFilter holds the optional, AND-combined predicates for querying
// interview responses. Nil fields are ignored.
type ResponseFilter struct {
	JobID      *uuid.UUID
	CompanyIDs []uuid.UUID
	ScoreMin   *int
	ScoreMax   *int
}

type InterviewResponseRepository interface {
	Create(response *models.InterviewResponse) error
	FindByID(id uuid.UUID) (*models.InterviewResponse, error)
	FindByIDs(ids []uuid.UUID) ([]models.InterviewResponse, error)
	Query(filter ResponseFilter) ([]models.InterviewResponse, error)
	FindUnindexed(limit int) ([]models.InterviewResponse, error)
	MarkIndexed(id uuid.UUID) error
}

type interviewResponseRepository struct {
	db *gorm.DB
}

func NewInterviewResponseRepository(db *gorm.DB) InterviewResponseRepository {
	return &interviewResponseRepository{db: db}
}

// Create implements InterviewResponseRepository.
func (r *interviewResponseRepository) Create(response *models.InterviewResponse) error {
	if err := r.db.Create(response).Error; err != nil {
		return fmt.Errorf("failed to create interview response: %w", err)
	}
	return nil
}

// FindByID implements InterviewResponseRepository.
func (r *interviewResponseRepository) FindByID(id uuid.UUID) (*models.InterviewResponse, error) {
	var response models.InterviewResponse
	err := r.preloaded().Where("id = ?", id).First(&response).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find interview response: %w", err)
	}
	return &response, nil
}

// FindByIDs implements InterviewResponseRepository.
func (r *interviewResponseRepository) FindByIDs(ids []uuid.UUID) ([]models.InterviewResponse, error) {
	var responses []models.InterviewResponse
	if err := r.preloaded().Where("id IN ?", ids).Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to find interview responses: %w", err)
	}
	return responses, nil
}

// Query returns all responses matching the filter, expanded with user, job
// and company display fields. Results come back in insertion order; the
// contract leaves ordering free and created_at ASC is the documented choice.
func (r *interviewResponseRepository) Query(filter ResponseFilter) ([]models.InterviewResponse, error) {
	q := r.preloaded()

	if filter.JobID != nil {
		q = q.Where("job_id = ?", *filter.JobID)
	}
	if filter.CompanyIDs != nil {
		q = q.Where("company_id IN ?", filter.CompanyIDs)
	}
	if filter.ScoreMin != nil {
		q = q.Where("evaluation_score >= ?", *filter.ScoreMin)
	}
	if filter.ScoreMax != nil {
		q = q.Where("evaluation_score <= ?", *filter.ScoreMax)
	}

	var responses []models.InterviewResponse
	if err := q.Order("created_at ASC").Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("failed to query interview responses: %w", err)
	}
	return responses, nil
}

// FindUnindexed implements InterviewResponseRepository.
func (r *interviewResponseRepository) FindUnindexed(limit int) ([]models.InterviewResponse, error) {
	var responses []models.InterviewResponse
	err := r.db.
		Where("indexed = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unindexed responses: %w", err)
	}
	return responses, nil
}

// MarkIndexed implements InterviewResponseRepository.
func (r *interviewResponseRepository) MarkIndexed(id uuid.UUID) error {
	result := r.db.Model(&models.InterviewResponse{}).
		Where("id = ?", id).
		Update("indexed", true)

	if result.Error != nil {
		return fmt.Errorf("failed to mark response indexed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *interviewResponseRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Preload("Job", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "company_id", "title", "description", "location")
		}).
		Preload("Company", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})
}
