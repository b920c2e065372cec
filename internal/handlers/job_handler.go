package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/models"
	"interviewsystem/api/internal/repositories"
)

type JobHandler struct {
	jobRepo     repositories.JobRepository
	companyRepo repositories.CompanyRepository
}

func NewJobHandler(jobRepo repositories.JobRepository, companyRepo repositories.CompanyRepository) *JobHandler {
	return &JobHandler{
		jobRepo:     jobRepo,
		companyRepo: companyRepo,
	}
}

// HandleCreate handles POST /api/jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	var fields []string
	if strings.TrimSpace(req.CompanyName) == "" {
		fields = append(fields, "company_name")
	}
	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(req.Description) == "" {
		fields = append(fields, "description")
	}
	if len(fields) > 0 {
		return &apperrors.ValidationError{Fields: fields}
	}

	company, err := h.companyRepo.FindOrCreateByName(req.CompanyName, req.CompanyEmail)
	if err != nil {
		return &apperrors.StoreError{Err: err}
	}

	job := &models.Job{
		ID:          uuid.New(),
		CompanyID:   company.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Company:     company,
	}
	if err := h.jobRepo.Create(job); err != nil {
		return &apperrors.StoreError{Err: err}
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleList handles GET /api/jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.List()
	if err != nil {
		return &apperrors.StoreError{Err: err}
	}
	return c.JSON(jobs)
}

// HandleGet handles GET /api/jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return &apperrors.ValidationError{Fields: []string{"id"}}
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return &apperrors.NotFoundError{Resource: "job"}
		}
		return &apperrors.StoreError{Err: err}
	}
	return c.JSON(job)
}
