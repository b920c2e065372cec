package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/middleware"
	"interviewsystem/api/internal/models"
	"interviewsystem/api/internal/repositories"
	"interviewsystem/api/internal/services"
)

type ResumeHandler struct {
	resumeRepo     repositories.ResumeRepository
	storageService services.StorageService
	resumeParser   services.ResumeParserService
	maxFileSize    int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	storageService services.StorageService,
	resumeParser services.ResumeParserService,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:     resumeRepo,
		storageService: storageService,
		resumeParser:   resumeParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /api/resumes
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return &apperrors.AuthError{Reason: "no token found"}
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded. Please upload a 'resume' PDF file.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	content, err := h.resumeParser.ExtractText(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read resume PDF: %v", err),
		})
	}

	resume := &models.Resume{
		ID:               uuid.New(),
		UserID:           userID,
		Filename:         filename,
		OriginalFileName: file.Filename,
		FilePath:         filePath,
		Text:             content.Text,
		PageCount:        content.PageCount,
		CreatedAt:        time.Now(),
	}

	if err := h.resumeRepo.Create(resume); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return &apperrors.StoreError{Err: err}
	}

	return c.Status(fiber.StatusCreated).JSON(models.ResumeUploadResponse{
		ID:           resume.ID.String(),
		Filename:     resume.Filename,
		OriginalName: resume.OriginalFileName,
		PageCount:    resume.PageCount,
	})
}
