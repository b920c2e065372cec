package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/interview"
	"interviewsystem/api/internal/middleware"
	"interviewsystem/api/internal/models"
)

type InterviewHandler struct {
	manager *interview.Manager
}

func NewInterviewHandler(manager *interview.Manager) *InterviewHandler {
	return &InterviewHandler{manager: manager}
}

// HandleStart handles POST /api/interviews
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return &apperrors.AuthError{Reason: "no token found"}
	}

	var req models.StartInterviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return &apperrors.ValidationError{Fields: []string{"jobId"}}
	}

	var resumeID *uuid.UUID
	if req.ResumeID != "" {
		parsed, err := uuid.Parse(req.ResumeID)
		if err != nil {
			return &apperrors.ValidationError{Fields: []string{"resumeId"}}
		}
		resumeID = &parsed
	}

	view, err := h.manager.Start(c.Context(), userID, jobID, resumeID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleGet handles GET /api/interviews/:id
func (h *InterviewHandler) HandleGet(c *fiber.Ctx) error {
	userID, sessionID, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	view, err := h.manager.Get(sessionID, userID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// HandleSubmitAnswer handles POST /api/interviews/:id/answers
func (h *InterviewHandler) HandleSubmitAnswer(c *fiber.Ctx) error {
	userID, sessionID, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	var req models.SubmitAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	view, err := h.manager.SubmitAnswer(c.Context(), sessionID, userID, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// HandlePrevious handles POST /api/interviews/:id/previous
func (h *InterviewHandler) HandlePrevious(c *fiber.Ctx) error {
	userID, sessionID, err := h.sessionParams(c)
	if err != nil {
		return err
	}

	view, err := h.manager.Previous(sessionID, userID)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

func (h *InterviewHandler) sessionParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, &apperrors.AuthError{Reason: "no token found"}
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, &apperrors.ValidationError{Fields: []string{"id"}}
	}
	return userID, sessionID, nil
}
