package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/middleware"
	"interviewsystem/api/internal/models"
	"interviewsystem/api/internal/services"
)

type ResponseHandler struct {
	responseService services.ResponseService
}

func NewResponseHandler(responseService services.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseService: responseService}
}

// HandleSave handles POST /api/interview-responses
func (h *ResponseHandler) HandleSave(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return &apperrors.AuthError{Reason: "no token found"}
	}

	var req models.SaveResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	saved, err := h.responseService.Save(c.Context(), userID, &req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}

// HandleQuery handles GET /api/interview-responses
//
// NOTE: this endpoint is deliberately left unauthenticated to match the
// observed platform behavior. See DESIGN.md before tightening it.
func (h *ResponseHandler) HandleQuery(c *fiber.Ctx) error {
	query := services.ResponseQuery{
		CompanyName: c.Query("companyName"),
	}

	if raw := c.Query("jobId"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			return &apperrors.ValidationError{Fields: []string{"jobId"}}
		}
		query.JobID = &jobID
	}

	scoreMin, err := parseScoreParam(c, "scoreMin")
	if err != nil {
		return err
	}
	query.ScoreMin = scoreMin

	scoreMax, err := parseScoreParam(c, "scoreMax")
	if err != nil {
		return err
	}
	query.ScoreMax = scoreMax

	responses, err := h.responseService.Query(query)
	if err != nil {
		return err
	}
	return c.JSON(responses)
}

// HandleSearch handles GET /api/interview-responses/search
func (h *ResponseHandler) HandleSearch(c *fiber.Ctx) error {
	var jobID *uuid.UUID
	if raw := c.Query("jobId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return &apperrors.ValidationError{Fields: []string{"jobId"}}
		}
		jobID = &parsed
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	responses, err := h.responseService.Search(c.Context(), c.Query("q"), jobID, limit)
	if err != nil {
		return err
	}
	return c.JSON(responses)
}

func parseScoreParam(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &apperrors.ValidationError{Fields: []string{name}}
	}
	return &value, nil
}
