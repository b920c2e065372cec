package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/models"
	"interviewsystem/api/internal/repositories"
)

// ResponseQuery carries the optional, AND-combined filters for retrieval.
type ResponseQuery struct {
	JobID       *uuid.UUID
	CompanyName string
	ScoreMin    *int
	ScoreMax    *int
}

// ResponseService is the store for evaluated answers: validated create-once
// saves and filtered retrieval. The submitting user is an explicit argument,
// resolved once at the system boundary, never read from ambient state.
type ResponseService interface {
	Save(ctx context.Context, userID uuid.UUID, req *models.SaveResponseRequest) (*models.InterviewResponse, error)
	Query(query ResponseQuery) ([]models.InterviewResponse, error)
	Search(ctx context.Context, queryText string, jobID *uuid.UUID, limit int) ([]models.InterviewResponse, error)
}

type responseService struct {
	responseRepo repositories.InterviewResponseRepository
	jobRepo      repositories.JobRepository
	companyRepo  repositories.CompanyRepository
	gemini       GeminiService
	index        ResponseIndex
	indexer      Indexer
}

func NewResponseService(
	responseRepo repositories.InterviewResponseRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	gemini GeminiService,
	index ResponseIndex,
	indexer Indexer,
) ResponseService {
	return &responseService{
		responseRepo: responseRepo,
		jobRepo:      jobRepo,
		companyRepo:  companyRepo,
		gemini:       gemini,
		index:        index,
		indexer:      indexer,
	}
}

// Save implements ResponseService. The company id is derived from the
// referenced job, never taken from the request. Duplicate submissions are
// allowed and produce distinct records.
func (s *responseService) Save(ctx context.Context, userID uuid.UUID, req *models.SaveResponseRequest) (*models.InterviewResponse, error) {
	var fields []string
	var jobID uuid.UUID

	if strings.TrimSpace(req.JobID) == "" {
		fields = append(fields, "jobId")
	} else {
		parsed, err := uuid.Parse(req.JobID)
		if err != nil {
			fields = append(fields, "jobId")
		} else {
			jobID = parsed
		}
	}
	if strings.TrimSpace(req.Question) == "" {
		fields = append(fields, "question")
	}
	if strings.TrimSpace(req.Answer) == "" {
		fields = append(fields, "answer")
	}
	if req.Evaluation.Score == nil || *req.Evaluation.Score < 0 || *req.Evaluation.Score > 10 {
		fields = append(fields, "evaluation.score")
	}
	if strings.TrimSpace(req.Evaluation.Feedback) == "" {
		fields = append(fields, "evaluation.feedback")
	}

	if len(fields) > 0 {
		return nil, &apperrors.ValidationError{Fields: fields}
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, &apperrors.NotFoundError{Resource: "job"}
		}
		return nil, &apperrors.StoreError{Err: err}
	}

	response := &models.InterviewResponse{
		ID:        uuid.New(),
		UserID:    userID,
		JobID:     job.ID,
		CompanyID: job.CompanyID,
		Question:  req.Question,
		Answer:    req.Answer,
		Evaluation: models.Evaluation{
			Score:    *req.Evaluation.Score,
			Feedback: req.Evaluation.Feedback,
		},
	}

	if err := s.responseRepo.Create(response); err != nil {
		return nil, &apperrors.StoreError{Err: err}
	}

	// Semantic indexing is best-effort and asynchronous; it never holds up
	// or fails the save.
	if s.indexer != nil {
		s.indexer.Enqueue(response.ID)
	}

	return response, nil
}

// Query implements ResponseService. A company-name filter that matches no
// company short-circuits to an empty result rather than erroring.
func (s *responseService) Query(query ResponseQuery) ([]models.InterviewResponse, error) {
	filter := repositories.ResponseFilter{
		JobID:    query.JobID,
		ScoreMin: query.ScoreMin,
		ScoreMax: query.ScoreMax,
	}

	if strings.TrimSpace(query.CompanyName) != "" {
		ids, err := s.companyRepo.FindIDsByNameLike(query.CompanyName)
		if err != nil {
			return nil, &apperrors.StoreError{Err: err}
		}
		if len(ids) == 0 {
			return []models.InterviewResponse{}, nil
		}
		filter.CompanyIDs = ids
	}

	responses, err := s.responseRepo.Query(filter)
	if err != nil {
		return nil, &apperrors.StoreError{Err: err}
	}
	if responses == nil {
		responses = []models.InterviewResponse{}
	}
	return responses, nil
}

// Search implements ResponseService: embeds the query text and ranks stored
// responses by vector similarity, preserving the index ordering.
func (s *responseService) Search(ctx context.Context, queryText string, jobID *uuid.UUID, limit int) ([]models.InterviewResponse, error) {
	if strings.TrimSpace(queryText) == "" {
		return nil, &apperrors.ValidationError{Fields: []string{"q"}}
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, queryText)
	if err != nil {
		return nil, &apperrors.GenerationError{Reason: "failed to embed search query", Err: err}
	}

	hits, err := s.index.Search(ctx, embedding, jobID, limit)
	if err != nil {
		return nil, &apperrors.StoreError{Err: err}
	}
	if len(hits) == 0 {
		return []models.InterviewResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ResponseID)
	}

	responses, err := s.responseRepo.FindByIDs(ids)
	if err != nil {
		return nil, &apperrors.StoreError{Err: err}
	}

	// Reorder records to match the similarity ranking.
	byID := make(map[uuid.UUID]models.InterviewResponse, len(responses))
	for _, r := range responses {
		byID[r.ID] = r
	}
	ordered := make([]models.InterviewResponse, 0, len(hits))
	for _, hit := range hits {
		if r, ok := byID[hit.ResponseID]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}
