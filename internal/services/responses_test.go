package services

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/models"
	"interviewsystem/api/internal/repositories"
)

type fakeResponseRepo struct {
	created    []*models.InterviewResponse
	byID       map[uuid.UUID]*models.InterviewResponse
	lastFilter *repositories.ResponseFilter
	queryOut   []models.InterviewResponse
}

func (f *fakeResponseRepo) Create(r *models.InterviewResponse) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeResponseRepo) FindByID(id uuid.UUID) (*models.InterviewResponse, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r, nil
}

func (f *fakeResponseRepo) FindByIDs(ids []uuid.UUID) ([]models.InterviewResponse, error) {
	var out []models.InterviewResponse
	for _, id := range ids {
		if r, ok := f.byID[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeResponseRepo) Query(filter repositories.ResponseFilter) ([]models.InterviewResponse, error) {
	f.lastFilter = &filter
	return f.queryOut, nil
}

func (f *fakeResponseRepo) FindUnindexed(limit int) ([]models.InterviewResponse, error) {
	return nil, nil
}

func (f *fakeResponseRepo) MarkIndexed(id uuid.UUID) error { return nil }

type fakeJobLookup struct {
	jobs map[uuid.UUID]*models.Job
}

func (f *fakeJobLookup) Create(job *models.Job) error { return nil }
func (f *fakeJobLookup) FindByID(id uuid.UUID) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return job, nil
}
func (f *fakeJobLookup) List() ([]models.Job, error) { return nil, nil }

type fakeCompanyLookup struct {
	idsByName map[string][]uuid.UUID
}

func (f *fakeCompanyLookup) FindByID(id uuid.UUID) (*models.Company, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeCompanyLookup) FindIDsByNameLike(name string) ([]uuid.UUID, error) {
	return f.idsByName[name], nil
}
func (f *fakeCompanyLookup) FindOrCreateByName(name, email string) (*models.Company, error) {
	return &models.Company{ID: uuid.New(), Name: name}, nil
}

type fakeIndex struct {
	hits []ResponseHit
}

func (f *fakeIndex) InitCollection() error { return nil }
func (f *fakeIndex) UpsertResponse(ctx context.Context, r *models.InterviewResponse, embedding []float32) error {
	return nil
}
func (f *fakeIndex) Search(ctx context.Context, embedding []float32, jobID *uuid.UUID, limit int) ([]ResponseHit, error) {
	return f.hits, nil
}

type fakeEnqueuer struct {
	enqueued []uuid.UUID
}

func (f *fakeEnqueuer) Start(ctx context.Context)    {}
func (f *fakeEnqueuer) Stop()                        {}
func (f *fakeEnqueuer) Enqueue(responseID uuid.UUID) { f.enqueued = append(f.enqueued, responseID) }

func newResponseService(t *testing.T) (ResponseService, *fakeResponseRepo, *fakeJobLookup, *fakeCompanyLookup, *fakeEnqueuer, uuid.UUID, uuid.UUID) {
	t.Helper()

	jobID := uuid.New()
	companyID := uuid.New()
	responseRepo := &fakeResponseRepo{byID: map[uuid.UUID]*models.InterviewResponse{}}
	jobRepo := &fakeJobLookup{jobs: map[uuid.UUID]*models.Job{
		jobID: {ID: jobID, CompanyID: companyID, Title: "Backend Engineer", Description: "d"},
	}}
	companyRepo := &fakeCompanyLookup{idsByName: map[string][]uuid.UUID{}}
	enqueuer := &fakeEnqueuer{}

	svc := NewResponseService(responseRepo, jobRepo, companyRepo, &fakeGemini{}, &fakeIndex{}, enqueuer)
	return svc, responseRepo, jobRepo, companyRepo, enqueuer, jobID, companyID
}

func validSaveRequest(jobID uuid.UUID) *models.SaveResponseRequest {
	score := 7
	req := &models.SaveResponseRequest{
		JobID:    jobID.String(),
		Question: "Tell me about REST.",
		Answer:   "It stands for representational state transfer.",
	}
	req.Evaluation.Score = &score
	req.Evaluation.Feedback = "Score: 7/10. Feedback: accurate."
	return req
}

func TestSave_DerivesCompanyFromJob(t *testing.T) {
	svc, repo, _, _, enqueuer, jobID, companyID := newResponseService(t)
	userID := uuid.New()

	saved, err := svc.Save(context.Background(), userID, validSaveRequest(jobID))
	if err != nil {
		t.Fatalf("Save returned unexpected error: %v", err)
	}
	if saved.CompanyID != companyID {
		t.Errorf("company id = %s, want %s (derived from job)", saved.CompanyID, companyID)
	}
	if saved.UserID != userID {
		t.Errorf("user id = %s, want %s", saved.UserID, userID)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d records, want 1", len(repo.created))
	}
	if len(enqueuer.enqueued) != 1 || enqueuer.enqueued[0] != saved.ID {
		t.Error("saved response should be enqueued for indexing")
	}
}

func TestSave_NoDeduplication(t *testing.T) {
	svc, repo, _, _, _, jobID, _ := newResponseService(t)
	userID := uuid.New()

	first, err := svc.Save(context.Background(), userID, validSaveRequest(jobID))
	if err != nil {
		t.Fatalf("first Save returned unexpected error: %v", err)
	}
	second, err := svc.Save(context.Background(), userID, validSaveRequest(jobID))
	if err != nil {
		t.Fatalf("second Save returned unexpected error: %v", err)
	}

	// Duplicate submissions are intentional: two records, distinct ids.
	if first.ID == second.ID {
		t.Error("equivalent saves should produce distinct records")
	}
	if len(repo.created) != 2 {
		t.Errorf("created %d records, want 2", len(repo.created))
	}
}

func TestSave_MissingFieldsListed(t *testing.T) {
	svc, _, _, _, _, jobID, _ := newResponseService(t)

	cases := []struct {
		name   string
		mutate func(*models.SaveResponseRequest)
		field  string
	}{
		{"missing jobId", func(r *models.SaveResponseRequest) { r.JobID = "" }, "jobId"},
		{"malformed jobId", func(r *models.SaveResponseRequest) { r.JobID = "not-a-uuid" }, "jobId"},
		{"missing question", func(r *models.SaveResponseRequest) { r.Question = " " }, "question"},
		{"missing answer", func(r *models.SaveResponseRequest) { r.Answer = "" }, "answer"},
		{"missing score", func(r *models.SaveResponseRequest) { r.Evaluation.Score = nil }, "evaluation.score"},
		{"missing feedback", func(r *models.SaveResponseRequest) { r.Evaluation.Feedback = "" }, "evaluation.feedback"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validSaveRequest(jobID)
			c.mutate(req)

			_, err := svc.Save(context.Background(), uuid.New(), req)
			var validationErr *apperrors.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !slices.Contains(validationErr.Fields, c.field) {
				t.Errorf("fields %v should name %q", validationErr.Fields, c.field)
			}
		})
	}
}

func TestSave_OutOfRangeScoreRejectedNotClamped(t *testing.T) {
	svc, repo, _, _, _, jobID, _ := newResponseService(t)

	for _, score := range []int{-1, 11, 100} {
		req := validSaveRequest(jobID)
		req.Evaluation.Score = &score

		_, err := svc.Save(context.Background(), uuid.New(), req)
		var validationErr *apperrors.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("score %d: expected ValidationError, got %v", score, err)
		}
		if !slices.Contains(validationErr.Fields, "evaluation.score") {
			t.Errorf("score %d: fields %v should name evaluation.score", score, validationErr.Fields)
		}
	}
	if len(repo.created) != 0 {
		t.Error("no record should be persisted with an out-of-range score")
	}
}

func TestSave_UnknownJob(t *testing.T) {
	svc, _, _, _, _, _, _ := newResponseService(t)

	_, err := svc.Save(context.Background(), uuid.New(), validSaveRequest(uuid.New()))
	var notFound *apperrors.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestQuery_CompanyNameWithNoMatchReturnsEmpty(t *testing.T) {
	svc, repo, _, _, _, _, _ := newResponseService(t)

	responses, err := svc.Query(ResponseQuery{CompanyName: "acme"})
	if err != nil {
		t.Fatalf("Query returned unexpected error: %v", err)
	}
	if len(responses) != 0 {
		t.Errorf("got %d responses, want 0", len(responses))
	}
	if repo.lastFilter != nil {
		t.Error("store should not be queried when no company matches")
	}
}

func TestQuery_FiltersForwardedToStore(t *testing.T) {
	svc, repo, _, companyRepo, _, jobID, _ := newResponseService(t)

	companyIDs := []uuid.UUID{uuid.New(), uuid.New()}
	companyRepo.idsByName["acme"] = companyIDs

	scoreMin, scoreMax := 5, 8
	_, err := svc.Query(ResponseQuery{
		JobID:       &jobID,
		CompanyName: "acme",
		ScoreMin:    &scoreMin,
		ScoreMax:    &scoreMax,
	})
	if err != nil {
		t.Fatalf("Query returned unexpected error: %v", err)
	}

	f := repo.lastFilter
	if f == nil {
		t.Fatal("store was never queried")
	}
	if f.JobID == nil || *f.JobID != jobID {
		t.Error("jobId filter not forwarded")
	}
	if len(f.CompanyIDs) != 2 {
		t.Errorf("company ids = %v, want the two matched ids", f.CompanyIDs)
	}
	if f.ScoreMin == nil || *f.ScoreMin != 5 || f.ScoreMax == nil || *f.ScoreMax != 8 {
		t.Error("inclusive score bounds not forwarded")
	}
}

func TestSearch_PreservesIndexRanking(t *testing.T) {
	jobID := uuid.New()
	first := &models.InterviewResponse{ID: uuid.New(), JobID: jobID}
	second := &models.InterviewResponse{ID: uuid.New(), JobID: jobID}

	repo := &fakeResponseRepo{byID: map[uuid.UUID]*models.InterviewResponse{
		first.ID:  first,
		second.ID: second,
	}}
	index := &fakeIndex{hits: []ResponseHit{
		{ResponseID: second.ID, Score: 0.92},
		{ResponseID: first.ID, Score: 0.71},
	}}
	svc := NewResponseService(repo, &fakeJobLookup{}, &fakeCompanyLookup{}, &fakeGemini{}, index, &fakeEnqueuer{})

	results, err := svc.Search(context.Background(), "communication skills", nil, 10)
	if err != nil {
		t.Fatalf("Search returned unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].ID != second.ID || results[1].ID != first.ID {
		t.Error("results should follow the similarity ranking")
	}
}

func TestSearch_BlankQueryRejected(t *testing.T) {
	svc, _, _, _, _, _, _ := newResponseService(t)

	_, err := svc.Search(context.Background(), "  ", nil, 10)
	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
