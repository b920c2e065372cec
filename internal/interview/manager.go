package interview

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/models"
	"interviewsystem/api/internal/repositories"
	"interviewsystem/api/internal/services"
)

// Manager owns the live application sessions. Sessions are held in memory
// only: the original client kept this state in the browser, so losing them
// on restart is acceptable. Anything worth keeping is persisted as
// interview responses the moment evaluation finishes.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	jobRepo    repositories.JobRepository
	resumeRepo repositories.ResumeRepository
	generator  services.QuestionGeneratorService
	evaluator  services.AnswerEvaluatorService
	responses  services.ResponseService
}

func NewManager(
	jobRepo repositories.JobRepository,
	resumeRepo repositories.ResumeRepository,
	generator services.QuestionGeneratorService,
	evaluator services.AnswerEvaluatorService,
	responses services.ResponseService,
) *Manager {
	return &Manager{
		sessions:   make(map[uuid.UUID]*Session),
		jobRepo:    jobRepo,
		resumeRepo: resumeRepo,
		generator:  generator,
		evaluator:  evaluator,
		responses:  responses,
	}
}

// Start creates a session for the job, generates its questions and enters
// ANSWERING. Generation failure leaves a FAILED session behind and returns
// the GenerationError; retrying means starting a new session.
func (m *Manager) Start(ctx context.Context, userID, jobID uuid.UUID, resumeID *uuid.UUID) (*SessionView, error) {
	job, err := m.jobRepo.FindByID(jobID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, &apperrors.NotFoundError{Resource: "job"}
		}
		return nil, &apperrors.StoreError{Err: err}
	}

	var resumeText string
	if resumeID != nil {
		resume, err := m.resumeRepo.FindByID(*resumeID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return nil, &apperrors.NotFoundError{Resource: "resume"}
			}
			return nil, &apperrors.StoreError{Err: err}
		}
		if resume.UserID != userID {
			return nil, &apperrors.NotFoundError{Resource: "resume"}
		}
		resumeText = resume.Text
	}

	session := newSession(userID, jobID)
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	session.mu.Lock()
	defer session.mu.Unlock()

	questions, err := m.generator.GenerateQuestions(ctx, job.Description, resumeText)
	if err != nil {
		session.fail("failed to generate questions")
		return session.view(), err
	}

	if err := session.begin(questions); err != nil {
		session.fail(err.Error())
		return session.view(), &apperrors.StoreError{Err: err}
	}

	return session.view(), nil
}

// Get returns the session snapshot for its owner.
func (m *Manager) Get(sessionID, userID uuid.UUID) (*SessionView, error) {
	session, err := m.lookup(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view(), nil
}

// SubmitAnswer records the answer for the current question. When the last
// answer arrives the whole batch is evaluated: one evaluator call per
// question, sequentially, each saved independently. Per-answer failures
// never fail the session; an invalid evaluation simply is not persisted.
func (m *Manager) SubmitAnswer(ctx context.Context, sessionID, userID uuid.UUID, answer string) (*SessionView, error) {
	session, err := m.lookup(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	finished, err := session.submitAnswer(answer)
	if err != nil {
		return nil, err
	}

	if finished {
		m.evaluate(ctx, session)
	}

	return session.view(), nil
}

// Previous steps the session back one question; the earlier answer is
// restored verbatim in the returned snapshot.
func (m *Manager) Previous(sessionID, userID uuid.UUID) (*SessionView, error) {
	session, err := m.lookup(sessionID, userID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := session.previous(); err != nil {
		return nil, err
	}
	return session.view(), nil
}

func (m *Manager) lookup(sessionID, userID uuid.UUID) (*Session, error) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()

	if !ok || session.UserID != userID {
		return nil, &apperrors.NotFoundError{Resource: "interview session"}
	}
	return session, nil
}

// evaluate runs the batch step. Caller holds the session lock and the
// session is in EVALUATING.
func (m *Manager) evaluate(ctx context.Context, session *Session) {
	evaluations := m.evaluator.EvaluateAll(ctx, session.pairs())

	if ctx.Err() != nil {
		session.fail("evaluation interrupted")
		return
	}

	results := make([]AnswerResult, len(evaluations))
	for i, eval := range evaluations {
		result := AnswerResult{
			Question: session.Questions[i],
			Answer:   session.Answers[i],
			Feedback: eval.Feedback,
		}

		if eval.Valid {
			score := eval.Score
			result.Score = &score

			req := &models.SaveResponseRequest{
				JobID:    session.JobID.String(),
				Question: session.Questions[i],
				Answer:   session.Answers[i],
			}
			req.Evaluation.Score = &score
			req.Evaluation.Feedback = eval.Feedback

			if _, err := m.responses.Save(ctx, session.UserID, req); err != nil {
				log.Printf("⚠️  Failed to save response %d for session %s: %v\n", i, session.ID, err)
			} else {
				result.Saved = true
			}
		}

		results[i] = result
	}

	session.Results = results
	if err := session.transition(StateCompleted); err != nil {
		session.fail(err.Error())
	}
}
