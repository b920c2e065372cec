package interview

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"interviewsystem/api/internal/apperrors"
	"interviewsystem/api/internal/services"
)

// Session is one candidate's in-progress application for one job. Answers
// are kept per question so stepping back restores the previously entered
// answer verbatim.
type Session struct {
	mu sync.Mutex

	ID        uuid.UUID
	UserID    uuid.UUID
	JobID     uuid.UUID
	State     State
	Questions []string
	Answers   []string
	Index     int
	Results   []AnswerResult
	FailedMsg string
	CreatedAt time.Time
}

// AnswerResult pairs one question/answer with its evaluation outcome.
type AnswerResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    *int   `json:"score,omitempty"`
	Feedback string `json:"feedback"`
	Saved    bool   `json:"saved"`
}

// SessionView is the snapshot handed to the client.
type SessionView struct {
	ID            string         `json:"id"`
	JobID         string         `json:"job_id"`
	State         string         `json:"state"`
	Questions     []string       `json:"questions,omitempty"`
	CurrentIndex  int            `json:"current_index"`
	CurrentAnswer string         `json:"current_answer"`
	Results       []AnswerResult `json:"results,omitempty"`
	Error         string         `json:"error,omitempty"`
}

func newSession(userID, jobID uuid.UUID) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		JobID:     jobID,
		State:     StateLoading,
		CreatedAt: time.Now(),
	}
}

// transition moves the session to next, enforcing the state graph.
func (s *Session) transition(next State) error {
	if !IsTransitionAllowed(s.State, next) {
		return fmt.Errorf("invalid session transition %s → %s", s.State, next)
	}
	s.State = next
	return nil
}

// begin installs the generated questions and enters ANSWERING.
func (s *Session) begin(questions []string) error {
	if err := s.transition(StateAnswering); err != nil {
		return err
	}
	s.Questions = questions
	s.Answers = make([]string, len(questions))
	s.Index = 0
	return nil
}

// fail moves the session to FAILED, recording why.
func (s *Session) fail(msg string) {
	s.State = StateFailed
	s.FailedMsg = msg
}

// submitAnswer records the answer for the current question. A blank answer
// is rejected in place with no state transition. Submitting the last answer
// moves the session to EVALUATING and returns true.
func (s *Session) submitAnswer(answer string) (bool, error) {
	if s.State != StateAnswering {
		return false, &apperrors.ValidationError{Fields: []string{"state"}}
	}
	if strings.TrimSpace(answer) == "" {
		return false, &apperrors.ValidationError{Fields: []string{"answer"}}
	}

	s.Answers[s.Index] = answer

	if s.Index < len(s.Questions)-1 {
		s.Index++
		return false, nil
	}

	if err := s.transition(StateEvaluating); err != nil {
		return false, err
	}
	return true, nil
}

// previous steps back to the prior question. Only valid while answering and
// not on the first question.
func (s *Session) previous() error {
	if s.State != StateAnswering || s.Index == 0 {
		return &apperrors.ValidationError{Fields: []string{"index"}}
	}
	s.Index--
	return nil
}

// view builds a client snapshot. Caller must hold the session lock.
func (s *Session) view() *SessionView {
	v := &SessionView{
		ID:           s.ID.String(),
		JobID:        s.JobID.String(),
		State:        string(s.State),
		Questions:    s.Questions,
		CurrentIndex: s.Index,
		Results:      s.Results,
		Error:        s.FailedMsg,
	}
	if s.State == StateAnswering && s.Index < len(s.Answers) {
		v.CurrentAnswer = s.Answers[s.Index]
	}
	return v
}

// pairs assembles the (question, answer) batch for evaluation.
func (s *Session) pairs() []services.QuestionAnswer {
	out := make([]services.QuestionAnswer, len(s.Questions))
	for i := range s.Questions {
		out[i] = services.QuestionAnswer{Question: s.Questions[i], Answer: s.Answers[i]}
	}
	return out
}
