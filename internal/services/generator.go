package services

import (
	"context"
	"encoding/json"
	"strings"

	"interviewsystem/api/internal/apperrors"
)

// QuestionGeneratorService turns a job description into a sequence of
// interview questions via the LLM gateway. A single round trip, no retry;
// any failure surfaces as a GenerationError for the caller to show as a
// retryable message.
type QuestionGeneratorService interface {
	GenerateQuestions(ctx context.Context, jobDescription, resumeText string) ([]string, error)
}

type questionGeneratorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	questionCount int
}

func NewQuestionGeneratorService(gemini GeminiService, questionCount int) QuestionGeneratorService {
	return &questionGeneratorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		questionCount: questionCount,
	}
}

// GenerateQuestions implements QuestionGeneratorService.
func (s *questionGeneratorService) GenerateQuestions(ctx context.Context, jobDescription, resumeText string) ([]string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, &apperrors.ValidationError{Fields: []string{"jobDescription"}}
	}

	prompt := s.promptBuilder.BuildQuestionGenerationPrompt(jobDescription, resumeText, s.questionCount)

	raw, err := s.gemini.GenerateText(ctx, prompt, 0.7)
	if err != nil {
		return nil, &apperrors.GenerationError{Reason: "gateway call failed", Err: err}
	}

	questions, ok := parseQuestionList(raw)
	if !ok {
		return nil, &apperrors.GenerationError{Reason: "response is not a list of questions", Raw: raw}
	}

	return questions, nil
}

// parseQuestionList is the parse-or-fail boundary for the generator: the raw
// LLM payload either yields a non-empty list of non-empty strings, or it is
// rejected wholesale. Partial or malformed lists never leak out.
func parseQuestionList(raw string) ([]string, bool) {
	cleaned := stripCodeFences(raw)

	var questions []string
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, false
	}

	if len(questions) == 0 {
		return nil, false
	}
	for _, q := range questions {
		if strings.TrimSpace(q) == "" {
			return nil, false
		}
	}

	return questions, true
}

// stripCodeFences removes optional markdown code-block wrappers the LLM
// tends to put around structured output.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}
