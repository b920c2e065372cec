package services

import (
	"context"
	"log"
	"regexp"
	"strconv"
	"strings"
)

// EvaluationFailedFeedback is the sentinel returned when one answer cannot
// be evaluated. Evaluation runs once per answer in a loop; isolating
// failures per call keeps one malformed LLM response from losing all the
// other scores in the batch.
const EvaluationFailedFeedback = "Error evaluating this answer."

var scorePattern = regexp.MustCompile(`(?i)score:\s*(\d+)\s*/\s*10`)

// Evaluation is the scored feedback for one answer. Valid is false when the
// gateway failed or its output did not contain a usable score; such results
// carry the sentinel feedback and must never be persisted.
type Evaluation struct {
	Score    int
	Feedback string
	Valid    bool
}

type QuestionAnswer struct {
	Question string
	Answer   string
}

// AnswerEvaluatorService scores a candidate answer via the LLM gateway.
// It fails softly: errors come back as an invalid Evaluation, never as an
// error return, so batches complete independently per answer.
type AnswerEvaluatorService interface {
	EvaluateAnswer(ctx context.Context, question, answer string) Evaluation
	EvaluateAll(ctx context.Context, pairs []QuestionAnswer) []Evaluation
}

type answerEvaluatorService struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
}

func NewAnswerEvaluatorService(gemini GeminiService) AnswerEvaluatorService {
	return &answerEvaluatorService{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
	}
}

// EvaluateAnswer implements AnswerEvaluatorService.
func (s *answerEvaluatorService) EvaluateAnswer(ctx context.Context, question, answer string) Evaluation {
	prompt := s.promptBuilder.BuildAnswerEvaluationPrompt(question, answer)

	raw, err := s.gemini.GenerateText(ctx, prompt, 0.5)
	if err != nil {
		log.Printf("⚠️  Answer evaluation failed: %v\n", err)
		return Evaluation{Feedback: EvaluationFailedFeedback}
	}

	eval, ok := parseEvaluation(raw)
	if !ok {
		log.Printf("⚠️  Unparseable evaluation response: %q\n", raw)
		return Evaluation{Feedback: EvaluationFailedFeedback}
	}

	return eval
}

// EvaluateAll evaluates each pair sequentially, preserving input order.
// Individual failures do not abort the batch.
func (s *answerEvaluatorService) EvaluateAll(ctx context.Context, pairs []QuestionAnswer) []Evaluation {
	evaluations := make([]Evaluation, len(pairs))
	for i, pair := range pairs {
		evaluations[i] = s.EvaluateAnswer(ctx, pair.Question, pair.Answer)
	}
	return evaluations
}

// parseEvaluation is the parse-or-fail boundary for evaluator output. It
// extracts the first integer matching "Score: X/10" (case-insensitive,
// commentary and code fences tolerated) and keeps the cleaned text as
// feedback. A missing or out-of-range score means the whole response is
// unusable; it is never coerced to 0 or clamped.
func parseEvaluation(raw string) (Evaluation, bool) {
	cleaned := stripCodeFences(raw)
	if strings.TrimSpace(cleaned) == "" {
		return Evaluation{}, false
	}

	match := scorePattern.FindStringSubmatch(cleaned)
	if match == nil {
		return Evaluation{}, false
	}

	score, err := strconv.Atoi(match[1])
	if err != nil || score < 0 || score > 10 {
		return Evaluation{}, false
	}

	return Evaluation{Score: score, Feedback: cleaned, Valid: true}, true
}
