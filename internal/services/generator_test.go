package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"interviewsystem/api/internal/apperrors"
)

type fakeGemini struct {
	text       string
	err        error
	lastPrompt string
}

func (f *fakeGemini) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	f.lastPrompt = prompt
	return f.text, f.err
}

func (f *fakeGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func TestGenerateQuestions_ParsesPlainArray(t *testing.T) {
	gemini := &fakeGemini{text: `["What is a goroutine?", "Explain REST."]`}
	gen := NewQuestionGeneratorService(gemini, 10)

	questions, err := gen.GenerateQuestions(context.Background(), "Backend engineer, Node.js, REST APIs", "")
	if err != nil {
		t.Fatalf("GenerateQuestions returned unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0] != "What is a goroutine?" {
		t.Errorf("questions[0] = %q", questions[0])
	}
}

func TestGenerateQuestions_StripsCodeFences(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"json fence", "```json\n[\"q1\", \"q2\"]\n```"},
		{"bare fence", "```\n[\"q1\", \"q2\"]\n```"},
		{"fence with whitespace", "  ```json\n[\"q1\", \"q2\"]\n```  \n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gen := NewQuestionGeneratorService(&fakeGemini{text: c.text}, 10)
			questions, err := gen.GenerateQuestions(context.Background(), "desc", "")
			if err != nil {
				t.Fatalf("GenerateQuestions returned unexpected error: %v", err)
			}
			if len(questions) != 2 || questions[0] != "q1" || questions[1] != "q2" {
				t.Errorf("got %v, want [q1 q2]", questions)
			}
		})
	}
}

func TestGenerateQuestions_GatewayError(t *testing.T) {
	gemini := &fakeGemini{err: errors.New("connection refused")}
	gen := NewQuestionGeneratorService(gemini, 10)

	_, err := gen.GenerateQuestions(context.Background(), "desc", "")
	var genErr *apperrors.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}

func TestGenerateQuestions_MalformedPayloadsRejected(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"prose instead of list", "Here are some questions for you."},
		{"object instead of array", `{"questions": ["q1"]}`},
		{"empty array", "[]"},
		{"blank element", `["q1", "   "]`},
		{"array of numbers", "[1, 2, 3]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gen := NewQuestionGeneratorService(&fakeGemini{text: c.text}, 10)
			_, err := gen.GenerateQuestions(context.Background(), "desc", "")
			var genErr *apperrors.GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError for %q, got %v", c.text, err)
			}
		})
	}
}

func TestGenerateQuestions_EmptyJobDescription(t *testing.T) {
	gen := NewQuestionGeneratorService(&fakeGemini{text: `["q"]`}, 10)
	_, err := gen.GenerateQuestions(context.Background(), "   ", "")
	var validationErr *apperrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGenerateQuestions_PromptCarriesCountAndResume(t *testing.T) {
	gemini := &fakeGemini{text: `["q"]`}
	gen := NewQuestionGeneratorService(gemini, 5)

	if _, err := gen.GenerateQuestions(context.Background(), "desc", "my resume text"); err != nil {
		t.Fatalf("GenerateQuestions returned unexpected error: %v", err)
	}
	if !strings.Contains(gemini.lastPrompt, "Create 5 interview questions") {
		t.Errorf("prompt missing question count: %q", gemini.lastPrompt)
	}
	if !strings.Contains(gemini.lastPrompt, "my resume text") {
		t.Errorf("prompt missing resume text: %q", gemini.lastPrompt)
	}

	gemini2 := &fakeGemini{text: `["q"]`}
	gen2 := NewQuestionGeneratorService(gemini2, 5)
	if _, err := gen2.GenerateQuestions(context.Background(), "desc", ""); err != nil {
		t.Fatalf("GenerateQuestions returned unexpected error: %v", err)
	}
	if strings.Contains(gemini2.lastPrompt, "resume") {
		t.Errorf("prompt should not mention a resume when none is given: %q", gemini2.lastPrompt)
	}
}
