package services

import (
	"context"
	"errors"
	"testing"
)

func TestParseEvaluation_ExtractsScore(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		score int
	}{
		{"canonical shape", "Score: 7/10. Feedback: Good answer with concrete examples.", 7},
		{"lowercase", "score: 3/10. Feedback: too vague.", 3},
		{"extra commentary before", "Sure! Here is my evaluation.\nScore: 9/10. Feedback: excellent.", 9},
		{"spaces around slash", "Score: 5 / 10. Feedback: average.", 5},
		{"zero score", "Score: 0/10. Feedback: did not answer the question.", 0},
		{"ten score", "Score: 10/10. Feedback: flawless.", 10},
		{"wrapped in fences", "```\nScore: 6/10. Feedback: decent.\n```", 6},
		{"first match wins", "Score: 4/10. Feedback: weak. A perfect answer would get Score: 10/10.", 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			eval, ok := parseEvaluation(c.raw)
			if !ok {
				t.Fatalf("parseEvaluation(%q) should succeed", c.raw)
			}
			if eval.Score != c.score {
				t.Errorf("score = %d, want %d", eval.Score, c.score)
			}
			if !eval.Valid {
				t.Error("evaluation should be valid")
			}
			if eval.Feedback == "" {
				t.Error("feedback should not be empty")
			}
		})
	}
}

func TestParseEvaluation_RejectsUnusableOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no score at all", "Great answer, well structured."},
		{"score out of range high", "Score: 11/10. Feedback: suspiciously good."},
		{"wrong denominator", "Score: 4/5. Feedback: decent."},
		{"empty", ""},
		{"only fences", "```\n```"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, ok := parseEvaluation(c.raw); ok {
				t.Errorf("parseEvaluation(%q) should fail", c.raw)
			}
		})
	}
}

func TestEvaluateAnswer_GatewayErrorReturnsSentinel(t *testing.T) {
	evaluator := NewAnswerEvaluatorService(&fakeGemini{err: errors.New("timeout")})

	eval := evaluator.EvaluateAnswer(context.Background(), "q", "a")
	if eval.Valid {
		t.Error("evaluation should be invalid")
	}
	if eval.Feedback != EvaluationFailedFeedback {
		t.Errorf("feedback = %q, want sentinel", eval.Feedback)
	}
}

func TestEvaluateAnswer_UnparseableReturnsSentinel(t *testing.T) {
	evaluator := NewAnswerEvaluatorService(&fakeGemini{text: "I cannot evaluate this."})

	eval := evaluator.EvaluateAnswer(context.Background(), "q", "a")
	if eval.Valid || eval.Feedback != EvaluationFailedFeedback {
		t.Errorf("expected sentinel evaluation, got %+v", eval)
	}
}

func TestEvaluateAll_PreservesOrderAndIsolation(t *testing.T) {
	// The fake returns whatever text was configured; with an unparseable
	// payload every answer fails independently and the batch still has one
	// result per pair, in input order.
	evaluator := NewAnswerEvaluatorService(&fakeGemini{text: "Score: 8/10. Feedback: ok."})

	pairs := []QuestionAnswer{
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
		{Question: "q3", Answer: "a3"},
	}
	evals := evaluator.EvaluateAll(context.Background(), pairs)
	if len(evals) != len(pairs) {
		t.Fatalf("got %d evaluations, want %d", len(evals), len(pairs))
	}
	for i, eval := range evals {
		if !eval.Valid || eval.Score != 8 {
			t.Errorf("evals[%d] = %+v, want valid score 8", i, eval)
		}
	}
}
