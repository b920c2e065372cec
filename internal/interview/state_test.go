package interview

import "testing"

func TestParseState_ValidValues(t *testing.T) {
	valid := []string{"LOADING", "ANSWERING", "EVALUATING", "COMPLETED", "FAILED"}
	for _, s := range valid {
		got, err := ParseState(s)
		if err != nil {
			t.Errorf("ParseState(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseState(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseState_InvalidValue(t *testing.T) {
	if _, err := ParseState("UNKNOWN"); err == nil {
		t.Error("ParseState(\"UNKNOWN\") expected error, got nil")
	}
	if _, err := ParseState(""); err == nil {
		t.Error("ParseState(\"\") expected error, got nil")
	}
}

func TestIsTransitionAllowed_Valid(t *testing.T) {
	cases := []struct {
		from State
		to   State
	}{
		{StateLoading, StateAnswering},
		{StateLoading, StateFailed},
		{StateAnswering, StateAnswering},
		{StateAnswering, StateEvaluating},
		{StateEvaluating, StateCompleted},
		{StateEvaluating, StateFailed},
	}
	for _, c := range cases {
		if !IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be true", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_Invalid(t *testing.T) {
	cases := []struct {
		from State
		to   State
	}{
		{StateLoading, StateEvaluating}, // skip answering
		{StateLoading, StateCompleted},  // skip all
		{StateAnswering, StateFailed},   // answering never fails outright
		{StateAnswering, StateCompleted},
		{StateEvaluating, StateAnswering}, // no going back
		{StateEvaluating, StateLoading},
	}
	for _, c := range cases {
		if IsTransitionAllowed(c.from, c.to) {
			t.Errorf("IsTransitionAllowed(%s → %s) should be false", c.from, c.to)
		}
	}
}

func TestIsTransitionAllowed_FromTerminal(t *testing.T) {
	terminals := []State{StateCompleted, StateFailed}
	targets := []State{StateLoading, StateAnswering, StateEvaluating, StateCompleted, StateFailed}
	for _, from := range terminals {
		for _, to := range targets {
			if IsTransitionAllowed(from, to) {
				t.Errorf("IsTransitionAllowed(%s → %s) should be false (terminal state)", from, to)
			}
		}
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(StateCompleted) || !IsTerminal(StateFailed) {
		t.Error("COMPLETED and FAILED should be terminal")
	}
	for _, s := range []State{StateLoading, StateAnswering, StateEvaluating} {
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) should be false", s)
		}
	}
}
