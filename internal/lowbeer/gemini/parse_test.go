package gemini

import (
	"strings"
	"testing"
)

func TestParseTaskProposalFenced(t *testing.T) {
	raw := "```json\n{\"task_description\": \"Do a thing\", \"coding_prompt\": \"How to do it\"}\n```"
	tp, err := ParseTaskProposal(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tp.TaskDescription != "Do a thing" || tp.CodingPrompt != "How to do it" {
		t.Fatalf("unexpected proposal: %+v", tp)
	}
}

func TestParseTaskProposalMissingKeys(t *testing.T) {
	cases := map[string]string{
		"no description": `{"coding_prompt": "x"}`,
		"no prompt":      `{"task_description": "x"}`,
		"not json":       "I cannot help with that.",
	}
	for name, raw := range cases {
		if _, err := ParseTaskProposal(raw); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseVerificationMissingVerified(t *testing.T) {
	if _, err := ParseVerification(`{"feedback": "nice"}`); err == nil {
		t.Fatalf("expected error for missing verified key")
	}
	if _, err := ParseVerification(`{"verified": true`); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestParseVerificationFeedbackDefault(t *testing.T) {
	v, err := ParseVerification(`{"verified": false}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v.Verified {
		t.Fatalf("expected unverified")
	}
	if !strings.Contains(v.Feedback, "No specific feedback") {
		t.Fatalf("expected default feedback, got %q", v.Feedback)
	}
}

func TestParseVerificationFalsePreserved(t *testing.T) {
	v, err := ParseVerification("```json\n{\"verified\": false, \"feedback\": \"missing tests\"}\n```")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v.Verified || v.Feedback != "missing tests" {
		t.Fatalf("unexpected verification: %+v", v)
	}
}
