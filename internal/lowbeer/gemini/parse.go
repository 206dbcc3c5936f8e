package gemini

import (
	"encoding/json"
	"errors"
	"strings"
)

// TaskProposal is the expected shape of a task-generation response.
type TaskProposal struct {
	TaskDescription string `json:"task_description"`
	CodingPrompt    string `json:"coding_prompt"`
}

// Verification is the expected shape of a verification response.
type Verification struct {
	Verified bool
	Feedback string
}

type verificationWire struct {
	Verified *bool   `json:"verified"`
	Feedback *string `json:"feedback"`
}

// stripFences removes markdown code fences that models like to wrap
// around JSON payloads.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseTaskProposal decodes a task-generation response, failing on
// malformed JSON or missing keys.
func ParseTaskProposal(raw string) (TaskProposal, error) {
	var tp TaskProposal
	if err := json.Unmarshal([]byte(stripFences(raw)), &tp); err != nil {
		return TaskProposal{}, err
	}
	if tp.TaskDescription == "" {
		return TaskProposal{}, errors.New("missing key: task_description")
	}
	if tp.CodingPrompt == "" {
		return TaskProposal{}, errors.New("missing key: coding_prompt")
	}
	return tp, nil
}

// ParseVerification decodes a verification response. The verified key
// must be present; an absent feedback string gets a fixed default.
func ParseVerification(raw string) (Verification, error) {
	var w verificationWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &w); err != nil {
		return Verification{}, err
	}
	if w.Verified == nil {
		return Verification{}, errors.New("missing key: verified")
	}
	v := Verification{Verified: *w.Verified, Feedback: "No specific feedback provided."}
	if w.Feedback != nil && *w.Feedback != "" {
		v.Feedback = *w.Feedback
	}
	return v, nil
}
