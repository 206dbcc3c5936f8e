package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/gemini"
	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

const (
	notConfiguredReply = "AI is not configured. Please enter your API key in the configuration panel."
	nothingToVerify    = "There are no pending tasks to verify."
	defaultSummary     = "User marked task as done without providing a summary."
)

// HandleInput classifies a chat submission and dispatches it: a
// case-insensitive "what's next" anywhere triggers task generation, a
// leading "done" triggers verification, anything else becomes a generic
// conversational query.
func (s *Session) HandleInput(ctx context.Context, input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}
	s.say(RoleUser, input)

	if !s.Configured() {
		s.say(RoleAssistant, notConfiguredReply)
		return
	}

	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, "what's next"):
		s.GenerateNextTask(ctx)
	case strings.HasPrefix(lower, "done"):
		s.VerifyCompletion(ctx, input)
	default:
		s.say(RoleAssistant, s.backend.Complete(ctx, chatPrompt(input, s.Tasks)))
	}
}

// GenerateNextTask asks the backend for the next task and appends it as
// the single pending task. A generate while a task is already pending is
// rejected without touching the store, keeping the single-pending
// invariant airtight regardless of caller discipline.
func (s *Session) GenerateNextTask(ctx context.Context) {
	if pending := s.PendingTask(); pending != nil {
		s.say(RoleAssistant, fmt.Sprintf(
			"There is already a pending task: %s. Mark it as 'done' before asking for the next one.",
			pending.Description))
		return
	}

	raw := s.backend.Complete(ctx, generatePrompt(s.Tasks))
	proposal, err := gemini.ParseTaskProposal(raw)
	if err != nil {
		s.say(RoleAssistant, fmt.Sprintf(
			"Failed to parse AI response for task generation: %v\n\nRaw response:\n%s", err, raw))
		return
	}

	task := project.Task{
		ID:          len(s.Tasks) + 1,
		Description: proposal.TaskDescription,
		Prompt:      proposal.CodingPrompt,
		Status:      project.StatusPending,
		CreatedAt:   s.now(),
	}
	s.Tasks = append(s.Tasks, task)
	s.logEvent("Task Generated", map[string]string{
		"task_id":     fmt.Sprintf("%d", task.ID),
		"description": task.Description,
	})
	s.persist()

	s.say(RoleAssistant, fmt.Sprintf(
		"**New Task Generated:** %s\n\n**Prompt for Executor AI:**\n```\n%s\n```",
		task.Description, task.Prompt))
	s.Notification = "New task generated!"
}

// VerifyCompletion asks the backend whether the user's summary closes
// out the pending task. On success the task flips to verified; on
// failure it stays pending and the feedback is surfaced.
func (s *Session) VerifyCompletion(ctx context.Context, input string) {
	task := s.PendingTask()
	if task == nil {
		s.say(RoleAssistant, nothingToVerify)
		return
	}

	summary := strings.TrimSpace(trimDonePrefix(input))
	summary = strings.TrimLeft(summary, ",.:;- ")
	summary = strings.TrimSpace(summary)
	if summary == "" {
		summary = defaultSummary
	}

	raw := s.backend.Complete(ctx, verifyPrompt(*task, summary))
	verdict, err := gemini.ParseVerification(raw)
	if err != nil {
		s.say(RoleAssistant, fmt.Sprintf(
			"Failed to parse AI verification response: %v\n\nRaw response:\n%s", err, raw))
		return
	}

	if verdict.Verified {
		task.Status = project.StatusVerified
		s.logEvent("Task Verified", map[string]string{
			"task_id": fmt.Sprintf("%d", task.ID),
			"summary": summary,
		})
		s.persist()
		s.Notification = fmt.Sprintf("Task '%s' verified!", task.Description)
		s.say(RoleAssistant, fmt.Sprintf("Great job! Task verified: %s", verdict.Feedback))
		return
	}

	s.logEvent("Verification Failed", map[string]string{
		"task_id":  fmt.Sprintf("%d", task.ID),
		"summary":  summary,
		"feedback": verdict.Feedback,
	})
	s.persist()
	s.say(RoleAssistant, fmt.Sprintf(
		"**Verification Failed:** %s\nPlease address the feedback and mark the task as 'done' again with more details.",
		verdict.Feedback))
}

func trimDonePrefix(input string) string {
	if len(input) >= 4 && strings.EqualFold(input[:4], "done") {
		return input[4:]
	}
	return input
}
