package session

import (
	"encoding/json"
	"fmt"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

// taskHistoryJSON renders the task list for prompt embedding. The
// fallback keeps prompt construction total even if marshalling fails.
func taskHistoryJSON(tasks []project.Task) string {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func generatePrompt(tasks []project.Task) string {
	return fmt.Sprintf(`Based on the following project state (tasks and their status), generate the next logical task.
Project history: %s

Return a JSON object with two keys:
- "task_description": A clear and concise description of the new task.
- "coding_prompt": A detailed, actionable prompt for an executor AI to complete the task.`, taskHistoryJSON(tasks))
}

func verifyPrompt(task project.Task, summary string) string {
	return fmt.Sprintf(`A task was marked as completed. Verify if the user's summary indicates successful completion.

Task Description: %s
Original Coding Prompt: %s
User's Summary of Work: %s

Return a JSON object with "verified" (boolean) and "feedback" (string).
If not verified, provide a follow-up question or suggestion.`, task.Description, task.Prompt, summary)
}

func chatPrompt(input string, tasks []project.Task) string {
	return fmt.Sprintf("User query: %q. Previous context: %s", input, taskHistoryJSON(tasks))
}
