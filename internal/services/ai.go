package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/skobayashi/taskdeck/internal/models"
)

var ErrSuggestionsNotConfigured = errors.New("task suggestions are not configured")

// SuggestionService extracts candidate tasks from free-form text using
// OpenAI. Suggestions are never persisted; they go back to the caller and
// re-enter through the validated create path.
type SuggestionService struct {
	client *openai.Client
}

// TaskSuggestion is a candidate task extracted from text.
type TaskSuggestion struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func NewSuggestionService(apiKey string) *SuggestionService {
	return &SuggestionService{
		client: openai.NewClient(apiKey),
	}
}

// SuggestTasks analyzes text and extracts tasks using OpenAI GPT.
func (s *SuggestionService) SuggestTasks(ctx context.Context, text string) ([]TaskSuggestion, error) {
	if s == nil || s.client == nil {
		return nil, ErrSuggestionsNotConfigured
	}

	now := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks from the text below.

Current time: %s

Text:
%s

Return a JSON array of the extracted tasks in this shape:
[
  {
    "title": "short task title",
    "description": "task details",
    "priority": "low, medium or high",
    "dueDate": "deadline as RFC3339 (e.g. 2025-10-28T23:59:59Z), or null when none is stated"
  }
]

Rules:
- Return an empty array [] when there are no tasks.
- Convert relative deadlines ("tomorrow", "next week") into concrete timestamps.
- dueDate must be an RFC3339 string or null.
- Return only the JSON, no explanation.`, now, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var suggestions []TaskSuggestion
	if err := json.Unmarshal([]byte(content), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return sanitizeSuggestions(suggestions), nil
}

// sanitizeSuggestions drops unusable suggestions so they can pass the
// create validation unchanged: empty titles are removed, unknown
// priorities fall back to medium, past due dates are cleared.
func sanitizeSuggestions(suggestions []TaskSuggestion) []TaskSuggestion {
	valid := make([]TaskSuggestion, 0, len(suggestions))
	now := time.Now()

	for _, sg := range suggestions {
		sg.Title = strings.TrimSpace(sg.Title)
		if sg.Title == "" {
			continue
		}
		if !models.TaskPriority(sg.Priority).Valid() {
			sg.Priority = string(models.TaskPriorityMedium)
		}
		if sg.DueDate != nil && !sg.DueDate.After(now) {
			sg.DueDate = nil
		}
		valid = append(valid, sg)
	}

	return valid
}
