package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"github.com/yukikurage/scrum-board-api/internal/constants"
	"github.com/yukikurage/scrum-board-api/internal/logging"
	"github.com/yukikurage/scrum-board-api/internal/models"
)

// ErrAIUnavailable is returned while the circuit breaker rejects calls.
var ErrAIUnavailable = errors.New("AI service temporarily unavailable")

// TaskSuggester proposes backlog tasks from free text.
type TaskSuggester interface {
	SuggestTasks(ctx context.Context, text string) ([]GeneratedTask, error)
}

type GeneratedTask struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Due         *models.Date `json:"due"`
}

type AIService struct {
	client  *openai.Client
	breaker *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewAIService(apiKey string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey))
}

// NewAIServiceWithConfig allows pointing the client at another endpoint.
func NewAIServiceWithConfig(config openai.ClientConfig) *AIService {
	return &AIService{
		client:  openai.NewClientWithConfig(config),
		breaker: newAIBreaker(),
		now:     time.Now,
	}
}

func newAIBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openai",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("circuit breaker %s changed from %s to %s", name, from.String(), to.String())
		},
	})
}

// SuggestTasks analyzes text and extracts backlog tasks using OpenAI GPT
func (s *AIService) SuggestTasks(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.complete(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrAIUnavailable
		}
		return nil, err
	}

	content := result.(string)

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return tasks, nil
}

func (s *AIService) complete(ctx context.Context, text string) (string, error) {
	today := s.now().Format(constants.DateLayout)
	prompt := fmt.Sprintf(`You are a scrum assistant. Extract concrete backlog tasks from the text below.

Today: %s

Text:
%s

Reply with a JSON array of tasks in this format:
[
  {
    "name": "short task name (at most %d characters)",
    "description": "details of the task",
    "due": "due date as YYYY-MM-DD, or null when the text gives none"
  }
]

Rules:
- Reply with [] when the text contains no tasks
- Convert relative dates such as "tomorrow" or "next week" into calendar dates
- Reply with JSON only, without any explanation`, today, text, constants.MaxNameLength)

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
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding ```json block some models add.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
