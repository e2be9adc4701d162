// Package ai provides a provider-agnostic gateway to LLM backends with
// streaming completions and fallback routing.
package ai

import "context"

// TaskType identifies the study task a completion serves.
type TaskType int

const (
	TaskChat TaskType = iota
	TaskSummary
	TaskQuiz
	TaskFlashcards
	TaskExplain
	TaskCompare
)

func (t TaskType) String() string {
	switch t {
	case TaskSummary:
		return "summary"
	case TaskQuiz:
		return "quiz"
	case TaskFlashcards:
		return "flashcards"
	case TaskExplain:
		return "explain"
	case TaskCompare:
		return "compare"
	default:
		return "chat"
	}
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the input to an AI completion.
type CompletionRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Task        TaskType  `json:"task,omitempty"`
}

// CompletionResponse is the output from an AI completion.
type CompletionResponse struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r CompletionResponse) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// StreamChunk is one streamed response fragment. The channel closes after
// the chunk with Done set (or one carrying a terminal Error) is delivered.
type StreamChunk struct {
	Content string
	Done    bool
	Error   error
}

// ModelInfo describes an available model.
type ModelInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxTokens   int    `json:"max_tokens"`
	Description string `json:"description"`
}

// Provider is the interface all AI providers must implement.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
	StreamComplete(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
	Models() []ModelInfo
	HealthCheck(ctx context.Context) error
}
