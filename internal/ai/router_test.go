package ai_test

import (
	"context"
	"errors"
	"testing"

	"github.com/studydesk/studydesk/internal/ai"
)

func TestRouter_SingleProvider(t *testing.T) {
	router := ai.NewRouter()
	router.Register("openai", ai.NewMockProvider("Hello!"))

	resp, err := router.Complete(context.Background(), ai.CompletionRequest{
		Messages: []ai.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "Hello!" {
		t.Errorf("Content = %q, want %q", resp.Content, "Hello!")
	}
}

func TestRouter_Fallback(t *testing.T) {
	router := ai.NewRouter()
	router.Register("openai", &ai.MockProvider{Err: errors.New("rate limited")})
	router.Register("ollama", ai.NewMockProvider("Fallback response"))

	resp, err := router.Complete(context.Background(), ai.CompletionRequest{
		Messages: []ai.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "Fallback response" {
		t.Errorf("Content = %q, want %q", resp.Content, "Fallback response")
	}
}

func TestRouter_StreamFallback(t *testing.T) {
	router := ai.NewRouter()
	router.Register("openai", &ai.MockProvider{Err: errors.New("down")})
	router.Register("ollama", &ai.MockProvider{Fragments: []string{"a", "b"}})

	ch, err := router.StreamComplete(context.Background(), ai.CompletionRequest{
		Messages: []ai.Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("StreamComplete() error = %v", err)
	}

	var content string
	for chunk := range ch {
		content += chunk.Content
	}
	if content != "ab" {
		t.Errorf("streamed content = %q, want %q", content, "ab")
	}
}

func TestRouter_AllProvidersFail(t *testing.T) {
	router := ai.NewRouter()
	router.Register("openai", &ai.MockProvider{Err: errors.New("fail 1")})
	router.Register("ollama", &ai.MockProvider{Err: errors.New("fail 2")})

	if _, err := router.Complete(context.Background(), ai.CompletionRequest{}); err == nil {
		t.Fatal("Complete() should return error when all providers fail")
	}
	if _, err := router.StreamComplete(context.Background(), ai.CompletionRequest{}); err == nil {
		t.Fatal("StreamComplete() should return error when all providers fail")
	}
}

func TestRouter_NoProviders(t *testing.T) {
	router := ai.NewRouter()
	if router.HasProvider() {
		t.Error("HasProvider() = true for empty router")
	}
	if _, err := router.Complete(context.Background(), ai.CompletionRequest{}); err == nil {
		t.Fatal("Complete() should fail with no providers")
	}
}

func TestTaskType_String(t *testing.T) {
	tests := []struct {
		task ai.TaskType
		want string
	}{
		{ai.TaskChat, "chat"},
		{ai.TaskSummary, "summary"},
		{ai.TaskQuiz, "quiz"},
		{ai.TaskFlashcards, "flashcards"},
		{ai.TaskExplain, "explain"},
		{ai.TaskCompare, "compare"},
	}
	for _, tt := range tests {
		if got := tt.task.String(); got != tt.want {
			t.Errorf("TaskType(%d).String() = %q, want %q", tt.task, got, tt.want)
		}
	}
}
