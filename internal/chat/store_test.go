package chat

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_HistoryOfUnknownSessionIsEmpty(t *testing.T) {
	store := NewMemoryStore()

	history, err := store.History(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d messages", len(history))
	}
}

func TestMemoryStore_AddAndHistory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.AddMessage(ctx, "s1", StoredMessage{Role: "user", Content: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddMessage(ctx, "s1", StoredMessage{Role: "assistant", Content: "hello"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddMessage(ctx, "s2", StoredMessage{Role: "user", Content: "other session"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Content != "hi" || history[1].Content != "hello" {
		t.Errorf("unexpected order: %+v", history)
	}
	if history[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestMemoryStore_Validation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.AddMessage(ctx, "", StoredMessage{Role: "user", Content: "x"}); err == nil {
		t.Error("expected error for empty key")
	}
	if err := store.AddMessage(ctx, "s1", StoredMessage{Role: "user"}); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Clear(ctx, "never-seen"); err != nil {
		t.Errorf("clearing unknown session should be a no-op, got %v", err)
	}

	_ = store.AddMessage(ctx, "s1", StoredMessage{Role: "user", Content: "hi"})
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history, _ := store.History(ctx, "s1")
	if len(history) != 0 {
		t.Errorf("history not cleared: %d messages", len(history))
	}

	// The session survives clearing and accepts new messages.
	if err := store.AddMessage(ctx, "s1", StoredMessage{Role: "user", Content: "again"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	history, _ = store.History(ctx, "s1")
	if len(history) != 1 {
		t.Errorf("history length = %d, want 1", len(history))
	}
}

func TestMemoryStore_ConcurrentWrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.AddMessage(ctx, "s1", StoredMessage{
				Role:      "user",
				Content:   "msg",
				CreatedAt: time.Now(),
			})
		}()
	}
	wg.Wait()

	history, _ := store.History(ctx, "s1")
	if len(history) != 20 {
		t.Errorf("history length = %d, want 20", len(history))
	}
}
