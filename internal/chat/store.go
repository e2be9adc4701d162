// Package chat holds the conversation engine: per-session history, study
// tool routing, and streaming responses.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StoredMessage is a single message in a session's history.
type StoredMessage struct {
	Role         string    `json:"role"`
	Content      string    `json:"content"`
	Model        string    `json:"model,omitempty"`
	InputTokens  int       `json:"input_tokens,omitempty"`
	OutputTokens int       `json:"output_tokens,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is one study conversation, keyed by the client-supplied session
// identifier.
type Session struct {
	Key       string          `json:"key"`
	Messages  []StoredMessage `json:"messages"`
	StartedAt time.Time       `json:"started_at"`
	ClearedAt *time.Time      `json:"cleared_at,omitempty"`
}

// SessionStore persists session message history. Implementations must
// create a session transparently on first use of a key.
type SessionStore interface {
	History(ctx context.Context, key string) ([]StoredMessage, error)
	AddMessage(ctx context.Context, key string, msg StoredMessage) error
	Clear(ctx context.Context, key string) error
}

// MemoryStore is an in-memory SessionStore.
type MemoryStore struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) History(_ context.Context, key string) ([]StoredMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return []StoredMessage{}, nil
	}
	return append([]StoredMessage{}, sess.Messages...), nil
}

func (s *MemoryStore) AddMessage(_ context.Context, key string, msg StoredMessage) error {
	if key == "" {
		return fmt.Errorf("session key is required")
	}
	if msg.Role == "" || msg.Content == "" {
		return fmt.Errorf("message role and content are required")
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		sess = &Session{Key: key, StartedAt: time.Now(), Messages: []StoredMessage{}}
		s.sessions[key] = sess
	}
	sess.Messages = append(sess.Messages, msg)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil
	}
	now := time.Now()
	sess.ClearedAt = &now
	sess.Messages = []StoredMessage{}
	return nil
}
