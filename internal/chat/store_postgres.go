package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed SessionStore. Sessions are created
// lazily on first message; clearing a session stamps cleared_at and deletes
// its messages so history starts fresh under the same key.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps a connection pool as a session store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) History(ctx context.Context, key string) ([]StoredMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT m.role, m.content, m.model, m.input_tokens, m.output_tokens, m.created_at
		 FROM messages m
		 JOIN sessions s ON s.id = m.session_id
		 WHERE s.session_key = $1
		 ORDER BY m.created_at ASC, m.id ASC`,
		key,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	messages := []StoredMessage{}
	for rows.Next() {
		var msg StoredMessage
		if err := rows.Scan(
			&msg.Role,
			&msg.Content,
			&msg.Model,
			&msg.InputTokens,
			&msg.OutputTokens,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}

func (s *PostgresStore) AddMessage(ctx context.Context, key string, msg StoredMessage) error {
	if key == "" {
		return fmt.Errorf("session key is required")
	}
	if msg.Role == "" || msg.Content == "" {
		return fmt.Errorf("message role and content are required")
	}

	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	sessionID, err := s.resolveOrCreateSession(ctx, key)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO messages (session_id, role, content, model, input_tokens, output_tokens, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sessionID,
		msg.Role,
		msg.Content,
		msg.Model,
		msg.InputTokens,
		msg.OutputTokens,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`WITH target AS (
		   UPDATE sessions SET cleared_at = NOW()
		   WHERE session_key = $1
		   RETURNING id
		 )
		 DELETE FROM messages WHERE session_id IN (SELECT id FROM target)`,
		key,
	)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *PostgresStore) resolveOrCreateSession(ctx context.Context, key string) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM sessions WHERE session_key = $1`,
		key,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("lookup session: %w", err)
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO sessions (session_key)
		 VALUES ($1)
		 ON CONFLICT (session_key) DO UPDATE SET session_key = EXCLUDED.session_key
		 RETURNING id`,
		key,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	return id, nil
}
