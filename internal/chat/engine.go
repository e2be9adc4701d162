package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/studydesk/studydesk/internal/ai"
	"github.com/studydesk/studydesk/internal/notes"
	"github.com/studydesk/studydesk/internal/study"
)

// maxContextMessages bounds how much session history is replayed to the
// model on each turn.
const maxContextMessages = 30

const systemPrompt = `You are StudyDesk, a friendly study assistant that works with the student's own notes.

STYLE:
- Ground answers in the provided study materials when available
- Break complex ideas into small steps
- Use examples before formal definitions
- Keep responses concise; this is a chat, not a textbook

RULES:
- Never invent citations to the study materials
- If the materials do not cover a question, say so and answer from general knowledge`

// TopicSource supplies study-material content for a topic. *notes.Library
// satisfies it.
type TopicSource interface {
	TopicContent(ctx context.Context, topic string) (string, error)
}

// EngineConfig holds dependencies for the chat engine.
type EngineConfig struct {
	Router      *ai.Router
	Store       SessionStore
	Events      EventLogger
	Notes       TopicSource
	Presets     *study.Presets
	Budget      *ai.SessionBudget // optional per-session token cap
	Model       string            // preferred model; providers fall back to their default
	MaxTokens   int
	Temperature float64
}

// Engine processes chat turns: it detects study intents, assembles
// material-grounded prompts, and streams model output while recording both
// sides of the conversation.
type Engine struct {
	router      *ai.Router
	store       SessionStore
	events      EventLogger
	notes       TopicSource
	presets     *study.Presets
	budget      *ai.SessionBudget
	model       string
	maxTokens   int
	temperature float64
}

// NewEngine creates a chat engine. Store, events, and presets default to
// in-memory implementations when unset.
func NewEngine(cfg EngineConfig) *Engine {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	events := cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	presets := cfg.Presets
	if presets == nil {
		presets = study.DefaultPresets()
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 2000
	}
	return &Engine{
		router:      cfg.Router,
		store:       store,
		events:      events,
		notes:       cfg.Notes,
		presets:     presets,
		budget:      cfg.Budget,
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
	}
}

// History returns the stored messages for a session.
func (e *Engine) History(ctx context.Context, key string) ([]StoredMessage, error) {
	return e.store.History(ctx, key)
}

// Clear wipes a session's history.
func (e *Engine) Clear(ctx context.Context, key string) error {
	if err := e.store.Clear(ctx, key); err != nil {
		return err
	}
	if err := e.events.LogEvent(Event{SessionKey: key, EventType: "session_cleared"}); err != nil {
		slog.Warn("failed to log clear event", "error", err)
	}
	return nil
}

// StreamMessage handles one chat turn and streams the response. The user
// message is recorded before the model call; the assistant message is
// recorded once the stream completes.
func (e *Engine) StreamMessage(ctx context.Context, key, message string) (<-chan ai.StreamChunk, error) {
	req, in, err := e.prepareTurn(ctx, key, message)
	if err != nil {
		return nil, err
	}

	upstream, err := e.router.StreamComplete(ctx, req)
	if err != nil {
		return nil, err
	}

	out := make(chan ai.StreamChunk)
	go func() {
		defer close(out)
		var sb strings.Builder
		for chunk := range upstream {
			if chunk.Content != "" {
				sb.WriteString(chunk.Content)
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				e.finishTurn(key, in, sb.String())
				return
			}
		}
		e.finishTurn(key, in, sb.String())
	}()
	return out, nil
}

// ProcessMessage handles one chat turn synchronously.
func (e *Engine) ProcessMessage(ctx context.Context, key, message string) (string, error) {
	req, in, err := e.prepareTurn(ctx, key, message)
	if err != nil {
		return "", err
	}

	resp, err := e.router.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	if err := e.store.AddMessage(ctx, key, StoredMessage{
		Role:         "assistant",
		Content:      resp.Content,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}); err != nil {
		slog.Error("failed to store assistant message", "error", err)
	}
	e.recordUsage(key, resp.InputTokens+resp.OutputTokens)
	e.logTurn(key, in, len(resp.Content))

	return resp.Content, nil
}

// prepareTurn records the user message and builds the completion request
// for it.
func (e *Engine) prepareTurn(ctx context.Context, key, message string) (ai.CompletionRequest, intent, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ai.CompletionRequest{}, intent{}, fmt.Errorf("message is required")
	}

	if e.budget != nil && !e.budget.Check(key) {
		return ai.CompletionRequest{}, intent{}, ai.ErrBudgetExhausted
	}

	in := detectIntent(message)
	slog.Info("processing message",
		"session_key", key,
		"task", in.task.String(),
		"text_len", len(message),
	)

	if err := e.store.AddMessage(ctx, key, StoredMessage{Role: "user", Content: message}); err != nil {
		slog.Error("failed to store user message", "error", err)
	}

	req, err := e.buildRequest(ctx, key, message, in)
	if err != nil {
		return ai.CompletionRequest{}, in, err
	}
	return req, in, nil
}

// finishTurn records the accumulated assistant response after a stream.
func (e *Engine) finishTurn(key string, in intent, content string) {
	if content == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()

	if err := e.store.AddMessage(ctx, key, StoredMessage{Role: "assistant", Content: content}); err != nil {
		slog.Error("failed to store assistant message", "error", err)
	}
	// Streamed responses carry no usage data; charge a rough chars/4 estimate.
	e.recordUsage(key, len(content)/4)
	e.logTurn(key, in, len(content))
}

func (e *Engine) recordUsage(key string, tokens int) {
	if e.budget == nil || tokens <= 0 {
		return
	}
	if err := e.budget.Record(key, tokens); err != nil {
		slog.Warn("failed to record token usage", "error", err)
	}
}

func (e *Engine) logTurn(key string, in intent, responseLen int) {
	err := e.events.LogEvent(Event{
		SessionKey: key,
		EventType:  in.task.String(),
		Data: map[string]any{
			"topic":        in.topic,
			"response_len": responseLen,
		},
	})
	if err != nil {
		slog.Warn("failed to log turn event", "error", err)
	}
}

func (e *Engine) buildRequest(ctx context.Context, key, message string, in intent) (ai.CompletionRequest, error) {
	req := ai.CompletionRequest{
		Task:        in.task,
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	}

	switch in.task {
	case ai.TaskChat:
		history, err := e.store.History(ctx, key)
		if err != nil {
			return req, err
		}
		if len(history) > maxContextMessages {
			history = history[len(history)-maxContextMessages:]
		}
		req.Messages = []ai.Message{{Role: "system", Content: systemPrompt}}
		for _, m := range history {
			req.Messages = append(req.Messages, ai.Message{Role: m.Role, Content: m.Content})
		}
		return req, nil

	case ai.TaskCompare:
		content1 := e.topicContent(ctx, in.topic)
		content2 := e.topicContent(ctx, in.other)
		req.Messages = e.toolMessages(e.presets.ComparePrompt(in.topic, in.other, content1, content2))
		return req, nil

	case ai.TaskExplain:
		content := e.topicContent(ctx, in.topic)
		req.Messages = e.toolMessages(e.presets.ExplainPrompt(in.topic, content, in.difficulty))
		return req, nil
	}

	// Quiz, flashcards, and summaries need actual study materials.
	if e.notes == nil {
		return req, notes.ErrNoMaterials
	}
	content, err := e.notes.TopicContent(ctx, in.topic)
	if err != nil {
		if errors.Is(err, notes.ErrNoMaterials) {
			return req, fmt.Errorf("%w: add PDF or Markdown files to the notes directory", err)
		}
		return req, err
	}

	switch in.task {
	case ai.TaskQuiz:
		req.Messages = e.toolMessages(e.presets.QuizPrompt(in.topic, content, e.presets.QuizQuestions, in.difficulty))
	case ai.TaskFlashcards:
		req.Messages = e.toolMessages(e.presets.FlashcardsPrompt(in.topic, content, e.presets.FlashcardCount))
	case ai.TaskSummary:
		if in.chapter {
			req.Messages = e.toolMessages(e.presets.ChapterSummaryPrompt(in.topic, content))
		} else {
			req.Messages = e.toolMessages(e.presets.SummaryPrompt(in.topic, content, in.length))
		}
	}
	return req, nil
}

// topicContent fetches materials, treating a missing library as "use
// general knowledge".
func (e *Engine) topicContent(ctx context.Context, topic string) string {
	if e.notes == nil {
		return ""
	}
	content, err := e.notes.TopicContent(ctx, topic)
	if err != nil {
		if !errors.Is(err, notes.ErrNoMaterials) {
			slog.Warn("topic content lookup failed", "topic", topic, "error", err)
		}
		return ""
	}
	return content
}

func (e *Engine) toolMessages(prompt string) []ai.Message {
	return []ai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
}

// intent is the detected study task and its parameters.
type intent struct {
	task       ai.TaskType
	topic      string
	other      string // second concept for comparisons
	chapter    bool   // summary of a whole chapter rather than a topic
	difficulty study.Difficulty
	length     study.SummaryLength
}

var (
	compareRe = regexp.MustCompile(`(?i)\bcompare\s+(.+?)\s+(?:and|vs\.?|versus|with|to)\s+(.+)`)
	topicRe   = regexp.MustCompile(`(?i)\b(?:on|about|of|for)\s+(.+)`)
	explainRe = regexp.MustCompile(`(?i)\b(?:explain|what\s+is|what\s+are)\s+(.+)`)
	chapterRe = regexp.MustCompile(`(?i)\bchapter\s+([\w-]+)`)
)

// detectIntent routes a message to a study task by keyword. Anything that
// does not name a tool is a plain chat turn.
func detectIntent(message string) intent {
	lower := strings.ToLower(message)

	in := intent{
		task:       ai.TaskChat,
		difficulty: detectDifficulty(lower),
		length:     detectLength(lower),
	}

	switch {
	case strings.Contains(lower, "flashcard"):
		in.task = ai.TaskFlashcards
		in.topic = extractTopic(message)
	case strings.Contains(lower, "quiz") || strings.Contains(lower, "test me"):
		in.task = ai.TaskQuiz
		in.topic = extractTopic(message)
	case strings.Contains(lower, "summarize") || strings.Contains(lower, "summarise") ||
		strings.Contains(lower, "summary"):
		in.task = ai.TaskSummary
		if m := chapterRe.FindStringSubmatch(message); m != nil {
			in.chapter = true
			in.topic = "chapter " + cleanTopic(m[1])
		} else {
			in.topic = extractTopic(message)
		}
	case compareRe.MatchString(message):
		m := compareRe.FindStringSubmatch(message)
		in.task = ai.TaskCompare
		in.topic = cleanTopic(m[1])
		in.other = cleanTopic(m[2])
	case explainRe.MatchString(message):
		in.task = ai.TaskExplain
		in.topic = cleanTopic(explainRe.FindStringSubmatch(message)[1])
	}
	return in
}

// extractTopic pulls the subject out of a tool request ("quiz me on X").
// Falls back to the whole message when no preposition is found.
func extractTopic(message string) string {
	if m := topicRe.FindStringSubmatch(message); m != nil {
		return cleanTopic(m[1])
	}
	return cleanTopic(message)
}

func cleanTopic(topic string) string {
	topic = strings.TrimSpace(topic)
	topic = strings.Trim(topic, ".!?\"'")
	// Drop qualifier tails like "at an advanced level".
	for _, sep := range []string{" at a ", " at an ", ", please"} {
		if i := strings.Index(strings.ToLower(topic), sep); i >= 0 {
			topic = topic[:i]
		}
	}
	return strings.TrimSpace(topic)
}

func detectDifficulty(lower string) study.Difficulty {
	switch {
	case strings.Contains(lower, "advanced"):
		return study.DifficultyAdvanced
	case strings.Contains(lower, "beginner") || strings.Contains(lower, "simple"):
		return study.DifficultyBeginner
	default:
		return study.DifficultyIntermediate
	}
}

func detectLength(lower string) study.SummaryLength {
	switch {
	case strings.Contains(lower, "comprehensive"):
		return study.LengthComprehensive
	case strings.Contains(lower, "detailed"):
		return study.LengthDetailed
	case strings.Contains(lower, "brief"), strings.Contains(lower, "short"):
		return study.LengthBrief
	default:
		return "" // preset default applies
	}
}
