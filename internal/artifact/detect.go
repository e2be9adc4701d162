package artifact

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Format classifies one completed response text.
type Format int

const (
	FormatMarkdown Format = iota
	FormatJSONQuiz
	FormatJSONFlashcards
	FormatTextQuiz
	FormatTextFlashcards
)

func (f Format) String() string {
	switch f {
	case FormatJSONQuiz:
		return "json-quiz"
	case FormatJSONFlashcards:
		return "json-flashcards"
	case FormatTextQuiz:
		return "text-quiz"
	case FormatTextFlashcards:
		return "text-flashcards"
	default:
		return "markdown"
	}
}

var (
	detectQuestionRe  = regexp.MustCompile(`(?mi)Question\s+\d+|^\s*\d+\.`)
	detectOptionRe    = regexp.MustCompile(`\b[A-D][.)]\s`)
	detectFlashcardRe = regexp.MustCompile(`(?is)\bCard\s+\S+.*?Front\s*:`)
)

// Detect classifies text as structured JSON (quiz or flashcards), a textual
// quiz, textual flashcards, or plain markdown. The classification is a
// best-effort hint: reconstructors still verify they produce records. For
// the JSON formats the parsed object is returned alongside.
func Detect(text string) (Format, map[string]any) {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]any
		// A parse failure is not an error: the text merely looked structured.
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			if hasArray(obj, "questions", "quiz") {
				return FormatJSONQuiz, obj
			}
			if hasArray(obj, "cards", "flashcards") {
				return FormatJSONFlashcards, obj
			}
		}
	}

	if detectQuestionRe.MatchString(text) && detectOptionRe.MatchString(text) {
		return FormatTextQuiz, nil
	}
	if detectFlashcardRe.MatchString(stripBold(text)) {
		return FormatTextFlashcards, nil
	}
	return FormatMarkdown, nil
}

func hasArray(obj map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := obj[key].([]any); ok {
			return true
		}
	}
	return false
}

func arrayOf(obj map[string]any, keys ...string) []any {
	for _, key := range keys {
		if arr, ok := obj[key].([]any); ok {
			return arr
		}
	}
	return nil
}
