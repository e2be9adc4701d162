// Package artifact turns completed model output into interactive study
// artifacts. A response is classified (JSON quiz, JSON flashcards, textual
// quiz, textual flashcards, or plain markdown), reconstructed into records,
// and rendered once; records never outlive the build that produced them.
package artifact

import (
	"errors"
	"html/template"
)

// ErrNoRecords is returned by a reconstructor that found its trigger markers
// but extracted zero usable records. Callers fall back rather than fail.
var ErrNoRecords = errors.New("no records parsed")

// Kind identifies the shape of a presentation artifact.
type Kind int

const (
	KindMarkdown Kind = iota
	KindQuiz
	KindFlashcards
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindQuiz:
		return "quiz"
	case KindFlashcards:
		return "flashcards"
	case KindError:
		return "error"
	default:
		return "markdown"
	}
}

// Option is one lettered choice within a question.
type Option struct {
	Letter  string `json:"letter"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is a reconstructed multiple-choice question.
type Question struct {
	Ordinal     int      `json:"ordinal"`
	Prompt      string   `json:"prompt"`
	Options     []Option `json:"options"`
	Correct     string   `json:"correct,omitempty"` // "A".."D", empty when unknown
	Explanation string   `json:"explanation"`
}

// Quiz is an ordered set of questions plus any introductory text that
// preceded the first numbered question.
type Quiz struct {
	Intro     string     `json:"intro,omitempty"`
	Questions []Question `json:"questions"`
}

// Flashcard is a single front/back card. The label is carried verbatim from
// the source text; it is not renumbered.
type Flashcard struct {
	Label string `json:"label"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Deck is an ordered set of flashcards.
type Deck struct {
	Cards []Flashcard `json:"cards"`
}

// Artifact is the single presentation artifact produced for one completed
// response: rendered HTML plus, for interactive kinds, the view state the
// client transitions through.
type Artifact struct {
	Kind Kind          `json:"kind"`
	HTML template.HTML `json:"html"`
	Quiz *QuizView     `json:"quiz,omitempty"`
	Deck *DeckView     `json:"deck,omitempty"`
}

// Build runs the full pipeline on one completed response text. It never
// fails: quiz reconstruction errors fall back to markdown rendering and
// flashcard reconstruction errors produce a visible error artifact.
func Build(text string) Artifact {
	switch format, obj := Detect(text); format {
	case FormatJSONQuiz:
		return renderQuiz(parseQuizJSON(obj))
	case FormatTextQuiz:
		quiz, err := ParseQuiz(text)
		if err != nil {
			return renderMarkdown(text)
		}
		return renderQuiz(quiz)
	case FormatJSONFlashcards:
		return renderDeck(parseFlashcardsJSON(obj))
	case FormatTextFlashcards:
		deck, err := ParseFlashcards(text)
		if err != nil {
			return renderError("Could not read any flashcards from this response.", text)
		}
		return renderDeck(deck)
	default:
		return renderMarkdown(text)
	}
}
