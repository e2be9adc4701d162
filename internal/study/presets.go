// Package study builds the model prompts behind the study tools: quizzes,
// flashcard decks, summaries, explanations, and concept comparisons.
package study

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Difficulty grades quiz questions and explanations.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// SummaryLength selects how expansive a summary should be.
type SummaryLength string

const (
	LengthBrief         SummaryLength = "brief"
	LengthDetailed      SummaryLength = "detailed"
	LengthComprehensive SummaryLength = "comprehensive"
)

// Presets holds the tunable instruction fragments the prompt builders
// splice into requests. Defaults can be overridden from a YAML file.
type Presets struct {
	QuizQuestions  int                      `yaml:"quiz_questions"`
	FlashcardCount int                      `yaml:"flashcard_count"`
	SummaryLength  SummaryLength            `yaml:"summary_length"`
	Difficulty     map[Difficulty]string    `yaml:"difficulty"`
	Levels         map[Difficulty]string    `yaml:"levels"`
	Lengths        map[SummaryLength]string `yaml:"lengths"`
}

// DefaultPresets returns the built-in instruction set.
func DefaultPresets() *Presets {
	return &Presets{
		QuizQuestions:  5,
		FlashcardCount: 7,
		SummaryLength:  LengthBrief,
		Difficulty: map[Difficulty]string{
			DifficultyBeginner:     "Focus on basic definitions and concepts.",
			DifficultyIntermediate: "Include application-based questions.",
			DifficultyAdvanced:     "Include complex scenarios and edge cases.",
		},
		Levels: map[Difficulty]string{
			DifficultyBeginner:     "Use simple analogies, avoid jargon, focus on intuition.",
			DifficultyIntermediate: "Include technical terms with definitions, explain how things work.",
			DifficultyAdvanced:     "Include formulas, edge cases, implementation details, and tradeoffs.",
		},
		Lengths: map[SummaryLength]string{
			LengthBrief:         "Create a concise 3-5 sentence summary highlighting the key points.",
			LengthDetailed:      "Create a comprehensive summary covering all main concepts, with 2-3 paragraphs.",
			LengthComprehensive: "Create an extensive summary that covers all details, examples, and nuances.",
		},
	}
}

// LoadPresets merges YAML overrides from path onto the defaults. An empty
// path or missing file yields the defaults; malformed YAML is an error.
func LoadPresets(path string) (*Presets, error) {
	p := DefaultPresets()
	if err := p.LoadFile(path); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadFile merges YAML overrides from path onto p, so values already set on
// p act as the defaults. An empty path or missing file leaves p unchanged;
// malformed YAML is an error.
func (p *Presets) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("presets file not found, using defaults", "path", path)
			return nil
		}
		return fmt.Errorf("reading presets: %w", err)
	}

	var override Presets
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("parsing presets: %w", err)
	}
	p.merge(&override)

	slog.Info("study presets loaded", "path", path)
	return nil
}

func (p *Presets) merge(o *Presets) {
	if o.QuizQuestions > 0 {
		p.QuizQuestions = o.QuizQuestions
	}
	if o.FlashcardCount > 0 {
		p.FlashcardCount = o.FlashcardCount
	}
	if o.SummaryLength != "" {
		p.SummaryLength = o.SummaryLength
	}
	for k, v := range o.Difficulty {
		p.Difficulty[k] = v
	}
	for k, v := range o.Levels {
		p.Levels[k] = v
	}
	for k, v := range o.Lengths {
		p.Lengths[k] = v
	}
}

// difficultyNote falls back to intermediate for unknown values.
func (p *Presets) difficultyNote(d Difficulty) string {
	if note, ok := p.Difficulty[d]; ok {
		return note
	}
	return p.Difficulty[DifficultyIntermediate]
}

func (p *Presets) levelNote(d Difficulty) string {
	if note, ok := p.Levels[d]; ok {
		return note
	}
	return p.Levels[DifficultyBeginner]
}

func (p *Presets) lengthNote(l SummaryLength) string {
	if note, ok := p.Lengths[l]; ok {
		return note
	}
	return p.Lengths[LengthBrief]
}
