package study

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPresets(t *testing.T) {
	p := DefaultPresets()

	if p.QuizQuestions != 5 {
		t.Errorf("QuizQuestions = %d, want 5", p.QuizQuestions)
	}
	if p.FlashcardCount != 7 {
		t.Errorf("FlashcardCount = %d, want 7", p.FlashcardCount)
	}
	if p.SummaryLength != LengthBrief {
		t.Errorf("SummaryLength = %q, want brief", p.SummaryLength)
	}
	for _, d := range []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced} {
		if p.Difficulty[d] == "" {
			t.Errorf("missing difficulty note for %q", d)
		}
		if p.Levels[d] == "" {
			t.Errorf("missing level note for %q", d)
		}
	}
}

func TestLoadPresets_MissingFileUsesDefaults(t *testing.T) {
	p, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QuizQuestions != 5 {
		t.Errorf("expected defaults, got QuizQuestions = %d", p.QuizQuestions)
	}
}

func TestLoadPresets_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	yaml := `
quiz_questions: 8
lengths:
  brief: "One sentence only."
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QuizQuestions != 8 {
		t.Errorf("QuizQuestions = %d, want 8", p.QuizQuestions)
	}
	if p.Lengths[LengthBrief] != "One sentence only." {
		t.Errorf("brief length not overridden: %q", p.Lengths[LengthBrief])
	}
	if p.FlashcardCount != 7 {
		t.Errorf("unrelated default changed: %d", p.FlashcardCount)
	}
	if p.Lengths[LengthDetailed] == "" {
		t.Error("unmentioned map entries should keep defaults")
	}
}

func TestLoadFile_SeededValuesAreDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("flashcard_count: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := DefaultPresets()
	p.QuizQuestions = 9
	p.FlashcardCount = 3
	if err := p.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.FlashcardCount != 12 {
		t.Errorf("FlashcardCount = %d, want 12 (file overrides seed)", p.FlashcardCount)
	}
	if p.QuizQuestions != 9 {
		t.Errorf("QuizQuestions = %d, want 9 (seed kept when file is silent)", p.QuizQuestions)
	}
}

func TestLoadFile_MissingFileKeepsSeed(t *testing.T) {
	p := DefaultPresets()
	p.QuizQuestions = 4
	if err := p.LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.QuizQuestions != 4 {
		t.Errorf("QuizQuestions = %d, want 4", p.QuizQuestions)
	}
}

func TestLoadPresets_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("quiz_questions: [not an int"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestQuizPrompt(t *testing.T) {
	p := DefaultPresets()
	prompt := p.QuizPrompt("binary_search", "Binary search halves the range.", 3, DifficultyAdvanced)

	for _, want := range []string{
		`3-question multiple-choice quiz on "binary_search"`,
		"complex scenarios and edge cases",
		"Binary search halves the range.",
		`"type": "quiz"`,
		`"answer": "A"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestQuizPrompt_DefaultCountAndDifficulty(t *testing.T) {
	p := DefaultPresets()
	prompt := p.QuizPrompt("sorting", "content", 0, Difficulty("weird"))

	if !strings.Contains(prompt, "5-question") {
		t.Error("zero count should fall back to preset default")
	}
	if !strings.Contains(prompt, p.Difficulty[DifficultyIntermediate]) {
		t.Error("unknown difficulty should fall back to intermediate note")
	}
}

func TestFlashcardsPrompt(t *testing.T) {
	p := DefaultPresets()
	prompt := p.FlashcardsPrompt("graph_theory", "Nodes and edges.", 0)

	if !strings.Contains(prompt, `Create 7 flashcards for studying "graph theory"`) {
		t.Errorf("header wrong:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"type": "flashcards"`) {
		t.Error("missing schema type")
	}
}

func TestSummaryPrompt(t *testing.T) {
	p := DefaultPresets()
	prompt := p.SummaryPrompt("red_black_trees", "Rotations rebalance.", LengthDetailed)

	if !strings.Contains(prompt, "Summarization Request for: Red Black Trees") {
		t.Errorf("title not prettified:\n%s", prompt)
	}
	if !strings.Contains(prompt, "2-3 paragraphs") {
		t.Error("missing detailed-length instruction")
	}
}

func TestExplainPrompt_WithAndWithoutContent(t *testing.T) {
	p := DefaultPresets()

	with := p.ExplainPrompt("recursion", "A function that calls itself.", DifficultyBeginner)
	if !strings.Contains(with, "**Content from study materials:**") {
		t.Error("content section missing")
	}
	if !strings.Contains(with, "simple analogies") {
		t.Error("beginner level note missing")
	}

	without := p.ExplainPrompt("recursion", "", DifficultyBeginner)
	if !strings.Contains(without, "Use general knowledge") {
		t.Error("missing general-knowledge fallback note")
	}
}

func TestComparePrompt(t *testing.T) {
	p := DefaultPresets()
	prompt := p.ComparePrompt("stack", "queue", "LIFO structure.", "")

	if !strings.Contains(prompt, "**Content for stack:**") {
		t.Error("missing first concept content")
	}
	if !strings.Contains(prompt, "No study materials found for queue") {
		t.Error("missing fallback for second concept")
	}
}
