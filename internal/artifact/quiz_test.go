package artifact

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestParseQuiz_PrimaryConvention(t *testing.T) {
	text := "Question 1 What is 2+2?\nA) 3\nB) 4\n---\nQuestion 1 Answer: B\nExplanation: Basic arithmetic."

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(quiz.Questions))
	}

	q := quiz.Questions[0]
	if q.Ordinal != 1 {
		t.Errorf("ordinal = %d, want 1", q.Ordinal)
	}
	if q.Prompt != "What is 2+2?" {
		t.Errorf("prompt = %q", q.Prompt)
	}
	if len(q.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(q.Options))
	}
	if q.Options[0].Letter != "A" || q.Options[0].Text != "3" || q.Options[0].Correct {
		t.Errorf("option A = %+v", q.Options[0])
	}
	if q.Options[1].Letter != "B" || q.Options[1].Text != "4" || !q.Options[1].Correct {
		t.Errorf("option B = %+v", q.Options[1])
	}
	if q.Correct != "B" {
		t.Errorf("correct = %q, want B", q.Correct)
	}
	if q.Explanation != "Basic arithmetic." {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestParseQuiz_DashLineWithLeadInProse(t *testing.T) {
	text := "Question 1 Pick\nA) x\nB) y\n---\nHere are the answers.\nQuestion 1 Answer: B\nExplanation: Because y."

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	q := quiz.Questions[0]
	if len(q.Options) != 2 {
		t.Fatalf("options = %d, want 2", len(q.Options))
	}
	if q.Options[1].Text != "y" {
		t.Errorf("option B text = %q, want %q", q.Options[1].Text, "y")
	}
	if q.Correct != "B" {
		t.Errorf("correct = %q, want B", q.Correct)
	}
	if q.Explanation != "Because y." {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestParseQuiz_AnswersHeadingFallback(t *testing.T) {
	text := "Question 1: Capital of France?\nA. London\nB. Paris\n\n## Answers and Explanations\n\nQuestion 1 Answer: b\nExplanation: Paris has been the capital since 987."

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	q := quiz.Questions[0]
	if q.Prompt != "Capital of France?" {
		t.Errorf("prompt = %q", q.Prompt)
	}
	if q.Correct != "B" {
		t.Errorf("correct = %q, want B (case-insensitive key)", q.Correct)
	}
	if !strings.HasPrefix(q.Explanation, "Paris has been") {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestParseQuiz_InlineAnswerFallback(t *testing.T) {
	// No dash line, no heading: split at the first answer marker.
	text := "1. Pick one\nA) yes\nB) no\nQuestion 1 Answer: A"

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.Correct != "A" {
		t.Errorf("correct = %q, want A", q.Correct)
	}
	// No explanation text follows the marker: a sentence is generated.
	if q.Explanation != "The correct answer is A." {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestParseQuiz_AnswerKeyProperty(t *testing.T) {
	// Every answer-block entry must mark the matching option correct,
	// provided the question itself parsed.
	var qb, ab strings.Builder
	for n := 1; n <= 5; n++ {
		fmt.Fprintf(&qb, "Question %d prompt %d\nA) one\nB) two\nC) three\nD) four\n", n, n)
	}
	letters := []string{"A", "B", "C", "D", "A"}
	ab.WriteString("---\n")
	for n := 1; n <= 5; n++ {
		fmt.Fprintf(&ab, "Question %d Answer: %s\nExplanation: Because %d.\n", n, letters[n-1], n)
	}

	quiz, err := ParseQuiz(qb.String() + ab.String())
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("questions = %d, want 5", len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		want := letters[i]
		if q.Correct != want {
			t.Errorf("question %d correct = %q, want %q", q.Ordinal, q.Correct, want)
		}
		for _, opt := range q.Options {
			if opt.Correct != (opt.Letter == want) {
				t.Errorf("question %d option %s correct = %v", q.Ordinal, opt.Letter, opt.Correct)
			}
		}
		if q.Explanation != fmt.Sprintf("Because %d.", q.Ordinal) {
			t.Errorf("question %d explanation = %q", q.Ordinal, q.Explanation)
		}
	}
}

func TestParseQuiz_DiscardsPieceWithoutOptions(t *testing.T) {
	text := "Question 1 Has options\nA) yes\nB) no\n\nQuestion 2 Has none at all\n\nQuestion 3 Back to normal\nA) fine\nB) also fine"

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("questions = %d, want 2 (ordinal 2 discarded)", len(quiz.Questions))
	}
	if quiz.Questions[0].Ordinal != 1 || quiz.Questions[1].Ordinal != 3 {
		t.Errorf("ordinals = %d, %d, want 1, 3", quiz.Questions[0].Ordinal, quiz.Questions[1].Ordinal)
	}
}

func TestParseQuiz_NoOptionsAnywhere(t *testing.T) {
	if _, err := ParseQuiz("Question 1 Nothing lettered here at all"); err != ErrNoRecords {
		t.Fatalf("err = %v, want ErrNoRecords", err)
	}
}

func TestParseQuiz_IntroAndNormalization(t *testing.T) {
	text := "# Pop Quiz\n**Good luck!**\n\n**1.** First question\nA) a\nB) b\n\n2. Second question\nA. aa\nB. bb"

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if quiz.Intro != "Pop Quiz\nGood luck!" {
		t.Errorf("intro = %q", quiz.Intro)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(quiz.Questions))
	}
	if quiz.Questions[1].Prompt != "Second question" {
		t.Errorf("prompt 2 = %q", quiz.Questions[1].Prompt)
	}
	// A. is normalized and split the same way as A).
	if quiz.Questions[1].Options[1].Text != "bb" {
		t.Errorf("option text = %q", quiz.Questions[1].Options[1].Text)
	}
}

func TestParseQuiz_TrailingDashesStripped(t *testing.T) {
	text := "Question 1 Last option ends a section\nA) alpha\nB) beta ----\nQuestion 1 Answer: A"

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	opts := quiz.Questions[0].Options
	if opts[1].Text != "beta" {
		t.Errorf("option B text = %q, want dashes stripped", opts[1].Text)
	}
}

func TestParseQuiz_FirstAnswerWinsPerOrdinal(t *testing.T) {
	text := "Question 1 Pick\nA) x\nB) y\n---\nQuestion 1 Answer: A\nQuestion 1 Answer: B"

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if got := quiz.Questions[0].Correct; got != "A" {
		t.Errorf("correct = %q, want A (first recorded answer wins)", got)
	}
}

func TestParseQuiz_ExplanationCapped(t *testing.T) {
	long := strings.Repeat("x", 500)
	text := "Question 1 Q\nA) a\nB) b\n---\nQuestion 1 Answer: A\nExplanation: " + long

	quiz, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	if got := len(quiz.Questions[0].Explanation); got != maxExplanation {
		t.Errorf("explanation length = %d, want %d", got, maxExplanation)
	}
}

func TestParseQuiz_Idempotent(t *testing.T) {
	text := "Intro line\nQuestion 1 Q one\nA) a\nB) b\n2. Q two\nC) c\nD) d\n---\nQuestion 2 Answer: D\nExplanation: because."

	first, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() error = %v", err)
	}
	second, err := ParseQuiz(text)
	if err != nil {
		t.Fatalf("ParseQuiz() second run error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running the reconstructor changed the records:\n%+v\n%+v", first, second)
	}
}

func TestParseQuizJSON_NumericAnswerMapping(t *testing.T) {
	for idx, want := range []string{"A", "B", "C", "D"} {
		obj := map[string]any{
			"questions": []any{
				map[string]any{
					"question": "Q?",
					"options":  []any{"w", "x", "y", "z"},
					"answer":   float64(idx),
				},
			},
		}
		quiz := parseQuizJSON(obj)
		if got := quiz.Questions[0].Correct; got != want {
			t.Errorf("answer index %d mapped to %q, want %q", idx, got, want)
		}
	}
}

func TestParseQuizJSON_Example(t *testing.T) {
	obj := map[string]any{
		"questions": []any{
			map[string]any{
				"question": "Q?",
				"options":  []any{"a", "b"},
				"answer":   float64(1),
			},
		},
	}

	quiz := parseQuizJSON(obj)
	if len(quiz.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(quiz.Questions))
	}
	q := quiz.Questions[0]
	if q.Options[0].Letter != "A" || q.Options[0].Text != "a" {
		t.Errorf("option A = %+v", q.Options[0])
	}
	if q.Options[1].Letter != "B" || !q.Options[1].Correct {
		t.Errorf("option B = %+v", q.Options[1])
	}
	if q.Explanation != noExplanation {
		t.Errorf("explanation = %q, want placeholder", q.Explanation)
	}
}

func TestParseQuizJSON_NeverDrops(t *testing.T) {
	obj := map[string]any{
		"quiz": []any{
			map[string]any{"question": "no options at all"},
			"not even an object",
			map[string]any{
				"question": "letter answer, keyed options",
				"choices":  map[string]any{"a": "one", "B": "two"},
				"answer":   "b",
			},
		},
	}

	quiz := parseQuizJSON(obj)
	if len(quiz.Questions) != 3 {
		t.Fatalf("questions = %d, want 3 (structured input is trusted)", len(quiz.Questions))
	}
	if quiz.Questions[0].Options != nil {
		t.Errorf("question 1 options = %+v, want none", quiz.Questions[0].Options)
	}
	q3 := quiz.Questions[2]
	if q3.Ordinal != 3 {
		t.Errorf("ordinal = %d, want 3", q3.Ordinal)
	}
	if len(q3.Options) != 2 || q3.Options[0].Text != "one" {
		t.Errorf("options = %+v", q3.Options)
	}
	if q3.Correct != "B" || !q3.Options[1].Correct {
		t.Errorf("correct = %q, options = %+v", q3.Correct, q3.Options)
	}
}
