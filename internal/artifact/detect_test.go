package artifact

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{
			name: "json quiz",
			text: `{"type":"quiz","questions":[{"question":"Q?","options":["a","b"],"answer":1}]}`,
			want: FormatJSONQuiz,
		},
		{
			name: "json quiz under quiz key",
			text: `{"quiz":[{"question":"Q?"}]}`,
			want: FormatJSONQuiz,
		},
		{
			name: "json flashcards",
			text: `{"cards":[{"front":"f","back":"b"}]}`,
			want: FormatJSONFlashcards,
		},
		{
			name: "malformed json falls through to textual",
			text: "{\"questions\": [broken\nQuestion 1 What?\nA) a\nB) b",
			want: FormatTextQuiz,
		},
		{
			name: "json without known arrays is markdown",
			text: `{"summary":"nothing quiz shaped"}`,
			want: FormatMarkdown,
		},
		{
			name: "textual quiz needs both markers",
			text: "Question 1 What is it?\nA) this\nB) that",
			want: FormatTextQuiz,
		},
		{
			name: "numbered line with options",
			text: "1. What is it?\nA. this\nB. that",
			want: FormatTextQuiz,
		},
		{
			name: "quiz heading without lettered options is markdown",
			text: "# Quiz time\nQuestion 1 What is it?\nNo options follow.",
			want: FormatMarkdown,
		},
		{
			name: "textual flashcards",
			text: "Card 1\n**Front:** What?\n**Back:** That.",
			want: FormatTextFlashcards,
		},
		{
			name: "plain prose",
			text: "Photosynthesis converts light into chemical energy.",
			want: FormatMarkdown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := Detect(tt.text)
			if got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild_QuizHeadingWithoutOptionsRendersMarkdown(t *testing.T) {
	a := Build("# Quiz\nQuestion 1 What is it?\nNo lettered options anywhere.")
	if a.Kind != KindMarkdown {
		t.Fatalf("kind = %v, want markdown", a.Kind)
	}
	if a.Quiz != nil {
		t.Error("no quiz container should be emitted")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	text := "Question 1 What is 2+2?\nA) 3\nB) 4\n---\nQuestion 1 Answer: B"
	first := Build(text)
	second := Build(text)
	if first.Kind != KindQuiz || second.Kind != KindQuiz {
		t.Fatalf("kinds = %v, %v, want quiz", first.Kind, second.Kind)
	}
	if first.HTML != second.HTML {
		t.Error("re-running the pipeline changed the rendered artifact")
	}
}
