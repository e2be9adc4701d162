package artifact

// Interactive state is modeled explicitly on each record's display model and
// mutated only through the transition functions below, so the behavior is
// testable without a DOM: a quiz question locks on its first selection, a
// flashcard flips back and forth without limit.

// QuestionView is a question plus its interaction state.
type QuestionView struct {
	Question
	Locked   bool   `json:"locked"`
	Selected string `json:"selected,omitempty"`
}

// QuizView is the display model for one quiz artifact.
type QuizView struct {
	Intro     string         `json:"intro,omitempty"`
	Questions []QuestionView `json:"questions"`
}

// NewQuizView wraps reconstructed questions in unlocked view state.
func NewQuizView(quiz *Quiz) *QuizView {
	view := &QuizView{Intro: quiz.Intro}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, QuestionView{Question: q})
	}
	return view
}

// Select applies a one-shot answer selection to question i. The first
// selection locks the question and returns true; selections on a locked
// question, an unknown index, or an absent letter are no-ops.
func (v *QuizView) Select(i int, letter string) bool {
	if i < 0 || i >= len(v.Questions) {
		return false
	}
	q := &v.Questions[i]
	if q.Locked || !q.hasOption(letter) {
		return false
	}
	q.Locked = true
	q.Selected = letter
	return true
}

func (q *QuestionView) hasOption(letter string) bool {
	for _, opt := range q.Options {
		if opt.Letter == letter {
			return true
		}
	}
	return false
}

// CardView is a flashcard plus its flip state.
type CardView struct {
	Flashcard
	Flipped bool `json:"flipped"`
}

// DeckView is the display model for one flashcard artifact.
type DeckView struct {
	Cards []CardView `json:"cards"`
}

// NewDeckView wraps reconstructed cards in front-facing view state.
func NewDeckView(deck *Deck) *DeckView {
	view := &DeckView{}
	for _, c := range deck.Cards {
		view.Cards = append(view.Cards, CardView{Flashcard: c})
	}
	return view
}

// Flip toggles card i between front and back. Unlike quiz locking, flipping
// is unlimited and reversible.
func (v *DeckView) Flip(i int) bool {
	if i < 0 || i >= len(v.Cards) {
		return false
	}
	v.Cards[i].Flipped = !v.Cards[i].Flipped
	return true
}
