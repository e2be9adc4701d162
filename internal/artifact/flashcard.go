package artifact

import (
	"regexp"
	"strconv"
)

var (
	cardSplitRe = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*\r?$`)
	cardLabelRe = regexp.MustCompile(`(?i)\bCard\s+([^\s:]+)`)
	frontBackRe = regexp.MustCompile(`(?is)Front:\s*(.*?)\s*Back:\s*(.*)$`)
)

// ParseFlashcards reconstructs a textual flashcard deck. Sections are
// separated by dash runs; each needs a Card <label> marker and a
// Front:/Back: pair or it is silently skipped. Labels are kept verbatim,
// not renumbered. ErrNoRecords is returned when no section yields a card.
func ParseFlashcards(text string) (*Deck, error) {
	deck := &Deck{}
	for _, section := range cardSplitRe.Split(text, -1) {
		section = stripBold(section)

		label := cardLabelRe.FindStringSubmatch(section)
		if label == nil {
			continue
		}
		fb := frontBackRe.FindStringSubmatch(section)
		if fb == nil {
			continue
		}

		front := collapseSpace(dashRunRe.ReplaceAllString(fb[1], " "))
		back := collapseSpace(dashRunRe.ReplaceAllString(fb[2], " "))
		if front == "" || back == "" {
			continue
		}

		deck.Cards = append(deck.Cards, Flashcard{
			Label: label[1],
			Front: front,
			Back:  back,
		})
	}

	if len(deck.Cards) == 0 {
		return nil, ErrNoRecords
	}
	return deck, nil
}

// parseFlashcardsJSON reconstructs a deck from a structured object holding a
// "cards" or "flashcards" array. Front text falls back to a "question"
// field, back text to an "answer" field; labels are positional here. No
// entry is discarded.
func parseFlashcardsJSON(obj map[string]any) *Deck {
	deck := &Deck{}
	for i, raw := range arrayOf(obj, "cards", "flashcards") {
		card := Flashcard{Label: strconv.Itoa(i + 1)}
		if entry, ok := raw.(map[string]any); ok {
			card.Front = stringField(entry, "front")
			if card.Front == "" {
				card.Front = stringField(entry, "question")
			}
			card.Back = stringField(entry, "back")
			if card.Back == "" {
				card.Back = stringField(entry, "answer")
			}
		}
		deck.Cards = append(deck.Cards, card)
	}
	return deck
}
