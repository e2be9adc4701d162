package artifact

import (
	"fmt"
	"regexp"
	"strings"
)

// maxExplanation caps side-table explanations, in characters.
const maxExplanation = 200

const noExplanation = "No explanation available for this question."

func answerSentence(letter string) string {
	return fmt.Sprintf("The correct answer is %s.", letter)
}

// answerEntry is one side-table row: the recorded correct letter and the
// explanation text that followed it in the answer block.
type answerEntry struct {
	letter      string
	explanation string
}

// ParseQuiz reconstructs a textual quiz. The answer/explanation side table
// is built first from the answer block, then questions are parsed from the
// question block and consult it; answer discovery never depends on option
// parsing. ErrNoRecords is returned when no question yields at least one
// lettered option.
func ParseQuiz(text string) (*Quiz, error) {
	qText, aText := splitAnswerBlock(text)
	key := buildAnswerKey(aText)

	norm := stripHeadings(stripBold(qText))
	toks := lex(norm)

	// Question pieces start at each Question <n> or line-initial <n>. marker.
	var bounds []int
	for i, t := range toks {
		if t.kind == tokenQuestion || t.kind == tokenOrdinal {
			bounds = append(bounds, i)
		}
	}

	quiz := &Quiz{}
	if len(bounds) > 0 {
		quiz.Intro = strings.TrimSpace(norm[:toks[bounds[0]].start])
	} else {
		quiz.Intro = strings.TrimSpace(norm)
	}

	seen := make(map[int]bool)
	for bi, ti := range bounds {
		pieceEnd := len(norm)
		tokEnd := len(toks)
		if bi+1 < len(bounds) {
			tokEnd = bounds[bi+1]
			pieceEnd = toks[tokEnd].start
		}
		q, ok := parseQuestionPiece(norm, toks[ti:tokEnd], pieceEnd, key)
		if !ok || seen[q.Ordinal] {
			continue
		}
		seen[q.Ordinal] = true
		quiz.Questions = append(quiz.Questions, q)
	}

	if len(quiz.Questions) == 0 {
		return nil, ErrNoRecords
	}
	return quiz, nil
}

// splitAnswerBlock segments text into the question block and the answer
// block, trying in priority order: the first dash line with an answer
// marker anywhere after it, an "Answers" heading, then the first bare
// answer marker.
func splitAnswerBlock(text string) (questions, answers string) {
	toks := lex(text)

	for i, t := range toks {
		if t.kind != tokenSectionBreak {
			continue
		}
		for j := i + 1; j < len(toks); j++ {
			if toks[j].kind == tokenAnswer {
				return text[:t.start], text[t.end:]
			}
		}
	}

	for _, t := range toks {
		if t.kind == tokenAnswersHeading {
			return text[:t.start], text[t.end:]
		}
	}

	for _, t := range toks {
		if t.kind == tokenAnswer {
			return text[:t.start], text[t.start:]
		}
	}

	return text, ""
}

var explanationLabelRe = regexp.MustCompile(`(?i)^\s*Explanation:\s*`)

// buildAnswerKey scans the answer block for every Question <n> Answer: <L>
// occurrence. The explanation for an entry is the text between its marker
// and the next marker. The first entry for an ordinal wins; later ones for
// the same ordinal are ignored.
func buildAnswerKey(answers string) map[int]answerEntry {
	key := make(map[int]answerEntry)
	if answers == "" {
		return key
	}

	toks := lex(answers)
	for i, t := range toks {
		if t.kind != tokenAnswer {
			continue
		}
		if _, exists := key[t.ordinal]; exists {
			continue
		}
		end := len(answers)
		for j := i + 1; j < len(toks); j++ {
			if toks[j].kind == tokenAnswer {
				end = toks[j].start
				break
			}
		}
		key[t.ordinal] = answerEntry{
			letter:      t.letter,
			explanation: cleanExplanation(answers[t.end:end]),
		}
	}
	return key
}

func cleanExplanation(s string) string {
	s = stripBold(s)
	s = explanationLabelRe.ReplaceAllString(s, "")
	s = trailingDashRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if runes := []rune(s); len(runes) > maxExplanation {
		s = string(runes[:maxExplanation])
	}
	return s
}

// parseQuestionPiece parses one piece beginning at its ordinal marker. A
// piece with no lettered option is discarded, never emitted malformed.
func parseQuestionPiece(norm string, piece []token, pieceEnd int, key map[int]answerEntry) (Question, bool) {
	marker := piece[0]
	q := Question{Ordinal: marker.ordinal}

	firstOpt := -1
	for i, t := range piece {
		if t.kind == tokenOption {
			firstOpt = i
			break
		}
	}
	if firstOpt < 0 {
		return Question{}, false
	}

	prompt := norm[marker.end:piece[firstOpt].start]
	prompt = strings.TrimSpace(prompt)
	prompt = strings.TrimPrefix(prompt, ":")
	q.Prompt = collapseSpace(prompt)

	entry, hasEntry := key[q.Ordinal]

	for i := firstOpt; i < len(piece); i++ {
		t := piece[i]
		if t.kind != tokenOption {
			continue
		}
		end := pieceEnd
		for j := i + 1; j < len(piece); j++ {
			if piece[j].kind == tokenOption {
				end = piece[j].start
				break
			}
		}
		optText := norm[t.end:end]
		optText = trailingDashRe.ReplaceAllString(optText, "")
		opt := Option{Letter: t.letter, Text: collapseSpace(optText)}
		if hasEntry && entry.letter == t.letter {
			opt.Correct = true
			q.Correct = t.letter
		}
		q.Options = append(q.Options, opt)
	}

	switch {
	case hasEntry && entry.explanation != "":
		q.Explanation = entry.explanation
	case hasEntry:
		q.Explanation = answerSentence(entry.letter)
	default:
		q.Explanation = noExplanation
	}
	return q, true
}

var optionLetters = []string{"A", "B", "C", "D"}

// parseQuizJSON reconstructs a quiz from a structured object holding a
// "questions" or "quiz" array. Structured input is trusted: no entry is
// ever discarded, even with no resolvable options.
func parseQuizJSON(obj map[string]any) *Quiz {
	quiz := &Quiz{}
	for i, raw := range arrayOf(obj, "questions", "quiz") {
		q := Question{Ordinal: i + 1, Explanation: noExplanation}
		entry, ok := raw.(map[string]any)
		if !ok {
			quiz.Questions = append(quiz.Questions, q)
			continue
		}

		q.Prompt = stringField(entry, "question")
		q.Options = jsonOptions(entry)
		if letter := jsonAnswerLetter(entry); letter != "" {
			q.Correct = letter
			for j := range q.Options {
				if q.Options[j].Letter == letter {
					q.Options[j].Correct = true
				}
			}
		}
		if expl := stringField(entry, "explanation"); expl != "" {
			q.Explanation = expl
		}
		quiz.Questions = append(quiz.Questions, q)
	}
	return quiz
}

// jsonOptions accepts options either as an ordered list (mapped positionally
// to A through D, capped at four) or as a mapping keyed by letter.
func jsonOptions(entry map[string]any) []Option {
	var raw any
	for _, k := range []string{"options", "choices"} {
		if v, ok := entry[k]; ok {
			raw = v
			break
		}
	}

	switch v := raw.(type) {
	case []any:
		var opts []Option
		for i, o := range v {
			if i >= len(optionLetters) {
				break
			}
			opts = append(opts, Option{Letter: optionLetters[i], Text: toString(o)})
		}
		return opts
	case map[string]any:
		var opts []Option
		for _, letter := range optionLetters {
			if text, ok := v[letter]; ok {
				opts = append(opts, Option{Letter: letter, Text: toString(text)})
			} else if text, ok := v[strings.ToLower(letter)]; ok {
				opts = append(opts, Option{Letter: letter, Text: toString(text)})
			}
		}
		return opts
	default:
		return nil
	}
}

// jsonAnswerLetter accepts the answer either as a numeric index (0 maps to
// A) or as a letter string, case-normalized.
func jsonAnswerLetter(entry map[string]any) string {
	switch v := entry["answer"].(type) {
	case float64:
		idx := int(v)
		if idx >= 0 && idx < len(optionLetters) {
			return optionLetters[idx]
		}
	case string:
		letter := strings.ToUpper(strings.TrimSpace(v))
		letter = strings.TrimRight(letter, ".)")
		for _, l := range optionLetters {
			if letter == l {
				return l
			}
		}
	}
	return ""
}

func stringField(entry map[string]any, key string) string {
	if s, ok := entry[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", s), ".0")
	default:
		return fmt.Sprintf("%v", v)
	}
}
