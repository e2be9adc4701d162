package artifact

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// The textual grammar is lexed into a small token stream before parsing.
// Each marker kind is matched independently and the matches are merged by
// position; overlaps resolve in favor of the earlier (and, at equal start,
// higher-priority) marker. Text between markers becomes text runs.

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenSectionBreak   // a line consisting solely of three or more dashes
	tokenAnswer         // Question <n> Answer: <letter>
	tokenAnswersHeading // an "Answers" (and Explanations) heading line
	tokenQuestion       // Question <n>
	tokenOrdinal        // line-initial one- or two-digit ordinal + period
	tokenOption         // A. / A) through D. / D), then whitespace
)

type token struct {
	kind    tokenKind
	text    string // text runs only
	ordinal int    // answer, question and ordinal markers
	letter  string // answer and option markers, upper-cased
	start   int    // byte offset of the marker in the input
	end     int    // byte offset just past the marker
}

var (
	sectionBreakRe   = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*\r?$`)
	answerMarkerRe   = regexp.MustCompile(`(?i)Question\s+(\d+)\s+Answer:\s*([A-D])\b`)
	answersHeadingRe = regexp.MustCompile(`(?mi)^[ \t]*#{0,6}[ \t]*\**[ \t]*Answers(?:[ \t]+and[ \t]+Explanations)?\**:?[ \t]*\r?$`)
	questionMarkerRe = regexp.MustCompile(`(?i)Question\s+(\d+)`)
	ordinalMarkerRe  = regexp.MustCompile(`(?m)^[ \t]*(\d{1,2})\.`)
	optionMarkerRe   = regexp.MustCompile(`\b([A-D])[.)]\s`)
)

// lex tokenizes text into marker tokens and the text runs between them.
func lex(text string) []token {
	var marks []token

	collect := func(re *regexp.Regexp, kind tokenKind) {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			tok := token{kind: kind, start: m[0], end: m[1]}
			switch kind {
			case tokenAnswer:
				tok.ordinal, _ = strconv.Atoi(text[m[2]:m[3]])
				tok.letter = strings.ToUpper(text[m[4]:m[5]])
			case tokenQuestion, tokenOrdinal:
				tok.ordinal, _ = strconv.Atoi(text[m[2]:m[3]])
			case tokenOption:
				tok.letter = strings.ToUpper(text[m[2]:m[3]])
			}
			marks = append(marks, tok)
		}
	}

	// Declaration order is the overlap priority: an answer marker wins over
	// the question marker embedded in it.
	collect(sectionBreakRe, tokenSectionBreak)
	collect(answerMarkerRe, tokenAnswer)
	collect(answersHeadingRe, tokenAnswersHeading)
	collect(questionMarkerRe, tokenQuestion)
	collect(ordinalMarkerRe, tokenOrdinal)
	collect(optionMarkerRe, tokenOption)

	sort.SliceStable(marks, func(i, j int) bool {
		if marks[i].start != marks[j].start {
			return marks[i].start < marks[j].start
		}
		return marks[i].kind < marks[j].kind
	})

	var toks []token
	pos := 0
	for _, m := range marks {
		if m.start < pos {
			continue // swallowed by the previous marker
		}
		if m.start > pos {
			toks = append(toks, token{kind: tokenText, text: text[pos:m.start], start: pos, end: m.start})
		}
		toks = append(toks, m)
		pos = m.end
	}
	if pos < len(text) {
		toks = append(toks, token{kind: tokenText, text: text[pos:], start: pos, end: len(text)})
	}
	return toks
}

var (
	boldMarkerRe    = regexp.MustCompile(`\*\*|__`)
	headingMarkerRe = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*`)
	dashRunRe       = regexp.MustCompile(`-{3,}`)
	trailingDashRe  = regexp.MustCompile(`\s*-{3,}\s*$`)
)

func stripBold(s string) string {
	return boldMarkerRe.ReplaceAllString(s, "")
}

func stripHeadings(s string) string {
	return headingMarkerRe.ReplaceAllString(s, "")
}

// collapseSpace folds all interior whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
