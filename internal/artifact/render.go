package artifact

import (
	"html/template"
	"strings"
)

var quizTmpl = template.Must(template.New("quiz").Parse(`<div class="quiz">
{{- if .Intro}}
<div class="quiz-intro">{{.Intro}}</div>
{{- end}}
{{- range $i, $q := .Questions}}
<div class="quiz-question" data-index="{{$i}}" data-ordinal="{{$q.Ordinal}}">
<p class="question-prompt">{{$q.Ordinal}}. {{$q.Prompt}}</p>
<ul class="options">
{{- range $q.Options}}
<li class="option" data-letter="{{.Letter}}"{{if .Correct}} data-correct="true"{{end}}>{{.Letter}}) {{.Text}}</li>
{{- end}}
</ul>
<div class="explanation" hidden>{{$q.Explanation}}</div>
</div>
{{- end}}
</div>`))

var deckTmpl = template.Must(template.New("deck").Parse(`<div class="flashcards">
{{- range $i, $c := .Cards}}
<div class="flashcard" data-index="{{$i}}" data-label="{{$c.Label}}">
<div class="card-face card-front"><span class="card-label">Card {{$c.Label}}</span><p>{{$c.Front}}</p></div>
<div class="card-face card-back" hidden><p>{{$c.Back}}</p></div>
</div>
{{- end}}
</div>`))

var errorTmpl = template.Must(template.New("error").Parse(`<div class="artifact-error">
<p>{{.Message}}</p>
<pre class="raw-preview">{{.Preview}}</pre>
</div>`))

func renderQuiz(quiz *Quiz) Artifact {
	view := NewQuizView(quiz)
	var sb strings.Builder
	if err := quizTmpl.Execute(&sb, view); err != nil {
		return renderMarkdown(quiz.Intro)
	}
	return Artifact{Kind: KindQuiz, HTML: template.HTML(sb.String()), Quiz: view}
}

func renderDeck(deck *Deck) Artifact {
	view := NewDeckView(deck)
	var sb strings.Builder
	if err := deckTmpl.Execute(&sb, view); err != nil {
		return renderError("Could not render this flashcard deck.", "")
	}
	return Artifact{Kind: KindFlashcards, HTML: template.HTML(sb.String()), Deck: view}
}

const previewLimit = 200

// renderError produces the visible error artifact used when flashcard
// reconstruction fails: there is no good generic fallback for a deck, so the
// raw text is previewed instead of silently degrading further.
func renderError(message, raw string) Artifact {
	preview := strings.TrimSpace(raw)
	if runes := []rune(preview); len(runes) > previewLimit {
		preview = string(runes[:previewLimit]) + "…"
	}

	var sb strings.Builder
	_ = errorTmpl.Execute(&sb, struct{ Message, Preview string }{message, preview})
	return Artifact{Kind: KindError, HTML: template.HTML(sb.String())}
}
