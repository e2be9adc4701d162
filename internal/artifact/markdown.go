package artifact

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

var (
	blankRunRe   = regexp.MustCompile(`\n(?:[ \t]*\n){3,}`)
	orphanDashRe = regexp.MustCompile(`([^\n])\n(-{3,}[ \t]*(?:\n|$))`)
)

// normalizeMarkdown collapses runs of three or more blank lines to a single
// blank line and separates a dash line from preceding text so it is not
// misread as a setext heading underline.
func normalizeMarkdown(text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = orphanDashRe.ReplaceAllString(text, "$1\n\n$2")
	return text
}

func toHTML(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>")
	}
	return template.HTML(buf.String())
}

// renderMarkdown is the universal fallback path. An "Answers" heading, when
// present, starts a collapsed-by-default section behind a toggle control.
func renderMarkdown(text string) Artifact {
	text = normalizeMarkdown(text)

	var body template.HTML
	if loc := answersHeadingRe.FindStringIndex(text); loc != nil {
		body = toHTML(text[:loc[0]]) + answersDetails(toHTML(text[loc[1]:]))
	} else {
		body = toHTML(text)
	}

	return Artifact{
		Kind: KindMarkdown,
		HTML: `<div class="markdown-body">` + body + `</div>`,
	}
}

func answersDetails(inner template.HTML) template.HTML {
	return `<details class="answers-section"><summary class="answers-toggle">` +
		`<span class="label-show">Show answers</span>` +
		`<span class="label-hide">Hide answers</span>` +
		`</summary>` + inner + `</details>`
}
