package notes

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gen2brain/go-fitz"
	"golang.org/x/text/unicode/norm"
)

// extractPDFText extracts all page text from a PDF and normalizes it to
// NFC so prompts and cache keys are stable across extraction runs.
func extractPDFText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("extracting page %d: %w", page+1, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return norm.NFC.String(sb.String()), nil
}

// extractTextSection pulls the part of flat extracted text that starts at a
// line mentioning title and ends at the next heading-looking line. Returns
// "" when the title never appears.
func extractTextSection(content, title string) string {
	lines := strings.Split(content, "\n")
	needle := strings.ToLower(title)

	start := -1
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if looksLikeHeading(lines[i]) {
			end = i
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// looksLikeHeading matches the two heading shapes extracted PDFs tend to
// produce: all-caps lines and short lines starting with a capital.
func looksLikeHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	runes := []rune(trimmed)
	if len(runes) > 5 && trimmed == strings.ToUpper(trimmed) && hasLetter(trimmed) {
		return true
	}
	return len(runes) < 50 && unicode.IsUpper(runes[0])
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
