package notes

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var mdHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)`)

// extractMarkdownText reads a Markdown file and normalizes it to NFC.
func extractMarkdownText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading markdown: %w", err)
	}
	return norm.NFC.String(string(data)), nil
}

// extractMarkdownSection returns the section whose heading contains title,
// including nested subsections, ending at the next heading of the same or
// higher level. Returns "" when no heading matches.
func extractMarkdownSection(content, title string) string {
	lines := strings.Split(content, "\n")
	needle := strings.ToLower(title)

	var section []string
	inSection := false
	sectionLevel := 0

	for _, line := range lines {
		m := mdHeadingRe.FindStringSubmatch(line)
		if m != nil {
			level := len(m[1])
			heading := strings.TrimSpace(m[2])

			if !inSection && strings.Contains(strings.ToLower(heading), needle) {
				inSection = true
				sectionLevel = level
				section = append(section, line)
				continue
			}
			if inSection && level <= sectionLevel {
				break
			}
		}
		if inSection {
			section = append(section, line)
		}
	}

	return strings.TrimSpace(strings.Join(section, "\n"))
}
