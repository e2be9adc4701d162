// Package notes provides the study-material library: listing local PDF and
// Markdown files and assembling topic content for prompt building.
package notes

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoMaterials is returned when the notes directory holds no readable
// study materials.
var ErrNoMaterials = errors.New("no study materials found")

// maxContentChars caps per-file content to keep prompts within context.
const maxContentChars = 10000

const truncationMarker = "\n\n[Content truncated...]"

// ContentCache memoizes assembled topic content between requests.
// *cache.Cache satisfies it; a nil cache disables memoization.
type ContentCache interface {
	GetText(ctx context.Context, key string) (string, bool)
	SetText(ctx context.Context, key, text string) error
}

// Library reads study materials from a directory.
type Library struct {
	dir   string
	cache ContentCache
}

// Option configures a Library.
type Option func(*Library)

// WithCache enables content memoization.
func WithCache(c ContentCache) Option {
	return func(l *Library) {
		l.cache = c
	}
}

// NewLibrary creates a library over dir. The directory may not exist yet;
// listing then returns an empty collection.
func NewLibrary(dir string, opts ...Option) *Library {
	l := &Library{dir: dir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// List returns the sorted names of all study-material files. A missing
// directory is an empty library, not an error.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading notes directory: %w", err)
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".md":
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// TopicContent assembles content related to topic from every study
// material: a matching section when one is found, otherwise the full text
// truncated to a prompt-sized cap. Per-file extraction failures are logged
// and skipped; ErrNoMaterials is returned only when nothing was usable.
func (l *Library) TopicContent(ctx context.Context, topic string) (string, error) {
	files, err := l.List()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", ErrNoMaterials
	}

	key := l.cacheKey(topic, files)
	if l.cache != nil {
		if content, ok := l.cache.GetText(ctx, key); ok {
			slog.Debug("topic content served from cache", "topic", topic)
			return content, nil
		}
	}

	var parts []string
	for _, name := range files {
		path := filepath.Join(l.dir, name)

		var full string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".pdf":
			full, err = extractPDFText(path)
		case ".md":
			full, err = extractMarkdownText(path)
		}
		if err != nil {
			slog.Error("skipping unreadable study material", "file", name, "error", err)
			continue
		}

		if section := extractSection(full, topic, strings.EqualFold(filepath.Ext(name), ".md")); section != "" {
			parts = append(parts, fmt.Sprintf("## From %s - Section: %s\n\n%s", name, topic, section))
			continue
		}
		if len(full) > maxContentChars {
			full = full[:maxContentChars] + truncationMarker
		}
		parts = append(parts, fmt.Sprintf("## From %s\n\n%s", name, full))
	}

	if len(parts) == 0 {
		return "", ErrNoMaterials
	}

	content := strings.Join(parts, "\n\n---\n\n")
	slog.Info("topic content assembled", "topic", topic, "files", len(parts), "chars", len(content))

	if l.cache != nil {
		if err := l.cache.SetText(ctx, key, content); err != nil {
			slog.Warn("caching topic content failed", "error", err)
		}
	}
	return content, nil
}

// cacheKey fingerprints the library state so edits invalidate cached content.
func (l *Library) cacheKey(topic string, files []string) string {
	h := fnv.New64a()
	for _, name := range files {
		fmt.Fprintln(h, name)
		if info, err := os.Stat(filepath.Join(l.dir, name)); err == nil {
			fmt.Fprintln(h, info.ModTime().UnixNano(), info.Size())
		}
	}
	return fmt.Sprintf("notes:%s:%x", strings.ToLower(topic), h.Sum64())
}

// extractSection dispatches to the format-appropriate section heuristic.
func extractSection(content, topic string, markdown bool) string {
	if markdown {
		return extractMarkdownSection(content, topic)
	}
	return extractTextSection(content, topic)
}
