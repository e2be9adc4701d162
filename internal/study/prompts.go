package study

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English)

// displayName turns a topic slug into prose for prompt headings.
func displayName(topic string) string {
	return titler.String(strings.ReplaceAll(topic, "_", " "))
}

// QuizPrompt asks the model for a multiple-choice quiz grounded on content.
// The response must be the bare JSON object the quiz reconstructor accepts.
func (p *Presets) QuizPrompt(topic, content string, numQuestions int, difficulty Difficulty) string {
	if numQuestions <= 0 {
		numQuestions = p.QuizQuestions
	}
	return fmt.Sprintf(`Create a %d-question multiple-choice quiz on "%s".

Difficulty: %s - %s

Base your questions on the following content:

%s

Return ONLY a valid JSON object (no markdown code fences, no extra text) with this exact schema:
{
  "type": "quiz",
  "questions": [
    {
      "question": "question text",
      "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
      "answer": "A",
      "explanation": "why this answer is correct"
    }
  ]
}`, numQuestions, topic, difficulty, p.difficultyNote(difficulty), content)
}

// FlashcardsPrompt asks the model for a flashcard deck as bare JSON.
func (p *Presets) FlashcardsPrompt(topic, content string, numCards int) string {
	if numCards <= 0 {
		numCards = p.FlashcardCount
	}
	return fmt.Sprintf(`Create %d flashcards for studying "%s".

Each flashcard needs a clear question/prompt on the front and a concise answer on the back.
Cover key concepts, definitions, formulas, and important facts.

Base your flashcards on the following content:

%s

Return ONLY a valid JSON object (no markdown code fences, no extra text) with this exact schema:
{
  "type": "flashcards",
  "cards": [
    {
      "front": "question or prompt",
      "back": "answer or explanation"
    }
  ]
}`, numCards, strings.ReplaceAll(topic, "_", " "), content)
}

// SummaryPrompt asks the model to summarize content at the given length.
func (p *Presets) SummaryPrompt(topic, content string, length SummaryLength) string {
	if length == "" {
		length = p.SummaryLength
	}
	return fmt.Sprintf(`# Summarization Request for: %s

**Instructions:** %s

**Content to summarize:**

%s

Please provide a well-structured summary with key concepts, formulas, and practical insights.`,
		displayName(topic), p.lengthNote(length), content)
}

// ChapterSummaryPrompt asks for a structured whole-chapter summary.
func (p *Presets) ChapterSummaryPrompt(chapter, content string) string {
	return fmt.Sprintf(`# Chapter Summary Request: %s

**Instructions:** Create a comprehensive chapter summary with the following structure:

1. Overview (2-3 sentences)
2. Key Concepts (bullet points)
3. Important Formulas/Algorithms
4. Practical Applications
5. Common Pitfalls

**Content to summarize:**

%s`, displayName(chapter), content)
}

// ExplainPrompt asks the model to explain a concept at a difficulty level.
// An empty content means no study materials matched; the model is told to
// fall back to general knowledge.
func (p *Presets) ExplainPrompt(term, content string, level Difficulty) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `# Explanation Request: %s

**Difficulty Level:** %s
- %s

**Structure to follow:**
1. Simple definition
2. Detailed explanation
3. Example or analogy
4. Common misconceptions
5. Related concepts

`, displayName(term), level, p.levelNote(level))

	if content != "" {
		sb.WriteString("**Content from study materials:**\n\n")
		sb.WriteString(content)
		sb.WriteString("\n\n")
	} else {
		sb.WriteString("**Note:** No specific study materials found. Use general knowledge.\n\n")
	}
	sb.WriteString("Please provide a comprehensive explanation now.")
	return sb.String()
}

// ComparePrompt asks the model to compare two concepts, attaching whatever
// study materials were found for each.
func (p *Presets) ComparePrompt(concept1, concept2, content1, content2 string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `# Comparison Request: %s vs %s

**Instructions:** Compare and contrast these two concepts.

**Structure to follow:**
1. Brief overview of each concept
2. Similarities
3. Key differences
4. When to use each
5. Relationship between them

`, titler.String(concept1), titler.String(concept2))

	appendConcept := func(name, content string) {
		if content != "" {
			fmt.Fprintf(&sb, "**Content for %s:**\n\n%s\n\n---\n\n", name, content)
		} else {
			fmt.Fprintf(&sb, "**Note:** No study materials found for %s. Use general knowledge.\n\n", name)
		}
	}
	appendConcept(concept1, content1)
	appendConcept(concept2, content2)

	sb.WriteString("Please provide a detailed comparison now.")
	return sb.String()
}
