package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bdunphy/dictl/pkg/dict"
)

// renderEntries builds the results pane for a successful lookup: a
// centered headword with its phonetic, then every sense in provider
// order, numbered within its part of speech.
func renderEntries(entries []*dict.Entry, width int) string {
	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n" + rule(width) + "\n")
		}
		renderEntry(&b, entry, width)
	}
	return b.String()
}

func renderEntry(b *strings.Builder, entry *dict.Entry, width int) {
	b.WriteString(wordStyle.Width(width).Render(strings.ToUpper(entry.Word)))
	b.WriteString("\n")
	if entry.Phonetic != "" {
		b.WriteString(phoneticStyle.Width(width).Render(entry.Phonetic))
		b.WriteString("\n")
	}
	b.WriteString(rule(width))

	lastPOS := "\x00"
	number := 0
	for i := range entry.Senses {
		sense := &entry.Senses[i]
		if sense.PartOfSpeech != lastPOS {
			lastPOS = sense.PartOfSpeech
			number = 0
			if sense.PartOfSpeech != "" {
				b.WriteString("\n" + posStyle.Render(strings.ToUpper(sense.PartOfSpeech)))
			}
		}
		number++
		b.WriteString("\n" + definitionStyle.Width(width).Render(
			fmt.Sprintf("%d. %s", number, sense.Definition)))
		for _, example := range sense.Examples {
			b.WriteString("\n" + exampleStyle.Width(width).Render(
				fmt.Sprintf("Example: %q", example)))
		}
		if len(sense.Synonyms) > 0 {
			b.WriteString("\n" + relatedStyle.Width(width).Render(
				"Synonyms: "+joinCapped(sense.Synonyms, maxRelatedShown)))
		}
		if len(sense.Antonyms) > 0 {
			b.WriteString("\n" + relatedStyle.Width(width).Render(
				"Antonyms: "+joinCapped(sense.Antonyms, maxRelatedShown)))
		}
	}
	b.WriteString("\n")
}

// renderError maps a lookup outcome onto the three user-facing messages:
// invalid input never reaches here, so it distinguishes not-found from
// provider failure and keeps anything else visible instead of crashing.
func renderError(word string, err error, width int) string {
	var notFound *dict.NotFoundError
	switch {
	case errors.As(err, &notFound):
		msg := fmt.Sprintf("'%s' not found in the dictionary.", word)
		if len(notFound.Suggestions) > 0 {
			msg += "\n\nDid you mean: " + joinCapped(notFound.Suggestions, maxRelatedShown) + "?"
		}
		return errorStyle.Width(width).Render(msg)
	case errors.Is(err, dict.ErrNotFound):
		return errorStyle.Width(width).Render(
			fmt.Sprintf("'%s' not found in the dictionary.", word))
	case errors.Is(err, dict.ErrUnavailable):
		return errorStyle.Width(width).Render(msgUnavailable)
	default:
		return errorStyle.Width(width).Render(
			fmt.Sprintf("An unexpected error occurred: %v", err))
	}
}

// renderHistory builds the session history pane, most recent first.
func renderHistory(history []string, width int) string {
	var b strings.Builder
	b.WriteString(wordStyle.Width(width).Render("Search History"))
	b.WriteString("\n" + rule(width) + "\n")
	if len(history) == 0 {
		b.WriteString(subtitleStyle.Render(msgHistoryEmpty))
		return b.String()
	}
	for i, word := range history {
		b.WriteString(definitionStyle.Render(fmt.Sprintf("%d. %s", i+1, word)))
		if i < len(history)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func joinCapped(items []string, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}
	return strings.Join(items, ", ")
}

func rule(width int) string {
	if width < 1 {
		width = 1
	}
	return ruleStyle.Render(strings.Repeat("─", width))
}
