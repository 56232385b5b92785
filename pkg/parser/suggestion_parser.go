package parser

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	suggestionListMatcher = cascadia.MustCompile(`h1 ~ ul.hul-u`)
	suggestionItemMatcher = cascadia.MustCompile(`li`)
)

// ParseSuggestionHTML extracts spelling suggestions from a Cambridge
// spellcheck page. Blank list items are dropped, a page with no usable
// suggestions is an error.
func ParseSuggestionHTML(page io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}

	var suggestions []string
	doc.FindMatcher(suggestionListMatcher).
		ChildrenMatcher(suggestionItemMatcher).
		Each(func(i int, li *goquery.Selection) {
			if text := cleanText(li.Text()); text != "" {
				suggestions = append(suggestions, text)
			}
		})
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("no suggestions found")
	}
	return suggestions, nil
}
