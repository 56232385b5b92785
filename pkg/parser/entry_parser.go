package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/bdunphy/dictl/pkg/dict"
)

var (
	dictionaryMatcher = cascadia.MustCompile(`div[class*="dictionary"][data-id]`)
	entryMatcher      = cascadia.MustCompile(`div[class*="entry-body__el"]`)
	headwordMatcher   = cascadia.MustCompile(`span[class*="hw"][class*="dhw"]`)
	posMatcher        = cascadia.MustCompile(`span[class*="pos"][class*="dpos"]`)
	ipaMatcher        = cascadia.MustCompile(`span[class*="ipa"]`)
	defBlockMatcher   = cascadia.MustCompile(`div[class*="def-block"]`)
	defMatcher        = cascadia.MustCompile(`div[class*="ddef_d"]`)
	exampleMatcher    = cascadia.MustCompile(`div[class*="examp"] span[class*="eg"]`)
	synonymMatcher    = cascadia.MustCompile(`div[class*="synonym"] span[class*="x-h"]`)
	antonymMatcher    = cascadia.MustCompile(`div[class*="opposite"] span[class*="x-h"]`)
)

// ParseEntryHTML extracts dictionary entries from a Cambridge definition
// page. An entry without a headword or without any parsable sense is
// skipped, failure to parse the document itself is an error.
func ParseEntryHTML(page io.Reader) ([]*dict.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}
	var entries []*dict.Entry
	doc.FindMatcher(dictionaryMatcher).Each(func(i int, dictionary *goquery.Selection) {
		dictionary.FindMatcher(entryMatcher).Each(func(i int, sel *goquery.Selection) {
			if entry := parseEntry(sel); entry != nil {
				entries = append(entries, entry)
			}
		})
	})
	return entries, nil
}

func parseEntry(sel *goquery.Selection) *dict.Entry {
	word := cleanText(sel.FindMatcher(headwordMatcher).First().Text())
	if word == "" {
		return nil
	}
	entry := &dict.Entry{Word: word}
	if ipa := cleanText(sel.FindMatcher(ipaMatcher).First().Text()); ipa != "" {
		entry.Phonetic = "/" + ipa + "/"
	}
	pos := cleanText(sel.FindMatcher(posMatcher).First().Text())
	sel.FindMatcher(defBlockMatcher).Each(func(i int, block *goquery.Selection) {
		if sense := parseSense(pos, block); sense != nil {
			entry.Senses = append(entry.Senses, *sense)
		}
	})
	if len(entry.Senses) == 0 {
		return nil
	}
	return entry
}

func parseSense(pos string, block *goquery.Selection) *dict.Sense {
	// Definitions on the page end with a colon that leads into the
	// examples, it does not belong to the definition text.
	definition := strings.TrimSuffix(
		cleanText(block.FindMatcher(defMatcher).First().Text()), ":")
	if definition == "" {
		return nil
	}
	return &dict.Sense{
		PartOfSpeech: pos,
		Definition:   definition,
		Examples:     selectionTexts(block, exampleMatcher),
		Synonyms:     selectionTexts(block, synonymMatcher),
		Antonyms:     selectionTexts(block, antonymMatcher),
	}
}

func selectionTexts(sel *goquery.Selection, matcher goquery.Matcher) []string {
	var texts []string
	sel.FindMatcher(matcher).Each(func(i int, item *goquery.Selection) {
		if text := cleanText(item.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return texts
}

// cleanText collapses the whitespace runs that html formatting leaves in
// extracted text.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
