package querier

import (
	"strings"

	"github.com/bdunphy/dictl/pkg/dict"
)

// Wire shapes of the Free Dictionary API. The response is an array of
// entries, one per etymology, each carrying meanings grouped by part of
// speech.
type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
	Synonyms     []string        `json:"synonyms"`
	Antonyms     []string        `json:"antonyms"`
}

type apiDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// mapAPIEntries converts the wire entries into the dict model. Each
// definition becomes a sense tagged with its meaning's part of speech.
// Meaning-level synonyms and antonyms land on the first sense of the
// meaning, definitions with blank text are skipped, and an entry left
// with no senses is dropped entirely.
func mapAPIEntries(apiEntries []apiEntry) []*dict.Entry {
	entries := make([]*dict.Entry, 0, len(apiEntries))
	for _, e := range apiEntries {
		entry := &dict.Entry{
			Word:     e.Word,
			Phonetic: pickPhonetic(e),
		}
		for _, meaning := range e.Meanings {
			first := true
			for _, def := range meaning.Definitions {
				definition := strings.TrimSpace(def.Definition)
				if definition == "" {
					continue
				}
				sense := dict.Sense{
					PartOfSpeech: meaning.PartOfSpeech,
					Definition:   definition,
					Synonyms:     def.Synonyms,
					Antonyms:     def.Antonyms,
				}
				if def.Example != "" {
					sense.Examples = []string{def.Example}
				}
				if first {
					sense.Synonyms = mergeStrings(def.Synonyms, meaning.Synonyms)
					sense.Antonyms = mergeStrings(def.Antonyms, meaning.Antonyms)
					first = false
				}
				entry.Senses = append(entry.Senses, sense)
			}
		}
		if len(entry.Senses) == 0 {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// pickPhonetic prefers the top-level transcription and falls back to the
// first phonetic variant that has text.
func pickPhonetic(e apiEntry) string {
	if e.Phonetic != "" {
		return e.Phonetic
	}
	for _, ph := range e.Phonetics {
		if ph.Text != "" {
			return ph.Text
		}
	}
	return ""
}

// mergeStrings concatenates the lists preserving order and dropping
// duplicates.
func mergeStrings(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			merged = append(merged, s)
		}
	}
	return merged
}
