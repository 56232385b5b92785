package dict

import "strings"

// Sense is one distinct meaning of a word: a part of speech, a definition
// and whatever examples and related words the provider knows about.
type Sense struct {
	PartOfSpeech string   `json:"part_of_speech,omitempty"`
	Definition   string   `json:"definition"`
	Examples     []string `json:"examples,omitempty"`
	Synonyms     []string `json:"synonyms,omitempty"`
	Antonyms     []string `json:"antonyms,omitempty"`
}

// Entry groups the senses of one headword. A provider may return several
// entries for the same spelling (one per etymology), in its own order.
type Entry struct {
	Word     string  `json:"word"`
	Phonetic string  `json:"phonetic,omitempty"`
	Senses   []Sense `json:"senses"`
}

// NormalizeTerm prepares raw input for lookup. An empty result means the
// input was blank and must not reach a querier.
func NormalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
