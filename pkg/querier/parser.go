package querier

import (
	"io"

	"github.com/bdunphy/dictl/pkg/dict"
	"github.com/bdunphy/dictl/pkg/parser"
)

type Parser interface {
	ParseEntries(page io.Reader) ([]*dict.Entry, error)
	ParseSuggestions(page io.Reader) ([]string, error)
}

type HTMLParser struct{}

func (p *HTMLParser) ParseEntries(page io.Reader) ([]*dict.Entry, error) {
	return parser.ParseEntryHTML(page)
}

func (p *HTMLParser) ParseSuggestions(page io.Reader) ([]string, error) {
	return parser.ParseSuggestionHTML(page)
}
