package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Brief represents the legal document text submitted for investigation
type Brief struct {
	Text     string `json:"text" yaml:"text" firestore:"text"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty" firestore:"filename,omitempty"`
}

// NewBrief creates a new Brief instance
func NewBrief(text, filename string) (*Brief, error) {
	if strings.TrimSpace(text) == "" {
		return nil, goerr.Wrap(ErrEmptyBrief, "brief text is required")
	}

	return &Brief{
		Text:     text,
		Filename: filename,
	}, nil
}

// WordCount returns the number of whitespace-separated words in the brief
func (b *Brief) WordCount() int {
	return len(strings.Fields(b.Text))
}
