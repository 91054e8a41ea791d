// Package preprocess cleans up sample text before encoding. Unicode
// normalization matters for Indic scripts, where decomposed matras tokenize
// differently from their NFC forms.
package preprocess

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

type Preprocessor struct {
	normalizeUnicode bool
}

func NewPreprocessor(normalizeUnicode bool) *Preprocessor {
	return &Preprocessor{normalizeUnicode: normalizeUnicode}
}

func (p *Preprocessor) Process(text string) string {
	if p.normalizeUnicode {
		text = norm.NFC.String(text)
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
