package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessCollapsesWhitespace(t *testing.T) {
	p := NewPreprocessor(false)
	assert.Equal(t, "hello world", p.Process("  hello \t world \n"))
}

func TestProcessNFC(t *testing.T) {
	p := NewPreprocessor(true)
	// "e" + combining acute composes to a single rune under NFC.
	assert.Equal(t, "é", p.Process("é"))
}

func TestProcessWithoutNormalization(t *testing.T) {
	p := NewPreprocessor(false)
	assert.Equal(t, "é", p.Process("é"))
}

func TestProcessEmpty(t *testing.T) {
	p := NewPreprocessor(true)
	assert.Equal(t, "", p.Process("   "))
}
