// Package tokenizer wraps the pure-Go HuggingFace tokenizer with the small
// surface the diagnostic tools need: encode with or without special tokens,
// expose the unknown-token symbol and id, and persist the fast tokenizer
// definition to disk.
package tokenizer

import (
	"fmt"
	"os"
	"path/filepath"

	tok "github.com/sugarme/tokenizer"
)

// Encoding is one encoded text: ids and token strings correspond position by
// position, as do the type ids and attention mask.
type Encoding struct {
	IDs           []int
	Tokens        []string
	TypeIDs       []int
	AttentionMask []int
}

// Len returns the number of tokens in the encoding.
func (e *Encoding) Len() int {
	return len(e.IDs)
}

// Equal reports whether two encodings produce the same id sequence.
func (e *Encoding) Equal(other *Encoding) bool {
	if e.Len() != other.Len() {
		return false
	}
	for i, id := range e.IDs {
		if other.IDs[i] != id {
			return false
		}
	}
	return true
}

type Tokenizer struct {
	inner    *tok.Tokenizer
	unkToken string
	unkID    int
	source   string

	// definitionPath is the tokenizer.json file this instance was loaded
	// from, when there is one. Save copies it; tokenizers assembled from a
	// bare vocabulary have no definition file and cannot be persisted.
	definitionPath string
}

// Wrap builds a Tokenizer around a loaded sugarme tokenizer. unkToken must be
// the symbol the underlying model substitutes for out-of-vocabulary input;
// its id is resolved against the vocabulary.
func Wrap(inner *tok.Tokenizer, unkToken, source string) (*Tokenizer, error) {
	unkID, ok := inner.TokenToId(unkToken)
	if !ok {
		return nil, fmt.Errorf("unknown token %q is not in the vocabulary", unkToken)
	}
	return &Tokenizer{
		inner:    inner,
		unkToken: unkToken,
		unkID:    unkID,
		source:   source,
	}, nil
}

// Encode tokenizes text. When withSpecial is false the encoding carries only
// the tokens produced from the text itself, with no [CLS]/[SEP] framing.
func (t *Tokenizer) Encode(text string, withSpecial bool) (*Encoding, error) {
	enc, err := t.inner.EncodeSingle(text, withSpecial)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}
	return &Encoding{
		IDs:           enc.Ids,
		Tokens:        enc.Tokens,
		TypeIDs:       enc.TypeIds,
		AttentionMask: enc.AttentionMask,
	}, nil
}

// UnkToken returns the designated unknown-token symbol.
func (t *Tokenizer) UnkToken() string {
	return t.unkToken
}

// UnkID returns the vocabulary id of the unknown token.
func (t *Tokenizer) UnkID() int {
	return t.unkID
}

// Source describes where the tokenizer was loaded from, for logging.
func (t *Tokenizer) Source() string {
	return t.source
}

// VocabSize returns the vocabulary size including added tokens.
func (t *Tokenizer) VocabSize() int {
	return t.inner.GetVocabSize(true)
}

// Save writes the tokenizer definition as tokenizer.json under dir, creating
// the directory if needed, and returns the file path. Only tokenizers backed
// by a definition file can be persisted.
func (t *Tokenizer) Save(dir string) (string, error) {
	if t.definitionPath == "" {
		return "", fmt.Errorf("tokenizer %s has no definition file to persist", t.source)
	}
	content, err := os.ReadFile(t.definitionPath)
	if err != nil {
		return "", fmt.Errorf("failed to read tokenizer definition: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, "tokenizer.json")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to save tokenizer: %w", err)
	}
	return path, nil
}
