package tokenizer

import (
	"fmt"

	"github.com/sugarme/tokenizer/pretrained"
)

// FromFile loads a fast tokenizer from a tokenizer.json file. The unknown
// token is taken from the definition itself. source is recorded for logging.
func FromFile(path, source string) (*Tokenizer, error) {
	unk, err := UnkFromFile(path)
	if err != nil {
		return nil, err
	}
	inner, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer from %s: %w", path, err)
	}
	tk, err := Wrap(inner, unk, source)
	if err != nil {
		return nil, err
	}
	tk.definitionPath = path
	return tk, nil
}
