// Package local loads fast tokenizers from a tokenizer.json file on disk,
// such as one written by the tokconvert tool.
package local

import (
	"fmt"

	"unkcheck/internal/pkg/unkcheck/tokenizer"
)

func init() {
	tokenizer.Register("file", load)
}

func load(cfg tokenizer.SourceConfig) (*tokenizer.Tokenizer, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file source requires a tokenizer.json path")
	}
	return tokenizer.FromFile(cfg.Path, cfg.Path)
}
