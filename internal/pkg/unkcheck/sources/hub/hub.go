// Package hub loads fast tokenizers by pretrained model identifier, resolved
// through the HuggingFace hub.
package hub

import (
	"fmt"

	"unkcheck/internal/pkg/unkcheck/resolver"
	"unkcheck/internal/pkg/unkcheck/tokenizer"
)

func init() {
	tokenizer.Register("hub", load)
}

func load(cfg tokenizer.SourceConfig) (*tokenizer.Tokenizer, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("hub source requires a model identifier")
	}
	r := resolver.New(cfg.CacheDir, cfg.AuthToken)
	path, err := r.TokenizerJSON(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tokenizer for %s: %w", cfg.Model, err)
	}
	return tokenizer.FromFile(path, cfg.Model)
}
