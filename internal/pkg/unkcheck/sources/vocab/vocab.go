// Package vocab builds the reference (slow) BERT tokenizer from a WordPiece
// vocab.txt, assembling the usual normalizer / pre-tokenizer / post-processor
// pipeline around it.
package vocab

import (
	"fmt"
	"strings"

	tok "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/decoder"
	"github.com/sugarme/tokenizer/model/wordpiece"
	"github.com/sugarme/tokenizer/normalizer"
	"github.com/sugarme/tokenizer/pretokenizer"
	"github.com/sugarme/tokenizer/processor"

	"unkcheck/internal/pkg/unkcheck/resolver"
	"unkcheck/internal/pkg/unkcheck/tokenizer"
)

func init() {
	tokenizer.Register("vocab", load)
}

func load(cfg tokenizer.SourceConfig) (*tokenizer.Tokenizer, error) {
	path := cfg.Path
	source := cfg.Path
	if path == "" {
		if cfg.Model == "" {
			return nil, fmt.Errorf("vocab source requires a model identifier or a vocab.txt path")
		}
		r := resolver.New(cfg.CacheDir, cfg.AuthToken)
		var err error
		path, err = r.VocabTxt(cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve vocabulary for %s: %w", cfg.Model, err)
		}
		source = cfg.Model
	}
	return Build(path, Lowercases(cfg.Model), source)
}

// Lowercases reports whether a model identifier names an uncased checkpoint.
func Lowercases(modelID string) bool {
	return strings.Contains(modelID, "uncased")
}

// Build assembles a BERT WordPiece tokenizer from a vocab.txt file.
func Build(vocabPath string, lowercase bool, source string) (*tokenizer.Tokenizer, error) {
	model, err := wordpiece.NewWordPieceFromFile(vocabPath, tokenizer.DefaultUnkToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load wordpiece vocabulary: %w", err)
	}

	tk := tok.NewTokenizer(model)
	tk.WithNormalizer(normalizer.NewBertNormalizer(true, lowercase, true, lowercase))
	tk.WithPreTokenizer(pretokenizer.NewBertPreTokenizer())
	tk.WithDecoder(decoder.NewWordPieceDecoder("##", true))

	// [CLS]/[SEP] framing is only wired up when the vocabulary carries the
	// tokens; a bare vocabulary still encodes, just without special tokens.
	sepID, haveSep := tk.TokenToId("[SEP]")
	clsID, haveCls := tk.TokenToId("[CLS]")
	if haveSep && haveCls {
		sep := processor.PostToken{Id: sepID, Value: "[SEP]"}
		cls := processor.PostToken{Id: clsID, Value: "[CLS]"}
		tk.WithPostProcessor(processor.NewBertProcessing(sep, cls))
	}

	return tokenizer.Wrap(tk, tokenizer.DefaultUnkToken, source)
}
