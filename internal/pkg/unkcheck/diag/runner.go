package diag

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"unkcheck/internal/pkg/unkcheck/preprocess"
	"unkcheck/internal/pkg/unkcheck/tokenizer"
)

// Codec is the tokenizer surface the runner needs. The concrete
// implementation lives behind the source registry.
type Codec interface {
	Encode(text string, withSpecial bool) (*tokenizer.Encoding, error)
	UnkToken() string
	UnkID() int
}

// Loader resolves a model identifier to a tokenizer.
type Loader func(modelID string) (Codec, error)

type Runner struct {
	load Loader
	out  io.Writer
	pre  *preprocess.Preprocessor
}

// NewRunner builds a runner that writes its report to out. When normalize is
// set, sample texts are NFC-normalized before encoding.
func NewRunner(load Loader, out io.Writer, normalize bool) *Runner {
	return &Runner{
		load: load,
		out:  out,
		pre:  preprocess.NewPreprocessor(normalize),
	}
}

// Run processes each case in order. A failing case is reported and skipped;
// it never aborts the battery and never appears in the returned results.
func (r *Runner) Run(cases []Case) []Result {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		res, err := r.runCase(c)
		if err != nil {
			log.Error().Err(err).Str("model", c.Model).Str("language", c.Language).Msg("Case failed")
			fmt.Fprintf(r.out, "\nERROR: %s on %s: %v\n", c.Model, c.Language, err)
			continue
		}
		results = append(results, res)
	}
	return results
}

func (r *Runner) runCase(c Case) (Result, error) {
	writeCaseHeader(r.out, c)

	codec, err := r.load(c.Model)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	text := r.pre.Process(c.Text)
	enc, err := codec.Encode(text, false)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode text: %w", err)
	}

	unkCount := countUnk(enc.Tokens, codec.UnkToken())
	res := Result{
		Model:      c.Model,
		Language:   c.Language,
		TokenCount: enc.Len(),
		UnkCount:   unkCount,
		UnkPercent: unkPercent(unkCount, enc.Len()),
		ExpectUnk:  c.ExpectUnk,
	}

	writeCaseDetail(r.out, codec, enc, res)
	return res, nil
}

func countUnk(tokens []string, unkToken string) int {
	n := 0
	for _, t := range tokens {
		if t == unkToken {
			n++
		}
	}
	return n
}

func unkPercent(unkCount, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(unkCount) / float64(total) * 100
}
