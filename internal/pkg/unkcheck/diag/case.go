// Package diag runs the UNK-token statistics battery: encode each sample text
// with a tokenizer resolved by model identifier, count unknown tokens, and
// report observed vs. expected UNK presence.
package diag

// Case is one diagnostic input: a tokenizer, a sample text, and whether the
// tokenizer is expected to emit unknown tokens for it.
type Case struct {
	Model     string
	Text      string
	Language  string
	ExpectUnk bool
}

// DefaultBattery returns the fixed set of diagnostic cases. The expectation
// that multilingual BERT covers the Hindi sample without UNKs is an empirical
// claim about that checkpoint's vocabulary; it is compared against observed
// output, never enforced.
func DefaultBattery() []Case {
	return []Case{
		{
			Model:     "bert-base-uncased",
			Text:      "नमस्ते दुनिया। यह एक परीक्षण है।",
			Language:  "Hindi (Devanagari)",
			ExpectUnk: true,
		},
		{
			Model:     "bert-base-uncased",
			Text:      "ಹಲೋ ಜಗತ್ತು। ಇದು ಒಂದು ಪರೀಕ್ಷೆ.",
			Language:  "Kannada",
			ExpectUnk: true,
		},
		{
			Model:     "bert-base-uncased",
			Text:      "வணக்கம் உலகம். இது ஒரு சோதனை.",
			Language:  "Tamil",
			ExpectUnk: true,
		},
		{
			Model:     "bert-base-uncased",
			Text:      "Hello world. This is a test.",
			Language:  "English",
			ExpectUnk: false,
		},
		{
			Model:     "bert-base-multilingual-uncased",
			Text:      "नमस्ते दुनिया। यह एक परीक्षण है।",
			Language:  "Hindi (Devanagari)",
			ExpectUnk: false,
		},
	}
}

// Result is the recorded outcome of one processed case.
type Result struct {
	Model      string
	Language   string
	TokenCount int
	UnkCount   int
	UnkPercent float64
	ExpectUnk  bool
}

// Pass reports whether observed UNK presence matches the case's expectation.
func (r Result) Pass() bool {
	return (r.UnkCount > 0) == r.ExpectUnk
}
