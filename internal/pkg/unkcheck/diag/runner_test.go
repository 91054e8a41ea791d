package diag

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unkcheck/internal/pkg/unkcheck/tokenizer"
)

// fakeCodec splits on whitespace and maps anything outside its vocabulary to
// the unknown token, which is all the runner cares about.
type fakeCodec struct {
	vocab map[string]int
	unkID int
}

func newFakeCodec(words ...string) *fakeCodec {
	vocab := make(map[string]int, len(words))
	for i, w := range words {
		vocab[w] = i + 10
	}
	return &fakeCodec{vocab: vocab, unkID: 1}
}

func (f *fakeCodec) Encode(text string, withSpecial bool) (*tokenizer.Encoding, error) {
	enc := &tokenizer.Encoding{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".।")
		if w == "" {
			continue
		}
		id, ok := f.vocab[w]
		token := w
		if !ok {
			id = f.unkID
			token = f.UnkToken()
		}
		enc.IDs = append(enc.IDs, id)
		enc.Tokens = append(enc.Tokens, token)
		enc.TypeIDs = append(enc.TypeIDs, 0)
		enc.AttentionMask = append(enc.AttentionMask, 1)
	}
	return enc, nil
}

func (f *fakeCodec) UnkToken() string { return "[UNK]" }
func (f *fakeCodec) UnkID() int      { return f.unkID }

var _ Codec = (*fakeCodec)(nil)

func singleLoader(codec Codec) Loader {
	return func(string) (Codec, error) { return codec, nil }
}

func TestRunnerCountsUnkTokens(t *testing.T) {
	codec := newFakeCodec("hello", "world")
	var out bytes.Buffer
	runner := NewRunner(singleLoader(codec), &out, false)

	results := runner.Run([]Case{{
		Model:     "test/model",
		Text:      "hello world zebra quagga",
		Language:  "English",
		ExpectUnk: true,
	}})

	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, 4, res.TokenCount)
	assert.Equal(t, 2, res.UnkCount)
	assert.InDelta(t, 50.0, res.UnkPercent, 1e-9)
	assert.True(t, res.Pass())
}

func TestRunnerEmptyText(t *testing.T) {
	codec := newFakeCodec("hello")
	var out bytes.Buffer
	runner := NewRunner(singleLoader(codec), &out, false)

	results := runner.Run([]Case{{
		Model:    "test/model",
		Text:     "",
		Language: "English",
	}})

	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].TokenCount)
	assert.Equal(t, 0, results[0].UnkCount)
	assert.Equal(t, 0.0, results[0].UnkPercent)
	assert.True(t, results[0].Pass())
}

func TestRunnerCaseIsolation(t *testing.T) {
	codec := newFakeCodec("hello", "world")
	loader := func(modelID string) (Codec, error) {
		if modelID == "broken/model" {
			return nil, fmt.Errorf("model %q not found", modelID)
		}
		return codec, nil
	}

	var out bytes.Buffer
	runner := NewRunner(loader, &out, false)

	results := runner.Run([]Case{
		{Model: "good/model", Text: "hello world", Language: "English"},
		{Model: "broken/model", Text: "hello", Language: "English", ExpectUnk: true},
		{Model: "good/model", Text: "hello zebra", Language: "English", ExpectUnk: true},
	})

	// The broken case is reported but neither aborts the battery nor shows
	// up in the results.
	require.Len(t, results, 2)
	assert.Equal(t, 0, results[0].UnkCount)
	assert.Equal(t, 1, results[1].UnkCount)
	assert.Contains(t, out.String(), "ERROR: broken/model")
}

func TestRunnerEncodeFailureIsContained(t *testing.T) {
	bad := &errorCodec{}
	var out bytes.Buffer
	runner := NewRunner(singleLoader(bad), &out, false)

	results := runner.Run([]Case{{Model: "bad/model", Text: "hello", Language: "English"}})
	assert.Empty(t, results)
	assert.Contains(t, out.String(), "ERROR: bad/model")
}

type errorCodec struct{}

func (e *errorCodec) Encode(string, bool) (*tokenizer.Encoding, error) {
	return nil, fmt.Errorf("encode exploded")
}
func (e *errorCodec) UnkToken() string { return "[UNK]" }
func (e *errorCodec) UnkID() int      { return 1 }

func TestEnglishBatteryCasePasses(t *testing.T) {
	codec := newFakeCodec("hello", "world", "this", "is", "a", "test")
	var out bytes.Buffer
	runner := NewRunner(singleLoader(codec), &out, false)

	var english Case
	for _, c := range DefaultBattery() {
		if c.Language == "English" {
			english = c
		}
	}
	require.NotEmpty(t, english.Model)

	results := runner.Run([]Case{english})
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].UnkCount)
	assert.False(t, results[0].ExpectUnk)
	assert.True(t, results[0].Pass())
}

func TestDefaultBattery(t *testing.T) {
	battery := DefaultBattery()
	require.Len(t, battery, 5)

	models := make(map[string]bool)
	for _, c := range battery {
		models[c.Model] = true
		assert.NotEmpty(t, c.Text)
		assert.NotEmpty(t, c.Language)
	}
	assert.True(t, models["bert-base-uncased"])
	assert.True(t, models["bert-base-multilingual-uncased"])
}

func TestUnkPercent(t *testing.T) {
	assert.Equal(t, 0.0, unkPercent(0, 0))
	assert.Equal(t, 0.0, unkPercent(0, 7))
	assert.Equal(t, 100.0, unkPercent(3, 3))
	assert.InDelta(t, 33.333, unkPercent(1, 3), 0.001)
}

func TestResultPass(t *testing.T) {
	cases := []struct {
		unkCount  int
		expectUnk bool
		want      bool
	}{
		{0, false, true},
		{0, true, false},
		{2, true, true},
		{2, false, false},
	}
	for _, c := range cases {
		res := Result{UnkCount: c.unkCount, ExpectUnk: c.expectUnk}
		assert.Equal(t, c.want, res.Pass(), "unk=%d expect=%v", c.unkCount, c.expectUnk)
	}
}
