package tokenizer

import (
	"encoding/json"
	"fmt"
	"os"
)

// DefaultUnkToken is the symbol BERT-family vocabularies use for
// out-of-vocabulary input, used when a definition does not name one.
const DefaultUnkToken = "[UNK]"

// tokenizerJSON is the subset of the HuggingFace tokenizer.json format needed
// to read the model's unknown-token symbol.
type tokenizerJSON struct {
	Model struct {
		Type     string `json:"type"`
		UnkToken string `json:"unk_token"`
	} `json:"model"`
}

// UnkFromFile reads the unknown-token symbol out of a tokenizer.json file,
// falling back to DefaultUnkToken when the model section does not set one.
func UnkFromFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read tokenizer definition: %w", err)
	}
	var tj tokenizerJSON
	if err := json.Unmarshal(content, &tj); err != nil {
		return "", fmt.Errorf("failed to parse tokenizer definition %s: %w", path, err)
	}
	if tj.Model.UnkToken == "" {
		return DefaultUnkToken, nil
	}
	return tj.Model.UnkToken, nil
}
