package tokenizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	Register("stub", func(cfg SourceConfig) (*Tokenizer, error) {
		return nil, fmt.Errorf("stub source for %s", cfg.Model)
	})

	assert.True(t, IsRegistered("stub"))
	assert.Contains(t, ListSources(), "stub")

	_, err := Load("stub", SourceConfig{Model: "some/model"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "some/model")
}

func TestLoadUnknownSource(t *testing.T) {
	_, err := Load("no-such-source", SourceConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", func(SourceConfig) (*Tokenizer, error) { return nil, nil })
	assert.Panics(t, func() {
		Register("dup", func(SourceConfig) (*Tokenizer, error) { return nil, nil })
	})
}

func TestRegisterNilPanics(t *testing.T) {
	assert.Panics(t, func() { Register("nil-load", nil) })
}
