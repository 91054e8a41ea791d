package tokenizer

import (
	"fmt"
	"sync"
)

// SourceConfig tells a source where to find a tokenizer.
type SourceConfig struct {
	// Model is a pretrained model identifier, resolved against the hub.
	Model string
	// Path points at a local artifact (tokenizer.json or vocab.txt) for
	// sources that bypass the hub.
	Path string
	// CacheDir and AuthToken are passed through to the artifact resolver.
	CacheDir  string
	AuthToken string
}

// LoadFunc builds a Tokenizer from a source configuration.
type LoadFunc func(cfg SourceConfig) (*Tokenizer, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]LoadFunc)
)

// Register makes a tokenizer source available under the given name. Sources
// register themselves from init and are pulled in by blank imports.
func Register(name string, load LoadFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if load == nil {
		panic("tokenizer: Register load func is nil")
	}
	if _, dup := registry[name]; dup {
		panic("tokenizer: Register called twice for " + name)
	}
	registry[name] = load
}

// Load resolves a tokenizer through the named source.
func Load(name string, cfg SourceConfig) (*Tokenizer, error) {
	registryMu.RLock()
	load, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("tokenizer: unknown source %q (registered: %v)", name, ListSources())
	}
	return load(cfg)
}

// ListSources returns the names of all registered sources.
func ListSources() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a source name is known.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[name]
	return ok
}
