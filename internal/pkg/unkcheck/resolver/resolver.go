// Package resolver maps pretrained model identifiers to local artifact paths.
// All downloads go through the HuggingFace hub client, which caches files on
// disk; everything past this boundary works with plain file paths.
package resolver

import (
	"fmt"

	"github.com/gomlx/go-huggingface/hub"
)

const (
	tokenizerFile = "tokenizer.json"
	vocabFile     = "vocab.txt"
)

// onnxCandidates are the filenames checked, in order, when resolving an ONNX
// encoder export for a model. Exports converted with optimum usually live
// under onnx/.
var onnxCandidates = []string{"model.onnx", "onnx/model.onnx"}

type Resolver struct {
	cacheDir  string
	authToken string
}

// New returns a resolver that caches downloads under cacheDir. An empty
// cacheDir keeps the hub client's default cache location.
func New(cacheDir, authToken string) *Resolver {
	return &Resolver{cacheDir: cacheDir, authToken: authToken}
}

func (r *Resolver) repo(modelID string) *hub.Repo {
	repo := hub.New(modelID)
	if r.cacheDir != "" {
		repo = repo.WithCacheDir(r.cacheDir)
	}
	if r.authToken != "" {
		repo = repo.WithAuth(r.authToken)
	}
	return repo
}

// TokenizerJSON resolves the fast tokenizer definition for modelID.
func (r *Resolver) TokenizerJSON(modelID string) (string, error) {
	return r.fetch(modelID, tokenizerFile)
}

// VocabTxt resolves the WordPiece vocabulary for modelID, used to build the
// reference (slow) tokenizer.
func (r *Resolver) VocabTxt(modelID string) (string, error) {
	return r.fetch(modelID, vocabFile)
}

// ModelONNX resolves an ONNX encoder export for modelID, trying the known
// export layouts in order.
func (r *Resolver) ModelONNX(modelID string) (string, error) {
	repo := r.repo(modelID)
	for _, name := range onnxCandidates {
		if !repo.HasFile(name) {
			continue
		}
		path, err := repo.DownloadFile(name)
		if err != nil {
			return "", fmt.Errorf("failed to download %s from %s: %w", name, modelID, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no ONNX export found in %s (tried %v)", modelID, onnxCandidates)
}

func (r *Resolver) fetch(modelID, name string) (string, error) {
	repo := r.repo(modelID)
	if !repo.HasFile(name) {
		return "", fmt.Errorf("%s has no %s", modelID, name)
	}
	path, err := repo.DownloadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to download %s from %s: %w", name, modelID, err)
	}
	return path, nil
}
