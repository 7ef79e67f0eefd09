// Package modelstore persists trained classifiers to the filesystem, one
// artifact directory per task, and reloads them on later process starts so
// training can be skipped.
package modelstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/helpdeskai/intake-engine/pkg/neural"
	"github.com/helpdeskai/intake-engine/pkg/observability"
)

// Store reads and writes per-task model artifacts under a fixed root.
type Store struct {
	root string
}

// New creates a store rooted at dir. The directory is created lazily on the
// first save.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Path returns the artifact path for a task.
func (s *Store) Path(task string) string {
	return filepath.Join(s.root, task, "model.json")
}

// Has reports whether a persisted artifact exists for the task.
func (s *Store) Has(task string) bool {
	info, err := os.Stat(s.Path(task))
	return err == nil && !info.IsDir()
}

// HasAll reports whether every task has a persisted artifact. Only a
// structurally complete set triggers the skip-training path.
func (s *Store) HasAll(tasks []string) bool {
	for _, task := range tasks {
		if !s.Has(task) {
			return false
		}
	}
	return true
}

// Load deserializes the task's network and validates it against the current
// vocabulary: both the input dimension and the vocabulary checksum stamp must
// match. Any failure (missing, corrupt, truncated, stale) is returned as an
// error; callers respond by retraining, never by crashing.
func (s *Store) Load(task string, inputDim int, vocabChecksum string) (*neural.Network, error) {
	data, err := os.ReadFile(s.Path(task))
	if err != nil {
		return nil, fmt.Errorf("failed to read model for task %q: %w", task, err)
	}

	n, err := neural.LoadFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load model for task %q: %w", task, err)
	}
	if n.InputDim() != inputDim {
		return nil, fmt.Errorf("model for task %q has input dimension %d, vocabulary has %d",
			task, n.InputDim(), inputDim)
	}
	if n.VocabChecksum() != vocabChecksum {
		return nil, fmt.Errorf("model for task %q was trained against a different vocabulary", task)
	}
	return n, nil
}

// Save persists a trained network, creating the task directory if absent.
func (s *Store) Save(task string, n *neural.Network) error {
	data, err := n.MarshalJSONModel()
	if err != nil {
		return fmt.Errorf("failed to serialize model for task %q: %w", task, err)
	}

	dir := filepath.Join(s.root, task)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create model directory %q: %w", dir, err)
	}
	if err := os.WriteFile(s.Path(task), data, 0o644); err != nil {
		return fmt.Errorf("failed to write model for task %q: %w", task, err)
	}

	observability.Infof("Persisted model for task %q to %s", task, s.Path(task))
	return nil
}
