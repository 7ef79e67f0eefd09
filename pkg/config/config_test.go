package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "models", cfg.ModelDir)
	assert.Equal(t, 0.65, cfg.Thresholds.Type)
	assert.Equal(t, 0.60, cfg.Thresholds.Category)
	assert.Equal(t, 0.70, cfg.Thresholds.Urgency)
	assert.Equal(t, 0.70, cfg.Thresholds.Sentiment)
	assert.Equal(t, 0.65, cfg.Thresholds.Complexity)
	assert.Equal(t, 120, cfg.Training.ExamplesPerLabel)
	assert.Equal(t, 50, cfg.Training.Epochs)
	assert.Equal(t, 32, cfg.Training.BatchSize)
	assert.Equal(t, 0.001, cfg.Training.LearningRate)
	assert.Equal(t, 0.25, cfg.Training.Dropout)
	assert.Equal(t, 0.2, cfg.Training.ValidationSplit)
	assert.False(t, cfg.Warmup)
}

func TestParseOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
model_dir: /var/lib/intake/models
warmup: true
thresholds:
  type: 0.8
  urgency: 0.9
training:
  epochs: 5
  examples_per_label: 10
  seed: 42
`)

	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/intake/models", cfg.ModelDir)
	assert.True(t, cfg.Warmup)
	assert.Equal(t, 0.8, cfg.Thresholds.Type)
	assert.Equal(t, 0.9, cfg.Thresholds.Urgency)
	// Unset fields fall back to defaults
	assert.Equal(t, 0.60, cfg.Thresholds.Category)
	assert.Equal(t, 5, cfg.Training.Epochs)
	assert.Equal(t, 10, cfg.Training.ExamplesPerLabel)
	assert.Equal(t, int64(42), cfg.Training.Seed)
	assert.Equal(t, 32, cfg.Training.BatchSize)
}

func TestParseEmptyFileYieldsDefaults(t *testing.T) {
	cfg, err := Parse(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseMalformedYAML(t *testing.T) {
	_, err := Parse(writeConfig(t, "thresholds: [not, a, map"))
	assert.Error(t, err)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"threshold above one", "thresholds:\n  type: 1.5\n"},
		{"negative threshold", "thresholds:\n  sentiment: -0.1\n"},
		{"validation split of one", "training:\n  validation_split: 1.0\n"},
		{"dropout of one", "training:\n  dropout: 1.0\n"},
		{"negative batch size", "training:\n  batch_size: -4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.yaml")
	require.NoError(t, os.WriteFile(real, []byte("warmup: true\n"), 0o644))
	link := filepath.Join(dir, "link.yaml")
	require.NoError(t, os.Symlink(real, link))

	cfg, err := Parse(link)
	require.NoError(t, err)
	assert.True(t, cfg.Warmup)
}
