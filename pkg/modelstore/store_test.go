package modelstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdeskai/intake-engine/pkg/neural"
)

func trainedNetwork(t *testing.T, checksum string) *neural.Network {
	t.Helper()
	n, err := neural.New(2, []int{8}, []string{"alpha", "beta"}, checksum)
	require.NoError(t, err)

	samples := []neural.Sample{
		{Features: []float64{1, 0}, Target: []float64{1, 0}},
		{Features: []float64{2, 0}, Target: []float64{1, 0}},
		{Features: []float64{0, 1}, Target: []float64{0, 1}},
		{Features: []float64{0, 2}, Target: []float64{0, 1}},
	}
	require.NoError(t, n.Train(samples, neural.TrainOptions{
		Epochs:       100,
		BatchSize:    4,
		LearningRate: 0.01,
		Seed:         3,
	}))
	return n
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	n := trainedNetwork(t, "chk")

	assert.False(t, store.Has("type"))
	require.NoError(t, store.Save("type", n))
	assert.True(t, store.Has("type"))

	loaded, err := store.Load("type", 2, "chk")
	require.NoError(t, err)
	assert.Equal(t, n.Labels(), loaded.Labels())
	assert.True(t, loaded.Trained())
}

func TestHasAll(t *testing.T) {
	store := New(t.TempDir())
	n := trainedNetwork(t, "chk")

	tasks := []string{"type", "urgency"}
	assert.False(t, store.HasAll(tasks))

	require.NoError(t, store.Save("type", n))
	assert.False(t, store.HasAll(tasks), "one missing artifact means the set is incomplete")

	require.NoError(t, store.Save("urgency", n))
	assert.True(t, store.HasAll(tasks))
}

func TestLoadMissingArtifact(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Load("type", 2, "chk")
	assert.Error(t, err)
}

func TestLoadCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "type"), 0o755))
	require.NoError(t, os.WriteFile(store.Path("type"), []byte(`{"version":"1","trun`), 0o644))

	_, err := store.Load("type", 2, "chk")
	assert.Error(t, err)
}

func TestLoadStaleVocabulary(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Save("type", trainedNetwork(t, "old-checksum")))

	_, err := store.Load("type", 2, "new-checksum")
	assert.Error(t, err, "a checksum mismatch must force a retrain")
}

func TestLoadDimensionMismatch(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Save("type", trainedNetwork(t, "chk")))

	_, err := store.Load("type", 5, "chk")
	assert.Error(t, err, "a vocabulary size change must force a retrain")
}
