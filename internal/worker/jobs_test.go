package worker_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/noamlvn/nikudquiz/internal/audio"
	"github.com/noamlvn/nikudquiz/internal/hebrew"
	"github.com/noamlvn/nikudquiz/internal/testutil/mocks"
	"github.com/noamlvn/nikudquiz/internal/worker"
)

// jobCatalog constructs exactly three syllables: אָ, בָ and the standalone וֹ.
func jobCatalog() *hebrew.Catalog {
	return &hebrew.Catalog{
		Vowels: []hebrew.Vowel{
			{ID: "kamatz", Symbol: "ָ", Label: "kamatz"},
			{ID: "holam_maleh", Symbol: "וֹ", Label: "holam maleh", EmbedsVav: true},
		},
		Consonants: hebrew.Consonants{
			Base: []string{"א", "ב", hebrew.Vav},
		},
	}
}

func TestSynthesizeJob(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.json")

	synth := new(mocks.MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "אָ").Return([]byte("audio-a"), nil)
	synth.On("Synthesize", mock.Anything, "בָ").Return([]byte("audio-b"), nil)
	synth.On("Synthesize", mock.Anything, "וֹ").Return([]byte("audio-o"), nil)

	job := &worker.SynthesizeJob{
		Catalog:      jobCatalog(),
		Index:        audio.Index{},
		Synth:        synth,
		AudioDir:     dir,
		ManifestPath: manifest,
	}
	require.NoError(t, job.Run(context.Background()))
	synth.AssertExpectations(t)

	index, err := audio.LoadIndex(manifest)
	require.NoError(t, err)
	assert.Len(t, index, 3)

	// Every manifest entry points at a real file in the audio dir.
	for syllable, file := range index {
		data, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err, "audio for %q", syllable)
		assert.NotEmpty(t, data)
	}
}

func TestSynthesizeJob_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.json")

	synth := new(mocks.MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "בָ").Return([]byte("audio-b"), nil)
	synth.On("Synthesize", mock.Anything, "וֹ").Return([]byte("audio-o"), nil)

	job := &worker.SynthesizeJob{
		Catalog:      jobCatalog(),
		Index:        audio.Index{"אָ": "existing.mp3"},
		Synth:        synth,
		AudioDir:     dir,
		ManifestPath: manifest,
	}
	require.NoError(t, job.Run(context.Background()))

	synth.AssertExpectations(t)
	synth.AssertNotCalled(t, "Synthesize", mock.Anything, "אָ")

	// The merged manifest keeps the pre-existing entry untouched.
	index, err := audio.LoadIndex(manifest)
	require.NoError(t, err)
	assert.Len(t, index, 3)
	assert.Equal(t, "existing.mp3", index["אָ"])
}

func TestSynthesizeJob_NothingMissing(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.json")

	synth := new(mocks.MockSynthesizer)

	job := &worker.SynthesizeJob{
		Catalog: jobCatalog(),
		Index: audio.Index{
			"אָ": "a.mp3",
			"בָ": "b.mp3",
			"וֹ": "o.mp3",
		},
		Synth:        synth,
		AudioDir:     dir,
		ManifestPath: manifest,
	}
	require.NoError(t, job.Run(context.Background()))

	synth.AssertNotCalled(t, "Synthesize", mock.Anything, mock.Anything)
	_, err := os.Stat(manifest)
	assert.True(t, os.IsNotExist(err), "manifest should not be rewritten")
}

func TestSynthesizeJob_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.json")

	synth := new(mocks.MockSynthesizer)
	synth.On("Synthesize", mock.Anything, "אָ").Return([]byte("audio-a"), nil).Maybe()
	synth.On("Synthesize", mock.Anything, "בָ").Return(nil, errors.New("voice offline")).Maybe()
	synth.On("Synthesize", mock.Anything, "וֹ").Return([]byte("audio-o"), nil).Maybe()

	job := &worker.SynthesizeJob{
		Catalog:       jobCatalog(),
		Index:         audio.Index{},
		Synth:         synth,
		AudioDir:      dir,
		ManifestPath:  manifest,
		MaxConcurrent: 1,
	}
	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "voice offline")

	// Whatever succeeded before the failure is kept in the manifest.
	if _, statErr := os.Stat(manifest); statErr == nil {
		index, loadErr := audio.LoadIndex(manifest)
		require.NoError(t, loadErr)
		assert.NotContains(t, index, "בָ")
	}
}
