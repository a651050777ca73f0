package worker

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/noamlvn/nikudquiz/internal/audio"
	"github.com/noamlvn/nikudquiz/internal/hebrew"
	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/tts"
)

// SynthesizeJob fills the audio library: it enumerates every syllable the
// catalogs can construct, synthesizes the ones without a recording, and
// rewrites the manifest. The running server keeps serving its startup index;
// new recordings become visible on the next start.
type SynthesizeJob struct {
	Catalog       *hebrew.Catalog
	Index         audio.Index
	Synth         tts.Synthesizer
	AudioDir      string
	ManifestPath  string
	MaxConcurrent int
}

func (j *SynthesizeJob) Name() string { return "synthesize_audio" }

func (j *SynthesizeJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	all := hebrew.Constructible(j.Catalog.Vowels, j.Catalog.AllConsonants())
	var missing []string
	for _, s := range all {
		if _, ok := j.Index[s]; !ok {
			missing = append(missing, s)
		}
	}
	log.Info("catalog constructs %d syllables, %d missing audio", len(all), len(missing))
	if len(missing) == 0 {
		return nil
	}

	if err := os.MkdirAll(j.AudioDir, 0o755); err != nil {
		return fmt.Errorf("create audio dir: %w", err)
	}

	maxConc := j.MaxConcurrent
	if maxConc <= 0 {
		maxConc = 4
	}

	var mu sync.Mutex
	synthesized := make(map[string]string, len(missing))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConc)
	for _, syllable := range missing {
		syllable := syllable
		g.Go(func() error {
			data, err := j.Synth.Synthesize(gctx, syllable)
			if err != nil {
				return fmt.Errorf("synthesize %q: %w", syllable, err)
			}

			file := audioFileName(syllable)
			if err := os.WriteFile(filepath.Join(j.AudioDir, file), data, 0o644); err != nil {
				return fmt.Errorf("write audio for %q: %w", syllable, err)
			}

			mu.Lock()
			synthesized[syllable] = file
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	// Keep what we got even when some syllables failed; a rerun picks up
	// the remainder.
	if len(synthesized) > 0 {
		merged := make(audio.Index, len(j.Index)+len(synthesized))
		for s, f := range j.Index {
			merged[s] = f
		}
		for s, f := range synthesized {
			merged[s] = f
		}
		if werr := audio.WriteManifest(j.ManifestPath, merged); werr != nil {
			log.Error("failed to write manifest: %v", werr)
			if err == nil {
				err = werr
			}
		} else {
			log.Info("manifest updated: %d syllables (%d new)", len(merged), len(synthesized))
		}
	}
	return err
}

// audioFileName derives a stable ASCII file name from a syllable's UTF-8
// bytes, since the glyphs themselves make poor file names.
func audioFileName(syllable string) string {
	return "syl_" + hex.EncodeToString([]byte(syllable)) + ".mp3"
}
