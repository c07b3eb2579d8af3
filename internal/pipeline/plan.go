package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"lofimix/internal/services"
)

// Plan resolves the run configuration against a source file into the ordered
// list of engine invocations. The result preserves the fixed stage order;
// ambience stages whose asset is missing are omitted entirely and the next
// stage's input is rewired to the last produced output. Planning performs no
// work beyond existence checks, so a failed validation leaves no artifacts.
func Plan(cfg RunConfig, sourcePath string) ([]Invocation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sourcePath = strings.TrimSpace(sourcePath)
	if sourcePath == "" {
		return nil, services.Wrap(services.ErrMissingSource, "plan", "source", "no input file provided", nil)
	}
	if _, err := os.Stat(sourcePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrMissingSource, "plan", "source", sourcePath, nil)
		}
		return nil, services.Wrap(services.ErrMissingSource, "plan", "stat source", sourcePath, err)
	}

	workDir := strings.TrimSpace(cfg.WorkDir)
	if workDir == "" {
		workDir = filepath.Dir(sourcePath)
	}
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	artifact := func(kind Kind) string {
		return filepath.Join(workDir, stem+"_"+ArtifactSuffix(kind)+".wav")
	}

	// Cursor over the chain: every appended invocation consumes the output
	// of the previously enabled one, never a skipped stage's artifact.
	input := sourcePath
	plan := make([]Invocation, 0, len(Order))
	add := func(inv Invocation) {
		inv.Input = input
		inv.Output = artifact(inv.Kind)
		plan = append(plan, inv)
		input = inv.Output
	}

	add(Invocation{Kind: KindTempo, TempoRatio: cfg.TempoRatio})
	add(Invocation{Kind: KindPitch, PitchRatio: cfg.PitchRatio, SampleRate: cfg.SampleRate})

	if asset, ok := assetAvailable(cfg.RainAsset); ok {
		add(Invocation{Kind: KindMixRain, AssetPath: asset, MixVolume: cfg.RainVolume})
	}
	if asset, ok := assetAvailable(cfg.VinylAsset); ok {
		add(Invocation{Kind: KindMixVinyl, AssetPath: asset, MixVolume: cfg.VinylVolume})
	}

	if !cfg.SkipEQ {
		bands := cfg.Bands
		if len(bands) == 0 {
			bands = DefaultBands()
		}
		add(Invocation{Kind: KindEqualize, Bands: append([]Band(nil), bands...)})
	}

	if cfg.LoopCount > 0 {
		add(Invocation{Kind: KindLoop, LoopCount: cfg.LoopCount})
	}

	return plan, nil
}

// assetAvailable reports whether an optional ambience asset can be used. A
// blank path disables the stage outright; a configured path that does not
// exist on disk disables it as well, mirroring the skip-and-rewire contract.
func assetAvailable(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}
