package ffmpeg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lofimix/internal/pipeline"
	"lofimix/internal/services"
)

// Arguments translates a resolved invocation into the FFmpeg argument
// vector. The filter expressions follow the lofi workflow: atempo for tempo,
// an asetrate/aresample pair for pitch, a volume-scaled amix for ambience
// layers, chained equalizer filters for EQ, and stream_loop with stream copy
// for looping.
func Arguments(inv pipeline.Invocation) ([]string, error) {
	switch inv.Kind {
	case pipeline.KindTempo:
		return withCommonFlags(inv,
			"-i", inv.Input,
			"-filter:a", fmt.Sprintf("atempo=%s", formatRatio(inv.TempoRatio)),
		), nil
	case pipeline.KindPitch:
		// Resample the stream at base_rate * pitch ratio, then bring it
		// back to the base rate so only the pitch moves.
		newRate := int(math.Round(float64(inv.SampleRate) * inv.PitchRatio))
		return withCommonFlags(inv,
			"-i", inv.Input,
			"-filter:a", fmt.Sprintf("asetrate=%d,aresample=%d", newRate, inv.SampleRate),
		), nil
	case pipeline.KindMixRain, pipeline.KindMixVinyl:
		return withCommonFlags(inv,
			"-i", inv.Input,
			"-i", inv.AssetPath,
			"-filter_complex", fmt.Sprintf("[1:a]volume=%s[a1];[0:a][a1]amix=inputs=2", formatRatio(inv.MixVolume)),
		), nil
	case pipeline.KindEqualize:
		if len(inv.Bands) == 0 {
			return nil, services.Wrap(services.ErrValidation, string(inv.Kind), "arguments", "no equalizer bands resolved", nil)
		}
		filters := make([]string, 0, len(inv.Bands))
		for _, band := range inv.Bands {
			filters = append(filters, fmt.Sprintf("equalizer=f=%s:t=q:w=%s:g=%s",
				formatRatio(band.Frequency), formatRatio(band.Width), formatRatio(band.Gain)))
		}
		return withCommonFlags(inv,
			"-i", inv.Input,
			"-filter:a", strings.Join(filters, ","),
		), nil
	case pipeline.KindLoop:
		// acrossfade does not compose with stream_loop, so looping uses a
		// plain stream copy regardless of the crossfade preference.
		return withCommonFlags(inv,
			"-stream_loop", strconv.Itoa(inv.LoopCount),
			"-i", inv.Input,
			"-c", "copy",
		), nil
	default:
		return nil, services.Wrap(services.ErrValidation, string(inv.Kind), "arguments", "unknown stage kind", nil)
	}
}

// NoiseSpec describes one synthesized ambience asset.
type NoiseSpec struct {
	Output   string
	Duration int // seconds
	Seed     int
	Filter   string // post-synthesis filter chain
}

// NoiseArguments builds the argument vector that synthesizes an ambience
// asset from FFmpeg's white-noise source.
func NoiseArguments(spec NoiseSpec) ([]string, error) {
	if strings.TrimSpace(spec.Output) == "" {
		return nil, services.Wrap(services.ErrValidation, "noise", "arguments", "output path required", nil)
	}
	if spec.Duration <= 0 {
		return nil, services.Wrap(services.ErrValidation, "noise", "arguments", fmt.Sprintf("duration %d must be positive", spec.Duration), nil)
	}
	args := []string{
		"-hide_banner", "-nostdin",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anoisesrc=duration=%d:color=white:seed=%d", spec.Duration, spec.Seed),
	}
	if filter := strings.TrimSpace(spec.Filter); filter != "" {
		args = append(args, "-filter:a", filter)
	}
	return append(args, "-y", spec.Output), nil
}

func withCommonFlags(inv pipeline.Invocation, args ...string) []string {
	out := append([]string{"-hide_banner", "-nostdin"}, args...)
	return append(out, "-y", inv.Output)
}

// formatRatio renders a numeric filter parameter without a fixed precision,
// matching how the values appear in the documented filter expressions.
func formatRatio(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
