package pipeline

// Kind identifies one audio transformation delegated to the engine.
type Kind string

const (
	KindTempo    Kind = "tempo"
	KindPitch    Kind = "pitch"
	KindMixRain  Kind = "mix-rain"
	KindMixVinyl Kind = "mix-vinyl"
	KindEqualize Kind = "equalize"
	KindLoop     Kind = "loop"
)

// Order lists every stage kind in execution order. Plans always preserve
// this order over their enabled subset.
var Order = []Kind{KindTempo, KindPitch, KindMixRain, KindMixVinyl, KindEqualize, KindLoop}

// Band describes one equalizer peak filter.
type Band struct {
	Frequency float64 `toml:"frequency"` // center frequency in Hz
	Width     float64 `toml:"width"`     // Q factor
	Gain      float64 `toml:"gain"`      // signed gain in dB
}

// Invocation is one fully resolved engine call: the transformation kind, the
// numeric parameters it needs, and the artifact paths it reads and writes.
// Only the fields relevant to the Kind are populated.
type Invocation struct {
	Kind   Kind
	Input  string
	Output string

	// KindTempo
	TempoRatio float64

	// KindPitch
	PitchRatio float64
	SampleRate int

	// KindMixRain / KindMixVinyl
	AssetPath string
	MixVolume float64

	// KindEqualize
	Bands []Band

	// KindLoop
	LoopCount int
}

// artifact suffixes keyed by stage kind. These names are the contract
// between stages and with callers that inspect intermediates.
var artifactSuffixes = map[Kind]string{
	KindTempo:    "tempo",
	KindPitch:    "pitch",
	KindMixRain:  "rainmix",
	KindMixVinyl: "textured",
	KindEqualize: "final",
	KindLoop:     "looped",
}

// ArtifactSuffix returns the intermediate-file suffix for a stage kind.
func ArtifactSuffix(kind Kind) string {
	return artifactSuffixes[kind]
}
