// Package profile holds the typed configuration surfaces around the
// similarity engine: the analysis profile handed to the external audio
// feature extractor, and the metric options that tune a similarity query.
//
// Both are YAML documents in the wild; parsing here overlays the document on
// the defaults and validates once at the boundary, so downstream code never
// re-checks option values.
package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Default extractor parameters.
const (
	DefaultSampleRate   = 44100.0
	DefaultFrameSize    = 2048
	DefaultHopSize      = 1024
	DefaultSilentFrames = "noise"
	DefaultWindowType   = "blackmanharris62"
	DefaultMinTempo     = 40
	DefaultMaxTempo     = 208
)

// knownStats are the statistical aggregations the extractor can compute over
// per-frame feature values.
var knownStats = map[string]struct{}{
	"mean": {}, "var": {}, "min": {}, "max": {},
	"dmean": {}, "dvar": {}, "dmean2": {}, "dvar2": {},
	"stdev": {}, "median": {},
}

// DefaultStats returns the default aggregation list.
func DefaultStats() []string {
	return []string{"mean", "var", "min", "max", "dmean", "dvar", "dmean2", "dvar2", "stdev"}
}

// Domain configures framewise analysis for one feature domain (lowlevel or
// tonal).
type Domain struct {
	Stats        []string `yaml:"stats"`
	FrameSize    int      `yaml:"frameSize"`
	HopSize      int      `yaml:"hopSize"`
	SilentFrames string   `yaml:"silentFrames"`
	WindowType   string   `yaml:"windowType,omitempty"`
}

// Rhythm configures tempo analysis.
type Rhythm struct {
	Stats    []string `yaml:"stats"`
	MinTempo int      `yaml:"minTempo"`
	MaxTempo int      `yaml:"maxTempo"`
}

// Analysis is the profile handed to the external feature extractor. The
// extractor itself is out of scope here; the profile is typed so callers
// configure it with validated fields instead of loose YAML maps.
type Analysis struct {
	SampleRate        float64  `yaml:"analysisSampleRate"`
	Lowlevel          Domain   `yaml:"lowlevel"`
	Tonal             Domain   `yaml:"tonal"`
	Rhythm            Rhythm   `yaml:"rhythm"`
	OutputFrames      bool     `yaml:"outputFrames"`
	IgnoreDescriptors []string `yaml:"ignoreDescriptors"`
}

// DefaultAnalysis returns the extractor defaults.
func DefaultAnalysis() Analysis {
	return Analysis{
		SampleRate: DefaultSampleRate,
		Lowlevel: Domain{
			Stats:        DefaultStats(),
			FrameSize:    DefaultFrameSize,
			HopSize:      DefaultHopSize,
			SilentFrames: DefaultSilentFrames,
		},
		Tonal: Domain{
			Stats:        DefaultStats(),
			FrameSize:    DefaultFrameSize,
			HopSize:      DefaultHopSize,
			SilentFrames: DefaultSilentFrames,
			WindowType:   DefaultWindowType,
		},
		Rhythm: Rhythm{
			Stats:    DefaultStats(),
			MinTempo: DefaultMinTempo,
			MaxTempo: DefaultMaxTempo,
		},
	}
}

// ParseAnalysis overlays a YAML profile document on the defaults and
// validates the result.
func ParseAnalysis(data []byte) (Analysis, error) {
	a := DefaultAnalysis()
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Analysis{}, fmt.Errorf("analysis profile: %w", err)
	}
	if err := a.Validate(); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// Validate checks the profile for values the extractor would reject.
func (a Analysis) Validate() error {
	if a.SampleRate <= 0 {
		return fmt.Errorf("analysis profile: sample rate must be positive, got %v", a.SampleRate)
	}
	if err := a.Lowlevel.validate("lowlevel"); err != nil {
		return err
	}
	if err := a.Tonal.validate("tonal"); err != nil {
		return err
	}
	if err := validateStats("rhythm", a.Rhythm.Stats); err != nil {
		return err
	}
	if a.Rhythm.MinTempo <= 0 || a.Rhythm.MaxTempo <= a.Rhythm.MinTempo {
		return fmt.Errorf("analysis profile: tempo bounds %d..%d are invalid", a.Rhythm.MinTempo, a.Rhythm.MaxTempo)
	}
	return nil
}

// LoudnessFrameSize returns the loudness analysis frame size, derived from
// the sample rate (two seconds of audio).
func (a Analysis) LoudnessFrameSize() int {
	return int(a.SampleRate * 2)
}

// LoudnessHopSize returns the loudness analysis hop size (one second).
func (a Analysis) LoudnessHopSize() int {
	return int(a.SampleRate)
}

func (d Domain) validate(domain string) error {
	if d.FrameSize <= 0 {
		return fmt.Errorf("analysis profile: %s frame size must be positive, got %d", domain, d.FrameSize)
	}
	if d.HopSize <= 0 {
		return fmt.Errorf("analysis profile: %s hop size must be positive, got %d", domain, d.HopSize)
	}
	if d.HopSize > d.FrameSize {
		return fmt.Errorf("analysis profile: %s hop size %d exceeds frame size %d", domain, d.HopSize, d.FrameSize)
	}
	return validateStats(domain, d.Stats)
}

func validateStats(domain string, stats []string) error {
	for _, s := range stats {
		if _, ok := knownStats[s]; !ok {
			return fmt.Errorf("analysis profile: %s has unknown aggregation %q", domain, s)
		}
	}
	return nil
}
