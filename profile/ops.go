package profile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/audiosim/metric"
)

// Ops are the metric options tuning a similarity query, as found in a
// metric-ops YAML document:
//
//	class: stats
//	n: 5
//	exclusive_weights: true
//	weights:
//	  spectral_centroid_mean: 2.0
//	  bpm: 0.5
//
// Weight keys are column names relative to the class prefix; Query-side
// validation of the weight values themselves (non-negative, known columns)
// happens in metric.Resolve, not here.
type Ops struct {
	// Class is the feature-class prefix whose columns participate
	// (default "stats").
	Class string `yaml:"class"`

	// Metric names the distance family (default "stats").
	Metric string `yaml:"metric"`

	// N is the number of similar records to retrieve.
	N int `yaml:"n"`

	// ExclusiveWeights restricts the distance to explicitly weighted columns.
	ExclusiveWeights bool `yaml:"exclusive_weights"`

	// MaxFiles caps the candidate pool size (0 = no cap). Applied by the
	// caller before ranking, not inside the distance computation.
	MaxFiles int `yaml:"max_files"`

	// Weights maps column names (relative to Class) to non-negative weights.
	Weights map[string]float64 `yaml:"weights"`
}

// DefaultOps returns the query defaults.
func DefaultOps() Ops {
	return Ops{
		Class:  "stats",
		Metric: "stats",
		N:      5,
	}
}

// ParseOps overlays a YAML ops document on the defaults and validates the
// result.
func ParseOps(data []byte) (Ops, error) {
	o := DefaultOps()
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Ops{}, fmt.Errorf("metric ops: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Ops{}, err
	}
	return o, nil
}

// Validate checks structural option values.
func (o Ops) Validate() error {
	if o.Class == "" {
		return fmt.Errorf("metric ops: class must not be empty")
	}
	if o.N < 0 {
		return fmt.Errorf("metric ops: n must be non-negative, got %d", o.N)
	}
	if o.MaxFiles < 0 {
		return fmt.Errorf("metric ops: max_files must be non-negative, got %d", o.MaxFiles)
	}
	return nil
}

// Family resolves the metric family name.
func (o Ops) Family() (metric.Family, error) {
	return metric.ParseFamily(o.Metric)
}

// ColumnWeights returns the weight mapping with the class prefix applied to
// each key, matching the flattened column names of a loaded table.
func (o Ops) ColumnWeights() map[string]float64 {
	if len(o.Weights) == 0 {
		return nil
	}
	weights := make(map[string]float64, len(o.Weights))
	for name, w := range o.Weights {
		weights[o.Class+"_"+name] = w
	}
	return weights
}
