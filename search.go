package audiosim

import (
	"github.com/hupe1980/audiosim/dataset"
	"github.com/hupe1980/audiosim/metric"
)

// Similar creates a fluent query builder for the given record key.
//
// Example:
//
//	matches, err := eng.Similar("kick_01.wav").
//	    N(5).
//	    Weight("stats_bpm", 2.0).
//	    Exclusive().
//	    Execute()
func (e *Engine) Similar(key string) *SimilarBuilder {
	return &SimilarBuilder{
		engine: e,
		key:    key,
		query: Query{
			Family: metric.FamilyStats,
			N:      5, // Default n
		},
	}
}

// SimilarBuilder accumulates query parameters. All methods return the
// builder for chaining; nothing runs until Execute.
type SimilarBuilder struct {
	engine *Engine
	key    string
	query  Query
}

// N sets the number of matches to return.
func (b *SimilarBuilder) N(n int) *SimilarBuilder {
	b.query.N = n
	return b
}

// Family overrides the distance family (default FamilyStats).
func (b *SimilarBuilder) Family(f metric.Family) *SimilarBuilder {
	b.query.Family = f
	return b
}

// Weight sets the weight for one column.
func (b *SimilarBuilder) Weight(column string, w float64) *SimilarBuilder {
	if b.query.Weights == nil {
		b.query.Weights = make(map[string]float64)
	}
	b.query.Weights[column] = w
	return b
}

// Weights merges a full column→weight mapping into the query.
func (b *SimilarBuilder) Weights(weights map[string]float64) *SimilarBuilder {
	for column, w := range weights {
		b.Weight(column, w)
	}
	return b
}

// Exclusive enables exclusive weighting: only explicitly weighted columns
// participate in the distance.
func (b *SimilarBuilder) Exclusive() *SimilarBuilder {
	b.query.ExclusiveWeights = true
	return b
}

// Select narrows the candidate pool to the given selection.
func (b *SimilarBuilder) Select(sel *dataset.Selection) *SimilarBuilder {
	b.query.Selection = sel
	return b
}

// Limit caps the candidate pool at m records, taken in table order before
// scoring.
func (b *SimilarBuilder) Limit(m int) *SimilarBuilder {
	b.query.Limit = m
	return b
}

// Execute runs the query.
func (b *SimilarBuilder) Execute() ([]Match, error) {
	return b.engine.FindNMostSimilar(b.key, b.query)
}
