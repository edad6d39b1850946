package audiosim

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/audiosim/dataset"
	"github.com/hupe1980/audiosim/metric"
)

// Match is one ranking entry: a candidate key and its distance to the query
// record under the active metric and weights.
type Match struct {
	Key      string
	Distance float64
}

// Query holds the parameters of a similarity lookup.
type Query struct {
	// Family selects the distance formula. The zero value is FamilyStats.
	Family metric.Family

	// N is the number of matches to return. The result length is
	// min(N, number of candidates); N = 0 yields an empty result.
	N int

	// Weights maps column names to non-negative weights. Columns without an
	// entry default to 1.0, or are excluded under ExclusiveWeights.
	Weights map[string]float64

	// ExclusiveWeights restricts the distance to explicitly weighted columns.
	ExclusiveWeights bool

	// Selection optionally narrows the candidate pool (the query record is
	// always excluded regardless). Nil means all rows.
	Selection *dataset.Selection

	// Limit caps the candidate pool size, taking the first Limit candidates
	// in table order before scoring. Zero means no cap.
	Limit int
}

// Engine ranks the records of one immutable table by weighted feature
// distance. It is safe for concurrent use: queries only read the table.
type Engine struct {
	table   *dataset.Table
	logger  *Logger
	metrics MetricsCollector
}

// New creates an Engine over table.
func New(table *dataset.Table, optFns ...Option) (*Engine, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	o := applyOptions(optFns)
	return &Engine{
		table:   table,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

// Table returns the underlying table.
func (e *Engine) Table() *dataset.Table { return e.table }

// FindNMostSimilar returns the q.N records closest to key, ascending by
// distance, excluding the query record itself. Ties keep table order.
//
// Errors: ErrNotFound when key is absent, *metric.UnsupportedFamilyError for
// an unknown family, ErrInvalidConfig-wrapped errors for invalid weights or
// negative N, and ErrInvalidValue-wrapped errors when a weighted column holds
// missing or non-numeric data. No partial results are returned on error.
func (e *Engine) FindNMostSimilar(key string, q Query) ([]Match, error) {
	start := time.Now()
	matches, err := e.findNMostSimilar(key, q)
	e.metrics.RecordQuery(q.N, time.Since(start), err)
	return matches, err
}

func (e *Engine) findNMostSimilar(key string, q Query) ([]Match, error) {
	if q.N < 0 {
		return nil, fmt.Errorf("%w: n must be non-negative, got %d", ErrInvalidConfig, q.N)
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative, got %d", ErrInvalidConfig, q.Limit)
	}

	qi, ok := e.table.Index(key)
	if !ok {
		return nil, fmt.Errorf("%w: key %q", ErrNotFound, key)
	}

	comparator, err := metric.Provider(q.Family)
	if err != nil {
		return nil, err
	}

	weights, err := metric.Resolve(e.table.Schema(), q.Weights, q.ExclusiveWeights)
	if err != nil {
		return nil, err
	}

	query := e.table.Row(qi)
	matches := make([]Match, 0, e.table.Len()-1)
	for i := 0; i < e.table.Len(); i++ {
		if i == qi {
			continue
		}
		if q.Selection != nil && !q.Selection.Contains(i) {
			continue
		}
		if q.Limit > 0 && len(matches) == q.Limit {
			break
		}

		candidate := e.table.Row(i)
		dist, err := comparator.Distance(query, candidate, weights)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Key: candidate.Key, Distance: dist})
	}

	// Candidates were scored in table order, so a stable sort keeps that
	// order among equal distances.
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	if q.N < len(matches) {
		matches = matches[:q.N]
	}

	e.logger.Debug("similarity query",
		"key", key,
		"family", q.Family.String(),
		"n", q.N,
		"active_columns", len(weights.Active()),
		"matches", len(matches),
	)

	return matches, nil
}
