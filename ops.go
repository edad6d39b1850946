package audiosim

import (
	"fmt"

	"github.com/hupe1980/audiosim/profile"
)

// QueryFromOps converts a metric-ops document into a Query. MaxFiles maps to
// the candidate-pool Limit; weight keys get the class prefix applied so they
// match the loaded table's column names.
func QueryFromOps(o profile.Ops) (Query, error) {
	if err := o.Validate(); err != nil {
		return Query{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	family, err := o.Family()
	if err != nil {
		return Query{}, err
	}
	return Query{
		Family:           family,
		N:                o.N,
		Weights:          o.ColumnWeights(),
		ExclusiveWeights: o.ExclusiveWeights,
		Limit:            o.MaxFiles,
	}, nil
}
