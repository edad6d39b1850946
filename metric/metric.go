package metric

import (
	"fmt"

	"github.com/hupe1980/audiosim/dataset"
)

// Family represents the distance formula variant used for record comparison.
type Family int

const (
	// FamilyStats is per-column weighted Euclidean distance over the
	// statistical feature columns.
	FamilyStats Family = iota
)

func (f Family) String() string {
	switch f {
	case FamilyStats:
		return "stats"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// ParseFamily maps a configuration string to a Family.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "stats":
		return FamilyStats, nil
	default:
		return 0, &UnsupportedFamilyError{Name: s}
	}
}

// Comparator computes the distance between two records under a resolved
// weight vector. Implementations are pure functions of their inputs.
type Comparator interface {
	Distance(a, b dataset.Record, w Weights) (float64, error)
}

// Provider returns the comparator for the given family.
func Provider(f Family) (Comparator, error) {
	switch f {
	case FamilyStats:
		return statsComparator{}, nil
	default:
		return nil, &UnsupportedFamilyError{Name: f.String()}
	}
}
