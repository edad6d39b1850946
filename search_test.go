package audiosim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audiosim "github.com/hupe1980/audiosim"
	"github.com/hupe1980/audiosim/dataset"
	"github.com/hupe1980/audiosim/metric"
)

func TestSimilarBuilder(t *testing.T) {
	eng := newEngine(t, durTable(t))

	matches, err := eng.Similar("A").
		N(2).
		Family(metric.FamilyStats).
		Weight("dur", 1.0).
		Execute()
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, audiosim.Match{Key: "B", Distance: 1.0}, matches[0])
	assert.Equal(t, audiosim.Match{Key: "C", Distance: 4.0}, matches[1])
}

func TestSimilarBuilderDefaults(t *testing.T) {
	eng := newEngine(t, durTable(t))

	// Default n is 5; only two candidates exist.
	matches, err := eng.Similar("A").Execute()
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSimilarBuilderExclusiveNoWeights(t *testing.T) {
	eng := newEngine(t, durTable(t))

	// No columns participate, so every distance collapses to zero and ties
	// keep table order.
	matches, err := eng.Similar("A").N(2).Exclusive().Execute()
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, audiosim.Match{Key: "B", Distance: 0.0}, matches[0])
	assert.Equal(t, audiosim.Match{Key: "C", Distance: 0.0}, matches[1])
}

func TestSimilarBuilderExclusive(t *testing.T) {
	table, err := dataset.NewTable([]dataset.Record{
		{Key: "q", Columns: map[string]dataset.Value{"x": dataset.ScalarValue(0), "y": dataset.ScalarValue(0)}},
		{Key: "near_x", Columns: map[string]dataset.Value{"x": dataset.ScalarValue(1), "y": dataset.ScalarValue(9)}},
		{Key: "near_y", Columns: map[string]dataset.Value{"x": dataset.ScalarValue(9), "y": dataset.ScalarValue(1)}},
	})
	require.NoError(t, err)
	eng := newEngine(t, table)

	matches, err := eng.Similar("q").
		N(2).
		Weights(map[string]float64{"x": 1}).
		Exclusive().
		Execute()
	require.NoError(t, err)

	// Only x participates, so near_x wins.
	require.Len(t, matches, 2)
	assert.Equal(t, "near_x", matches[0].Key)
	assert.Equal(t, 1.0, matches[0].Distance)
}

func TestSimilarBuilderSelectAndLimit(t *testing.T) {
	table := durTable(t)
	eng := newEngine(t, table)

	sel, err := dataset.NewSelection(table).Without("B")
	require.NoError(t, err)

	matches, err := eng.Similar("A").N(10).Select(sel).Execute()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "C", matches[0].Key)

	matches, err = eng.Similar("A").N(10).Limit(1).Execute()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "B", matches[0].Key)
}
