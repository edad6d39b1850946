package audiosim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audiosim "github.com/hupe1980/audiosim"
	"github.com/hupe1980/audiosim/dataset"
	"github.com/hupe1980/audiosim/metric"
)

func durTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable([]dataset.Record{
		{Key: "A", Columns: map[string]dataset.Value{"dur": dataset.ScalarValue(1.0)}},
		{Key: "B", Columns: map[string]dataset.Value{"dur": dataset.ScalarValue(2.0)}},
		{Key: "C", Columns: map[string]dataset.Value{"dur": dataset.ScalarValue(5.0)}},
	})
	require.NoError(t, err)
	return table
}

func newEngine(t *testing.T, table *dataset.Table) *audiosim.Engine {
	t.Helper()
	eng, err := audiosim.New(table)
	require.NoError(t, err)
	return eng
}

func TestFindNMostSimilar(t *testing.T) {
	eng := newEngine(t, durTable(t))

	matches, err := eng.FindNMostSimilar("A", audiosim.Query{
		N:       2,
		Weights: map[string]float64{"dur": 1.0},
	})
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, audiosim.Match{Key: "B", Distance: 1.0}, matches[0])
	assert.Equal(t, audiosim.Match{Key: "C", Distance: 4.0}, matches[1])
}

func TestFindNMostSimilarZeroWeightTies(t *testing.T) {
	eng := newEngine(t, durTable(t))

	// All distances collapse to zero; ties keep table order.
	matches, err := eng.FindNMostSimilar("A", audiosim.Query{
		N:       2,
		Weights: map[string]float64{"dur": 0.0},
	})
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, audiosim.Match{Key: "B", Distance: 0.0}, matches[0])
	assert.Equal(t, audiosim.Match{Key: "C", Distance: 0.0}, matches[1])
}

func TestFindNMostSimilarExcludesQuery(t *testing.T) {
	eng := newEngine(t, durTable(t))

	matches, err := eng.FindNMostSimilar("B", audiosim.Query{N: 10})
	require.NoError(t, err)

	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.NotEqual(t, "B", m.Key)
	}
}

func TestFindNMostSimilarResultLength(t *testing.T) {
	eng := newEngine(t, durTable(t))

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"Zero", 0, 0},
		{"One", 1, 1},
		{"Exact", 2, 2},
		{"MoreThanCandidates", 100, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := eng.FindNMostSimilar("A", audiosim.Query{N: tt.n})
			require.NoError(t, err)
			assert.Len(t, matches, tt.want)
		})
	}
}

func TestFindNMostSimilarSingleRecordTable(t *testing.T) {
	table, err := dataset.NewTable([]dataset.Record{
		{Key: "only", Columns: map[string]dataset.Value{"dur": dataset.ScalarValue(1)}},
	})
	require.NoError(t, err)

	matches, err := newEngine(t, table).FindNMostSimilar("only", audiosim.Query{N: 5})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFindNMostSimilarErrors(t *testing.T) {
	eng := newEngine(t, durTable(t))

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := eng.FindNMostSimilar("Z", audiosim.Query{N: 1})
		assert.ErrorIs(t, err, audiosim.ErrNotFound)
	})

	t.Run("NegativeN", func(t *testing.T) {
		_, err := eng.FindNMostSimilar("A", audiosim.Query{N: -1})
		assert.ErrorIs(t, err, audiosim.ErrInvalidConfig)
	})

	t.Run("NegativeWeight", func(t *testing.T) {
		_, err := eng.FindNMostSimilar("A", audiosim.Query{N: 1, Weights: map[string]float64{"dur": -1}})
		assert.ErrorIs(t, err, audiosim.ErrInvalidConfig)
	})

	t.Run("UnknownWeightColumn", func(t *testing.T) {
		_, err := eng.FindNMostSimilar("A", audiosim.Query{N: 1, Weights: map[string]float64{"nope": 1}})
		var we *metric.WeightError
		require.ErrorAs(t, err, &we)
		assert.Equal(t, "nope", we.Column)
	})

	t.Run("UnknownFamily", func(t *testing.T) {
		_, err := eng.FindNMostSimilar("A", audiosim.Query{N: 1, Family: metric.Family(42)})
		var ufe *metric.UnsupportedFamilyError
		assert.ErrorAs(t, err, &ufe)
	})

	t.Run("MissingWeightedValue", func(t *testing.T) {
		table, err := dataset.NewTable([]dataset.Record{
			{Key: "A", Columns: map[string]dataset.Value{"dur": dataset.ScalarValue(1), "bpm": dataset.ScalarValue(120)}},
			{Key: "B", Columns: map[string]dataset.Value{"dur": dataset.ScalarValue(2)}},
		})
		require.NoError(t, err)

		_, err = newEngine(t, table).FindNMostSimilar("A", audiosim.Query{N: 1})
		assert.ErrorIs(t, err, audiosim.ErrInvalidValue)

		// Excluding the gappy column makes the query succeed.
		matches, err := newEngine(t, table).FindNMostSimilar("A", audiosim.Query{
			N:                1,
			Weights:          map[string]float64{"dur": 1},
			ExclusiveWeights: true,
		})
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})
}

func TestFindNMostSimilarDeterministic(t *testing.T) {
	eng := newEngine(t, durTable(t))
	q := audiosim.Query{N: 2, Weights: map[string]float64{"dur": 2.0}}

	first, err := eng.FindNMostSimilar("A", q)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := eng.FindNMostSimilar("A", q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindNMostSimilarWeightMonotonicity(t *testing.T) {
	table, err := dataset.NewTable([]dataset.Record{
		{Key: "q", Columns: map[string]dataset.Value{"x": dataset.ScalarValue(0), "y": dataset.ScalarValue(0)}},
		{Key: "a", Columns: map[string]dataset.Value{"x": dataset.ScalarValue(1), "y": dataset.ScalarValue(3)}},
		{Key: "b", Columns: map[string]dataset.Value{"x": dataset.ScalarValue(3), "y": dataset.ScalarValue(1)}},
	})
	require.NoError(t, err)
	eng := newEngine(t, table)

	dist := func(wx float64) float64 {
		matches, err := eng.FindNMostSimilar("q", audiosim.Query{
			N:       2,
			Weights: map[string]float64{"x": wx},
		})
		require.NoError(t, err)
		for _, m := range matches {
			if m.Key == "b" {
				return m.Distance
			}
		}
		t.Fatal("candidate b not in result")
		return 0
	}

	// Raising x's weight cannot decrease b's distance (its x-difference is
	// nonzero), and here strictly increases it.
	assert.Less(t, dist(1.0), dist(4.0))
}

func TestFindNMostSimilarSelection(t *testing.T) {
	table := durTable(t)
	eng := newEngine(t, table)

	sel, err := dataset.NewSelection(table).Without("B")
	require.NoError(t, err)

	matches, err := eng.FindNMostSimilar("A", audiosim.Query{N: 10, Selection: sel})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "C", matches[0].Key)
}

func TestFindNMostSimilarLimit(t *testing.T) {
	table := durTable(t)
	eng := newEngine(t, table)

	// Limit 1 keeps only the first candidate in table order (B), even
	// though C would also fit in n.
	matches, err := eng.FindNMostSimilar("A", audiosim.Query{N: 10, Limit: 1})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "B", matches[0].Key)
}

func TestNewEngineValidation(t *testing.T) {
	_, err := audiosim.New(nil)
	assert.ErrorIs(t, err, audiosim.ErrNilTable)
}

func TestEngineMetricsCollector(t *testing.T) {
	collector := &audiosim.BasicMetricsCollector{}
	eng, err := audiosim.New(durTable(t), audiosim.WithMetricsCollector(collector))
	require.NoError(t, err)

	_, err = eng.FindNMostSimilar("A", audiosim.Query{N: 1})
	require.NoError(t, err)
	_, err = eng.FindNMostSimilar("missing", audiosim.Query{N: 1})
	require.Error(t, err)

	stats := collector.GetStats()
	assert.Equal(t, int64(2), stats.QueryCount)
	assert.Equal(t, int64(1), stats.QueryErrors)
}
