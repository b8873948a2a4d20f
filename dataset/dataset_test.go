package dataset

import (
	"context"
	"testing"

	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weather = []Row{
	{"sunny", "hot", "yes"},
	{"sunny", "cool", "no"},
	{"rainy", "hot", "no"},
	{"rainy", "cool", "no"},
}

func samplesOf(rows []Row) []Sample {
	samples := make([]Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, r)
	}
	return samples
}

func implementations() map[string]func([]Sample) Dataset {
	return map[string]func([]Sample) Dataset{
		"memory":  NewMemoryIntensive,
		"indexed": NewIndexed,
	}
}

func TestRowValueFor(t *testing.T) {
	ctx := context.Background()
	features := feature.Columns(3)
	r := Row{"sunny", "hot", "yes"}
	v, err := r.ValueFor(ctx, features[1])
	require.NoError(t, err)
	assert.Equal(t, "hot", v)
	assert.Equal(t, "yes", r.Decision())
	_, err = r.ValueFor(ctx, feature.NewDiscreteFeature("x", 5, nil))
	assert.Error(t, err)
	assert.Equal(t, "[sunny hot yes]", r.String())
}

func TestDatasetOperations(t *testing.T) {
	ctx := context.Background()
	features := feature.Columns(3)
	label := features[2]
	for name, newDataset := range implementations() {
		t.Run(name, func(t *testing.T) {
			ds := newDataset(samplesOf(weather))

			count, err := ds.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 4, count)

			e, err := ds.Entropy(ctx, label)
			require.NoError(t, err)
			assert.InDelta(t, 0.8112781244591328, e, 1e-12)

			values, err := ds.FeatureValues(ctx, label)
			require.NoError(t, err)
			assert.Equal(t, []string{"yes", "no"}, values)

			vcs, err := ds.CountFeatureValues(ctx, features[0])
			require.NoError(t, err)
			assert.Equal(t, []ValueCount{{"sunny", 2}, {"rainy", 2}}, vcs)

			sunny, err := ds.SubsetWith(ctx, feature.NewDiscreteCriterion(features[0], "sunny"))
			require.NoError(t, err)
			samples, err := sunny.Samples(ctx)
			require.NoError(t, err)
			assert.Equal(t, samplesOf(weather[:2]), samples)

			e, err = sunny.Entropy(ctx, label)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, e, 1e-12)

			rainy, err := ds.SubsetWith(ctx, feature.NewDiscreteCriterion(features[0], "rainy"))
			require.NoError(t, err)
			e, err = rainy.Entropy(ctx, label)
			require.NoError(t, err)
			assert.Equal(t, 0.0, e)

			empty, err := ds.SubsetWith(ctx, feature.NewDiscreteCriterion(features[0], "snowy"))
			require.NoError(t, err)
			count, err = empty.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, count)
		})
	}
}

func TestNewSelectsImplementationBySize(t *testing.T) {
	small := New(samplesOf(weather))
	_, ok := small.(*memoryIntensiveSubsettingDataset)
	assert.True(t, ok)

	rows := make([]Row, sampleCountThresholdForDatasetImplementation+1)
	for i := range rows {
		rows[i] = Row{"a", "b"}
	}
	_, ok = FromRows(rows).(*indexedDataset)
	assert.True(t, ok)
}

func TestJoinAndFeatureColumn(t *testing.T) {
	ctx := context.Background()
	features := feature.Columns(3)
	joined, err := Join(ctx, FromRows(weather[:1]), FromRows(weather[1:]))
	require.NoError(t, err)
	column, err := FeatureColumn(ctx, joined, features[1])
	require.NoError(t, err)
	assert.Equal(t, []string{"hot", "cool", "hot", "cool"}, column)
}

func TestRowOf(t *testing.T) {
	ctx := context.Background()
	features := feature.Columns(3)
	r, err := RowOf(ctx, weather[0], features)
	require.NoError(t, err)
	assert.Equal(t, weather[0], r)
	r, err = RowOf(ctx, weather[0], features[1:])
	require.NoError(t, err)
	assert.Equal(t, Row{"hot", "yes"}, r)
}

func TestValueCountHelpers(t *testing.T) {
	vcs := []ValueCount{{"a", 3}, {"b", 1}}
	assert.Equal(t, []int{3, 1}, Counts(vcs))
	assert.Equal(t, []string{"a", "b"}, Values(vcs))
}
