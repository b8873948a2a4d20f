package dataset

import (
	"context"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/info"
)

const (
	sampleCountThresholdForDatasetImplementation = 1000
)

/*
Dataset represents a collection of samples.

Its Entropy method returns the entropy in bits of the dataset for a given
Feature: a measure of the disinformation we have on the values of samples that
belong to it.

Its FeatureValues method returns the distinct values of a feature on the
samples, in the order they are first found.

Its CountFeatureValues method returns those values along the number of
samples that have each of them.

Its SubsetWith method takes a feature.Criterion and returns a subset that only
contains samples that satisfy it, in their original order.

Its Samples method returns the samples it contains
*/
type Dataset interface {
	Entropy(context.Context, feature.Feature) (float64, error)
	SubsetWith(context.Context, feature.Criterion) (Dataset, error)
	FeatureValues(context.Context, feature.Feature) ([]string, error)
	CountFeatureValues(context.Context, feature.Feature) ([]ValueCount, error)
	Samples(context.Context) ([]Sample, error)
	Count(context.Context) (int, error)
}

// ValueCount holds a feature value and the number of samples that have it.
type ValueCount struct {
	Value string
	Count int
}

type memoryIntensiveSubsettingDataset struct {
	entropies map[string]float64
	samples   []Sample
}

type indexedDataset struct {
	entropies map[string]float64
	backing   []Sample
	indices   []int
}

/*
New takes a slice of samples and returns a dataset built with them.
The dataset will be an indexed one when the number of samples is
over sampleCountThresholdForDatasetImplementation
*/
func New(samples []Sample) Dataset {
	if len(samples) > sampleCountThresholdForDatasetImplementation {
		return NewIndexed(samples)
	}
	return NewMemoryIntensive(samples)
}

/*
NewMemoryIntensive takes a slice of samples and returns a Dataset
built with them. A memory-intensive dataset is an implementation that
replicates the slice of samples when subsetting.
*/
func NewMemoryIntensive(samples []Sample) Dataset {
	return &memoryIntensiveSubsettingDataset{samples: samples}
}

/*
NewIndexed takes a slice of samples and returns a Dataset built with them.
An indexed dataset never replicates the samples: every subset keeps the
original slice as backing store along the list of indices of the samples
that belong to it.
*/
func NewIndexed(samples []Sample) Dataset {
	indices := make([]int, len(samples))
	for i := range indices {
		indices[i] = i
	}
	return &indexedDataset{backing: samples, indices: indices}
}

/*
FromRows takes a slice of rows and returns a dataset with them as samples.
*/
func FromRows(rows []Row) Dataset {
	samples := make([]Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, r)
	}
	return New(samples)
}

/*
Join takes a context and a slice of datasets and returns a dataset with the
samples of all of them, in order.
*/
func Join(ctx context.Context, datasets ...Dataset) (Dataset, error) {
	var samples []Sample
	for _, d := range datasets {
		ss, err := d.Samples(ctx)
		if err != nil {
			return nil, err
		}
		samples = append(samples, ss...)
	}
	return New(samples), nil
}

func (s *memoryIntensiveSubsettingDataset) Count(ctx context.Context) (int, error) {
	return len(s.samples), nil
}

func (s *indexedDataset) Count(ctx context.Context) (int, error) {
	return len(s.indices), nil
}

func (s *memoryIntensiveSubsettingDataset) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	if e, ok := s.entropies[f.Name()]; ok {
		return e, nil
	}
	if s.entropies == nil {
		s.entropies = make(map[string]float64)
	}
	e, err := entropy(ctx, s, f)
	if err != nil {
		return 0, err
	}
	s.entropies[f.Name()] = e
	return e, nil
}

func (s *indexedDataset) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	if e, ok := s.entropies[f.Name()]; ok {
		return e, nil
	}
	if s.entropies == nil {
		s.entropies = make(map[string]float64)
	}
	e, err := entropy(ctx, s, f)
	if err != nil {
		return 0, err
	}
	s.entropies[f.Name()] = e
	return e, nil
}

func (s *memoryIntensiveSubsettingDataset) FeatureValues(ctx context.Context, f feature.Feature) ([]string, error) {
	return featureValues(ctx, s, f)
}

func (s *indexedDataset) FeatureValues(ctx context.Context, f feature.Feature) ([]string, error) {
	return featureValues(ctx, s, f)
}

func (s *memoryIntensiveSubsettingDataset) CountFeatureValues(ctx context.Context, f feature.Feature) ([]ValueCount, error) {
	return countFeatureValues(ctx, s.samples, f)
}

func (s *indexedDataset) CountFeatureValues(ctx context.Context, f feature.Feature) ([]ValueCount, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, err
	}
	return countFeatureValues(ctx, samples, f)
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(ctx context.Context, fc feature.Criterion) (Dataset, error) {
	var samples []Sample
	for _, sample := range s.samples {
		ok, err := fc.SatisfiedBy(ctx, sample)
		if err != nil {
			return nil, err
		}
		if ok {
			samples = append(samples, sample)
		}
	}
	return &memoryIntensiveSubsettingDataset{samples: samples}, nil
}

func (s *indexedDataset) SubsetWith(ctx context.Context, fc feature.Criterion) (Dataset, error) {
	var indices []int
	for _, i := range s.indices {
		ok, err := fc.SatisfiedBy(ctx, s.backing[i])
		if err != nil {
			return nil, err
		}
		if ok {
			indices = append(indices, i)
		}
	}
	return &indexedDataset{backing: s.backing, indices: indices}, nil
}

func (s *memoryIntensiveSubsettingDataset) Samples(ctx context.Context) ([]Sample, error) {
	return s.samples, nil
}

func (s *indexedDataset) Samples(ctx context.Context) ([]Sample, error) {
	samples := make([]Sample, 0, len(s.indices))
	for _, i := range s.indices {
		samples = append(samples, s.backing[i])
	}
	return samples, nil
}

func entropy(ctx context.Context, s Dataset, f feature.Feature) (float64, error) {
	vcs, err := s.CountFeatureValues(ctx, f)
	if err != nil {
		return 0, err
	}
	return info.Entropy(info.Probabilities(Counts(vcs))), nil
}

func featureValues(ctx context.Context, s Dataset, f feature.Feature) ([]string, error) {
	vcs, err := s.CountFeatureValues(ctx, f)
	if err != nil {
		return nil, err
	}
	return Values(vcs), nil
}

func countFeatureValues(ctx context.Context, samples []Sample, f feature.Feature) ([]ValueCount, error) {
	counts := linkedhashmap.New()
	for _, sample := range samples {
		v, err := sample.ValueFor(ctx, f)
		if err != nil {
			return nil, err
		}
		c, _ := counts.Get(v)
		n, _ := c.(int)
		counts.Put(v, n+1)
	}
	result := make([]ValueCount, 0, counts.Size())
	it := counts.Iterator()
	for it.Next() {
		result = append(result, ValueCount{Value: it.Key().(string), Count: it.Value().(int)})
	}
	return result, nil
}

// Counts returns the counts of the given value counts, in order.
func Counts(vcs []ValueCount) []int {
	result := make([]int, 0, len(vcs))
	for _, vc := range vcs {
		result = append(result, vc.Count)
	}
	return result
}

// Values returns the values of the given value counts, in order.
func Values(vcs []ValueCount) []string {
	result := make([]string, 0, len(vcs))
	for _, vc := range vcs {
		result = append(result, vc.Value)
	}
	return result
}

/*
FeatureColumn takes a context, a dataset and a feature and returns the value of
every sample of the dataset for the feature, in sample order.
*/
func FeatureColumn(ctx context.Context, s Dataset, f feature.Feature) ([]string, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(samples))
	for _, sample := range samples {
		v, err := sample.ValueFor(ctx, f)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
