package dataset

import (
	"context"
	"math"
	"math/rand"

	"github.com/pkg/errors"
)

/*
Holdout takes a context, a dataset, a fraction between 0 and 1 and a source of
random numbers and splits the dataset into a training and a test dataset.

The test dataset gets round(N·fraction) samples drawn uniformly at random and
without replacement. The training dataset keeps every other sample in its
original order. The given dataset is left untouched.
*/
func Holdout(ctx context.Context, s Dataset, fraction float64, rng *rand.Rand) (training Dataset, test Dataset, err error) {
	if fraction < 0 || fraction > 1 || math.IsNaN(fraction) {
		return nil, nil, errors.Errorf("holdout fraction %v is not between 0 and 1", fraction)
	}
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "splitting dataset")
	}
	take := int(math.Round(float64(len(samples)) * fraction))
	working := sequence(len(samples))
	drawn := draw(&working, take, rng)
	return New(pick(samples, working)), New(pick(samples, drawn)), nil
}

/*
KFold takes a context, a dataset, a number of folds k and a source of random
numbers and partitions the dataset into k folds.

With N samples, folds 0 to k-2 are each made of N/k (integer division) samples
drawn at random without replacement, and fold k-1 gets all the samples left,
including the remainder of the division. The given dataset is left untouched.
*/
func KFold(ctx context.Context, s Dataset, k int, rng *rand.Rand) ([]Dataset, error) {
	if k < 1 {
		return nil, errors.Errorf("cannot split a dataset into %d folds", k)
	}
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "splitting dataset into folds")
	}
	take := len(samples) / k
	working := sequence(len(samples))
	folds := make([]Dataset, 0, k)
	for i := 0; i < k-1; i++ {
		folds = append(folds, New(pick(samples, draw(&working, take, rng))))
	}
	folds = append(folds, New(pick(samples, working)))
	return folds, nil
}

func sequence(n int) []int {
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// draw removes take random indices from working and returns them in draw order.
func draw(working *[]int, take int, rng *rand.Rand) []int {
	result := make([]int, 0, take)
	for i := 0; i < take && len(*working) > 0; i++ {
		w := *working
		j := rng.Intn(len(w))
		result = append(result, w[j])
		*working = append(w[:j], w[j+1:]...)
	}
	return result
}

func pick(samples []Sample, indices []int) []Sample {
	result := make([]Sample, 0, len(indices))
	for _, i := range indices {
		result = append(result, samples[i])
	}
	return result
}
