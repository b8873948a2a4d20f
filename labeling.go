package dtree

import (
	"context"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
)

// Strategy holds the configuration for how
// the nodes of a tree are developed.
type Strategy struct {
	// Labeler decides the label of a node
	// that is not split any further.
	Labeler
}

/*
Labeler is an interface wrapping the Label method, used to decide the
decision of a leaf.

The Label method takes a context, the non-empty dataset of the samples that
reach the leaf and the label feature and returns the decision for the leaf.
It must be one of the label values present in the dataset.
*/
type Labeler interface {
	Label(ctx context.Context, s dataset.Dataset, label feature.Feature) (string, error)
}

/*
LabelerFunc wraps a function with the Label method signature to implement
the Labeler interface
*/
type LabelerFunc func(ctx context.Context, s dataset.Dataset, label feature.Feature) (string, error)

// Label invokes the LabelerFunc with the given parameters.
func (lf LabelerFunc) Label(ctx context.Context, s dataset.Dataset, label feature.Feature) (string, error) {
	return lf(ctx, s, label)
}

/*
FirstSeenLabeler returns a Labeler that labels a leaf with the label of the
first sample in its dataset.
*/
func FirstSeenLabeler() Labeler {
	return LabelerFunc(func(ctx context.Context, s dataset.Dataset, label feature.Feature) (string, error) {
		values, err := s.FeatureValues(ctx, label)
		if err != nil {
			return "", err
		}
		if len(values) == 0 {
			return "", ErrEmptyDataset
		}
		return values[0], nil
	})
}

/*
MajorityLabeler returns a Labeler that labels a leaf with the most frequent
label on its dataset. Ties go to the label found first.
*/
func MajorityLabeler() Labeler {
	return LabelerFunc(func(ctx context.Context, s dataset.Dataset, label feature.Feature) (string, error) {
		vcs, err := s.CountFeatureValues(ctx, label)
		if err != nil {
			return "", err
		}
		if len(vcs) == 0 {
			return "", ErrEmptyDataset
		}
		best := vcs[0]
		for _, vc := range vcs[1:] {
			if vc.Count > best.Count {
				best = vc
			}
		}
		return best.Value, nil
	})
}

// DefaultStrategy returns a strategy labeling leaves with FirstSeenLabeler.
func DefaultStrategy() *Strategy {
	return &Strategy{FirstSeenLabeler()}
}
