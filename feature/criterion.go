package feature

import (
	"context"
	"fmt"
)

// Criterion is a condition on the value a sample takes for a feature.
type Criterion interface {
	Feature() Feature
	SatisfiedBy(ctx context.Context, sample Sample) (bool, error)
}

// Sample is anything that yields a value for a feature.
type Sample interface {
	ValueFor(context.Context, Feature) (string, error)
}

/*
DiscreteCriterion holds when a sample takes exactly Value for its feature.
It labels the edge from a node split on the feature to the child grown from
the rows with that value.
*/
type DiscreteCriterion interface {
	Criterion
	Value() string
}

type equalityCriterion struct {
	feature Feature
	value   string
}

// NewDiscreteCriterion returns the criterion "feature equals value".
func NewDiscreteCriterion(feature Feature, value string) DiscreteCriterion {
	return equalityCriterion{feature: feature, value: value}
}

func (ec equalityCriterion) Feature() Feature {
	return ec.feature
}

func (ec equalityCriterion) SatisfiedBy(ctx context.Context, sample Sample) (bool, error) {
	v, err := sample.ValueFor(ctx, ec.feature)
	if err != nil {
		return false, err
	}
	return v == ec.value, nil
}

func (ec equalityCriterion) Value() string {
	return ec.value
}

func (ec equalityCriterion) String() string {
	return fmt.Sprintf("%s = %s", ec.feature.Name(), ec.value)
}
