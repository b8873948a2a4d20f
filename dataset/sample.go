package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/feature"
)

/*
Sample represents an item to process or from which to learn how to process them.

Its ValueFor method returns the value of the sample corresponding to the feature
passed as parameter.
*/
type Sample interface {
	ValueFor(context.Context, feature.Feature) (string, error)
}

/*
Row is a sample read as an ordered sequence of categorical values. Its last
element is the decision; every other position holds an attribute value.
Rows are not modified once read.
*/
type Row []string

// ValueFor returns the value in the column of the given feature.
func (r Row) ValueFor(_ context.Context, f feature.Feature) (string, error) {
	i := f.Index()
	if i < 0 || i >= len(r) {
		return "", fmt.Errorf("row with %d values has no column %d for feature %s", len(r), i, f.Name())
	}
	return r[i], nil
}

// Decision returns the last value of the row.
func (r Row) Decision() string {
	return r[len(r)-1]
}

func (r Row) String() string {
	return fmt.Sprintf("[%s]", strings.Join(r, " "))
}

/*
RowOf takes a sample and a slice of features and returns a Row with the
sample's values for the features, in the order of the slice.
*/
func RowOf(ctx context.Context, s Sample, features []feature.Feature) (Row, error) {
	if r, ok := s.(Row); ok && len(r) == len(features) {
		return r, nil
	}
	r := make(Row, 0, len(features))
	for _, f := range features {
		v, err := s.ValueFor(ctx, f)
		if err != nil {
			return nil, err
		}
		r = append(r, v)
	}
	return r, nil
}
