package evaluation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

/*
GrowFunc takes a context and a training dataset and returns a classifier
learnt from it.
*/
type GrowFunc func(ctx context.Context, training dataset.Dataset) (Classifier, error)

// Fold is the result of training on a dataset and testing on another.
type Fold struct {
	Training int
	Test     int
	Matrix   *ConfusionMatrix
	Summary  Summary
}

// Report holds the folds of a validation run.
type Report struct {
	Folds []*Fold
}

// Metric extracts a value from a summary.
type Metric func(Summary) float64

// Metrics available on a summary, by name.
var Metrics = []struct {
	Name string
	Metric
}{
	{"accuracy", func(s Summary) float64 { return s.Accuracy }},
	{"recall", func(s Summary) float64 { return s.Recall }},
	{"precision", func(s Summary) float64 { return s.Precision }},
	{"f-measure", func(s Summary) float64 { return s.FMeasure }},
	{"mcc", func(s Summary) float64 { return s.MCC }},
}

/*
HoldoutValidate takes a context, a dataset, a test fraction, a random source,
a GrowFunc and the label feature. It splits the dataset with
dataset.Holdout, grows a classifier on the training set and tests it on the
test set, returning a report with a single fold.
*/
func HoldoutValidate(ctx context.Context, s dataset.Dataset, fraction float64, rng *rand.Rand, grow GrowFunc, label feature.Feature) (*Report, error) {
	training, test, err := dataset.Holdout(ctx, s, fraction, rng)
	if err != nil {
		return nil, err
	}
	f, err := runFold(ctx, training, test, grow, label)
	if err != nil {
		return nil, err
	}
	return &Report{Folds: []*Fold{f}}, nil
}

/*
CrossValidate takes a context, a dataset, a number of folds k, a random
source, a GrowFunc and the label feature. It splits the dataset with
dataset.KFold and, for every fold, grows a classifier on the union of the
other folds and tests it on the fold. The report holds a result per fold,
in order.
*/
func CrossValidate(ctx context.Context, s dataset.Dataset, k int, rng *rand.Rand, grow GrowFunc, label feature.Feature) (*Report, error) {
	folds, err := dataset.KFold(ctx, s, k, rng)
	if err != nil {
		return nil, err
	}
	report := &Report{Folds: make([]*Fold, 0, k)}
	for i, test := range folds {
		rest := make([]dataset.Dataset, 0, len(folds)-1)
		rest = append(rest, folds[:i]...)
		rest = append(rest, folds[i+1:]...)
		training, err := dataset.Join(ctx, rest...)
		if err != nil {
			return nil, err
		}
		f, err := runFold(ctx, training, test, grow, label)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d", i+1)
		}
		report.Folds = append(report.Folds, f)
	}
	return report, nil
}

func runFold(ctx context.Context, training, test dataset.Dataset, grow GrowFunc, label feature.Feature) (*Fold, error) {
	nTraining, err := training.Count(ctx)
	if err != nil {
		return nil, err
	}
	nTest, err := test.Count(ctx)
	if err != nil {
		return nil, err
	}
	labels, err := LabelsOf(ctx, training, label)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.New("empty training set")
	}
	c, err := grow(ctx, training)
	if err != nil {
		return nil, errors.Wrap(err, "growing classifier")
	}
	cm, err := NewConfusionMatrix(ctx, c, test, label, labels)
	if err != nil {
		return nil, err
	}
	return &Fold{Training: nTraining, Test: nTest, Matrix: cm, Summary: Summarize(cm)}, nil
}

func (r *Report) values(m Metric) []float64 {
	result := make([]float64, 0, len(r.Folds))
	for _, f := range r.Folds {
		if v := m(f.Summary); !math.IsNaN(v) {
			result = append(result, v)
		}
	}
	return result
}

// Mean returns the mean of the metric over the folds, ignoring NaN values.
// It is NaN when no fold has a value for the metric.
func (r *Report) Mean(m Metric) float64 {
	vs := r.values(m)
	if len(vs) == 0 {
		return math.NaN()
	}
	return stat.Mean(vs, nil)
}

// Variance returns the unbiased variance of the metric over the folds,
// ignoring NaN values. It is 0 with less than two values.
func (r *Report) Variance(m Metric) float64 {
	vs := r.values(m)
	if len(vs) < 2 {
		return 0
	}
	return stat.Variance(vs, nil)
}

func (r *Report) String() string {
	b := &strings.Builder{}
	for i, f := range r.Folds {
		fmt.Fprintf(b, "fold %d (training: %d, test: %d)\n%s%s\n", i+1, f.Training, f.Test, f.Matrix, f.Summary)
	}
	if len(r.Folds) > 1 {
		for _, m := range Metrics {
			fmt.Fprintf(b, "%s: %.4f ± %.4f\n", m.Name, r.Mean(m.Metric), math.Sqrt(r.Variance(m.Metric)))
		}
	}
	return b.String()
}
