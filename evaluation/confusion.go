/*
Package evaluation measures how well a classifier does on samples whose
decision is known: it builds the confusion matrix of the classifier over a
test dataset and derives accuracy, recall, precision, F-measure and the
Matthews correlation coefficient from it. It also runs the holdout and
k-fold cross-validation protocols.
*/
package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/tree"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

/*
Classifier is an interface wrapping the Predict method, which takes a
sample and returns its predicted decision, tree.ErrCannotPredictFromSample
if it cannot be classified, or another error.
*/
type Classifier interface {
	Predict(context.Context, feature.Sample) (string, error)
}

/*
ConfusionMatrix holds the outcome of classifying a test dataset.

Labels is the ordering of labels indexing both the rows and the columns of
Counts: the cell (i, j) is the number of samples whose true label is
Labels[i] and that were classified as Labels[j]. Unclassified is the number
of samples that could not be classified or whose true or predicted label is
not in Labels.
*/
type ConfusionMatrix struct {
	Labels       []string
	Counts       *mat.Dense
	Unclassified int
}

/*
NewConfusionMatrix takes a context, a classifier, a test dataset, the label
feature and the ordering of labels and returns the confusion matrix of the
classifier over the dataset, or an error if labels is empty or a sample
cannot be processed.
*/
func NewConfusionMatrix(ctx context.Context, c Classifier, test dataset.Dataset, label feature.Feature, labels []string) (*ConfusionMatrix, error) {
	if len(labels) == 0 {
		return nil, errors.New("building confusion matrix: no labels")
	}
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, ok := index[l]; !ok {
			index[l] = i
		}
	}
	cm := &ConfusionMatrix{
		Labels: labels,
		Counts: mat.NewDense(len(labels), len(labels), nil),
	}
	samples, err := test.Samples(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "building confusion matrix")
	}
	for _, s := range samples {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		actual, err := s.ValueFor(ctx, label)
		if err != nil {
			return nil, errors.Wrap(err, "building confusion matrix")
		}
		predicted, err := c.Predict(ctx, s)
		if err == tree.ErrCannotPredictFromSample {
			cm.Unclassified++
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "building confusion matrix")
		}
		i, ok := index[actual]
		j, pok := index[predicted]
		if !ok || !pok {
			cm.Unclassified++
			continue
		}
		cm.Counts.Set(i, j, cm.Counts.At(i, j)+1)
	}
	return cm, nil
}

/*
LabelsOf takes a context, a dataset and the label feature and returns the
distinct labels in the dataset in the order they are first found.
*/
func LabelsOf(ctx context.Context, s dataset.Dataset, label feature.Feature) ([]string, error) {
	return s.FeatureValues(ctx, label)
}

// Classified returns the number of samples counted on the matrix.
func (cm *ConfusionMatrix) Classified() int {
	return int(mat.Sum(cm.Counts))
}

func (cm *ConfusionMatrix) String() string {
	width := 0
	for _, l := range cm.Labels {
		if len(l) > width {
			width = len(l)
		}
	}
	r, _ := cm.Counts.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < r; j++ {
			if w := len(fmt.Sprintf("%.0f", cm.Counts.At(i, j))); w > width {
				width = w
			}
		}
	}
	b := &strings.Builder{}
	fmt.Fprintf(b, "%*s", width, "")
	for _, l := range cm.Labels {
		fmt.Fprintf(b, " %*s", width, l)
	}
	b.WriteString("\n")
	for i, l := range cm.Labels {
		fmt.Fprintf(b, "%*s", width, l)
		for j := range cm.Labels {
			fmt.Fprintf(b, " %*.0f", width, cm.Counts.At(i, j))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "unclassified: %d\n", cm.Unclassified)
	return b.String()
}
