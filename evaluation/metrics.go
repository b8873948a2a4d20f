package evaluation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MetricError represents an error computing a metric
type MetricError string

/*
ErrMCCNotComputable is returned by MatthewsCorrelation when the matrix is not
2x2 or any of its row or column sums is zero.
*/
const ErrMCCNotComputable = MetricError("matthews correlation coefficient not computable")

func (me MetricError) Error() string {
	return string(me)
}

/*
Accuracy returns the sum of the diagonal of the confusion matrix over the
sum of all its cells, or 0 if the matrix is empty.
*/
func Accuracy(m mat.Matrix) float64 {
	total := mat.Sum(m)
	if total == 0 {
		return 0
	}
	return mat.Trace(m) / total
}

/*
Recall returns the recall of the first label for a 2x2 matrix and the
average of the recall of every label otherwise. The recall of a label is
its diagonal cell over its row sum, 0 when the row sums 0.
*/
func Recall(m mat.Matrix) float64 {
	return average(m, func(i int) float64 {
		return floats.Sum(mat.Row(nil, i, m))
	})
}

/*
Precision returns the precision of the first label for a 2x2 matrix and the
average of the precision of every label otherwise. The precision of a label
is its diagonal cell over its column sum, 0 when the column sums 0.
*/
func Precision(m mat.Matrix) float64 {
	return average(m, func(j int) float64 {
		return floats.Sum(mat.Col(nil, j, m))
	})
}

func average(m mat.Matrix, total func(int) float64) float64 {
	n, _ := m.Dims()
	ratio := func(i int) float64 {
		t := total(i)
		if t == 0 {
			return 0
		}
		return m.At(i, i) / t
	}
	if n == 2 {
		return ratio(0)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += ratio(i)
	}
	return sum / float64(n)
}

/*
FMeasure returns precision·recall/(precision+recall) for the matrix, or 0
when both are 0. It is half the usual F1 score.
*/
func FMeasure(m mat.Matrix) float64 {
	p, r := Precision(m), Recall(m)
	if p+r == 0 {
		return 0
	}
	return p * r / (p + r)
}

/*
MatthewsCorrelation returns the Matthews correlation coefficient of a 2x2
matrix, taking cell (0,0) as true positives, (1,1) as true negatives, (0,1)
as false positives and (1,0) as false negatives. It returns
ErrMCCNotComputable for other matrices or when a row or column sums 0.
*/
func MatthewsCorrelation(m mat.Matrix) (float64, error) {
	r, c := m.Dims()
	if r != 2 || c != 2 {
		return 0, ErrMCCNotComputable
	}
	tp, tn, fp, fn := m.At(0, 0), m.At(1, 1), m.At(0, 1), m.At(1, 0)
	d := (tp + fp) * (tp + fn) * (tn + fp) * (tn + fn)
	if d == 0 {
		return 0, ErrMCCNotComputable
	}
	return (tp*tn - fp*fn) / math.Sqrt(d), nil
}

/*
Summary holds the metrics of a confusion matrix. MCC is NaN when it is not
computable, as reported by MCCComputable.
*/
type Summary struct {
	Accuracy      float64
	Recall        float64
	Precision     float64
	FMeasure      float64
	MCC           float64
	MCCComputable bool
	Classified    int
	Unclassified  int
}

// Summarize returns the summary of the metrics of the confusion matrix.
func Summarize(cm *ConfusionMatrix) Summary {
	s := Summary{
		Accuracy:     Accuracy(cm.Counts),
		Recall:       Recall(cm.Counts),
		Precision:    Precision(cm.Counts),
		FMeasure:     FMeasure(cm.Counts),
		MCC:          math.NaN(),
		Classified:   cm.Classified(),
		Unclassified: cm.Unclassified,
	}
	if mcc, err := MatthewsCorrelation(cm.Counts); err == nil {
		s.MCC = mcc
		s.MCCComputable = true
	}
	return s
}

func (s Summary) String() string {
	mcc := "not computable"
	if s.MCCComputable {
		mcc = fmt.Sprintf("%.4f", s.MCC)
	}
	return fmt.Sprintf("classified: %d\nunclassified: %d\naccuracy: %.4f\nrecall: %.4f\nprecision: %.4f\nf-measure: %.4f\nmcc: %s\n",
		s.Classified, s.Unclassified, s.Accuracy, s.Recall, s.Precision, s.FMeasure, mcc)
}
