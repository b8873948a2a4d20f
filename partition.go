package dtree

import (
	"context"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/info"
	"github.com/flapek/decision-trees-ID3-C4.5/queue"
	"github.com/flapek/decision-trees-ID3-C4.5/tree"
)

/*
Partition represents the evaluation of splitting a dataset on an attribute
feature to predict the label feature.

Values holds the distinct values of the feature on the dataset along their
counts, in the order they are first found. InfoT is the entropy of the
labels on the whole dataset, InfoAnT the information still needed to know
the label once the feature value is known.
*/
type Partition struct {
	Feature   feature.Feature
	Values    []dataset.ValueCount
	InfoT     float64
	InfoAnT   float64
	Gain      float64
	SplitInfo float64
	GainRatio float64
	dataset   dataset.Dataset
}

/*
NewPartition takes a context.Context, a dataset, an attribute feature, the
label feature and the entropy of the labels on the dataset and returns the
partition of the dataset on the attribute.
*/
func NewPartition(ctx context.Context, s dataset.Dataset, f, label feature.Feature, targetEntropy float64) (*Partition, error) {
	vcs, err := s.CountFeatureValues(ctx, f)
	if err != nil {
		return nil, err
	}
	values, err := dataset.FeatureColumn(ctx, s, f)
	if err != nil {
		return nil, err
	}
	decisions, err := dataset.FeatureColumn(ctx, s, label)
	if err != nil {
		return nil, err
	}
	ps := info.Probabilities(dataset.Counts(vcs))
	p := &Partition{
		Feature:   f,
		Values:    vcs,
		InfoT:     targetEntropy,
		InfoAnT:   info.Conditional(ps, values, decisions),
		SplitInfo: info.SplitInfo(ps),
		dataset:   s,
	}
	p.Gain = info.Gain(p.InfoT, p.InfoAnT)
	p.GainRatio = info.GainRatio(p.Gain, p.SplitInfo)
	return p, nil
}

/*
Evaluate takes a context.Context, a dataset, an attribute feature, the label
feature and the entropy of the labels on the dataset and returns the gain
ratio of splitting the dataset on the attribute.
*/
func Evaluate(ctx context.Context, s dataset.Dataset, f, label feature.Feature, targetEntropy float64) (float64, error) {
	p, err := NewPartition(ctx, s, f, label, targetEntropy)
	if err != nil {
		return 0, err
	}
	return p.GainRatio, nil
}

/*
Tasks returns a task for each value of the partition feature, in the order
the values were first found. The node of every task carries the criterion
selecting the value and the dataset of every task holds the samples with it.
The nodes are not stored anywhere yet.
*/
func (p *Partition) Tasks(ctx context.Context) ([]*queue.Task, error) {
	tasks := make([]*queue.Task, 0, len(p.Values))
	for _, vc := range p.Values {
		n := &tree.Node{FeatureCriterion: feature.NewDiscreteCriterion(p.Feature, vc.Value)}
		ns, err := p.dataset.SubsetWith(ctx, n.FeatureCriterion)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, &queue.Task{Node: n, Dataset: ns})
	}
	return tasks, nil
}

/*
Describe takes a context.Context, a dataset, a slice of attribute features
and the label feature and returns the partition of the dataset on each of
the attributes, in the same order.
*/
func Describe(ctx context.Context, s dataset.Dataset, features []feature.Feature, label feature.Feature) ([]*Partition, error) {
	infoT, err := s.Entropy(ctx, label)
	if err != nil {
		return nil, err
	}
	result := make([]*Partition, 0, len(features))
	for _, f := range features {
		p, err := NewPartition(ctx, s, f, label, infoT)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}
