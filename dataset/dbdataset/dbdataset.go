package dbdataset

import (
	"context"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/info"
	"github.com/pkg/errors"
)

/*
Set is a dataset.Dataset to which samples can be added

Its Write method takes a slice of samples and adds them to the
database, returning the number of samples added and an error if
they could not all be added.

Its Read method streams the samples of the dataset.
*/
type Set interface {
	dataset.Dataset
	Write(context.Context, []dataset.Sample) (int, error)
	Read(context.Context) (<-chan dataset.Sample, <-chan error)
}

type dbSet struct {
	db                  Adapter
	features            []feature.Feature
	criteria            []*Criterion
	featureNamesColumns map[string]string
	columns             []string
	count               *int
	entropies           map[string]float64
}

/*
Open takes an Adapter to a db backend and a slice of feature.Feature
and returns a Set backed by the given adapter or an error.

This function expects the adapter to have the samples table already
created.
*/
func Open(ctx context.Context, dbAdapter Adapter, features []feature.Feature) (Set, error) {
	ss := &dbSet{db: dbAdapter, features: features}
	if err := ss.initFeatureColumns(); err != nil {
		return nil, err
	}
	return ss, nil
}

/*
Create takes an Adapter and a slice of feature.Feature and returns a Set
backed by the given adapter or an error.

This function will ensure that the samples table is created on the
database.
*/
func Create(ctx context.Context, dbAdapter Adapter, features []feature.Feature) (Set, error) {
	ss := &dbSet{db: dbAdapter, features: features}
	if err := ss.initFeatureColumns(); err != nil {
		return nil, err
	}
	if err := ss.db.CreateSampleTable(ctx, ss.columns); err != nil {
		return nil, err
	}
	return ss, nil
}

func (ss *dbSet) Count(ctx context.Context) (int, error) {
	if ss.count != nil {
		return *ss.count, nil
	}
	result, err := ss.db.CountSamples(ctx, ss.criteria)
	if err == nil {
		ss.count = &result
	}
	return result, err
}

func (ss *dbSet) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	if e, ok := ss.entropies[f.Name()]; ok {
		return e, nil
	}
	vcs, err := ss.CountFeatureValues(ctx, f)
	if err != nil {
		return 0, err
	}
	e := info.Entropy(info.Probabilities(dataset.Counts(vcs)))
	if ss.entropies == nil {
		ss.entropies = make(map[string]float64)
	}
	ss.entropies[f.Name()] = e
	return e, nil
}

func (ss *dbSet) FeatureValues(ctx context.Context, f feature.Feature) ([]string, error) {
	vcs, err := ss.CountFeatureValues(ctx, f)
	if err != nil {
		return nil, err
	}
	return dataset.Values(vcs), nil
}

func (ss *dbSet) CountFeatureValues(ctx context.Context, f feature.Feature) ([]dataset.ValueCount, error) {
	column, ok := ss.featureNamesColumns[f.Name()]
	if !ok {
		return nil, errors.Errorf("unknown feature %s", f.Name())
	}
	return ss.db.CountSampleFeatureValues(ctx, column, ss.criteria)
}

func (ss *dbSet) Samples(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	sampleStream, errStream := ss.Read(ctx)
	for sample := range sampleStream {
		samples = append(samples, sample)
	}
	if err := <-errStream; err != nil {
		return nil, err
	}
	return samples, nil
}

func (ss *dbSet) SubsetWith(ctx context.Context, fc feature.Criterion) (dataset.Dataset, error) {
	c, err := NewCriterion(fc, ss.columnName)
	if err != nil {
		return nil, err
	}
	criteria := make([]*Criterion, 0, len(ss.criteria)+1)
	criteria = append(criteria, ss.criteria...)
	criteria = append(criteria, c)
	return &dbSet{
		db:                  ss.db,
		features:            ss.features,
		criteria:            criteria,
		featureNamesColumns: ss.featureNamesColumns,
		columns:             ss.columns,
	}, nil
}

func (ss *dbSet) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		r, err := dataset.RowOf(ctx, s, ss.features)
		if err != nil {
			return 0, err
		}
		for _, f := range ss.features {
			if ok, err := f.Valid(r[f.Index()]); !ok {
				return 0, err
			}
		}
		rows = append(rows, r)
	}
	n, err := ss.db.AddSamples(ctx, rows, ss.columns)
	ss.count = nil
	ss.entropies = nil
	return n, err
}

func (ss *dbSet) Read(ctx context.Context) (<-chan dataset.Sample, <-chan error) {
	sampleStream := make(chan dataset.Sample)
	errStream := make(chan error, 1)
	go func() {
		defer close(errStream)
		defer close(sampleStream)
		err := ss.db.IterateOnSamples(ctx, ss.criteria, ss.columns, func(_ int, values []string) (bool, error) {
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case sampleStream <- dataset.Row(values):
			}
			return true, nil
		})
		if err != nil {
			errStream <- err
		}
	}()
	return sampleStream, errStream
}

func (ss *dbSet) columnName(featureName string) (string, error) {
	column, ok := ss.featureNamesColumns[featureName]
	if !ok {
		return "", errors.Errorf("unknown feature %s", featureName)
	}
	return column, nil
}

func (ss *dbSet) initFeatureColumns() error {
	if len(ss.features) == 0 {
		return errors.New("no features for dataset")
	}
	columnFeatures := make(map[string]feature.Feature)
	ss.featureNamesColumns = make(map[string]string)
	ss.columns = make([]string, len(ss.features))
	for i, f := range ss.features {
		if f.Index() != i {
			return errors.Errorf("feature %s has index %d at position %d", f.Name(), f.Index(), i)
		}
		column, err := ss.db.ColumnName(f.Name())
		if err != nil {
			return errors.Wrapf(err, "invalid feature %s", f.Name())
		}
		if of, ok := columnFeatures[column]; ok {
			return errors.Errorf("%s and %s feature names translate to the same column name %s", f.Name(), of.Name(), column)
		}
		columnFeatures[column] = f
		ss.featureNamesColumns[f.Name()] = column
		ss.columns[i] = column
	}
	return nil
}
