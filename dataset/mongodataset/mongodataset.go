/*
Package mongodataset provides a implementation of dataset.Dataset
that uses a MongoDB database as backend.

Samples are stored as documents of the samples collection with a string
field per feature and a sequence number field that keeps their insertion
order. Subsets are queries on the collection.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/info"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Dataset is a dataset.Dataset to which samples can be added
and from which samples can be sequentially read
*/
type Dataset interface {
	dataset.Dataset
	Write(context.Context, []dataset.Sample) (int, error)
	Read(context.Context) (<-chan dataset.Sample, <-chan error)
}

type mongodataset struct {
	session   *mgo.Session
	features  []feature.Feature
	criteria  []feature.DiscreteCriterion
	entropies map[string]float64
}

const (
	samplesCollectionName = "samples"
	sequenceField         = "_seq"
)

/*
Open takes a MongoDB database session and a slice of features and returns a
Dataset that works on the default database for that session or an error if
the indexes for the features cannot be ensured.
*/
func Open(ctx context.Context, session *mgo.Session, features []feature.Feature) (Dataset, error) {
	if err := checkFeatures(features); err != nil {
		return nil, err
	}
	mds := &mongodataset{session: session, features: features}
	if err := mds.ensureIndexes(); err != nil {
		return nil, err
	}
	return mds, nil
}

func (mds *mongodataset) Entropy(ctx context.Context, f feature.Feature) (float64, error) {
	if e, ok := mds.entropies[f.Name()]; ok {
		return e, nil
	}
	vcs, err := mds.CountFeatureValues(ctx, f)
	if err != nil {
		return 0, err
	}
	e := info.Entropy(info.Probabilities(dataset.Counts(vcs)))
	if mds.entropies == nil {
		mds.entropies = make(map[string]float64)
	}
	mds.entropies[f.Name()] = e
	return e, nil
}

func (mds *mongodataset) SubsetWith(ctx context.Context, fc feature.Criterion) (dataset.Dataset, error) {
	dc, ok := fc.(feature.DiscreteCriterion)
	if !ok {
		return nil, errors.Errorf("unsupported criterion type %T", fc)
	}
	criteria := make([]feature.DiscreteCriterion, 0, len(mds.criteria)+1)
	criteria = append(criteria, mds.criteria...)
	criteria = append(criteria, dc)
	return &mongodataset{session: mds.session, features: mds.features, criteria: criteria}, nil
}

func (mds *mongodataset) FeatureValues(ctx context.Context, f feature.Feature) ([]string, error) {
	vcs, err := mds.CountFeatureValues(ctx, f)
	if err != nil {
		return nil, err
	}
	return dataset.Values(vcs), nil
}

func (mds *mongodataset) CountFeatureValues(ctx context.Context, f feature.Feature) ([]dataset.ValueCount, error) {
	iter := mds.samplesCollection().Pipe(countPipeline(mds.criteria, f)).Iter()
	defer iter.Close()
	var doc bson.M
	var result []dataset.ValueCount
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count, ok := doc["count"].(int)
		if !ok {
			return nil, errors.Errorf("counting feature values: mongo aggregation query returned a %T instead of an int as count", doc["count"])
		}
		result = append(result, dataset.ValueCount{Value: fmt.Sprintf("%v", doc["_id"]), Count: count})
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "counting values of %s", f.Name())
	}
	return result, nil
}

func (mds *mongodataset) Samples(ctx context.Context) ([]dataset.Sample, error) {
	var samples []dataset.Sample
	sampleChan, errs := mds.Read(ctx)
	for sample := range sampleChan {
		samples = append(samples, sample)
	}
	return samples, <-errs
}

func (mds *mongodataset) Count(context.Context) (int, error) {
	return mds.query().Count()
}

func (mds *mongodataset) Write(ctx context.Context, samples []dataset.Sample) (int, error) {
	if len(samples) == 0 {
		return 0, nil
	}
	next, err := mds.nextSequence()
	if err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(samples))
	for i, s := range samples {
		r, err := dataset.RowOf(ctx, s, mds.features)
		if err != nil {
			return 0, err
		}
		docs = append(docs, document(mds.features, r, next+i))
	}
	if err = mds.samplesCollection().Insert(docs...); err != nil {
		return 0, errors.Wrap(err, "inserting samples")
	}
	mds.entropies = nil
	return len(samples), nil
}

func (mds *mongodataset) Read(ctx context.Context) (<-chan dataset.Sample, <-chan error) {
	samples := make(chan dataset.Sample)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(samples)
		var doc bson.M
		iter := mds.query().Sort(sequenceField).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			r, err := row(mds.features, doc)
			if err != nil {
				errs <- err
				return
			}
			select {
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			case samples <- r:
			}
		}
		if err := iter.Err(); err != nil {
			errs <- err
		}
	}()
	return samples, errs
}

func (mds *mongodataset) nextSequence() (int, error) {
	var last bson.M
	err := mds.samplesCollection().Find(nil).Sort("-" + sequenceField).Select(bson.M{sequenceField: 1}).One(&last)
	if err == mgo.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "querying last sample")
	}
	seq, _ := last[sequenceField].(int)
	return seq + 1, nil
}

func (mds *mongodataset) ensureIndexes() error {
	keys := []string{sequenceField}
	for _, f := range mds.features {
		keys = append(keys, f.Name())
	}
	for _, k := range keys {
		index := mgo.Index{
			Key:        []string{k},
			Background: true,
		}
		if err := mds.samplesCollection().EnsureIndex(index); err != nil {
			return errors.Wrapf(err, "ensuring index on %s", k)
		}
	}
	return nil
}

func (mds *mongodataset) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(samplesCollectionName)
}

func (mds *mongodataset) query() *mgo.Query {
	return mds.samplesCollection().Find(match(mds.criteria))
}

func checkFeatures(features []feature.Feature) error {
	if len(features) == 0 {
		return errors.New("no features for dataset")
	}
	for _, f := range features {
		name := f.Name()
		if name == "_id" || name == sequenceField {
			return errors.Errorf("invalid feature name %q: reserved collection field", name)
		}
		if strings.ContainsAny(name, ".$") {
			return errors.Errorf("invalid feature name %q: contains reserved characters %q or %q", name, ".", "$")
		}
	}
	return nil
}

func match(criteria []feature.DiscreteCriterion) bson.M {
	m := make(bson.M, len(criteria))
	for _, c := range criteria {
		m[c.Feature().Name()] = c.Value()
	}
	return m
}

// countPipeline groups the matching samples by their value for f, ordering
// groups by the first sample inserted with each value.
func countPipeline(criteria []feature.DiscreteCriterion, f feature.Feature) []bson.M {
	return []bson.M{
		{"$match": match(criteria)},
		{"$group": bson.M{
			"_id":   "$" + f.Name(),
			"count": bson.M{"$sum": 1},
			"first": bson.M{"$min": "$" + sequenceField},
		}},
		{"$sort": bson.M{"first": 1}},
	}
}

func document(features []feature.Feature, r dataset.Row, seq int) bson.M {
	doc := bson.M{sequenceField: seq}
	for i, f := range features {
		doc[f.Name()] = r[i]
	}
	return doc
}

func row(features []feature.Feature, doc bson.M) (dataset.Row, error) {
	r := make(dataset.Row, 0, len(features))
	for _, f := range features {
		v, ok := doc[f.Name()].(string)
		if !ok {
			return nil, errors.Errorf("document %v has no string value for feature %s", doc["_id"], f.Name())
		}
		r = append(r, v)
	}
	return r, nil
}
