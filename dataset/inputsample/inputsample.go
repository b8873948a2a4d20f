/*
Package inputsample provides an implementation of dataset.Sample that is read
from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/pkg/errors"
)

/*
readSample represents a sample whose feature values
are retrieved from a reader. A feature value will be
requested using a FeatureValueRequester before reading it.
*/
type readSample struct {
	obtainedValues        map[string]string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []feature.Feature
}

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
New takes an io.Reader, a slice of features and a FeatureValueRequester and
returns a Sample.

The returned Sample ValueFor method reads feature values first
requesting them with the given FeatureValueRequester and
then reading them from the reader, one per line. Lines are read until one
holds a valid value for the feature; the others are rejected with the
FeatureValueRequester's RejectValueFor method. Values are only requested
once: a tree asks for the features on the path to the leaf reached, so
only those are read.

Attempting to obtain a value for a Feature not in the given
features slice returns an error.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester) dataset.Sample {
	return &readSample{make(map[string]string), bufio.NewScanner(r), featureValueRequester, features}
}

func (rs *readSample) ValueFor(_ context.Context, f feature.Feature) (string, error) {
	if value, ok := rs.obtainedValues[f.Name()]; ok {
		return value, nil
	}
	var featureWithInfo feature.Feature
	for _, known := range rs.features {
		if f.Name() == known.Name() {
			featureWithInfo = known
			break
		}
	}
	if featureWithInfo == nil {
		return "", errors.Errorf("have no information about feature %s, do not know how to read its value", f.Name())
	}
	if err := rs.featureValueRequester.RequestValueFor(featureWithInfo); err != nil {
		return "", err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		if ok, _ := featureWithInfo.Valid(line); ok && line != "" {
			rs.obtainedValues[f.Name()] = line
			return line, nil
		}
		if err := rs.featureValueRequester.RejectValueFor(featureWithInfo, line); err != nil {
			return "", err
		}
	}
	if err := rs.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}
