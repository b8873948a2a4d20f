/*
Package yaml provides methods to parse feature.Feature specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"io/ioutil"

	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with a feature specification in YML and
returns a slice of features parsed from it or an error.
The YML is expected to be an object containing a features property. The value
for this should be an object with a property for each column, in column order,
with its name and a list of its valid values. Values are kept as written,
so yes or no are not turned into booleans. An empty list or a null value
declares a feature whose values are not restricted. The last feature is the
decision the tree learns to predict. Feature names that YAML reads as
anything but a string, such as yes or 1, must be quoted.
*/
func ReadFeatures(md []byte) ([]feature.Feature, error) {
	metadata := struct {
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml features")
	}
	if len(metadata.Features) == 0 {
		return nil, errors.New("metadata file has no feature information")
	}
	values := struct {
		Features map[string][]string
	}{}
	err = yaml.Unmarshal(md, &values)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml feature values")
	}
	if len(metadata.Features) < 2 {
		return nil, errors.New("metadata must declare at least one attribute and the decision")
	}
	features := make([]feature.Feature, 0, len(metadata.Features))
	seen := make(map[string]bool)
	for i, item := range metadata.Features {
		fn, ok := item.Key.(string)
		if !ok {
			return nil, errors.Errorf("feature name %v is read as a %T: quote it", item.Key, item.Key)
		}
		if seen[fn] {
			return nil, errors.Errorf("feature %s declared twice", fn)
		}
		seen[fn] = true
		switch item.Value.(type) {
		case nil, []interface{}:
			features = append(features, feature.NewDiscreteFeature(fn, i, values.Features[fn]))
		default:
			return nil, errors.Errorf("invalid declaration of type %T for feature %s", item.Value, fn)
		}
	}
	return features, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]feature.Feature, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading features yml file %s", filepath)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = errors.Wrapf(err, "parsing features yml file %s", filepath)
	}
	return features, err
}
