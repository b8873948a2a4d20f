package yaml

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherMetadata = `
features:
  outlook: [sunny, overcast, rainy]
  temperature:
  windy: [true, false]
  play: [yes, no]
`

func TestReadFeatures(t *testing.T) {
	features, err := ReadFeatures([]byte(weatherMetadata))
	require.NoError(t, err)
	require.Len(t, features, 4)
	names := make([]string, 0, len(features))
	for i, f := range features {
		names = append(names, f.Name())
		assert.Equal(t, i, f.Index())
	}
	assert.Equal(t, []string{"outlook", "temperature", "windy", "play"}, names)
	assert.Equal(t, []string{"sunny", "overcast", "rainy"}, features[0].(*feature.DiscreteFeature).AvailableValues())
	assert.Empty(t, features[1].(*feature.DiscreteFeature).AvailableValues())
	assert.Equal(t, []string{"true", "false"}, features[2].(*feature.DiscreteFeature).AvailableValues())
	assert.Equal(t, []string{"yes", "no"}, features[3].(*feature.DiscreteFeature).AvailableValues())
}

func TestReadFeaturesErrors(t *testing.T) {
	_, err := ReadFeatures([]byte("other: 1"))
	assert.Error(t, err)
	_, err = ReadFeatures([]byte("features:\n  play: [yes, no]\n"))
	assert.Error(t, err)
	_, err = ReadFeatures([]byte("features:\n  a: continuous\n  play: [yes, no]\n"))
	assert.Error(t, err)
	_, err = ReadFeatures([]byte("features: ["))
	assert.Error(t, err)
}

func TestReadFeaturesNonStringNames(t *testing.T) {
	_, err := ReadFeatures([]byte("features:\n  windy: [yes, no]\n  yes: [a, b]\n  play: [p, q]\n"))
	assert.Error(t, err)
	_, err = ReadFeatures([]byte("features:\n  1: [a, b]\n  play: [p, q]\n"))
	assert.Error(t, err)

	features, err := ReadFeatures([]byte("features:\n  windy: [yes, no]\n  \"yes\": [a, b]\n  play: [p, q]\n"))
	require.NoError(t, err)
	require.Len(t, features, 3)
	assert.Equal(t, "yes", features[1].Name())
	assert.Equal(t, []string{"a", "b"}, features[1].(*feature.DiscreteFeature).AvailableValues())
	ok, err := features[1].Valid("c")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestReadFeaturesFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "features")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "metadata.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(weatherMetadata), 0600))

	features, err := ReadFeaturesFromFile(path)
	require.NoError(t, err)
	assert.Len(t, features, 4)

	_, err = ReadFeaturesFromFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}
