package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	dtree "github.com/flapek/decision-trees-ID3-C4.5"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weather = `sunny hot yes
sunny cool no
rainy hot no
rainy cool no
`

func TestCLIParserCommands(t *testing.T) {
	root := cliParser()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "grow", "test", "crossvalidate", "split", "predict", "describe"}, names)
}

func TestIsDatabase(t *testing.T) {
	assert.True(t, isDatabase("samples.db"))
	assert.True(t, isDatabase("postgresql://localhost/samples"))
	assert.True(t, isDatabase("mongodb://localhost/samples"))
	assert.False(t, isDatabase("samples.txt"))
	assert.False(t, isDatabase(""))
}

func TestValidate(t *testing.T) {
	root := &rootCmdConfig{}
	data := func() *dataCmdConfig {
		return &dataCmdConfig{rootCmdConfig: root, delimiter: " ", encoding: "utf-8"}
	}

	assert.NoError(t, data().Validate())

	dcc := data()
	dcc.input = "samples.db"
	assert.Error(t, dcc.Validate(), "database inputs need metadata")
	dcc.metadataInput = "features.yml"
	assert.NoError(t, dcc.Validate())

	dcc = data()
	dcc.encoding = "ebcdic"
	assert.Error(t, dcc.Validate())

	tcc := &testCmdConfig{growCmdConfig: &growCmdConfig{dataCmdConfig: data()}, fraction: 1}
	assert.Error(t, tcc.Validate())
	tcc.fraction = 0.3
	assert.NoError(t, tcc.Validate())

	cvcc := &crossValidateCmdConfig{growCmdConfig: &growCmdConfig{dataCmdConfig: data()}, folds: 1}
	assert.Error(t, cvcc.Validate())
	cvcc.folds = 5
	assert.NoError(t, cvcc.Validate())

	scc := &splitCmdConfig{dataCmdConfig: data(), fraction: 0.2}
	assert.Error(t, scc.Validate(), "test output is required")
	scc.testOutput = "test.db"
	assert.Error(t, scc.Validate(), "database outputs need metadata")
	scc.testOutput = "test.txt"
	assert.NoError(t, scc.Validate())
	scc.trainingOutput = "test.txt"
	assert.Error(t, scc.Validate())

	pcc := &predictCmdConfig{&growCmdConfig{dataCmdConfig: data()}}
	assert.Error(t, pcc.Validate(), "predict cannot read the dataset from STDIN")
	pcc.input = "weather.txt"
	assert.NoError(t, pcc.Validate())
}

func TestLoadDataGrowAndDescribe(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "weather.txt")
	require.NoError(t, os.WriteFile(path, []byte(weather), 0o644))
	gcc := &growCmdConfig{dataCmdConfig: &dataCmdConfig{rootCmdConfig: &rootCmdConfig{}, input: path, delimiter: " ", encoding: "utf-8"}}

	data, err := gcc.loadData(ctx)
	require.NoError(t, err)
	defer data.close()
	assert.Len(t, data.attributes, 2)
	assert.Equal(t, feature.LabelName, data.label.Name())

	tr, err := gcc.grow(ctx, data.dataset, data.attributes, data.label)
	require.NoError(t, err)
	assert.Equal(t, "Attribute: 0\n\tsunny -> Attribute: 1\n\t\thot -> Decision: yes\n\t\tcool -> Decision: no\n\trainy -> Decision: no\n", tr.String())

	partitions, err := dtree.Describe(ctx, data.dataset, data.attributes, data.label)
	require.NoError(t, err)
	b := &bytes.Buffer{}
	writePartitions(b, partitions)
	assert.Contains(t, b.String(), "Attribute: 0\n\tsunny: 2\n\trainy: 2\n\tentropy: 0.8113\n")
	assert.Contains(t, b.String(), "Attribute: 1\n\thot: 2\n\tcool: 2\n")
}

func TestWriteDatasetToText(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	in := filepath.Join(dir, "weather.txt")
	out := filepath.Join(dir, "copy.txt")
	require.NoError(t, os.WriteFile(in, []byte(weather), 0o644))
	dcc := &dataCmdConfig{rootCmdConfig: &rootCmdConfig{}, input: in, delimiter: " ", encoding: "utf-8"}
	data, err := dcc.loadData(ctx)
	require.NoError(t, err)

	n, err := dcc.writeDataset(ctx, out, data.dataset, append(data.attributes, data.label))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, weather, string(written))
}

func TestInitLogger(t *testing.T) {
	rcc := &rootCmdConfig{logFormat: "json", logFile: filepath.Join(t.TempDir(), "dtree.log"), verbose: true}
	require.NoError(t, rcc.initLogger())
	rcc.Logf("growing %d trees", 1)
	rcc.syncLogger()
	assert.Error(t, (&rootCmdConfig{logFormat: "xml"}).initLogger())
}
