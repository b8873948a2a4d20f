package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/dataset/dbdataset"
	"github.com/flapek/decision-trees-ID3-C4.5/dataset/dbdataset/pgadapter"
	"github.com/flapek/decision-trees-ID3-C4.5/dataset/dbdataset/sqlite3adapter"
	"github.com/flapek/decision-trees-ID3-C4.5/dataset/mongodataset"
	"github.com/flapek/decision-trees-ID3-C4.5/dataset/text"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/flapek/decision-trees-ID3-C4.5/feature/yaml"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

const (
	sqlite3Extension = ".db"
	postgresScheme   = "postgresql://"
	mongoScheme      = "mongodb://"
)

/*
dataCmdConfig holds the flags shared by commands that load a dataset. The
input may be a delimited text file (or stdin), a SQLite3 file, a PostgreSQL
URL or a MongoDB URL. The last feature is the label, the others attributes.
*/
type dataCmdConfig struct {
	*rootCmdConfig
	input         string
	metadataInput string
	delimiter     string
	header        bool
	encoding      string
}

// loadedData is a dataset along the features describing it.
type loadedData struct {
	dataset    dataset.Dataset
	attributes []feature.Feature
	label      feature.Feature
	close      func()
}

func (dcc *dataCmdConfig) addDataFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(dcc.input), "input", "i", "", "path to a text file, a SQLite3 file (.db), a postgresql:// URL or a mongodb:// URL to read the dataset from (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(dcc.metadataInput), "metadata", "m", "", "path to a YML file describing the features of the dataset (required for database inputs)")
	cmd.PersistentFlags().StringVarP(&(dcc.delimiter), "delimiter", "d", text.DefaultDelimiter, "delimiter between values on text inputs")
	cmd.PersistentFlags().BoolVar(&(dcc.header), "header", false, "the first line of text inputs holds the names of the features")
	cmd.PersistentFlags().StringVar(&(dcc.encoding), "encoding", "utf-8", "character encoding of text inputs: utf-8, gbk, latin1 or windows-1252")
}

func (dcc *dataCmdConfig) Validate() error {
	if isDatabase(dcc.input) && dcc.metadataInput == "" {
		return fmt.Errorf("metadata flag is required to read from %s", dcc.input)
	}
	if dcc.delimiter == "" {
		return fmt.Errorf("delimiter cannot be empty")
	}
	if _, err := text.Encoding(dcc.encoding); err != nil {
		return err
	}
	return nil
}

func (dcc *dataCmdConfig) textOptions() text.Options {
	return text.Options{Delimiter: dcc.delimiter, Header: dcc.header, Encoding: dcc.encoding}
}

func (dcc *dataCmdConfig) features() ([]feature.Feature, error) {
	if dcc.metadataInput == "" {
		return nil, nil
	}
	dcc.Logf("Reading features from %s", dcc.metadataInput)
	return yaml.ReadFeaturesFromFile(dcc.metadataInput)
}

func (dcc *dataCmdConfig) loadData(ctx context.Context) (*loadedData, error) {
	features, err := dcc.features()
	if err != nil {
		return nil, err
	}
	if isDatabase(dcc.input) {
		s, closeFunc, err := openDatabase(ctx, dcc.input, features, false)
		if err != nil {
			return nil, err
		}
		return newLoadedData(s, features, closeFunc)
	}
	if dcc.input == "" {
		dcc.Logf("Reading dataset from STDIN")
	} else {
		dcc.Logf("Reading dataset from %s", dcc.input)
	}
	table, err := text.ReadRowsFromFilePath(dcc.input, dcc.textOptions(), features)
	if err != nil {
		return nil, err
	}
	return newLoadedData(dataset.FromRows(table.Rows), table.Features, func() {})
}

func newLoadedData(s dataset.Dataset, features []feature.Feature, closeFunc func()) (*loadedData, error) {
	if len(features) < 2 {
		closeFunc()
		return nil, fmt.Errorf("a dataset needs at least one attribute and a label, got %d features", len(features))
	}
	n := len(features) - 1
	return &loadedData{dataset: s, attributes: features[:n], label: features[n], close: closeFunc}, nil
}

// datasetWriter is implemented by the database backed datasets.
type datasetWriter interface {
	Write(context.Context, []dataset.Sample) (int, error)
}

/*
writeDataset writes the samples of s to output: a text file (stdout if
empty) or a database URL/path, creating its sample table if needed.
*/
func (dcc *dataCmdConfig) writeDataset(ctx context.Context, output string, s dataset.Dataset, features []feature.Feature) (int, error) {
	if isDatabase(output) {
		w, closeFunc, err := openDatabase(ctx, output, features, true)
		if err != nil {
			return 0, err
		}
		defer closeFunc()
		samples, err := s.Samples(ctx)
		if err != nil {
			return 0, err
		}
		return w.(datasetWriter).Write(ctx, samples)
	}
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return 0, fmt.Errorf("creating %s: %v", output, err)
		}
		defer f.Close()
		w = f
	}
	return text.WriteRows(ctx, w, s, features, dcc.textOptions())
}

func isDatabase(path string) bool {
	return strings.HasSuffix(path, sqlite3Extension) || strings.HasPrefix(path, postgresScheme) || strings.HasPrefix(path, mongoScheme)
}

func openDatabase(ctx context.Context, path string, features []feature.Feature, create bool) (dataset.Dataset, func(), error) {
	if len(features) == 0 {
		return nil, nil, fmt.Errorf("features are required to use %s", path)
	}
	if strings.HasPrefix(path, mongoScheme) {
		session, err := mgo.Dial(path)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to %s: %v", path, err)
		}
		s, err := mongodataset.Open(ctx, session, features)
		if err != nil {
			session.Close()
			return nil, nil, err
		}
		return s, session.Close, nil
	}
	var adapter dbdataset.Adapter
	var err error
	if strings.HasPrefix(path, postgresScheme) {
		adapter, err = pgadapter.New(path)
	} else {
		adapter, err = sqlite3adapter.New(path)
	}
	if err != nil {
		return nil, nil, err
	}
	var s dbdataset.Set
	if create {
		s, err = dbdataset.Create(ctx, adapter, features)
	} else {
		s, err = dbdataset.Open(ctx, adapter, features)
	}
	if err != nil {
		adapter.Close()
		return nil, nil, err
	}
	return s, func() { adapter.Close() }, nil
}
