/*
Package text reads and writes datasets as delimited text: one row per line,
values separated by a single delimiter character, the decision last.
*/
package text

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultDelimiter separates the values of a row unless told otherwise.
const DefaultDelimiter = " "

/*
Options configures how rows are read or written.

Delimiter is the string separating values, DefaultDelimiter if empty.

Header indicates the first line holds the names of the columns.

Encoding is the character encoding of the input: "utf-8" (default), "gbk",
"latin1" or "windows-1252".
*/
type Options struct {
	Delimiter string
	Header    bool
	Encoding  string
}

/*
Table is the result of reading a delimited text: the features describing its
columns and its rows.
*/
type Table struct {
	Features []feature.Feature
	Rows     []dataset.Row
}

/*
ReadRows takes an io.Reader, an Options value and an optional slice of
features and returns the table read from it or an error.

Every line is trimmed and split on the delimiter. Blank lines are skipped.
All rows must have the same number of values, at least two, and there must
be at least one row. When features are given each row must have one value
per feature and the values must be valid for them. Otherwise features are
taken from the header line, if any, or generated with feature.Columns.
*/
func ReadRows(r io.Reader, opts Options, features []feature.Feature) (*Table, error) {
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	enc, err := Encoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(transform.NewReader(r, enc.NewDecoder()))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var header []string
	var rows []dataset.Row
	for l := 1; scanner.Scan(); l++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		values := strings.Split(line, delimiter)
		if opts.Header && header == nil {
			header = values
			continue
		}
		width := len(values)
		switch {
		case len(features) > 0:
			width = len(features)
		case header != nil:
			width = len(header)
		case len(rows) > 0:
			width = len(rows[0])
		}
		if len(values) != width {
			return nil, errors.Errorf("line %d has %d values, expected %d", l, len(values), width)
		}
		if len(values) < 2 {
			return nil, errors.Errorf("line %d has a single value, rows need at least one attribute and a decision", l)
		}
		for _, f := range features {
			if ok, err := f.Valid(values[f.Index()]); !ok {
				return nil, errors.Wrapf(err, "line %d", l)
			}
		}
		rows = append(rows, dataset.Row(values))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading rows")
	}
	if len(rows) == 0 {
		return nil, errors.New("no rows to read")
	}
	if len(features) == 0 {
		if header != nil {
			features = make([]feature.Feature, 0, len(header))
			for i, name := range header {
				features = append(features, feature.NewDiscreteFeature(name, i, nil))
			}
		} else {
			features = feature.Columns(len(rows[0]))
		}
	}
	return &Table{Features: features, Rows: rows}, nil
}

/*
ReadRowsFromFilePath takes a filepath string, an Options value and an
optional slice of features, opens the file to which the filepath points to
and uses ReadRows to return the table read from it. If the filepath is ""
os.Stdin is read instead.
*/
func ReadRowsFromFilePath(filepath string, opts Options, features []feature.Feature) (*Table, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "opening rows file")
		}
		defer f.Close()
	}
	table, err := ReadRows(f, opts, features)
	if err != nil {
		err = errors.Wrapf(err, "parsing rows file %s", filepath)
	}
	return table, err
}

/*
WriteRows takes a context, an io.Writer, a dataset, the features to write and
an Options value and dumps the dataset samples to the writer, one line per
sample. When opts.Header is set the feature names are written first.
*/
func WriteRows(ctx context.Context, w io.Writer, s dataset.Dataset, features []feature.Feature, opts Options) (int, error) {
	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	enc, err := Encoding(opts.Encoding)
	if err != nil {
		return 0, err
	}
	ew := transform.NewWriter(w, enc.NewEncoder())
	bw := bufio.NewWriter(ew)
	if opts.Header {
		names := make([]string, 0, len(features))
		for _, f := range features {
			names = append(names, f.Name())
		}
		if _, err = bw.WriteString(strings.Join(names, delimiter) + "\n"); err != nil {
			return 0, errors.Wrap(err, "writing header")
		}
	}
	samples, err := s.Samples(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sample := range samples {
		r, err := dataset.RowOf(ctx, sample, features)
		if err != nil {
			return n, err
		}
		if _, err = bw.WriteString(strings.Join(r, delimiter) + "\n"); err != nil {
			return n, errors.Wrapf(err, "writing row %d", n+1)
		}
		n++
	}
	if err = bw.Flush(); err != nil {
		return n, errors.Wrap(err, "flushing rows")
	}
	return n, errors.Wrap(ew.Close(), "closing encoder")
}

/*
Encoding returns the encoding.Encoding for the given name or an error if the
name is unknown. The empty name stands for UTF-8.
*/
func Encoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "gbk":
		return simplifiedchinese.GBK, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, errors.Errorf("unknown encoding %q", name)
}
