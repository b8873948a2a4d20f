package dbdataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset"
	"github.com/flapek/decision-trees-ID3-C4.5/feature"
	"github.com/pkg/errors"
)

// MaxSampleInsertionsPerStatement is the maximum number of samples inserted
// with a single statement by the AddSamples method of SQLAdapter.
const MaxSampleInsertionsPerStatement = 10

/*
Adapter is an interface providing the methods
needed to implement a Dataset with a database backend.
*/
type Adapter interface {
	ColumnName(string) (string, error)
	CreateSampleTable(ctx context.Context, columns []string) error
	AddSamples(ctx context.Context, rows [][]string, columns []string) (int, error)
	IterateOnSamples(ctx context.Context, criteria []*Criterion, columns []string, lambda func(int, []string) (bool, error)) error
	CountSamples(ctx context.Context, criteria []*Criterion) (int, error)
	CountSampleFeatureValues(ctx context.Context, column string, criteria []*Criterion) ([]dataset.ValueCount, error)
	Close() error
}

/*
Criterion represents a feature.DiscreteCriterion on an SQL database: a
condition on the WHERE clause of a SELECT statement on the samples table.
*/
type Criterion struct {
	// Column is the column for the feature of the criterion
	Column string
	// Value is the value the column must have
	Value string
}

/*
ColumnNameFunc is a function that takes the name of a
feature and returns column name for it or an error if
the name could not be transformed.
*/
type ColumnNameFunc func(string) (string, error)

/*
NewCriterion takes a feature.Criterion and a ColumnNameFunc and returns the
equivalent Criterion or an error if the criterion is not a
feature.DiscreteCriterion or its feature has no column name.
*/
func NewCriterion(fc feature.Criterion, cnf ColumnNameFunc) (*Criterion, error) {
	dc, ok := fc.(feature.DiscreteCriterion)
	if !ok {
		return nil, errors.Errorf("unsupported criterion type %T", fc)
	}
	column, err := cnf(fc.Feature().Name())
	if err != nil {
		return nil, errors.Wrapf(err, "obtaining column name for feature '%s'", fc.Feature().Name())
	}
	return &Criterion{Column: column, Value: dc.Value()}, nil
}

/*
Dialect holds what differs between SQL databases for an SQLAdapter.

Placeholder returns the bind parameter for the i-th argument (starting at
1) of a statement. IDColumn is the definition of the auto-incremented id
column of the samples table. Setup holds statements run before creating
the table.
*/
type Dialect struct {
	Placeholder func(i int) string
	IDColumn    string
	Setup       []string
}

/*
SQLAdapter implements Adapter over a database/sql connection and a
Dialect.
*/
type SQLAdapter struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLAdapter returns an SQLAdapter working on the given database.
func NewSQLAdapter(db *sql.DB, d Dialect) *SQLAdapter {
	return &SQLAdapter{db, d}
}

/*
ColumnName takes a feature name and returns it as column name, or an error
if it is reserved or contains a double quote.
*/
func (a *SQLAdapter) ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", errors.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if featureName == "" || strings.ContainsAny(featureName, `"`) {
		return "", errors.Errorf(`feature name '%s' is empty or contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

// CreateSampleTable ensures the samples table exists.
func (a *SQLAdapter) CreateSampleTable(ctx context.Context, columns []string) error {
	for _, stmt := range a.dialect.Setup {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "running %q", stmt)
		}
	}
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range columns {
		fmt.Fprintf(&b, `"%s" TEXT NOT NULL, `, c)
	}
	fmt.Fprintf(&b, `"id" %s)`, a.dialect.IDColumn)
	if _, err := a.db.ExecContext(ctx, b.String()); err != nil {
		return errors.Wrap(err, "ensuring samples table exists")
	}
	return nil
}

/*
AddSamples inserts the rows, whose values must follow the order of the
given columns, in chunks of MaxSampleInsertionsPerStatement rows. It
returns the number of rows inserted.
*/
func (a *SQLAdapter) AddSamples(ctx context.Context, rows [][]string, columns []string) (int, error) {
	if len(columns) == 0 {
		return 0, errors.New("no features to store")
	}
	added := 0
	for added < len(rows) {
		end := added + MaxSampleInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[added:end]
		var b strings.Builder
		fmt.Fprintf(&b, `INSERT INTO samples ("%s") VALUES `, strings.Join(columns, `", "`))
		args := make([]interface{}, 0, len(chunk)*len(columns))
		for i, r := range chunk {
			if len(r) != len(columns) {
				return added, errors.Errorf("row with %d values for %d columns", len(r), len(columns))
			}
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("(")
			for j, v := range r {
				if j > 0 {
					b.WriteString(", ")
				}
				args = append(args, v)
				b.WriteString(a.dialect.Placeholder(len(args)))
			}
			b.WriteString(")")
		}
		if _, err := a.db.ExecContext(ctx, b.String(), args...); err != nil {
			return added, errors.Wrapf(err, "inserting %d samples", len(chunk))
		}
		added = end
	}
	return added, nil
}

/*
IterateOnSamples queries the values of the given columns for the samples
satisfying the criteria, in insertion order, and calls lambda with each of
them until it returns false or an error.
*/
func (a *SQLAdapter) IterateOnSamples(ctx context.Context, criteria []*Criterion, columns []string, lambda func(int, []string) (bool, error)) error {
	where, args := a.whereClause(criteria)
	query := fmt.Sprintf(`SELECT "%s" FROM samples%s ORDER BY "id"`, strings.Join(columns, `", "`), where)
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "querying samples")
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		values := make([]string, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err = rows.Scan(dest...); err != nil {
			return err
		}
		ok, err := lambda(j, values)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

// CountSamples returns the number of samples satisfying the criteria.
func (a *SQLAdapter) CountSamples(ctx context.Context, criteria []*Criterion) (int, error) {
	where, args := a.whereClause(criteria)
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM samples"+where, args...).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "counting samples")
	}
	return count, nil
}

/*
CountSampleFeatureValues returns the distinct values of the column among
the samples satisfying the criteria along their counts, ordered by the
first inserted sample with each value.
*/
func (a *SQLAdapter) CountSampleFeatureValues(ctx context.Context, column string, criteria []*Criterion) ([]dataset.ValueCount, error) {
	where, args := a.whereClause(criteria)
	query := fmt.Sprintf(`SELECT "%s", COUNT(*) FROM samples%s GROUP BY "%s" ORDER BY MIN("id")`, column, where, column)
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "counting values of %s", column)
	}
	defer rows.Close()
	var result []dataset.ValueCount
	for rows.Next() {
		var vc dataset.ValueCount
		if err = rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, err
		}
		result = append(result, vc)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (a *SQLAdapter) Close() error {
	return a.db.Close()
}

func (a *SQLAdapter) whereClause(criteria []*Criterion) (string, []interface{}) {
	if len(criteria) == 0 {
		return "", nil
	}
	conditions := make([]string, 0, len(criteria))
	args := make([]interface{}, 0, len(criteria))
	for i, c := range criteria {
		conditions = append(conditions, fmt.Sprintf(`"%s" = %s`, c.Column, a.dialect.Placeholder(i+1)))
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
