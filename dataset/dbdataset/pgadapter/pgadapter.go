/*
Package pgadapter provides an implementation of the
Adapter interface in the dbdataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"strconv"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset/dbdataset"
	"github.com/pkg/errors"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

var dialect = dbdataset.Dialect{
	Placeholder: func(i int) string { return "$" + strconv.Itoa(i) },
	IDColumn:    "SERIAL PRIMARY KEY",
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (dbdataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgresql database")
	}
	return dbdataset.NewSQLAdapter(db, dialect), nil
}
