/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the dbdataset package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"

	"github.com/flapek/decision-trees-ID3-C4.5/dataset/dbdataset"
	"github.com/pkg/errors"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

var dialect = dbdataset.Dialect{
	Placeholder: func(int) string { return "?" },
	IDColumn:    "INTEGER PRIMARY KEY AUTOINCREMENT",
}

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (dbdataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite3 database %s", path)
	}
	// A single connection keeps in-memory databases shared across queries.
	db.SetMaxOpenConns(1)
	return dbdataset.NewSQLAdapter(db, dialect), nil
}
