/*
Package dbdataset provides an implementation of dataset.Dataset that uses an
SQL database as backend.

Samples are stored on a samples table with a TEXT column per feature and an
auto-incremented id column that keeps the insertion order. Subsets are
never materialized: a subset is the list of criteria that its samples
satisfy, and every dataset operation is translated into a query with those
criteria as WHERE clause. Values are always listed in the order of their
first insertion, so datasets read from the database behave like the ones
read from text.

Adapters for specific databases live in the subpackages.
*/
package dbdataset
