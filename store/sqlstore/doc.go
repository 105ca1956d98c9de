// Package sqlstore implements zipcache.Store on a relational table through
// bun and go-repository-bun. SQLite and Postgres are supported; the zip code
// is the table's primary key, which is what makes concurrent inserts of the
// same code safe.
package sqlstore
