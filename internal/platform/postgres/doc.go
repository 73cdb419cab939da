// Package postgres contains the PostgreSQL implementations of the store
// interfaces, plus the embedded goose schema migrations. All stores accept
// a store.DBTX so they work against either a connection pool or a
// transaction.
package postgres
