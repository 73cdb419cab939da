// Package store provides abstractions for data persistence: the store
// interfaces implemented by the postgres platform package, the sentinel
// errors shared by all implementations, and the query types used to
// describe filtered, paginated listings.
package store
