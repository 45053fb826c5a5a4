// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of query construction, query execution, and data
// mapping between domain entities and database records. Schema migrations
// and seed data live in the migrations subpackage.
package postgres
