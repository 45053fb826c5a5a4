// Package memory provides a seeded, mutex-guarded in-process implementation
// of the store interfaces. It is the default backend when no database is
// configured and doubles as a fast fake in service and handler tests.
package memory
