// Package mocks provides function-field test doubles for the service
// interfaces consumed by the HTTP layer. Each mock calls its Fn field when
// set and otherwise returns its default values.
package mocks
