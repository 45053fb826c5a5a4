// Package domain contains the core business entities, value objects, and
// domain logic of the application: cities, their points of interest, partial
// updates and pagination metadata. It is independent of any storage or
// delivery mechanism.
package domain
