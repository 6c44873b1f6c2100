// Package domain contains the core entity types of the quiz application.
//
// Entities are immutable value snapshots: once returned by a store or
// service they are never mutated in place, and updating an entity means
// writing a replacement through the repository. The domain layer has no
// dependency on any storage driver.
package domain
