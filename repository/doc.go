// Package repository provides a small generic repository built on Bun for
// the CRUD side of an entity's lifecycle; querying beyond simple lookups is
// the selector facade's job.
package repository
