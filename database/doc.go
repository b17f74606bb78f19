// Package database provides connection management, configuration types,
// model registration, table creation, query logging hooks, health checks,
// and related utilities built on top of Bun.
package database
