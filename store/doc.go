// Package store provides wire.Storage implementations.
//
// Memory keeps every field in process and is what tests and the preview
// server use. SQL persists fields as JSON arrays in one table and runs on
// SQLite (OpenSQLite) or PostgreSQL (OpenPostgres).
//
// Both treat a scalar as a one-element array, so a field written with
// WriteInt reads back through ReadInts and the other way round.
package store
