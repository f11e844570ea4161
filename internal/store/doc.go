// Package store persists analysis runs in SQLite.
//
// Each run records its identifier, start time, and config path, the
// aggregate statistics of every platform, and the positive award flags of
// every catalog title. The schema is created from embedded migrations on
// Open. Writers hold a file lock next to the database so concurrent CLI
// invocations serialize their inserts.
package store
