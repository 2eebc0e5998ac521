// Package sqlite implements the run store on SQLite via the pure-Go
// modernc.org/sqlite driver. The database lives under the user's data
// directory and carries one row per collection target plus the set of
// keys already processed for it, which is what resume consults.
//
// Schema changes ship as embedded .up.sql migrations applied in order
// on open; the schema_migrations table tracks the current version.
package sqlite
