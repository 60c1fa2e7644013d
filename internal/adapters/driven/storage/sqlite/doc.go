// Package sqlite provides SQLite-backed implementations of the profile,
// food log and weight log stores. A single database file holds all
// tables; schema changes ship as embedded migrations.
package sqlite
