// Package database manages the in-process SQLite database used by the Bun
// repository engine: connection lifecycle, query logging hooks, table creation
// for registered models, SQL error classification and logging.
package database
