// Package sqlite stores the retrieval index, voice phrases and drafts in one
// SQLite database (default ~/.grantcraft/data/grantcraft.db) using the pure
// Go modernc.org/sqlite driver.
//
// Schema changes live in migrations/ as numbered .up.sql files applied in
// order at open. The database runs in WAL mode; Store values are safe for
// concurrent use.
package sqlite
