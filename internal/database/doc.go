// Package database provides the key/value storage behind the
// saved URL-set store.
//
// Values live in named slots. Each Put replaces a slot's whole value in a
// single statement (or a single rename for the file backend), so readers
// never observe a partially written value. Update holds a backend lock
// around read, change and write, so processes sharing the storage do not
// overwrite each other's changes.
//
// Three backends implement Slots:
//   - SlotDB: SQLite via modernc.org/sqlite, schema managed by goose migrations
//   - FileSlots: one JSON file per slot, written with a temp file and rename
//   - PGSlots: PostgreSQL via pgx, for API instances sharing one store
//
// SQLite is the default because it is CGO-free and keeps all state in a
// single file under the XDG data directory.
package database
