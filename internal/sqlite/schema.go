package sqlite

// Schema DDL. Statements are idempotent so an existing database is reused.
const (
	createSlots = `CREATE TABLE IF NOT EXISTS slots (
    slot_key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Slot queries.
const (
	selectSlot = `SELECT value FROM slots WHERE slot_key = ?`
	upsertSlot = `INSERT INTO slots (slot_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(slot_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// schemaDDL lists all CREATE statements in dependency order.
var schemaDDL = []string{
	createSlots,
}
