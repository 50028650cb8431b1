package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		name TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE user_aliases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		address TEXT NOT NULL UNIQUE,
		is_primary BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
}

func createApiKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE api_keys (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER,
		prefix TEXT NOT NULL,
		key_hash TEXT NOT NULL UNIQUE,
		scopes TEXT NOT NULL,
		name TEXT,
		last_used_at DATETIME,
		expires_at DATETIME,
		created_at DATETIME,
		revoked_at DATETIME
	);`)
}

func createEmailTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE emails (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		message_id TEXT NOT NULL,
		sender TEXT NOT NULL,
		recipient TEXT NOT NULL,
		subject TEXT NOT NULL,
		raw_email TEXT,
		headers_json TEXT,
		folder TEXT NOT NULL DEFAULT 'inbox',
		is_read BOOLEAN NOT NULL DEFAULT 0,
		is_starred BOOLEAN NOT NULL DEFAULT 0,
		user_id INTEGER,
		received_at DATETIME,
		synced_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE sent_emails (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		message_id TEXT,
		sender TEXT NOT NULL,
		recipient TEXT NOT NULL,
		subject TEXT NOT NULL,
		html TEXT,
		text TEXT,
		status TEXT NOT NULL,
		error TEXT,
		sent_at DATETIME
	);`)
}
