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

func createOrganizationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE organizations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		legal_business_name TEXT,
		tax_id TEXT,
		krs_number TEXT,
		bank_account TEXT,
		remote_merchant_id TEXT UNIQUE,
		approval_state TEXT NOT NULL DEFAULT 'pending',
		admin_notes TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE documents (
		id TEXT PRIMARY KEY,
		organization_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		original_file_name TEXT NOT NULL,
		type TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		storage_path TEXT NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		verification_notes TEXT,
		verified_at DATETIME,
		created_at DATETIME
	);`)
}
