package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/liamba05/Fynnance/internal/database"
)

// SetupTestDB creates a migrated SQLite database for testing.
// The database lives in the test's temp directory and is closed when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	if _, err := db.Exec("PRAGMA journal_mode = MEMORY"); err != nil {
		t.Fatalf("Failed to set pragma: %v", err)
	}

	if _, err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CountRows returns the number of rows in a table.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "user_memory")
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}

// ColumnValue reads a single column of the user_facts row of userID.
// Used to check what is actually stored at rest.
func ColumnValue(t *testing.T, db *sql.DB, column, userID string) sql.NullString {
	t.Helper()

	var v sql.NullString
	//nolint:gosec // G202: column names come from test code
	query := "SELECT " + column + " FROM user_facts WHERE user_id = ?"
	if err := db.QueryRow(query, userID).Scan(&v); err != nil {
		t.Fatalf("Failed to read %s for %s: %v", column, userID, err)
	}
	return v
}
