// Package testutil provides shared test helpers for setting up stores and fixtures.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/jera/internal/store"
	"github.com/starford/jera/internal/timesheet"
)

// TestDB creates a temporary SQLite store that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "jera-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestEmployees returns a small fixed employee list for tests.
func TestEmployees() []timesheet.Employee {
	return []timesheet.Employee{
		{Number: 1, Name: "John Doe"},
		{Number: 2, Name: "Bob Smith"},
	}
}
