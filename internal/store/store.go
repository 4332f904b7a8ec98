package store

import (
	"time"

	"github.com/starford/jera/internal/timesheet"
)

// Store defines the timesheet lookup and persistence surface. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type Store interface {
	All() ([]*timesheet.Sheet, error)
	ForEmployee(emp timesheet.Employee) ([]*timesheet.Sheet, error)
	Lookup(emp timesheet.Employee, weekEnding time.Time) (*timesheet.Sheet, error)
	Save(s *timesheet.Sheet) error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
