package store

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/starford/jera/internal/timesheet"
)

// Seed inserts sample timesheets for the first two employees when the store
// is empty. Sample data predates the weekly-total rule, so it writes through
// the internal upsert rather than Save. Failures are logged and skipped,
// never propagated.
func Seed(db *DB, employees []timesheet.Employee, logger *slog.Logger) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM timesheets`).Scan(&n); err != nil {
		logger.Warn("seed: count failed", slog.String("error", err.Error()))
		return
	}
	if n > 0 {
		return
	}
	if len(employees) < 2 {
		logger.Warn("seed: need at least two employees, skipping")
		return
	}

	weekEnd, err := time.Parse("2006-01-02", "2014-10-10")
	if err != nil {
		logger.Warn("seed: cannot parse sample date", slog.String("error", err.Error()))
		return
	}

	for _, emp := range employees[:2] {
		s := timesheet.New(emp, weekEnd)

		r1 := s.AddRow()
		r1.ProjectID = 132
		r1.WorkPackage = "AA123"
		_ = r1.SetHour(timesheet.Thursday, decimal.NewFromInt(4))

		r2 := s.AddRow()
		r2.ProjectID = 132
		r2.WorkPackage = "AB112"
		_ = r2.SetHour(timesheet.Wednesday, decimal.NewFromInt(8))
		_ = r2.SetHour(timesheet.Friday, decimal.NewFromInt(4))

		if err := db.upsert(s); err != nil {
			logger.Warn("seed: insert failed",
				slog.Int("employee", emp.Number),
				slog.String("error", err.Error()))
			continue
		}
		logger.Info("seed: sample timesheet inserted",
			slog.Int("employee", emp.Number),
			slog.String("week_ending", s.WeekEnding.Format("2006-01-02")))
	}
}
