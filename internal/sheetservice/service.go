// Package sheetservice coordinates week resolution, validation, and the
// store behind the timesheet operations exposed to the HTTP and MCP layers.
package sheetservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/store"
	"github.com/starford/jera/internal/timesheet"
)

// Service coordinates store and validator operations.
type Service struct {
	store store.Store
	now   func() time.Time

	mu        sync.RWMutex
	validator *timesheet.Validator
}

// NewService creates a timesheet service requiring the given weekly total.
func NewService(st store.Store, target decimal.Decimal) *Service {
	return &Service{
		store:     st,
		now:       time.Now,
		validator: timesheet.NewValidator(target),
	}
}

// Current resolves this week's ending date and returns the employee's
// timesheet for it, creating a transient empty one when none is persisted.
func (s *Service) Current(ctx context.Context, emp timesheet.Employee) (*timesheet.Sheet, error) {
	return s.Get(ctx, emp, s.now())
}

// Get returns the employee's timesheet for the week containing weekEnding,
// creating a transient empty one when none is persisted. Creation never
// auto-saves, so repeated lookups are side-effect free.
func (s *Service) Get(_ context.Context, emp timesheet.Employee, weekEnding time.Time) (*timesheet.Sheet, error) {
	sheet, err := s.store.Lookup(emp, weekEnding)
	if errors.Is(err, apperr.ErrNotFound) {
		return timesheet.New(emp, weekEnding), nil
	}
	if err != nil {
		return nil, err
	}
	return sheet, nil
}

// List returns all of the employee's persisted timesheets in insertion order.
func (s *Service) List(_ context.Context, emp timesheet.Employee) ([]*timesheet.Sheet, error) {
	return s.store.ForEmployee(emp)
}

// AddRow appends an empty row to the sheet and returns it.
func (s *Service) AddRow(sheet *timesheet.Sheet) *timesheet.Row {
	return sheet.AddRow()
}

// ValidateAndSave trims the sheet, re-runs both acceptance rules, and
// persists the sheet when they pass. Rule failures come back joined so the
// caller can present every violation at once.
func (s *Service) ValidateAndSave(_ context.Context, sheet *timesheet.Sheet) error {
	sheet.Trim()

	s.mu.RLock()
	v := s.validator
	s.mu.RUnlock()

	if err := v.Validate(sheet); err != nil {
		return err
	}
	sheet.Approve()
	return s.store.Save(sheet)
}

// TargetHours returns the weekly total currently required.
func (s *Service) TargetHours() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validator.Target()
}

// SetTargetHours swaps in a new required weekly total. Called by config
// reload; in-flight validations keep the validator they started with.
func (s *Service) SetTargetHours(target decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validator = timesheet.NewValidator(target)
}
