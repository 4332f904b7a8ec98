package timesheet

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func sampleSheet(t *testing.T) *Sheet {
	t.Helper()
	s := New(Employee{Number: 1, Name: "John Doe"}, time.Date(2014, 10, 10, 0, 0, 0, 0, time.UTC))

	r1 := s.AddRow()
	r1.ProjectID = 132
	r1.WorkPackage = "AA123"
	if err := r1.SetHour(Thursday, decimal.NewFromInt(4)); err != nil {
		t.Fatal(err)
	}

	r2 := s.AddRow()
	r2.ProjectID = 132
	r2.WorkPackage = "AB112"
	if err := r2.SetHour(Wednesday, decimal.NewFromInt(8)); err != nil {
		t.Fatal(err)
	}
	if err := r2.SetHour(Friday, decimal.NewFromInt(4)); err != nil {
		t.Fatal(err)
	}

	return s
}

func TestValidate_ReportsActualTotal(t *testing.T) {
	v := NewValidator(DefaultTargetHours)
	s := sampleSheet(t) // 16 hours across two rows

	err := v.Validate(s)
	var mismatch *HourTotalMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want *HourTotalMismatchError", err)
	}
	if !mismatch.Total.Equal(decimal.NewFromInt(16)) {
		t.Errorf("Total = %s, want 16", mismatch.Total)
	}
	if !mismatch.Target.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Target = %s, want 40", mismatch.Target)
	}
}

func TestValidate_FortyHoursWithDistinctRowsPasses(t *testing.T) {
	v := NewValidator(DefaultTargetHours)
	s := sampleSheet(t)

	// Third row charges the remaining 24 hours to a distinct pair.
	r3 := s.AddRow()
	r3.ProjectID = 140
	r3.WorkPackage = "CC900"
	for _, day := range []WorkDay{Monday, Tuesday, Wednesday} {
		if err := r3.SetHour(day, decimal.NewFromInt(8)); err != nil {
			t.Fatal(err)
		}
	}

	if err := v.Validate(s); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestValidate_DuplicateRowsFlagged(t *testing.T) {
	v := NewValidator(decimal.NewFromInt(16))
	s := sampleSheet(t)
	s.Rows[1].WorkPackage = "AA123" // now duplicates row 0

	err := v.Validate(s)
	var rowsErr *InvalidRowsError
	if !errors.As(err, &rowsErr) {
		t.Fatalf("err = %v, want *InvalidRowsError", err)
	}
	if len(rowsErr.Rows) != 2 || rowsErr.Rows[0] != 0 || rowsErr.Rows[1] != 1 {
		t.Errorf("Rows = %v, want [0 1]", rowsErr.Rows)
	}
}

func TestValidate_BlankPackagePairNotDuplicate(t *testing.T) {
	v := NewValidator(decimal.NewFromInt(16))
	s := sampleSheet(t)
	// Row without hours and a blank package: neither duplicate nor incomplete.
	r := s.AddRow()
	r.ProjectID = 132

	if err := v.Validate(s); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}

func TestValidate_ChargedRowNeedsWorkPackage(t *testing.T) {
	v := NewValidator(decimal.NewFromInt(24))
	s := sampleSheet(t)
	r := s.AddRow()
	r.ProjectID = 132
	if err := r.SetHour(Monday, decimal.NewFromInt(8)); err != nil {
		t.Fatal(err)
	}

	err := v.Validate(s)
	var rowsErr *InvalidRowsError
	if !errors.As(err, &rowsErr) {
		t.Fatalf("err = %v, want *InvalidRowsError", err)
	}
	if len(rowsErr.Rows) != 1 || rowsErr.Rows[0] != 2 {
		t.Errorf("Rows = %v, want [2]", rowsErr.Rows)
	}
}

func TestValidate_BothRulesReportedTogether(t *testing.T) {
	v := NewValidator(DefaultTargetHours)
	s := sampleSheet(t)
	s.Rows[1].WorkPackage = "AA123" // duplicate, and total is still 16

	err := v.Validate(s)
	var mismatch *HourTotalMismatchError
	var rowsErr *InvalidRowsError
	if !errors.As(err, &mismatch) {
		t.Errorf("missing hour-total failure in %v", err)
	}
	if !errors.As(err, &rowsErr) {
		t.Errorf("missing row failure in %v", err)
	}
}

func TestValidate_RerunsEveryTime(t *testing.T) {
	v := NewValidator(decimal.NewFromInt(16))
	s := sampleSheet(t)
	if err := v.Validate(s); err != nil {
		t.Fatalf("first Validate = %v", err)
	}
	// Mutating after a clean pass must surface on the next run.
	if err := s.Rows[0].SetHour(Monday, decimal.NewFromInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := v.Validate(s); err == nil {
		t.Error("second Validate = nil, want hour-total failure")
	}
}
