package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/starford/jera/internal/timesheet"
)

// RowPayload is the wire form of a timesheet row. Hours are keyed by
// three-letter day name ("mon".."sun"); omitted days carry no hours.
type RowPayload struct {
	ProjectID   int                        `json:"project_id"`
	WorkPackage string                     `json:"work_package"`
	Notes       string                     `json:"notes,omitempty"`
	Hours       map[string]decimal.Decimal `json:"hours,omitempty"`
}

// SaveTimesheetRequest is the request body for saving a week's rows.
type SaveTimesheetRequest struct {
	Rows []RowPayload `json:"rows"`
}

// TimesheetResponse is the full timesheet representation.
type TimesheetResponse struct {
	Employee   timesheet.Employee `json:"employee"`
	WeekEnding string             `json:"week_ending"`
	Rows       []RowPayload       `json:"rows"`
	Total      decimal.Decimal    `json:"total"`
}

// SheetResponse converts a domain sheet to its wire form.
func SheetResponse(s *timesheet.Sheet) TimesheetResponse {
	rows := make([]RowPayload, len(s.Rows))
	for i, r := range s.Rows {
		hours := make(map[string]decimal.Decimal)
		for _, day := range timesheet.WorkDays {
			if h, ok := r.Hour(day); ok {
				hours[day.String()] = h
			}
		}
		if len(hours) == 0 {
			hours = nil
		}
		rows[i] = RowPayload{
			ProjectID:   r.ProjectID,
			WorkPackage: r.WorkPackage,
			Notes:       r.Notes,
			Hours:       hours,
		}
	}
	return TimesheetResponse{
		Employee:   s.Employee,
		WeekEnding: s.WeekEnding.Format("2006-01-02"),
		Rows:       rows,
		Total:      s.Total(),
	}
}

// BuildSheet converts a save request into a domain sheet. Unknown day names
// and negative hours surface as errors.
func BuildSheet(emp timesheet.Employee, weekEnding time.Time, req SaveTimesheetRequest) (*timesheet.Sheet, error) {
	s := timesheet.New(emp, weekEnding)
	for _, p := range req.Rows {
		r := s.AddRow()
		r.ProjectID = p.ProjectID
		r.WorkPackage = p.WorkPackage
		r.Notes = p.Notes
		for name, h := range p.Hours {
			day, err := timesheet.ParseWorkDay(name)
			if err != nil {
				return nil, err
			}
			if err := r.SetHour(day, h); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
