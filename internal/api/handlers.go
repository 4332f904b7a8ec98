package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/jera/internal/sheetservice"
	"github.com/starford/jera/internal/timesheet"
)

// Handler holds API route handlers.
type Handler struct {
	svc *sheetservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *sheetservice.Service) *Handler {
	return &Handler{svc: svc}
}

// weekParam parses the {week} URL segment as a week-ending date. Any day of
// the target week is accepted; the service normalizes to that week's Friday.
func weekParam(r *http.Request) (time.Time, error) {
	return time.Parse("2006-01-02", chi.URLParam(r, "week"))
}

// ListTimesheets handles GET /timesheets.
func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	emp, ok := EmployeeFrom(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	sheets, err := h.svc.List(r.Context(), emp)
	if err != nil {
		slog.Error("list timesheets failed",
			slog.Int("employee", emp.Number), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	out := make([]TimesheetResponse, len(sheets))
	for i, s := range sheets {
		out[i] = SheetResponse(s)
	}
	writeJSON(w, http.StatusOK, map[string]any{"timesheets": out})
}

// CurrentTimesheet handles GET /timesheets/current. A week with no saved
// sheet yields an empty, unsaved one.
func (h *Handler) CurrentTimesheet(w http.ResponseWriter, r *http.Request) {
	emp, ok := EmployeeFrom(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	sheet, err := h.svc.Current(r.Context(), emp)
	if err != nil {
		slog.Error("current timesheet failed",
			slog.Int("employee", emp.Number), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SheetResponse(sheet))
}

// GetTimesheet handles GET /timesheets/{week}.
func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	emp, ok := EmployeeFrom(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	week, err := weekParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid week-ending date, want YYYY-MM-DD"))
		return
	}
	sheet, err := h.svc.Get(r.Context(), emp, week)
	if err != nil {
		slog.Error("get timesheet failed",
			slog.Int("employee", emp.Number), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SheetResponse(sheet))
}

// SaveTimesheet handles PUT /timesheets/{week}: the body's rows replace the
// week's sheet after validation. Rule failures come back as a 422 carrying
// every violated rule.
func (h *Handler) SaveTimesheet(w http.ResponseWriter, r *http.Request) {
	emp, ok := EmployeeFrom(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	week, err := weekParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid week-ending date, want YYYY-MM-DD"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req SaveTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	sheet, err := BuildSheet(emp, week, req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if err := h.svc.ValidateAndSave(r.Context(), sheet); err != nil {
		if msgs := validationMessages(err); len(msgs) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(msgs))
			return
		}
		slog.Error("save timesheet failed",
			slog.Int("employee", emp.Number), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SheetResponse(sheet))
}

// AddRow handles POST /timesheets/{week}/rows. Returns the sheet with one
// appended empty row; nothing is persisted until an explicit save.
func (h *Handler) AddRow(w http.ResponseWriter, r *http.Request) {
	emp, ok := EmployeeFrom(r.Context())
	if !ok {
		unauthorized(w)
		return
	}
	week, err := weekParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid week-ending date, want YYYY-MM-DD"))
		return
	}
	sheet, err := h.svc.Get(r.Context(), emp, week)
	if err != nil {
		slog.Error("add row failed",
			slog.Int("employee", emp.Number), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	h.svc.AddRow(sheet)
	writeJSON(w, http.StatusOK, SheetResponse(sheet))
}

// validationMessages extracts user-presentable rule failures from err. An
// empty result means err was not a validation failure.
func validationMessages(err error) []string {
	var msgs []string
	var mismatch *timesheet.HourTotalMismatchError
	if errors.As(err, &mismatch) {
		msgs = append(msgs, mismatch.Error())
	}
	var rowsErr *timesheet.InvalidRowsError
	if errors.As(err, &rowsErr) {
		msgs = append(msgs, rowsErr.Error())
	}
	return msgs
}
