package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/starford/jera/internal/directory"
	"github.com/starford/jera/internal/sheetservice"
	"github.com/starford/jera/internal/testutil"
	"github.com/starford/jera/internal/timesheet"
)

// testEnv sets up a temp SQLite store, service, directory, and router.
func testEnv(t *testing.T) (*sheetservice.Service, http.Handler) {
	t.Helper()

	db := testutil.TestDB(t)
	svc := sheetservice.NewService(db, timesheet.DefaultTargetHours)

	emps := testutil.TestEmployees()
	dir := directory.New([]directory.Account{
		{Employee: emps[0], Username: "jdoe", Password: "test"},
		{Employee: emps[1], Username: "bsmith", Password: "testadmin"},
	})

	return svc, NewRouter(svc, dir)
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, user, pass string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func fortyHourRequest() SaveTimesheetRequest {
	eight := decimal.NewFromInt(8)
	return SaveTimesheetRequest{Rows: []RowPayload{
		{
			ProjectID:   132,
			WorkPackage: "AA123",
			Hours:       map[string]decimal.Decimal{"thu": decimal.NewFromInt(4)},
		},
		{
			ProjectID:   132,
			WorkPackage: "AB112",
			Hours:       map[string]decimal.Decimal{"wed": eight, "fri": decimal.NewFromInt(4)},
		},
		{
			ProjectID:   140,
			WorkPackage: "CC900",
			Hours:       map[string]decimal.Decimal{"mon": eight, "tue": eight, "wed": eight},
		},
	}}
}

func TestAuthRequired(t *testing.T) {
	_, router := testEnv(t)

	w := doRequest(t, router, http.MethodGet, "/timesheets", nil, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no credentials = %d, want 401", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/timesheets", nil, "jdoe", "wrong")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad password = %d, want 401", w.Code)
	}
}

func TestCurrentTimesheet_EmptyForNewWeek(t *testing.T) {
	_, router := testEnv(t)

	w := doRequest(t, router, http.MethodGet, "/timesheets/current", nil, "jdoe", "test")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp TimesheetResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	want := timesheet.WeekEnding(time.Now()).Format("2006-01-02")
	if resp.WeekEnding != want {
		t.Errorf("week_ending = %s, want %s", resp.WeekEnding, want)
	}
	if len(resp.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(resp.Rows))
	}
	if resp.Employee.Number != 1 {
		t.Errorf("employee = %+v", resp.Employee)
	}
}

func TestGetTimesheet_BadWeek(t *testing.T) {
	_, router := testEnv(t)
	w := doRequest(t, router, http.MethodGet, "/timesheets/notadate", nil, "jdoe", "test")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSaveTimesheet_SixteenHoursRejected(t *testing.T) {
	_, router := testEnv(t)

	req := fortyHourRequest()
	req.Rows = req.Rows[:2] // 16 hours

	w := doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", req, "jdoe", "test")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp validationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %v", resp.Errors)
	}
	if want := "work hours must add up to 40, got 16"; resp.Errors[0] != want {
		t.Errorf("error = %q, want %q", resp.Errors[0], want)
	}

	// The failed save must not have persisted anything.
	w = doRequest(t, router, http.MethodGet, "/timesheets", nil, "jdoe", "test")
	var list struct {
		Timesheets []TimesheetResponse `json:"timesheets"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Timesheets) != 0 {
		t.Errorf("persisted sheets = %d, want 0", len(list.Timesheets))
	}
}

func TestSaveTimesheet_FortyHoursSucceeds(t *testing.T) {
	_, router := testEnv(t)

	w := doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", fortyHourRequest(), "jdoe", "test")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var saved TimesheetResponse
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}
	if !saved.Total.Equal(decimal.NewFromInt(40)) {
		t.Errorf("total = %s, want 40", saved.Total)
	}

	// A later read returns the saved version, not a fresh empty one.
	w = doRequest(t, router, http.MethodGet, "/timesheets/2014-10-10", nil, "jdoe", "test")
	var got TimesheetResponse
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(got.Rows))
	}
	if got.Rows[0].WorkPackage != "AA123" || got.Rows[2].WorkPackage != "CC900" {
		t.Errorf("row order not preserved: %+v", got.Rows)
	}
}

func TestSaveTimesheet_DuplicateRowsRejected(t *testing.T) {
	_, router := testEnv(t)

	req := fortyHourRequest()
	req.Rows[1].WorkPackage = "AA123" // duplicates row 1

	w := doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", req, "jdoe", "test")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp validationResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Errors) != 1 {
		t.Fatalf("errors = %v", resp.Errors)
	}
	if want := "rows 1, 2: the project and work package combination must be filled in and unique"; resp.Errors[0] != want {
		t.Errorf("error = %q, want %q", resp.Errors[0], want)
	}
}

func TestSaveTimesheet_NegativeHoursRejected(t *testing.T) {
	_, router := testEnv(t)

	req := SaveTimesheetRequest{Rows: []RowPayload{{
		ProjectID:   132,
		WorkPackage: "AA123",
		Hours:       map[string]decimal.Decimal{"mon": decimal.NewFromInt(-2)},
	}}}
	w := doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", req, "jdoe", "test")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAddRow_NotPersisted(t *testing.T) {
	_, router := testEnv(t)

	w := doRequest(t, router, http.MethodPost, "/timesheets/2025-03-07/rows", nil, "jdoe", "test")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp TimesheetResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(resp.Rows))
	}

	// The appended row lives only in the response; a re-read starts empty.
	w = doRequest(t, router, http.MethodGet, "/timesheets/2025-03-07", nil, "jdoe", "test")
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Rows) != 0 {
		t.Errorf("rows after re-read = %d, want 0", len(resp.Rows))
	}
}

func TestListTimesheets_PerEmployeeIsolation(t *testing.T) {
	_, router := testEnv(t)

	w := doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", fortyHourRequest(), "jdoe", "test")
	if w.Code != http.StatusOK {
		t.Fatalf("save = %d", w.Code)
	}

	var list struct {
		Timesheets []TimesheetResponse `json:"timesheets"`
	}

	w = doRequest(t, router, http.MethodGet, "/timesheets", nil, "jdoe", "test")
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Timesheets) != 1 {
		t.Errorf("jdoe sheets = %d, want 1", len(list.Timesheets))
	}

	w = doRequest(t, router, http.MethodGet, "/timesheets", nil, "bsmith", "testadmin")
	list.Timesheets = nil
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Timesheets) != 0 {
		t.Errorf("bsmith sheets = %d, want 0", len(list.Timesheets))
	}
}

func TestSaveThenOverwriteSameWeek(t *testing.T) {
	_, router := testEnv(t)

	w := doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", fortyHourRequest(), "jdoe", "test")
	if w.Code != http.StatusOK {
		t.Fatalf("first save = %d", w.Code)
	}

	// Saving the same week again replaces the sheet instead of appending.
	req := fortyHourRequest()
	req.Rows[2].WorkPackage = "DD100"
	w = doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", req, "jdoe", "test")
	if w.Code != http.StatusOK {
		t.Fatalf("second save = %d", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/timesheets", nil, "jdoe", "test")
	var list struct {
		Timesheets []TimesheetResponse `json:"timesheets"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Timesheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(list.Timesheets))
	}
	if got := list.Timesheets[0].Rows[2].WorkPackage; got != "DD100" {
		t.Errorf("row 3 work package = %q, want DD100", got)
	}
}

func TestGetTimesheet_AnyDayOfWeekNormalizes(t *testing.T) {
	_, router := testEnv(t)

	w := doRequest(t, router, http.MethodPut, "/timesheets/2014-10-10", fortyHourRequest(), "jdoe", "test")
	if w.Code != http.StatusOK {
		t.Fatalf("save = %d", w.Code)
	}

	// Requesting by the Monday of that week resolves to the same Friday.
	w = doRequest(t, router, http.MethodGet, "/timesheets/2014-10-06", nil, "jdoe", "test")
	var resp TimesheetResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.WeekEnding != "2014-10-10" {
		t.Errorf("week_ending = %s, want 2014-10-10", resp.WeekEnding)
	}
	if len(resp.Rows) != 3 {
		t.Errorf("rows = %d, want 3", len(resp.Rows))
	}
}
