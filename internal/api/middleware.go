// Package api implements the Jera REST API using chi.
package api

import (
	"context"
	"net/http"

	"github.com/starford/jera/internal/directory"
	"github.com/starford/jera/internal/timesheet"
)

type contextKey struct{}

var employeeKey contextKey

// AuthMiddleware returns middleware that resolves the requesting employee
// from HTTP Basic credentials via the directory and stores it in the
// request context. Requests without valid credentials get a 401.
func AuthMiddleware(dir *directory.Directory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				unauthorized(w)
				return
			}
			emp, err := dir.Authenticate(username, password)
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithEmployee(r.Context(), emp)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="jera"`)
	writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
}

// WithEmployee returns a context carrying the authenticated employee.
func WithEmployee(ctx context.Context, emp timesheet.Employee) context.Context {
	return context.WithValue(ctx, employeeKey, emp)
}

// EmployeeFrom extracts the authenticated employee from the context.
func EmployeeFrom(ctx context.Context) (timesheet.Employee, bool) {
	emp, ok := ctx.Value(employeeKey).(timesheet.Employee)
	return emp, ok
}
