package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/jera/internal/directory"
	"github.com/starford/jera/internal/sheetservice"
)

// NewRouter creates a chi router with all API routes mounted behind the
// directory-backed basic-auth middleware.
func NewRouter(svc *sheetservice.Service, dir *directory.Directory) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(dir))

	r.Get("/timesheets", h.ListTimesheets)
	r.Get("/timesheets/current", h.CurrentTimesheet)
	r.Get("/timesheets/{week}", h.GetTimesheet)
	r.Put("/timesheets/{week}", h.SaveTimesheet)
	r.Post("/timesheets/{week}/rows", h.AddRow)

	return r
}
