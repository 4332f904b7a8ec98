// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Jera timesheet tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/jera/internal/api"
	"github.com/starford/jera/internal/directory"
	"github.com/starford/jera/internal/sheetservice"
	"github.com/starford/jera/internal/timesheet"
)

// Server wraps the MCP server with Jera tools.
type Server struct {
	mcp *server.MCPServer
	svc *sheetservice.Service
	dir *directory.Directory
}

// New creates a new MCP server with all Jera tools registered.
func New(svc *sheetservice.Service, dir *directory.Directory) *Server {
	s := &Server{svc: svc, dir: dir}

	s.mcp = server.NewMCPServer(
		"Jera",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_timesheets",
		mcp.WithDescription("List all saved timesheets for an employee, newest week first."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Employee username")),
	), s.listTimesheets)

	s.mcp.AddTool(mcp.NewTool("get_current_timesheet",
		mcp.WithDescription("Get the employee's timesheet for the current week. "+
			"Returns an empty sheet if none has been saved yet."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Employee username")),
	), s.getCurrentTimesheet)

	s.mcp.AddTool(mcp.NewTool("get_timesheet",
		mcp.WithDescription("Get the employee's timesheet for the week containing the given date."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Employee username")),
		mcp.WithString("week_ending", mcp.Required(), mcp.Description("Any date of the target week (YYYY-MM-DD)")),
	), s.getTimesheet)

	s.mcp.AddTool(mcp.NewTool("save_timesheet",
		mcp.WithDescription("Validate and save a week's rows, replacing any previously saved sheet "+
			"for that week. Rows MUST follow the timesheet format contract; read it first via the "+
			"get_timesheet_contract tool or the jera://timesheet-format resource."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Employee username")),
		mcp.WithString("week_ending", mcp.Required(), mcp.Description("Any date of the target week (YYYY-MM-DD)")),
		mcp.WithString("rows", mcp.Required(), mcp.Description("JSON array of rows following the timesheet format contract")),
	), s.saveTimesheet)

	s.mcp.AddTool(mcp.NewTool("get_timesheet_contract",
		mcp.WithDescription("Returns the Jera timesheet format contract. "+
			"Call this before saving a timesheet to ensure correct structure."),
	), s.getTimesheetContract)

	// Resource: timesheet format contract.
	s.mcp.AddResource(
		mcp.NewResource("jera://timesheet-format", "Timesheet Format Contract",
			mcp.WithResourceDescription("Wire format and acceptance rules for timesheets."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readTimesheetFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// employee resolves the username argument to a directory employee.
func (s *Server) employee(req mcp.CallToolRequest) (timesheet.Employee, error) {
	username, err := req.RequireString("username")
	if err != nil {
		return timesheet.Employee{}, err
	}
	emp, err := s.dir.Find(username)
	if err != nil {
		return timesheet.Employee{}, fmt.Errorf("unknown employee: %s", username)
	}
	return emp, nil
}

func weekArg(req mcp.CallToolRequest) (time.Time, error) {
	raw, err := req.RequireString("week_ending")
	if err != nil {
		return time.Time{}, err
	}
	week, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week_ending %q, want YYYY-MM-DD", raw)
	}
	return week, nil
}

func sheetJSON(sheet *timesheet.Sheet) string {
	out, _ := json.MarshalIndent(api.SheetResponse(sheet), "", "  ")
	return string(out)
}

func (s *Server) listTimesheets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	emp, err := s.employee(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sheets, err := s.svc.List(ctx, emp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resp := make([]api.TimesheetResponse, len(sheets))
	for i, sheet := range sheets {
		resp[i] = api.SheetResponse(sheet)
	}
	out, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCurrentTimesheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	emp, err := s.employee(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sheet, err := s.svc.Current(ctx, emp)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(sheetJSON(sheet)), nil
}

func (s *Server) getTimesheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	emp, err := s.employee(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	week, err := weekArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sheet, err := s.svc.Get(ctx, emp, week)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(sheetJSON(sheet)), nil
}

func (s *Server) saveTimesheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	emp, err := s.employee(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	week, err := weekArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("rows")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var rows []api.RowPayload
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rows is not a valid JSON array: %v", err)), nil
	}

	sheet, err := api.BuildSheet(emp, week, api.SaveTimesheetRequest{Rows: rows})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.ValidateAndSave(ctx, sheet); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", sheet.WeekEnding.Format("2006-01-02"))), nil
}

func (s *Server) getTimesheetContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(TimesheetFormatContract), nil
}

func (s *Server) readTimesheetFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "jera://timesheet-format",
			MIMEType: "text/markdown",
			Text:     TimesheetFormatContract,
		},
	}, nil
}
