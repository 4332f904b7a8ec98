// Package directory tracks the employee account list and answers the
// lookup-by-username and credential checks consumed by the HTTP middleware
// and the MCP tools.
package directory

import (
	"crypto/subtle"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/timesheet"
)

// Account pairs an employee identity with its login credentials.
type Account struct {
	Employee timesheet.Employee
	Username string
	Password string
}

// Directory holds the account list, fixed at construction from config.
type Directory struct {
	accounts []Account
}

// New creates a directory from the given accounts.
func New(accounts []Account) *Directory {
	return &Directory{accounts: accounts}
}

// Find returns the employee registered under username, or apperr.ErrNotFound.
func (d *Directory) Find(username string) (timesheet.Employee, error) {
	for _, a := range d.accounts {
		if a.Username == username {
			return a.Employee, nil
		}
	}
	return timesheet.Employee{}, apperr.ErrNotFound
}

// Authenticate checks the credentials and returns the matching employee, or
// apperr.ErrInvalidCredentials. Comparison is constant-time.
func (d *Directory) Authenticate(username, password string) (timesheet.Employee, error) {
	for _, a := range d.accounts {
		userOK := subtle.ConstantTimeCompare([]byte(a.Username), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) == 1
		if userOK && passOK {
			return a.Employee, nil
		}
	}
	return timesheet.Employee{}, apperr.ErrInvalidCredentials
}

// Employees returns all registered employees in directory order.
func (d *Directory) Employees() []timesheet.Employee {
	out := make([]timesheet.Employee, len(d.accounts))
	for i, a := range d.accounts {
		out[i] = a.Employee
	}
	return out
}
