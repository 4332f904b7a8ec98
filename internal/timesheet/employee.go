package timesheet

// Employee is the opaque identity consumed from the employee directory.
// The timesheet core needs nothing from it beyond equality by number.
type Employee struct {
	Number int    `json:"id"`
	Name   string `json:"name"`
}

// Equal reports whether both values identify the same employee.
func (e Employee) Equal(other Employee) bool {
	return e.Number == other.Number
}
