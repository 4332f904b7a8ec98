package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/starford/jera/internal/directory"
	"github.com/starford/jera/internal/timesheet"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	SQLite    SQLiteConfig      `yaml:"sqlite"`
	Timesheet TimesheetConfig   `yaml:"timesheet"`
	Directory DirectoryConfig   `yaml:"directory"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Timesheet.Validate(); err != nil {
		return err
	}
	return c.Directory.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// TimesheetConfig holds the weekly acceptance rules and seeding behaviour.
//
// TargetHours is kept as a decimal string so fractional targets like "37.5"
// survive YAML round-trips exactly.
type TimesheetConfig struct {
	TargetHours string `yaml:"target_hours"`
	Seed        bool   `yaml:"seed"`
}

// Validate validates the timesheet configuration.
func (c *TimesheetConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TargetHours, validation.Required, validation.By(decimalHours)),
	)
}

func decimalHours(value interface{}) error {
	s, _ := value.(string)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("must be a decimal number")
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

// Target returns the weekly target as a decimal, falling back to the
// default when the config was never validated.
func (c *TimesheetConfig) Target() decimal.Decimal {
	d, err := decimal.NewFromString(c.TargetHours)
	if err != nil {
		return timesheet.DefaultTargetHours
	}
	return d
}

// DirectoryConfig holds the employee accounts allowed to sign in.
type DirectoryConfig struct {
	Employees []EmployeeConfig `yaml:"employees"`
}

// Validate validates the directory configuration.
func (c *DirectoryConfig) Validate() error {
	if len(c.Employees) == 0 {
		return fmt.Errorf("directory: at least one employee is required")
	}
	ids := make(map[int]bool, len(c.Employees))
	usernames := make(map[string]bool, len(c.Employees))
	for i := range c.Employees {
		e := &c.Employees[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("directory: employee %d: %w", i+1, err)
		}
		if ids[e.ID] {
			return fmt.Errorf("directory: duplicate employee id %d", e.ID)
		}
		if usernames[e.Username] {
			return fmt.Errorf("directory: duplicate username %q", e.Username)
		}
		ids[e.ID] = true
		usernames[e.Username] = true
	}
	return nil
}

// Accounts converts the configured employees into directory accounts.
func (c *DirectoryConfig) Accounts() []directory.Account {
	accounts := make([]directory.Account, len(c.Employees))
	for i, e := range c.Employees {
		accounts[i] = directory.Account{
			Employee: timesheet.Employee{Number: e.ID, Name: e.Name},
			Username: e.Username,
			Password: e.Password,
		}
	}
	return accounts
}

// EmployeeConfig holds one employee account.
type EmployeeConfig struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Validate validates the employee account.
func (c *EmployeeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required, validation.Min(1)),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Password, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./jera.db",
		},
		Timesheet: TimesheetConfig{
			TargetHours: "40",
		},
	}
}
