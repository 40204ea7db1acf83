// Package config loads the run configuration knobs of §6: the
// competition start date, length, rest-days rule, slot spread, and the
// input/output directory.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

const dateLayout = "2006-01-02"

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := ParseDate(value.Value)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses a date in the config's YYYY-MM-DD layout, the same
// layout accepted by the generate command's --start-date flag.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Config is the full set of run configuration knobs.
type Config struct {
	// Directory holds the three input files (fixtures, slots,
	// old_fixtures) and is where the output file is written.
	Directory string `yaml:"directory"`
	// StartDate is the competition's first week; informational only,
	// used for the derived output filename.
	StartDate Date `yaml:"start_date"`
	// Weeks is the number W of competition weeks to model.
	Weeks int `yaml:"weeks"`
	// RestDays is the minimum inter-match gap in days per team.
	RestDays int `yaml:"rest_days"`
	// Spread is the stride, in weeks, between a team's successive home
	// slots. Spread 2 interleaves with another competition.
	Spread int `yaml:"spread"`
	// CSV selects CSV input/output instead of the xlsx default.
	CSV bool `yaml:"csv"`
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Config{Spread: 1}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// Validate re-checks the configuration's invariants; callers that override
// fields loaded from YAML (e.g. the generate command's flags) should call
// it again before using the result.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return fmt.Errorf("directory is required")
	}
	if c.Weeks <= 0 {
		return fmt.Errorf("weeks must be positive, got %d", c.Weeks)
	}
	if c.RestDays < 0 {
		return fmt.Errorf("rest_days must not be negative, got %d", c.RestDays)
	}
	if c.Spread < 1 {
		return fmt.Errorf("spread must be at least 1, got %d", c.Spread)
	}
	return nil
}

// fixtureExtension is the input/output file extension for the selected
// format.
func (c *Config) fixtureExtension() string {
	if c.CSV {
		return "csv"
	}
	return "xlsx"
}

// FixturesPath, SlotsPath and OldFixturesPath locate the three input
// files within Directory.
func (c *Config) FixturesPath() string {
	return fmt.Sprintf("%s/fixtures.%s", strings.TrimRight(c.Directory, "/"), c.fixtureExtension())
}

func (c *Config) SlotsPath() string {
	return fmt.Sprintf("%s/slots.%s", strings.TrimRight(c.Directory, "/"), c.fixtureExtension())
}

func (c *Config) OldFixturesPath() string {
	return fmt.Sprintf("%s/old_fixtures.%s", strings.TrimRight(c.Directory, "/"), c.fixtureExtension())
}

// OutputFilename derives the result file's name from the directory's
// final hyphen-delimited segment, the start date, and the run's
// weeks/rest-days knobs.
func (c *Config) OutputFilename() string {
	dir := strings.TrimRight(c.Directory, "/")
	segments := strings.Split(dir, "-")
	suffix := segments[len(segments)-1]

	return fmt.Sprintf("results-%s-%s-%dwks-%drestdays.%s",
		suffix, c.StartDate.Time.Format("02Jan"), c.Weeks, c.RestDays, c.fixtureExtension())
}

// OutputPath is OutputFilename joined onto Directory.
func (c *Config) OutputPath() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.Directory, "/"), c.OutputFilename())
}
