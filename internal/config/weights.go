package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/orderseed/internal/calendar"
	"github.com/dshills/orderseed/internal/composer"
)

// WeightsFile is the YAML layout of the weights file. Every section is
// optional; a missing section keeps the built-in table.
//
//	combos:
//	  - name: meal
//	    categories: [Meal]
//	    probability: 0.4
//	sellables:
//	  Meal:
//	    - {name: Bowl, probability: 0.4}
//	items:
//	  entree:
//	    - {name: Orange Chicken, probability: 0.35}
//	schedule:
//	  timezone: America/Los_Angeles
//	  days:
//	    sunday: {closed: true}
//	    friday: {open: "10:00", close: "22:00"}
type WeightsFile struct {
	Combos    []ComboEntry             `yaml:"combos"`
	Sellables map[string][]WeightEntry `yaml:"sellables"`
	Items     map[string][]WeightEntry `yaml:"items"`
	Schedule  *ScheduleEntry           `yaml:"schedule"`
}

// ComboEntry is one combo template
type ComboEntry struct {
	Name        string   `yaml:"name"`
	Categories  []string `yaml:"categories"`
	Probability float64  `yaml:"probability"`
}

// WeightEntry weights a sellable or item by name
type WeightEntry struct {
	Name        string  `yaml:"name"`
	Probability float64 `yaml:"probability"`
}

// ScheduleEntry overrides the weekly schedule
type ScheduleEntry struct {
	Timezone string              `yaml:"timezone"`
	Days     map[string]DayEntry `yaml:"days"` // Lowercase weekday name
}

// DayEntry is the hours of one weekday
type DayEntry struct {
	Closed bool   `yaml:"closed"`
	Open   string `yaml:"open"`
	Close  string `yaml:"close"`
}

// Weights returns the weight tables and schedule to run with: the built-in
// defaults in the configured time zone, overridden by the weights file
// when one is set
func (c *Config) Weights() (composer.Tables, calendar.Schedule, error) {
	tables := composer.DefaultTables()
	schedule := calendar.DefaultSchedule()
	if c.Location != nil {
		schedule.Location = c.Location
	}
	if c.WeightsFile == "" {
		return tables, schedule, nil
	}

	data, err := os.ReadFile(c.WeightsFile)
	if err != nil {
		return tables, schedule, fmt.Errorf("failed to read weights file: %w", err)
	}
	return ParseWeights(data, tables, schedule)
}

// ParseWeights applies a YAML weights document on top of tables and schedule
func ParseWeights(data []byte, tables composer.Tables, schedule calendar.Schedule) (composer.Tables, calendar.Schedule, error) {
	var file WeightsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return tables, schedule, fmt.Errorf("%w: weights file: %v", ErrInvalidConfig, err)
	}

	if len(file.Combos) > 0 {
		tables.Combos = make([]composer.ComboTemplate, len(file.Combos))
		for i, c := range file.Combos {
			tables.Combos[i] = composer.ComboTemplate{
				Name:        c.Name,
				Categories:  c.Categories,
				Probability: c.Probability,
			}
		}
	}
	if len(file.Sellables) > 0 {
		tables.Sellables = convertWeights(file.Sellables)
	}
	if len(file.Items) > 0 {
		tables.Items = convertWeights(file.Items)
	}
	if err := tables.Validate(); err != nil {
		return tables, schedule, err
	}

	if file.Schedule != nil {
		var err error
		if schedule, err = applySchedule(*file.Schedule, schedule); err != nil {
			return tables, schedule, err
		}
	}
	return tables, schedule, nil
}

func convertWeights(in map[string][]WeightEntry) map[string][]composer.Weight {
	out := make(map[string][]composer.Weight, len(in))
	for name, entries := range in {
		weights := make([]composer.Weight, len(entries))
		for i, e := range entries {
			weights[i] = composer.Weight{Name: e.Name, Probability: e.Probability}
		}
		out[name] = weights
	}
	return out
}

func applySchedule(entry ScheduleEntry, schedule calendar.Schedule) (calendar.Schedule, error) {
	if entry.Timezone != "" {
		loc, err := time.LoadLocation(entry.Timezone)
		if err != nil {
			return schedule, fmt.Errorf("%w: schedule timezone: %v", ErrInvalidConfig, err)
		}
		schedule.Location = loc
	}

	for name, day := range entry.Days {
		wd, ok := parseWeekday(name)
		if !ok {
			return schedule, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}
		if day.Closed {
			schedule.Days[wd] = calendar.DayHours{Closed: true}
			continue
		}
		open, err := calendar.ParseTimeOfDay(day.Open)
		if err != nil {
			return schedule, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		closing, err := calendar.ParseTimeOfDay(day.Close)
		if err != nil {
			return schedule, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		schedule.Days[wd] = calendar.DayHours{Open: open, Close: closing}
	}

	if err := schedule.Validate(); err != nil {
		return schedule, err
	}
	return schedule, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(name, wd.String()) {
			return wd, true
		}
	}
	return 0, false
}
