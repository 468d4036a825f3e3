// Package logcorpus provides the canonical Spark failure-log fixtures and
// read-only keyed access to them. Every lookup is total: an unknown key
// returns an inspectable "not found" text instead of an error, so agent
// callers can surface it like any other log.
package logcorpus

import (
	"fmt"
	"sort"
	"strings"
)

// Scenario is one failure case: a driver log, the logs of the executors
// involved, and the ground-truth label the classifier should reproduce.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	FailureType string         `yaml:"failure_type"`
	Confidence  string         `yaml:"confidence"`
	DriverLog   string         `yaml:"driver_log"`
	Executors   map[int]string `yaml:"executors"`
}

// PrimaryExecutor returns the lowest executor ID in the scenario, or 0
// when the scenario has no executor logs.
func (s *Scenario) PrimaryExecutor() int {
	ids := make([]int, 0, len(s.Executors))
	for id := range s.Executors {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return 0
	}
	sort.Ints(ids)
	return ids[0]
}

// Corpus is an immutable scenario table. Construct with New (arbitrary
// fixtures, e.g. in tests) or Default (the embedded corpus).
type Corpus struct {
	scenarios map[string]*Scenario
}

// New builds a corpus from the given scenarios, keyed by name.
func New(scenarios ...*Scenario) *Corpus {
	m := make(map[string]*Scenario, len(scenarios))
	for _, s := range scenarios {
		m[s.Name] = s
	}
	return &Corpus{scenarios: m}
}

// List returns all scenario names, sorted.
func (c *Corpus) List() []string {
	names := make([]string, 0, len(c.scenarios))
	for name := range c.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenario returns the named scenario, or nil when absent.
func (c *Corpus) Scenario(name string) *Scenario {
	return c.scenarios[name]
}

// DriverLog returns the driver log for a scenario, or a "not found"
// sentinel text for an unknown scenario.
func (c *Corpus) DriverLog(scenario string) string {
	s, ok := c.scenarios[scenario]
	if !ok {
		return c.notFound("scenario %q", scenario)
	}
	return s.DriverLog
}

// ExecutorLog returns the log of one executor in a scenario, or a
// "not found" sentinel text.
func (c *Corpus) ExecutorLog(id int, scenario string) string {
	s, ok := c.scenarios[scenario]
	if !ok {
		return c.notFound("scenario %q", scenario)
	}
	log, ok := s.Executors[id]
	if !ok {
		return fmt.Sprintf("Error: log not found for executor %d in scenario %q", id, scenario)
	}
	return log
}

// GetLog resolves a flat key of the form "<scenario>_driver" or
// "<scenario>_executor" (primary executor). Unknown keys yield the
// sentinel text.
func (c *Corpus) GetLog(key string) string {
	scenario, kind, ok := strings.Cut(key, "_")
	if ok {
		if s := c.scenarios[scenario]; s != nil {
			switch kind {
			case "driver":
				return s.DriverLog
			case "executor":
				if log, ok := s.Executors[s.PrimaryExecutor()]; ok {
					return log
				}
			}
		}
	}
	return c.notFound("log key %q", key)
}

func (c *Corpus) notFound(format string, args ...any) string {
	what := fmt.Sprintf(format, args...)
	return fmt.Sprintf("Error: %s not found (available scenarios: %s)",
		what, strings.Join(c.List(), ", "))
}
