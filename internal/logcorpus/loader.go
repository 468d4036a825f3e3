package logcorpus

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var fixtureFS embed.FS

// LoadScenario reads a single scenario by name from the embedded fixtures.
func LoadScenario(name string) (*Scenario, error) {
	data, err := fixtureFS.ReadFile(name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("scenario %q not found (available: %s): %w",
			name, strings.Join(embeddedNames(), ", "), err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", name, err)
	}
	if s.Name == "" {
		s.Name = name
	}
	return &s, nil
}

// Default returns the embedded fixture corpus. The fixtures ship inside
// the binary, so a load failure is a build defect and panics.
func Default() *Corpus {
	var scenarios []*Scenario
	for _, name := range embeddedNames() {
		s, err := LoadScenario(name)
		if err != nil {
			panic(fmt.Sprintf("load embedded scenario %q: %v", name, err))
		}
		scenarios = append(scenarios, s)
	}
	return New(scenarios...)
}

func embeddedNames() []string {
	entries, _ := fixtureFS.ReadDir(".")
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	return names
}
