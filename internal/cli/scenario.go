package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProcessSpec is one process of a scenario file. Times are in whole
// scheduler time units.
type ProcessSpec struct {
	Arrival       int     `yaml:"arrival"`
	Work          int     `yaml:"work"`
	Tickets       int     `yaml:"tickets"`
	IOProbability float64 `yaml:"io_probability"`
}

// Scenario describes a full simulation: the algorithm, its parameters and
// the process mix.
type Scenario struct {
	Algorithm string        `yaml:"algorithm"`
	Quantum   int           `yaml:"quantum"`
	Seed      int64         `yaml:"seed"`
	Processes []ProcessSpec `yaml:"processes"`
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}

	if err := sc.validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (s *Scenario) validate() error {
	if len(s.Processes) == 0 {
		return fmt.Errorf("scenario has no processes")
	}
	for i, p := range s.Processes {
		if p.Work <= 0 {
			return fmt.Errorf("process %d: work must be positive", i)
		}
		if p.Arrival < 0 {
			return fmt.Errorf("process %d: arrival cannot be negative", i)
		}
		if p.IOProbability < 0 || p.IOProbability > 1 {
			return fmt.Errorf("process %d: io_probability must be in [0, 1]", i)
		}
	}
	return nil
}
