package sim

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/automoto/paradox/components"
	"gopkg.in/yaml.v3"
)

// Step holds an input from At seconds until the next step for the same hero.
// An empty Hero applies to every hero without a step of its own.
type Step struct {
	At         float64 `yaml:"at"`
	Hero       string  `yaml:"hero,omitempty"`
	Horizontal float64 `yaml:"horizontal"`
	Jump       bool    `yaml:"jump"`
}

// Script is a timed input track. It implements systems.InputSource.
type Script struct {
	steps    []Step
	tickRate int
}

var ErrBadScript = errors.New("sim: invalid script")

func NewScript(tickRate int, steps ...Step) (*Script, error) {
	if tickRate <= 0 {
		return nil, fmt.Errorf("tick rate %d: %w", tickRate, ErrBadScript)
	}
	for i, s := range steps {
		if s.At < 0 {
			return nil, fmt.Errorf("step %d at %v: %w", i, s.At, ErrBadScript)
		}
		if s.Horizontal < -1 || s.Horizontal > 1 {
			return nil, fmt.Errorf("step %d horizontal %v outside [-1, 1]: %w", i, s.Horizontal, ErrBadScript)
		}
	}
	sorted := append([]Step(nil), steps...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Script{steps: sorted, tickRate: tickRate}, nil
}

type scriptFile struct {
	Steps []Step `yaml:"steps"`
}

// LoadScript reads a YAML file with a top-level steps list.
func LoadScript(path string, tickRate int) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sim: load script %s: %w", path, err)
	}
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sim: unmarshal script %s: %w", path, err)
	}
	return NewScript(tickRate, f.Steps...)
}

// Duration is the time of the last step.
func (s *Script) Duration() float64 {
	if len(s.steps) == 0 {
		return 0
	}
	return s.steps[len(s.steps)-1].At
}

func (s *Script) Input(tick uint64, hero *components.HeroData) components.InputData {
	now := float64(tick) / float64(s.tickRate)
	var (
		own, shared       components.InputData
		hasOwn, hasShared bool
	)
	for _, step := range s.steps {
		if step.At > now {
			break
		}
		in := components.InputData{Horizontal: step.Horizontal, Jump: step.Jump}
		switch step.Hero {
		case hero.Name:
			own, hasOwn = in, true
		case "":
			shared, hasShared = in, true
		}
	}
	if hasOwn {
		return own
	}
	if hasShared {
		return shared
	}
	return components.InputData{}
}
