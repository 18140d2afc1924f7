package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse overlays YAML data onto the defaults.
func Parse(data []byte) (File, error) {
	f := Defaults()
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if _, err := f.Mover.Controller(); err != nil {
		return File{}, err
	}
	if f.Sim.TickRate <= 0 {
		return File{}, fmt.Errorf("config: tick rate %d must be positive", f.Sim.TickRate)
	}
	switch f.Sim.Backend {
	case BackendResolv, BackendChipmunk:
	default:
		return File{}, fmt.Errorf("config: unknown backend %q", f.Sim.Backend)
	}
	return f, nil
}

// Load reads a YAML file and overlays it onto the defaults.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
