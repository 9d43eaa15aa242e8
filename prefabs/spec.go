package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PluginSpec configures the view-angle plugin.
type PluginSpec struct {
	// RunStates lists the host states the view systems run in. Empty means
	// every state.
	RunStates       []string      `yaml:"run_states"`
	Manifests       []string      `yaml:"manifests"`
	HotReload       bool          `yaml:"hot_reload"`
	Diagonals       bool          `yaml:"diagonals"`
	FacingThreshold float64       `yaml:"facing_threshold"`
	FrameDuration   time.Duration `yaml:"frame_duration"`
}

const DefaultFrameDuration = 120 * time.Millisecond

func LoadPluginSpec() (*PluginSpec, error) {
	spec, err := LoadSpec[PluginSpec]("viewangle.yaml")
	if err != nil {
		return nil, err
	}
	if spec.FrameDuration <= 0 {
		spec.FrameDuration = DefaultFrameDuration
	}
	return &spec, nil
}
