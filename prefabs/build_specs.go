package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

type TextureAtlasComponentSpec struct {
	Layout string `yaml:"layout"`
	Index  int    `yaml:"index"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type ViewActorComponentSpec struct {
	Actor  string `yaml:"actor"`
	Action string `yaml:"action"`
	Angle  string `yaml:"angle"`
	// FrameMS is the time each atlas frame is shown. Zero uses the plugin
	// default.
	FrameMS         int      `yaml:"frame_ms"`
	NextActions     []string `yaml:"next_actions"`
	NotifyLastFrame bool     `yaml:"notify_last_frame"`
}

type ViewScriptComponentSpec struct {
	Path  string         `yaml:"path"`
	State map[string]any `yaml:"state"`
}

type PhysicsBodyComponentSpec struct {
	Mass      float64 `yaml:"mass"`
	Radius    float64 `yaml:"radius"`
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
}
