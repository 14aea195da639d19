package simulation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tochemey/goakt/v3/log"
)

const (
	ScenarioWrap   = "wrap"
	ScenarioCircle = "circle"
)

//go:embed config.schema.json
var configSchemaJSON string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("config.schema.json", configSchemaJSON)
})

type Config struct {
	// Preset names the configuration the file starts from.
	Preset string `json:"preset,omitempty"`

	// Region
	Scenario     string  `json:"scenario"` // "wrap" or "circle"
	WorldWidth   float64 `json:"worldWidth"`
	WorldHeight  float64 `json:"worldHeight"`
	ArenaCenterX float64 `json:"arenaCenterX"`
	ArenaCenterY float64 `json:"arenaCenterY"`
	ArenaRadius  float64 `json:"arenaRadius"`

	// Population
	InitialAgents    int `json:"initialAgents"`
	InitialObstacles int `json:"initialObstacles"`

	// Flocking
	MaxSpeed         float64 `json:"maxSpeed"`
	NeighborRadius   float64 `json:"neighborRadius"`
	SeparationRadius float64 `json:"separationRadius"`
	CohesionScale    float64 `json:"cohesionScale"`
	Steering         string  `json:"steering"` // "blended" or "snapped"

	// Obstacles
	ObstacleRadius float64 `json:"obstacleRadius"` // 0 uses neighborRadius
	ObstacleGain   float64 `json:"obstacleGain"`
	ObstacleLaw    string  `json:"obstacleLaw"` // "inverse-square" or "inverse-linear"

	DriftWhenIsolated  bool `json:"driftWhenIsolated"`
	ClampOnSpeedChange bool `json:"clampOnSpeedChange"`

	// Engine
	SpatialIndex bool   `json:"spatialIndex"`
	Workers      int    `json:"workers"`
	Seed         uint64 `json:"seed"`
	TPS          int    `json:"tps"`

	// Slider range of the front-end speed control
	MinSliderSpeed float64 `json:"minSliderSpeed"`
	MaxSliderSpeed float64 `json:"maxSliderSpeed"`

	DisplayNeighborRadius bool `json:"displayNeighborRadius"`
}

// DefaultConfig is the reference setup: an 800x600 wrapping world with 50 agents.
func DefaultConfig() *Config {
	return &Config{
		Preset:           "reference",
		Scenario:         ScenarioWrap,
		WorldWidth:       800,
		WorldHeight:      600,
		ArenaCenterX:     400,
		ArenaCenterY:     300,
		ArenaRadius:      250,
		InitialAgents:    50,
		MaxSpeed:         4,
		NeighborRadius:   70,
		SeparationRadius: 30,
		CohesionScale:    100,
		Steering:         flock.Blended.String(),
		ObstacleRadius:   50,
		ObstacleGain:     1,
		ObstacleLaw:      flock.InverseSquare.String(),
		Workers:          1,
		Seed:             1,
		TPS:              60,
		MinSliderSpeed:   1,
		MaxSliderSpeed:   10,
	}
}

var presets = map[string]func() *Config{
	"reference": DefaultConfig,
	// classic reproduces the wrap-around program: snapped rules, agents never stop.
	"classic": func() *Config {
		c := DefaultConfig()
		c.Preset = "classic"
		c.Steering = flock.Snapped.String()
		c.DriftWhenIsolated = true
		return c
	},
	// arena reproduces the interactive circular arena, which starts empty.
	"arena": func() *Config {
		c := DefaultConfig()
		c.Preset = "arena"
		c.Scenario = ScenarioCircle
		c.NeighborRadius = 45
		c.InitialAgents = 0
		c.DriftWhenIsolated = true
		return c
	},
}

// Presets lists the preset names in a stable order.
func Presets() []string {
	return slices.Sorted(maps.Keys(presets))
}

// PresetConfig returns a fresh copy of the named preset.
func PresetConfig(name string) (*Config, error) {
	mk, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (want one of %s)", name, strings.Join(Presets(), ", "))
	}
	return mk(), nil
}

// LoadConfig loads a JSON or TOML configuration file, validates it against the
// embedded schema and overlays it on its preset (the reference one by default).
func LoadConfig(configFile string) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(configFile), ".toml") {
		var doc map[string]any
		if _, err := toml.Decode(string(b), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
		if b, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config toml: %w", err)
		}
	}
	return ParseConfig(b)
}

// ParseConfig validates a JSON document and overlays it on its preset.
func ParseConfig(b []byte) (*Config, error) {
	sch, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	preset := "reference"
	if doc, ok := v.(map[string]any); ok {
		if name, ok := doc["preset"].(string); ok {
			preset = name
		}
	}
	cfg, err := PresetConfig(preset)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if _, err := cfg.Params(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Region builds the confinement region of the scenario.
func (c *Config) Region() (flock.Confinement, error) {
	switch c.Scenario {
	case ScenarioWrap, "":
		return flock.Wrap{Width: c.WorldWidth, Height: c.WorldHeight}, nil
	case ScenarioCircle:
		return flock.Circle{
			Center: geometry.NewVector(c.ArenaCenterX, c.ArenaCenterY),
			Radius: c.ArenaRadius,
		}, nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", c.Scenario)
	}
}

// Params converts the configuration into validated flock parameters.
func (c *Config) Params() (flock.Params, error) {
	if c.MinSliderSpeed > c.MaxSliderSpeed {
		return flock.Params{}, fmt.Errorf("minSliderSpeed %v exceeds maxSliderSpeed %v", c.MinSliderSpeed, c.MaxSliderSpeed)
	}
	region, err := c.Region()
	if err != nil {
		return flock.Params{}, err
	}
	law, err := flock.ParseObstacleLaw(c.ObstacleLaw)
	if err != nil {
		return flock.Params{}, err
	}
	steering, err := flock.ParseSteering(c.Steering)
	if err != nil {
		return flock.Params{}, err
	}

	p := flock.Params{
		MaxSpeed:           c.MaxSpeed,
		NeighborRadius:     c.NeighborRadius,
		SeparationRadius:   c.SeparationRadius,
		CohesionScale:      c.CohesionScale,
		ObstacleRadius:     c.ObstacleRadius,
		ObstacleGain:       c.ObstacleGain,
		ObstacleLaw:        law,
		Steering:           steering,
		Confinement:        region,
		DriftWhenIsolated:  c.DriftWhenIsolated,
		ClampOnSpeedChange: c.ClampOnSpeedChange,
		SpatialIndex:       c.SpatialIndex,
		Workers:            c.Workers,
		Seed:               c.Seed,
	}
	if err := p.Validate(); err != nil {
		return flock.Params{}, err
	}
	return p, nil
}

// ResolveConfig loads configFile when set, the named preset otherwise.
func ResolveConfig(configFile, preset string) (*Config, error) {
	if configFile != "" {
		return LoadConfig(configFile)
	}
	if preset == "" {
		return DefaultConfig(), nil
	}
	return PresetConfig(preset)
}

// LogLevel maps a command-line level name to a goakt log level.
func LogLevel(name string) (log.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarningLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InvalidLevel, fmt.Errorf("unknown log level %q", name)
	}
}
