package config

import (
	"fmt"
	"os"

	"github.com/san-kum/galaxy/internal/galaxy"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFOV           = 50.0
	DefaultNear          = 0.1
	DefaultFar           = 100.0
	DefaultDamping       = 0.05
	DefaultWidth         = 1280
	DefaultHeight        = 720
	DefaultFPS           = 60
	DefaultMaxPixelRatio = 2.0
	DefaultTitle         = "Star Wars"
	DefaultBudgetMB      = 64
	DefaultTheme         = "nebula"
)

type Config struct {
	Seed    uint64        `yaml:"seed"`
	Galaxy  GalaxyConfig  `yaml:"galaxy"`
	Camera  CameraConfig  `yaml:"camera"`
	Window  WindowConfig  `yaml:"window"`
	Label   LabelConfig   `yaml:"label"`
	Render  RenderConfig  `yaml:"render"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// GalaxyConfig mirrors galaxy.Parameters with colors kept as hex strings.
type GalaxyConfig struct {
	Count           int     `yaml:"count"`
	Size            float64 `yaml:"size"`
	Radius          float64 `yaml:"radius"`
	Branches        int     `yaml:"branches"`
	Spin            float64 `yaml:"spin"`
	Randomness      float64 `yaml:"randomness"`
	RandomnessPower float64 `yaml:"randomness_power"`
	InsideColor     string  `yaml:"inside_color"`
	OutsideColor    string  `yaml:"outside_color"`
}

type CameraConfig struct {
	FOV      float64    `yaml:"fov"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
	Damping  float64    `yaml:"damping"`
}

type WindowConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	FPS           int     `yaml:"fps"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
}

type LabelConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Text           string  `yaml:"text"`
	Font           string  `yaml:"font"`
	Size           float64 `yaml:"size"`
	Height         float64 `yaml:"height"`
	BevelThickness float64 `yaml:"bevel_thickness"`
	BevelSize      float64 `yaml:"bevel_size"`
	OffsetY        float64 `yaml:"offset_y"`
}

type RenderConfig struct {
	BudgetMB int `yaml:"budget_mb"`
	// MaxDrawn caps particles projected per terminal frame; 0 draws all.
	MaxDrawn int `yaml:"max_drawn"`
}

// UIConfig holds terminal viewer settings. Guide draws the ground axes under
// the galaxy.
type UIConfig struct {
	Theme string `yaml:"theme"`
	Guide bool   `yaml:"guide"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func DefaultConfig() *Config {
	p := galaxy.DefaultParameters()
	return &Config{
		Galaxy: FromParameters(p),
		Camera: CameraConfig{
			FOV:      DefaultFOV,
			Near:     DefaultNear,
			Far:      DefaultFar,
			Position: [3]float64{1, 3, 3},
			Damping:  DefaultDamping,
		},
		Window: WindowConfig{
			Width:         DefaultWidth,
			Height:        DefaultHeight,
			FPS:           DefaultFPS,
			MaxPixelRatio: DefaultMaxPixelRatio,
		},
		Label: LabelConfig{
			Enabled:        true,
			Text:           DefaultTitle,
			Size:           0.5,
			Height:         0.2,
			BevelThickness: 0.03,
			BevelSize:      0.02,
			OffsetY:        0.5,
		},
		Render: RenderConfig{
			BudgetMB: DefaultBudgetMB,
			MaxDrawn: 200000,
		},
		UI: UIConfig{
			Theme: DefaultTheme,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := cfg.Galaxy.Parameters(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Parameters converts the config section into generator parameters.
func (g GalaxyConfig) Parameters() (galaxy.Parameters, error) {
	inside, err := galaxy.ParseColor(g.InsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("inside_color %q: %w", g.InsideColor, err)
	}
	outside, err := galaxy.ParseColor(g.OutsideColor)
	if err != nil {
		return galaxy.Parameters{}, fmt.Errorf("outside_color %q: %w", g.OutsideColor, err)
	}
	return galaxy.Parameters{
		Count:           g.Count,
		Size:            g.Size,
		Radius:          g.Radius,
		Branches:        g.Branches,
		Spin:            g.Spin,
		Randomness:      g.Randomness,
		RandomnessPower: g.RandomnessPower,
		InsideColor:     inside,
		OutsideColor:    outside,
	}, nil
}

func FromParameters(p galaxy.Parameters) GalaxyConfig {
	return GalaxyConfig{
		Count:           p.Count,
		Size:            p.Size,
		Radius:          p.Radius,
		Branches:        p.Branches,
		Spin:            p.Spin,
		Randomness:      p.Randomness,
		RandomnessPower: p.RandomnessPower,
		InsideColor:     p.InsideColor.Hex(),
		OutsideColor:    p.OutsideColor.Hex(),
	}
}

// BudgetBytes returns the host buffer budget, zero meaning unlimited.
func (r RenderConfig) BudgetBytes() int64 {
	if r.BudgetMB <= 0 {
		return 0
	}
	return int64(r.BudgetMB) << 20
}
