package viewpoint

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/vantage/pkg/math3d"
)

// Defaults applied when a config leaves a duration unset.
const (
	DefaultTransition = 2000 * time.Millisecond
	DefaultDebounce   = 100 * time.Millisecond
)

// ErrInvalidVector is returned when a configured vector does not have
// exactly three components.
var ErrInvalidVector = errors.New("vector must have exactly 3 components")

// Config is the on-disk tour description.
//
//	transition: 2s
//	debounce: 100ms
//	viewpoints:
//	  - name: Skyline
//	    position: [0, 45, 95]
//	    lookAt: [0, 0, 0]
type Config struct {
	// Transition is how long a camera move between two poses takes.
	Transition time.Duration `yaml:"transition"`

	// Debounce is the quiet period after the last scroll event before a
	// navigation step fires.
	Debounce time.Duration `yaml:"debounce"`

	Viewpoints []ViewpointConfig `yaml:"viewpoints"`
}

// ViewpointConfig is a single catalog entry as written in YAML.
type ViewpointConfig struct {
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position"`
	LookAt   []float64 `yaml:"lookAt"`
}

// LoadConfig reads and validates a tour config from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read viewpoint config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a tour config.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse viewpoint config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid viewpoint config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the config and fills in default durations.
func (c *Config) Validate() error {
	if len(c.Viewpoints) == 0 {
		return ErrEmptyCatalog
	}
	if c.Transition < 0 {
		return fmt.Errorf("transition must not be negative, got %v", c.Transition)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %v", c.Debounce)
	}
	if c.Transition == 0 {
		c.Transition = DefaultTransition
	}
	if c.Debounce == 0 {
		c.Debounce = DefaultDebounce
	}

	for i, vp := range c.Viewpoints {
		if len(vp.Position) != 3 {
			return fmt.Errorf("viewpoint %d (%q) position: %w", i, vp.Name, ErrInvalidVector)
		}
		if len(vp.LookAt) != 3 {
			return fmt.Errorf("viewpoint %d (%q) lookAt: %w", i, vp.Name, ErrInvalidVector)
		}
	}
	return nil
}

// Catalog builds the viewpoint catalog. Unnamed entries are labelled by
// their 1-based position.
func (c *Config) Catalog() (*Catalog, error) {
	vps := make([]Viewpoint, 0, len(c.Viewpoints))
	for i, vc := range c.Viewpoints {
		if len(vc.Position) != 3 || len(vc.LookAt) != 3 {
			return nil, fmt.Errorf("viewpoint %d: %w", i, ErrInvalidVector)
		}
		name := vc.Name
		if name == "" {
			name = fmt.Sprintf("Viewpoint %d", i+1)
		}
		vps = append(vps, Viewpoint{
			Name: name,
			Pose: math3d.NewPose(
				math3d.V3(vc.Position[0], vc.Position[1], vc.Position[2]),
				math3d.V3(vc.LookAt[0], vc.LookAt[1], vc.LookAt[2]),
			),
		})
	}
	return New(vps...)
}
