package sheaf

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultAtlasSize       = 2048
	DefaultAtlasPadding    = 1
	defaultRequestCapacity = 1024
)

// Config is the top-level configuration for a Renderer.
//
// Example YAML:
//
//	atlas:
//	  width: 1024
//	  height: 1024
//	  padding: 2
//	batch:
//	  initial_capacity: 4096
//	  max_sprites_per_group: 0
//	debug: true
type Config struct {
	Atlas AtlasConfig `yaml:"atlas"`
	Batch BatchConfig `yaml:"batch"`
	// Debug enables per-flush statistics logged at debug level.
	Debug bool `yaml:"debug"`
}

// AtlasConfig sizes an Atlas. Width and Height are fixed for the atlas
// lifetime; powers of two are recommended.
type AtlasConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Padding int `yaml:"padding"` // empty pixels kept between packed regions
}

// BatchConfig tunes a SpriteBatch.
type BatchConfig struct {
	// InitialCapacity preallocates room for this many draw requests.
	InitialCapacity int `yaml:"initial_capacity"`
	// MaxSpritesPerGroup splits a run of same-texture sprites into several
	// groups once it reaches this size. Zero means unlimited.
	MaxSpritesPerGroup int `yaml:"max_sprites_per_group"`
	// Debug logs per-flush statistics.
	Debug bool `yaml:"debug"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Atlas: AtlasConfig{
			Width:   DefaultAtlasSize,
			Height:  DefaultAtlasSize,
			Padding: DefaultAtlasPadding,
		},
		Batch: BatchConfig{
			InitialCapacity: defaultRequestCapacity,
		},
	}
}

// ParseConfig decodes YAML data on top of DefaultConfig and validates the
// result. Keys missing from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("sheaf: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Batch.Debug = cfg.Batch.Debug || cfg.Debug
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := c.Atlas.Validate(); err != nil {
		return err
	}
	if c.Batch.InitialCapacity < 0 {
		return fmt.Errorf("%w: batch.initial_capacity %d is negative", ErrInvalidConfig, c.Batch.InitialCapacity)
	}
	if c.Batch.MaxSpritesPerGroup < 0 {
		return fmt.Errorf("%w: batch.max_sprites_per_group %d is negative", ErrInvalidConfig, c.Batch.MaxSpritesPerGroup)
	}
	return nil
}

// Validate reports whether the atlas dimensions are usable.
func (c AtlasConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: atlas size %dx%d: %w", ErrInvalidConfig, c.Width, c.Height, ErrInvalidDimensions)
	}
	if c.Padding < 0 {
		return fmt.Errorf("%w: atlas padding %d: %w", ErrInvalidConfig, c.Padding, ErrInvalidDimensions)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
