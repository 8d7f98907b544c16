package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/renderer"
)

// EnvPrefix is the prefix for environment overrides, e.g. PATHTRACER_SPP=256
const EnvPrefix = "PATHTRACER"

// ConfigName is the base name of the config file searched in . and $HOME/.pathtracer
const ConfigName = "pathtracer"

// Config represents the render configuration after merging defaults,
// the config file, environment variables and flags
type Config struct {
	Width           int     `yaml:"width" mapstructure:"width"`
	Height          int     `yaml:"height" mapstructure:"height"`
	SamplesPerPixel int     `yaml:"spp" mapstructure:"spp"`
	MaxDepth        int     `yaml:"max_depth" mapstructure:"max_depth"`
	Threads         int     `yaml:"threads" mapstructure:"threads"`
	Seed            int64   `yaml:"seed" mapstructure:"seed"`
	TileSize        int     `yaml:"tile_size" mapstructure:"tile_size"`
	Gamma           float64 `yaml:"gamma" mapstructure:"gamma"`
	Output          string  `yaml:"output" mapstructure:"output"`
	SceneDir        string  `yaml:"scene_dir" mapstructure:"scene_dir"`
	VFov            float64 `yaml:"vfov" mapstructure:"vfov"` // 0 keeps the scene's camera
}

// flagKeys maps command line flag names to config keys
var flagKeys = map[string]string{
	"width":     "width",
	"height":    "height",
	"spp":       "spp",
	"max-depth": "max_depth",
	"threads":   "threads",
	"seed":      "seed",
	"tile-size": "tile_size",
	"gamma":     "gamma",
	"output":    "output",
	"scene-dir": "scene_dir",
	"vfov":      "vfov",
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	defaults := renderer.DefaultRenderOptions()
	return Config{
		Width:           defaults.Width,
		Height:          defaults.Height,
		SamplesPerPixel: defaults.SamplesPerPixel,
		MaxDepth:        defaults.MaxDepth,
		Threads:         defaults.Threads,
		Seed:            0,
		TileSize:        defaults.TileSize,
		Gamma:           1.0,
		Output:          "render.png",
		SceneDir:        "scenes",
	}
}

// New returns a viper instance with defaults and environment lookup configured
func New() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("width", defaults.Width)
	v.SetDefault("height", defaults.Height)
	v.SetDefault("spp", defaults.SamplesPerPixel)
	v.SetDefault("max_depth", defaults.MaxDepth)
	v.SetDefault("threads", defaults.Threads)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("tile_size", defaults.TileSize)
	v.SetDefault("gamma", defaults.Gamma)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("scene_dir", defaults.SceneDir)
	v.SetDefault("vfov", defaults.VFov)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds every known flag present in flags to its config key.
// Flags only override lower layers when set explicitly.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file, if any, and unmarshals the merged configuration.
// An explicit configFile must exist; the default search path may be empty.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pathtracer"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}

// RenderOptions converts the configuration into renderer options for a scene camera
func (c Config) RenderOptions(camera geometry.CameraConfig) renderer.RenderOptions {
	if c.VFov > 0 {
		camera.VFov = c.VFov
	}
	return renderer.RenderOptions{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		Threads:         c.Threads,
		Camera:          camera,
		Seed:            c.Seed,
		TileSize:        c.TileSize,
	}
}

// WriteDefault saves the default configuration as YAML
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
