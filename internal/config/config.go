package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"honnef.co/go/dubins"
)

// ErrInvalidState is returned when a state string cannot be parsed.
var ErrInvalidState = errors.New("invalid state")

// PitchConfig holds the pitch limits in degrees.
type PitchConfig struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// Config holds the settings of the dubins3d command.
type Config struct {
	LogLevel  string      `json:"logLevel" mapstructure:"logLevel"`
	Start     string      `json:"start" mapstructure:"start"`
	Goal      string      `json:"goal" mapstructure:"goal"`
	MinRadius float64     `json:"minRadius" mapstructure:"minRadius"`
	Pitch     PitchConfig `json:"pitch" mapstructure:"pitch"`
	Samples   int         `json:"samples" mapstructure:"samples"`
	Output    string      `json:"output" mapstructure:"output"`
	Format    string      `json:"format" mapstructure:"format"`
	Bounds    bool        `json:"bounds" mapstructure:"bounds"`
	Origin    string      `json:"origin" mapstructure:"origin"`
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "logLevel",
	"start":      "start",
	"goal":       "goal",
	"min-radius": "minRadius",
	"pitch-min":  "pitch.min",
	"pitch-max":  "pitch.max",
	"samples":    "samples",
	"output":     "output",
	"format":     "format",
	"bounds":     "bounds",
	"origin":     "origin",
}

// Flags registers the command line flags on fs. Flag defaults are left
// empty; defaults live in viper so that the config file can override them.
func Flags(fs *pflag.FlagSet) {
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("start", "", `start state as "x,y,z,yaw,pitch", angles in degrees`)
	fs.String("goal", "", `goal state as "x,y,z,yaw,pitch", angles in degrees`)
	fs.Float64("min-radius", 0, "minimum turning radius")
	fs.Float64("pitch-min", 0, "lowest pitch in degrees")
	fs.Float64("pitch-max", 0, "highest pitch in degrees")
	fs.Int("samples", 0, "number of states to sample")
	fs.String("output", "", `output file, "-" for stdout`)
	fs.String("format", "", "output format (csv, wkt)")
	fs.Bool("bounds", false, "also print the lower and upper length bounds")
	fs.String("origin", "", `georeference the output at "lon,lat"`)
}

// Load sets default values, reads the optional JSON config file
// dubins3d.json from configDir and binds the flags of fs, which take
// precedence over the file. fs may be nil.
func Load(configDir string, fs *pflag.FlagSet) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("start", "0,0,0,0,0")
	viper.SetDefault("goal", "100,100,100,0,0")
	viper.SetDefault("minRadius", 10.0)
	viper.SetDefault("pitch.min", -15.0)
	viper.SetDefault("pitch.max", 20.0)
	viper.SetDefault("samples", 500)
	viper.SetDefault("output", "-")
	viper.SetDefault("format", "csv")
	viper.SetDefault("bounds", false)
	viper.SetDefault("origin", "")

	viper.SetConfigName("dubins3d")
	viper.SetConfigType("json")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("error binding flag %q: %w", name, err)
			}
		}
	}
	return nil
}

// Get returns the loaded configuration.
func Get() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that the maneuver solver does not check
// itself.
func (c Config) Validate() error {
	switch c.Format {
	case "csv", "wkt":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	if c.Samples < 0 {
		return fmt.Errorf("negative sample count %d", c.Samples)
	}
	return nil
}

// Problem returns the start and goal states and the pitch limits in
// radians.
func (c Config) Problem() (qi, qf dubins.State, lims dubins.PitchLimits, err error) {
	qi, err = ParseState(c.Start)
	if err != nil {
		return qi, qf, lims, fmt.Errorf("start: %w", err)
	}
	qf, err = ParseState(c.Goal)
	if err != nil {
		return qi, qf, lims, fmt.Errorf("goal: %w", err)
	}
	lims = dubins.PitchLimits{
		Min: radians(c.Pitch.Min),
		Max: radians(c.Pitch.Max),
	}
	return qi, qf, lims, nil
}

// GeoOrigin returns the longitude and latitude at which the output is
// georeferenced. ok is false if no origin is configured.
func (c Config) GeoOrigin() (lon, lat float64, ok bool, err error) {
	if strings.TrimSpace(c.Origin) == "" {
		return 0, 0, false, nil
	}
	fields := strings.Split(c.Origin, ",")
	if len(fields) != 2 {
		return 0, 0, false, fmt.Errorf("origin %q: want lon,lat", c.Origin)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("origin %q: %w", c.Origin, err)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("origin %q: %w", c.Origin, err)
	}
	if lon < -180 || lon > 180 || lat < -85 || lat > 85 {
		return 0, 0, false, fmt.Errorf("origin %q: out of range", c.Origin)
	}
	return lon, lat, true, nil
}

// ParseState parses a state of the form "x,y,z,yaw,pitch" with yaw and
// pitch in degrees.
func ParseState(s string) (dubins.State, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 5 {
		return dubins.State{}, fmt.Errorf("%w %q: want 5 values, got %d", ErrInvalidState, s, len(fields))
	}

	var v [5]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return dubins.State{}, fmt.Errorf("%w %q: %w", ErrInvalidState, s, err)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return dubins.State{}, fmt.Errorf("%w %q: value %d is not finite", ErrInvalidState, s, i)
		}
		v[i] = x
	}

	return dubins.State{
		X:     v[0],
		Y:     v[1],
		Z:     v[2],
		Yaw:   radians(v[3]),
		Pitch: radians(v[4]),
	}, nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
