package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oomph-ac/leapvox/highlight"
	"github.com/oomph-ac/leapvox/input"
	"github.com/oomph-ac/leapvox/world"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains everything that can be configured for leapvox.
type Settings struct {
	Highlight struct {
		// Distance is the reach of the highlight ray in blocks.
		Distance float32
		// FrequencyMS is the minimum interval between two target resolutions. A negative value resolves
		// on every tick.
		FrequencyMS int64
		Animate     bool
		// Rate and Tolerance configure the cursor easing.
		Rate      float32
		Tolerance float32
	}
	Input struct {
		JumpPrecision    float32
		ForwardThreshold float32
		EnableGestures   bool
		AimSpreadYaw     float32
		AimSpreadPitch   float32
		HistorySize      int
		MaxSpeed         float32
	}
	World struct {
		// Generator is one of "room", "flat", "noise" or "empty".
		Generator    string
		RoomSize     int
		Seed         uint64
		PregenRadius int32
		ChunkRadius  int32
	}
	Log struct {
		Level string
	}
	Sentry struct {
		DSN         string
		Environment string
	}
	Debug struct {
		StatsView  bool
		StatsAddr  string
		StreamAddr string
		RecordPath string
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	settings := Settings{}
	settings.Highlight.Distance = highlight.DefaultDistance
	settings.Highlight.FrequencyMS = highlight.DefaultFrequency.Milliseconds()
	settings.Highlight.Animate = true
	settings.Highlight.Rate = highlight.DefaultEasing.Rate
	settings.Highlight.Tolerance = highlight.DefaultEasing.Tolerance

	settings.Input.JumpPrecision = input.DefaultJumpPrecision
	settings.Input.ForwardThreshold = input.DefaultForwardThreshold
	settings.Input.EnableGestures = true
	settings.Input.AimSpreadYaw = 60
	settings.Input.AimSpreadPitch = 40
	settings.Input.HistorySize = input.DefaultHistorySize
	settings.Input.MaxSpeed = input.DefaultMaxSpeed

	settings.World.Generator = "room"
	settings.World.RoomSize = 16
	settings.World.Seed = 1
	settings.World.PregenRadius = 1
	settings.World.ChunkRadius = 4

	settings.Log.Level = "info"
	settings.Sentry.Environment = "development"
	settings.Debug.StatsAddr = "localhost:18066"
	return settings
}

// HighlightOpts converts the highlight settings to tracker options.
func (s Settings) HighlightOpts() highlight.Opts {
	return highlight.Opts{
		Distance:  s.Highlight.Distance,
		Frequency: time.Duration(s.Highlight.FrequencyMS) * time.Millisecond,
		Animate:   s.Highlight.Animate,
		Ease:      highlight.Easing{Rate: s.Highlight.Rate, Tolerance: s.Highlight.Tolerance}.Step,
		Style:     highlight.DefaultStyle,
	}
}

// InputOpts converts the input settings to aggregator options.
func (s Settings) InputOpts() input.Opts {
	return input.Opts{
		JumpPrecision:    s.Input.JumpPrecision,
		ForwardThreshold: s.Input.ForwardThreshold,
		DisableGestures:  !s.Input.EnableGestures,
		AimSpreadYaw:     s.Input.AimSpreadYaw,
		AimSpreadPitch:   s.Input.AimSpreadPitch,
		HistorySize:      s.Input.HistorySize,
		MaxSpeed:         s.Input.MaxSpeed,
	}
}

// WorldGenerator returns the generator named in the world settings.
func (s Settings) WorldGenerator() (world.Generator, error) {
	switch strings.ToLower(s.World.Generator) {
	case "", "room":
		if s.World.RoomSize <= 0 {
			return nil, fmt.Errorf("room size must be positive, got %d", s.World.RoomSize)
		}
		return world.RoomGenerator(s.World.RoomSize), nil
	case "flat":
		return world.FlatGenerator(0), nil
	case "noise":
		return world.NoiseGenerator(s.World.Seed, 0, 8), nil
	case "empty":
		return world.EmptyGenerator, nil
	}
	return nil, fmt.Errorf("unknown world generator %q", s.World.Generator)
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
// Paths ending in .yaml or .yml are written as YAML, everything else as TOML.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := marshal(path, DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %v", err)
	}
	return nil
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	var settings Settings
	if isYAML(path) {
		err = yaml.Unmarshal(data, &settings)
	} else {
		err = toml.Unmarshal(data, &settings)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	return settings, nil
}

func marshal(path string, s Settings) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(s)
	}
	return toml.Marshal(s)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
