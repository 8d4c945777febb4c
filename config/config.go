package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"acoverlay/layout"
	"acoverlay/process"
	"acoverlay/window"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvFileVar names a dotenv file read underneath the process environment.
// Without it ./.env is used when present.
const EnvFileVar = "ACOVERLAY_ENV_FILE"

// Config is read from ACOVERLAY_* environment variables. The binaries
// register flags on top so the command line wins.
type Config struct {
	ProcessName string        `env:"ACOVERLAY_PROCESS" envDefault:"ac_client.exe"`
	WindowTitle string        `env:"ACOVERLAY_WINDOW" envDefault:"AssaultCube"`
	Interval    time.Duration `env:"ACOVERLAY_INTERVAL" envDefault:"16ms"`
	SkipFirst   int           `env:"ACOVERLAY_SKIP_FIRST" envDefault:"1"`
	MaxPlayers  int           `env:"ACOVERLAY_MAX_PLAYERS" envDefault:"64"`
	PointerSize int           `env:"ACOVERLAY_POINTER_SIZE" envDefault:"4"`
	ReplayDir   string        `env:"ACOVERLAY_REPLAY_DIR"`

	// used when the window cannot be looked up
	Geometry Geometry `envPrefix:"ACOVERLAY_GEOMETRY_"`
	Offsets  Offsets  `envPrefix:"ACOVERLAY_OFFSET_"`
}

type Geometry struct {
	X      int `env:"X" envDefault:"0"`
	Y      int `env:"Y" envDefault:"0"`
	Width  int `env:"WIDTH" envDefault:"0"`
	Height int `env:"HEIGHT" envDefault:"0"`
}

type Offsets struct {
	PlayerCount layout.Offset `env:"PLAYER_COUNT" envDefault:"0x18AC0C"`
	EntityList  layout.Offset `env:"ENTITY_LIST" envDefault:"0x18AC04"`
	LocalPlayer layout.Offset `env:"LOCAL_PLAYER" envDefault:"0x18AC00"`
	ViewMatrix  layout.Offset `env:"VIEW_MATRIX" envDefault:"0x17DFD0"`
}

// Load reads the process environment, layered over the dotenv file, and
// validates the result
func Load() (Config, error) {
	environ, err := readEnvFile(os.Getenv(EnvFileVar))
	if err != nil {
		return Config{}, err
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			environ[k] = v
		}
	}
	return LoadFrom(environ)
}

func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return vars, nil
}

// LoadFrom reads a fixed environment instead of the process one
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.ProcessName == "" && c.ReplayDir == "" {
		errs = append(errs, errors.New("process name is empty"))
	}
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval %s must be positive", c.Interval))
	}
	if c.SkipFirst < 0 {
		errs = append(errs, fmt.Errorf("skip first %d is negative", c.SkipFirst))
	}
	if c.MaxPlayers <= 0 {
		errs = append(errs, fmt.Errorf("max players %d must be positive", c.MaxPlayers))
	}
	if !c.Pointer().Valid() {
		errs = append(errs, fmt.Errorf("pointer size %d is not 4 or 8", c.PointerSize))
	}
	if err := c.OffsetTable().Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) Pointer() process.PointerSize {
	return process.PointerSize(c.PointerSize)
}

func (c Config) OffsetTable() layout.OffsetTable {
	return layout.OffsetTable{
		PlayerCount: c.Offsets.PlayerCount,
		EntityList:  c.Offsets.EntityList,
		LocalPlayer: c.Offsets.LocalPlayer,
		ViewMatrix:  c.Offsets.ViewMatrix,
	}
}

// StaticWindow is the configured geometry as a locator
func (c Config) StaticWindow() window.StaticLocator {
	return window.StaticLocator{X: c.Geometry.X, Y: c.Geometry.Y, Width: c.Geometry.Width, Height: c.Geometry.Height}
}

// RegisterFlags binds the common settings to fs with the current values as defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ProcessName, "process", c.ProcessName, "Target process name")
	fs.StringVar(&c.WindowTitle, "window", c.WindowTitle, "Target window title")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "Tick interval")
	fs.IntVar(&c.SkipFirst, "skip", c.SkipFirst, "Entity table slots to skip")
	fs.IntVar(&c.MaxPlayers, "max-players", c.MaxPlayers, "Largest plausible player count")
	fs.IntVar(&c.PointerSize, "ptr", c.PointerSize, "Pointer size of the target in bytes")
	fs.StringVar(&c.ReplayDir, "replay", c.ReplayDir, "Read from a saved dump instead of a live process")
	fs.IntVar(&c.Geometry.Width, "width", c.Geometry.Width, "Overlay width when the window is not found")
	fs.IntVar(&c.Geometry.Height, "height", c.Geometry.Height, "Overlay height when the window is not found")
	fs.TextVar(&c.Offsets.PlayerCount, "off-player-count", c.Offsets.PlayerCount, "player_count offset")
	fs.TextVar(&c.Offsets.EntityList, "off-entity-list", c.Offsets.EntityList, "entity_list offset")
	fs.TextVar(&c.Offsets.LocalPlayer, "off-local-player", c.Offsets.LocalPlayer, "local_player offset")
	fs.TextVar(&c.Offsets.ViewMatrix, "off-view-matrix", c.Offsets.ViewMatrix, "view_matrix offset")
}
