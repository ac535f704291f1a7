// Package config loads gnorm settings from a TOML file and the environment.
// Every setting has a default, so no file is required.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/gnorm/grammar"
)

const (
	EnvDB     = "GNORM_DATABASE"
	EnvListen = "GNORM_LISTEN_ADDRESS"
)

// DefaultPath is where the config file is looked for when no other path is
// given.
const DefaultPath = "gnorm.toml"

// MinWidth is the narrowest that table output may be set to.
const MinWidth = 20

// Format is a way of writing out a normalized grammar.
type Format string

const (
	FormatText   Format = "text"
	FormatTable  Format = "table"
	FormatBinary Format = "binary"
)

// ParseFormat parses a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatTable, FormatBinary:
		return f, nil
	default:
		return "", fmt.Errorf("format not one of 'text', 'table', or 'binary': %q", s)
	}
}

// Config holds every setting. The zero value is not ready for use; call
// FillDefaults on it first.
type Config struct {
	Engine Engine `toml:"engine"`
	Output Output `toml:"output"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
	Trace  Trace  `toml:"trace"`
}

type Engine struct {
	EliminateBacktracking bool `toml:"eliminate_backtracking"`
}

type Output struct {
	Format   string `toml:"format"`
	Width    int    `toml:"width"`
	ShowSets *bool  `toml:"show_sets"`
}

type Store struct {
	// DB is a connection string as parsed by ParseStoreConn.
	DB string `toml:"db"`
}

type Server struct {
	Listen string `toml:"listen"`

	// ErrorDelayMillis is how long to wait, in milliseconds, before sending
	// an HTTP-500 response. Zero or less disables the delay.
	ErrorDelayMillis int `toml:"error_delay_ms"`
}

type Trace struct {
	Level string `toml:"level"`
}

// Load reads the config file at path. If path is empty, DefaultPath is used
// and it is not an error for it to be missing. Environment variables are
// applied over whatever the file sets, and defaults fill in the rest.
func Load(path string) (Config, error) {
	var cfg Config

	required := path != ""
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		cfg, err = Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg = cfg.ApplyEnv().FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes TOML config data. Unknown keys are an error.
func Parse(data []byte) (Config, error) {
	var cfg Config

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Config{}, fmt.Errorf("unknown key %q", undec[0].String())
	}

	return cfg, nil
}

// ApplyEnv returns a copy of cfg with settings given in environment variables
// replacing those in cfg.
func (cfg Config) ApplyEnv() Config {
	newCFG := cfg

	if db := os.Getenv(EnvDB); db != "" {
		newCFG.Store.DB = db
	}
	if listen := os.Getenv(EnvListen); listen != "" {
		newCFG.Server.Listen = listen
	}

	return newCFG
}

// FillDefaults returns a new Config identitical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.Output.Format == "" {
		newCFG.Output.Format = string(FormatText)
	}
	if newCFG.Output.Width == 0 {
		newCFG.Output.Width = 100
	}
	if newCFG.Output.ShowSets == nil {
		show := true
		newCFG.Output.ShowSets = &show
	}
	if newCFG.Store.DB == "" {
		newCFG.Store.DB = string(StoreNone)
	}
	if newCFG.Server.Listen == "" {
		newCFG.Server.Listen = "localhost:8080"
	}
	if newCFG.Trace.Level == "" {
		newCFG.Trace.Level = "Error"
	}

	return newCFG
}

// Validate returns an error if the Config has invalid field values set. Empty
// and unset values are considered invalid; if defaults are intended to be used,
// call Validate on the return value of FillDefaults.
func (cfg Config) Validate() error {
	if _, err := ParseFormat(cfg.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if cfg.Output.Width < MinWidth {
		return fmt.Errorf("output.width: must be at least %d but is %d", MinWidth, cfg.Output.Width)
	}
	if cfg.Output.ShowSets == nil {
		return fmt.Errorf("output.show_sets: not set")
	}
	if _, err := ParseStoreConn(cfg.Store.DB); err != nil {
		return fmt.Errorf("store.db: %w", err)
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen: not set")
	}
	if cfg.Trace.Level == "" {
		return fmt.Errorf("trace.level: not set")
	}

	// all possible values for ErrorDelayMillis are valid, so no need to
	// check it

	return nil
}

// Options returns the normalization options cfg selects.
func (cfg Config) Options() grammar.Options {
	return grammar.Options{EliminateBacktracking: cfg.Engine.EliminateBacktracking}
}

// DB returns the parsed store connection. It must only be called on a Config
// that has passed Validate.
func (cfg Config) DB() StoreConn {
	conn, err := ParseStoreConn(cfg.Store.DB)
	if err != nil {
		panic(fmt.Sprintf("DB called on invalid config: %v", err))
	}
	return conn
}

// Format returns the parsed output format. It must only be called on a Config
// that has passed Validate.
func (cfg Config) Format() Format {
	f, err := ParseFormat(cfg.Output.Format)
	if err != nil {
		panic(fmt.Sprintf("Format called on invalid config: %v", err))
	}
	return f
}

// ErrorDelay returns the configured delay before HTTP-500 responses as a
// time.Duration. If cfg.Server.ErrorDelayMillis is less than 1, this will
// return a zero-valued time.Duration.
func (cfg Config) ErrorDelay() time.Duration {
	if cfg.Server.ErrorDelayMillis < 1 {
		var dur time.Duration
		return dur
	}
	return time.Millisecond * time.Duration(cfg.Server.ErrorDelayMillis)
}
