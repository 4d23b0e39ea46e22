package launcher

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/Ambros-Technology/bcm-public-smartcontract/integration"
)

// Config aggregates everything the launcher needs.
type Config struct {
	Node    NodeConfig
	Logging LoggingConfig
	Game    GameConfig
	Store   StoreConfig
}

type NodeConfig struct {
	DataDir string
	Name    string
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type GameConfig struct {
	Network string
	FakeNet int    // fake accounts funded at genesis, fake network only
	Genesis string // YAML genesis file
}

type StoreConfig struct {
	CacheMB  int
	Handles  int
	InMemory bool
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// MakeAllConfigs merges defaults, the optional config file and CLI flag
// overrides, in that order.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := DefaultConfig()

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, err
		}
	}

	applyCLIOverrides(ctx, &cfg)
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(path + ", " + err.Error())
	}
	if cfg.Node.DataDir != "" {
		cfg.Node.DataDir = resolvePath(cfg.Node.DataDir)
	}
	return err
}

// dumpConfig renders cfg in the config file format.
func dumpConfig(cfg Config) ([]byte, error) {
	return tomlSettings.Marshal(&cfg)
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("datadir") {
		cfg.Node.DataDir = resolvePath(ctx.GlobalString("datadir"))
	}
	if ctx.GlobalIsSet("identity") {
		cfg.Node.Name = ctx.GlobalString("identity")
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Logging.SentryDSN = ctx.GlobalString("sentry.dsn")
	}

	if ctx.GlobalIsSet("network") {
		cfg.Game.Network = ctx.GlobalString("network")
	}
	if ctx.GlobalIsSet("genesis") {
		cfg.Game.Genesis = resolvePath(ctx.GlobalString("genesis"))
	}
	if ctx.GlobalIsSet("fakenet") {
		cfg.Game.Network = "fake"
		cfg.Game.FakeNet = ctx.GlobalInt("fakenet")
	}

	if ctx.GlobalIsSet("cache") {
		cfg.Store.CacheMB = ctx.GlobalInt("cache")
	}
	if ctx.GlobalIsSet("handles") {
		cfg.Store.Handles = ctx.GlobalInt("handles")
	}
	if ctx.GlobalIsSet("inmemory") {
		cfg.Store.InMemory = ctx.GlobalBool("inmemory")
	}
}

// Preset returns the network preset with the configured storage settings
// applied on top.
func (c Config) Preset() (integration.Preset, error) {
	preset, err := integration.GetPresetByName(c.Game.Network)
	if err != nil {
		return preset, err
	}
	integration.ApplyPreset(&preset, integration.Preset{
		CacheMB:  c.Store.CacheMB,
		Handles:  c.Store.Handles,
		InMemory: c.Store.InMemory,
	})
	return preset, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
