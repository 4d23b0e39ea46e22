package launcher

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/urfave/cli.v1"

	"github.com/Ambros-Technology/bcm-public-smartcontract/flags"
)

// runConfigFromArgs runs MakeAllConfigs with a synthetic CLI context.
func runConfigFromArgs(t *testing.T, args []string) (Config, error) {
	t.Helper()

	app := cli.NewApp()
	app.HideHelp = true
	app.HideVersion = true
	app.Flags = flags.Merge(
		flags.CommonFlags(),
		flags.NodeFlags(),
		flags.NetworkFlags(),
	)

	var (
		got    Config
		cfgErr error
	)
	app.Action = func(c *cli.Context) error {
		got, cfgErr = MakeAllConfigs(c)
		return nil
	}
	if err := app.Run(append([]string{"bcm"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return got, cfgErr
}

// TestMakeAllConfigs_flagOverrides verifies that the launcher flags override
// the corresponding Config fields.
func TestMakeAllConfigs_flagOverrides(t *testing.T) {
	datadir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want func(t *testing.T, cfg Config)
	}{
		{
			name: "defaults",
			args: nil,
			want: func(t *testing.T, cfg Config) {
				if cfg.Node.DataDir != filepath.Join(GuessHomeDir(), DefaultDataDirName) {
					t.Fatalf("DataDir = %q, want ~/%s", cfg.Node.DataDir, DefaultDataDirName)
				}
				if cfg.Game.Network != DefaultNetwork {
					t.Fatalf("Network = %q, want %q", cfg.Game.Network, DefaultNetwork)
				}
				if cfg.Logging.Verbosity != DefaultVerbosity {
					t.Fatalf("Verbosity = %d, want %d", cfg.Logging.Verbosity, DefaultVerbosity)
				}
			},
		},
		{
			name: "datadir and identity",
			args: []string{"--datadir", datadir, "--identity", "ops-1"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Node.DataDir != datadir {
					t.Fatalf("DataDir = %q, want %q", cfg.Node.DataDir, datadir)
				}
				if cfg.Node.Name != "ops-1" {
					t.Fatalf("Name = %q, want ops-1", cfg.Node.Name)
				}
			},
		},
		{
			name: "logging",
			args: []string{"--log.format", "json", "--log.verbosity", "6", "--sentry.dsn", "https://key@sentry.example/1"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Logging.Format != "json" || cfg.Logging.Verbosity != 6 {
					t.Fatalf("Logging = %+v, want json at 6", cfg.Logging)
				}
				if cfg.Logging.SentryDSN != "https://key@sentry.example/1" {
					t.Fatalf("SentryDSN = %q", cfg.Logging.SentryDSN)
				}
			},
		},
		{
			name: "fakenet selects the fake network",
			args: []string{"--network", "test", "--fakenet", "5"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Game.Network != "fake" || cfg.Game.FakeNet != 5 {
					t.Fatalf("Game = %+v, want fake network with 5 accounts", cfg.Game)
				}
			},
		},
		{
			name: "store",
			args: []string{"--cache", "64", "--handles", "32", "--inmemory"},
			want: func(t *testing.T, cfg Config) {
				if cfg.Store.CacheMB != 64 || cfg.Store.Handles != 32 || !cfg.Store.InMemory {
					t.Fatalf("Store = %+v, want 64/32 in memory", cfg.Store)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := runConfigFromArgs(t, test.args)
			if err != nil {
				t.Fatalf("MakeAllConfigs: %v", err)
			}
			test.want(t, cfg)
			t.Logf("args = %#v", test.args)
		})
	}
}

func TestMakeAllConfigs_configFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	body := `
[Node]
Name = "from-file"

[Game]
Network = "test"

[Store]
CacheMB = 128
`
	if err := ioutil.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	// flags win over the file
	cfg, err := runConfigFromArgs(t, []string{"--config", file, "--cache", "512"})
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	if cfg.Node.Name != "from-file" || cfg.Game.Network != "test" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Store.CacheMB != 512 {
		t.Fatalf("CacheMB = %d, want the flag value 512", cfg.Store.CacheMB)
	}
	if cfg.Store.Handles != DefaultHandles {
		t.Fatalf("Handles = %d, want the default %d", cfg.Store.Handles, DefaultHandles)
	}
}

func TestMakeAllConfigs_badConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	if err := ioutil.WriteFile(file, []byte("[Node]\nPort = 5050\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runConfigFromArgs(t, []string{"--config", file})
	if err == nil {
		t.Fatal("expected an error for an unknown field")
	}
	if !strings.Contains(err.Error(), file) {
		t.Fatalf("error %q does not name the file", err)
	}
}

func TestDumpConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.Network = "fake"
	cfg.Game.FakeNet = 4
	out, err := dumpConfig(cfg)
	if err != nil {
		t.Fatalf("dumpConfig: %v", err)
	}

	file := filepath.Join(t.TempDir(), "dump.toml")
	if err := ioutil.WriteFile(file, out, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := runConfigFromArgs(t, []string{"--config", file})
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestConfigPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Game.Network = "fake"
	cfg.Store.CacheMB = 8

	preset, err := cfg.Preset()
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}
	if preset.Name != "fake" || preset.Rules.Name != "fake" {
		t.Fatalf("preset = %s/%s, want fake", preset.Name, preset.Rules.Name)
	}
	if preset.CacheMB != 8 || preset.InMemory {
		t.Fatalf("store settings not applied: %+v", preset)
	}

	cfg.Game.Network = "nowhere"
	if _, err := cfg.Preset(); err == nil {
		t.Fatal("expected an error for an unknown network")
	}
}
