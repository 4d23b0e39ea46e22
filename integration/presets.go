// Package integration assembles a runnable game from configuration. Presets
// bundle a network's rules with storage settings into named profiles (main,
// test, fake) so operators can open a deployment without tuning every flag.
//
// Usage:
//
//	preset, err := integration.GetPresetByName("fake")
//	node, err := integration.NewFakeNode(preset, 3)
//	defer node.Close()
//
// Each preset returns a Preset struct that can be merged into the launcher's
// configuration during start-up.
package integration

import (
	"fmt"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm"
)

// Preset captures the parameters that vary across deployments.
type Preset struct {
	Name     string    // preset identifier (e.g., "main", "fake")
	Rules    bcm.Rules // game rules of the network
	CacheMB  int       // memory allocated to the leveldb cache
	Handles  int       // file handles allotted to leveldb
	InMemory bool      // keep the state in memory only
}

// DefaultPreset returns the baseline storage settings, carrying mainnet rules.
func DefaultPreset() Preset {
	return Preset{
		Name:    "default",
		Rules:   bcm.MainNetRules(),
		CacheMB: 256,
		Handles: 256,
	}
}

// MainNetPreset returns the settings of the production deployment.
func MainNetPreset() Preset {
	cfg := DefaultPreset()
	cfg.Name = "main"
	cfg.CacheMB = 1024
	cfg.Handles = 512
	return cfg
}

// TestNetPreset returns the settings of the public test deployment.
func TestNetPreset() Preset {
	cfg := DefaultPreset()
	cfg.Name = "test"
	cfg.Rules = bcm.TestNetRules()
	return cfg
}

// FakeNetPreset returns a lightweight in-memory configuration for local
// development and tests.
func FakeNetPreset() Preset {
	cfg := DefaultPreset()
	cfg.Name = "fake"
	cfg.Rules = bcm.FakeNetRules()
	cfg.CacheMB = 16
	cfg.Handles = 16
	cfg.InMemory = true
	return cfg
}

// GetPresetByName looks up a preset by its identifier.
func GetPresetByName(name string) (Preset, error) {
	switch name {
	case "main":
		return MainNetPreset(), nil
	case "test":
		return TestNetPreset(), nil
	case "fake":
		return FakeNetPreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return Preset{}, fmt.Errorf("unknown preset: %q (valid: main, test, fake, default)", name)
	}
}

// ApplyPreset merges preset into target. Storage sizes are only taken when
// set, so explicit overrides already present in target survive.
func ApplyPreset(target *Preset, preset Preset) {
	if preset.CacheMB > 0 {
		target.CacheMB = preset.CacheMB
	}
	if preset.Handles > 0 {
		target.Handles = preset.Handles
	}
	if preset.Rules.Name != "" {
		target.Rules = preset.Rules.Copy()
	}
	target.InMemory = preset.InMemory
	if preset.Name != "" {
		target.Name = preset.Name
	}
}
