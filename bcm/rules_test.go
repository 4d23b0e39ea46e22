package bcm

import (
	"encoding/json"
	"math/big"
	"testing"
)

// TestNetworkConstants verifies that network ID constants are correctly defined.
func TestNetworkConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant uint64
		want     uint64
	}{
		{"MainNetworkID", MainNetworkID, 56},
		{"TestNetworkID", TestNetworkID, 97},
		{"FakeNetworkID", FakeNetworkID, 1337},
		{"FakeInternalChainID", uint64(FakeInternalChainID), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.constant, tt.want)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		rules   Rules
		name    string
		chainID uint64
	}{
		{MainNetRules(), "main", MainNetworkID},
		{TestNetRules(), "test", TestNetworkID},
		{FakeNetRules(), "fake", FakeNetworkID},
	}

	seen := map[uint8]string{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.rules
			if r.Name != tt.name {
				t.Errorf("Name = %q, want %q", r.Name, tt.name)
			}
			if r.ChainID != tt.chainID {
				t.Errorf("ChainID = %d, want %d", r.ChainID, tt.chainID)
			}
			if prev, ok := seen[r.InternalChainID]; ok {
				t.Errorf("InternalChainID %d shared with %s", r.InternalChainID, prev)
			}
			seen[r.InternalChainID] = r.Name

			c := r.Capture
			if c.AssistantBonus != 15 || c.MaxBoost != 10 || c.MaxRate != 85 {
				t.Errorf("Capture = %+v", c)
			}
			if r.Duel.DefaultMaxRewardRatio != 200 {
				t.Errorf("DefaultMaxRewardRatio = %d, want 200", r.Duel.DefaultMaxRewardRatio)
			}
			if r.Economy.Treasury != TreasuryAddress {
				t.Errorf("Treasury = %s", r.Economy.Treasury.Hex())
			}
		})
	}
}

func TestMonsterID(t *testing.T) {
	r := FakeNetRules()
	if got := r.MonsterID(1); got != 268 {
		t.Errorf("MonsterID(1) = %d, want 268", got)
	}
	if got := r.MonsterID(2); got != 524 {
		t.Errorf("MonsterID(2) = %d, want 524", got)
	}
}

// TestRulesCopy verifies that Copy() creates a deep copy of pointer fields.
func TestRulesCopy(t *testing.T) {
	original := FakeNetRules()
	copied := original.Copy()

	copied.Economy.InitialTreasuryTokens.Set(big.NewInt(123456))

	if original.Economy.InitialTreasuryTokens.Cmp(big.NewInt(123456)) == 0 {
		t.Error("original InitialTreasuryTokens was modified through the copy")
	}
	if original.Economy.InitialTreasuryTokens == copied.Economy.InitialTreasuryTokens {
		t.Error("InitialTreasuryTokens pointers should be different (deep copy)")
	}
}

// TestRulesString verifies that String() returns valid JSON.
func TestRulesString(t *testing.T) {
	rules := MainNetRules()
	jsonStr := rules.String()

	var unmarshaled Rules
	if err := json.Unmarshal([]byte(jsonStr), &unmarshaled); err != nil {
		t.Fatalf("String() returned invalid JSON: %v\nJSON: %s", err, jsonStr)
	}
	if unmarshaled.Name != rules.Name {
		t.Errorf("Unmarshaled Name = %q, want %q", unmarshaled.Name, rules.Name)
	}
	if unmarshaled.ChainID != rules.ChainID {
		t.Errorf("Unmarshaled ChainID = %d, want %d", unmarshaled.ChainID, rules.ChainID)
	}
	if unmarshaled.Capture != rules.Capture {
		t.Errorf("Unmarshaled Capture = %+v, want %+v", unmarshaled.Capture, rules.Capture)
	}
}
