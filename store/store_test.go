package store

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	statedb, err := state.New(common.Hash{}, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	require.NoError(t, err)
	return New(statedb, ContractAddress)
}

func TestSlotsDoNotCollide(t *testing.T) {
	require := require.New(t)

	seen := map[common.Hash]string{}
	for name, key := range map[string]common.Hash{
		"species.a 1":      Slot("species.a", u32(1)),
		"species.b 1":      Slot("species.b", u32(1)),
		"gene 1":           Slot("gene", u64(1)),
		"gene.known 1":     Slot("gene.known", u64(1)),
		"capture 1/2":      Slot("capture.count", u32(1), blockKey(2)),
		"capture 2/1":      Slot("capture.count", u32(2), blockKey(1)),
		"settings.price":   priceKey,
		"settings.rate":    rateKey,
		"settings.max":     maxRatioKey,
		"species.count":    speciesCountKey,
		"blockhash 1":      Slot("blockhash", blockKey(1)),
		"blockhash.lock 1": Slot("blockhash.locked", blockKey(1)),
	} {
		prev, dup := seen[key]
		require.False(dup, "%s collides with %s", name, prev)
		seen[key] = name
	}
}

func TestSpecies(t *testing.T) {
	require := require.New(t)
	s := newTestStore(t)

	_, _, ok := s.Species(40)
	require.False(ok)
	require.Empty(s.SpeciesIDs())

	s.SetSpecies(40, big.NewInt(1), big.NewInt(2))
	s.SetSpecies(3, big.NewInt(5), big.NewInt(6))
	s.SetSpecies(40, big.NewInt(3), big.NewInt(4))

	a, b, ok := s.Species(40)
	require.True(ok)
	require.Equal(int64(3), a.Int64())
	require.Equal(int64(4), b.Int64())
	require.Equal([]uint32{40, 3}, s.SpeciesIDs())

	// an all-zero configuration is still configured
	s.SetSpecies(9, new(big.Int), new(big.Int))
	_, _, ok = s.Species(9)
	require.True(ok)
}

func TestBlockHashes(t *testing.T) {
	require := require.New(t)
	s := newTestStore(t)

	_, ok := s.BlockHash(12345)
	require.False(ok)

	s.SetBlockHash(12345, big.NewInt(0))
	h, ok := s.BlockHash(12345)
	require.True(ok)
	require.Equal(0, h.Sign())

	require.False(s.BlockHashLocked(12345))
	s.LockBlockHash(12345)
	require.True(s.BlockHashLocked(12345))
	require.False(s.BlockHashLocked(12346))
}

func TestGenes(t *testing.T) {
	require := require.New(t)
	s := newTestStore(t)

	_, ok := s.Gene(268)
	require.False(ok)
	s.SetGene(268, big.NewInt(77))
	g, ok := s.Gene(268)
	require.True(ok)
	require.Equal(int64(77), g.Int64())

	s.DeleteGene(268)
	_, ok = s.Gene(268)
	require.False(ok)
}

func TestCounters(t *testing.T) {
	require := require.New(t)
	s := newTestStore(t)

	require.Equal(uint64(1), s.NextMonsterSeq())
	require.Equal(uint64(2), s.NextMonsterSeq())

	require.Equal(uint64(1), s.IncCaptures(40, 12345))
	require.Equal(uint64(2), s.IncCaptures(40, 12345))
	require.Equal(uint64(0), s.Captures(40, 12346))
	require.Equal(uint64(0), s.Captures(41, 12345))

	require.Equal(uint64(1), s.IncWinners(7, 40))
	require.Equal(uint64(1), s.Winners(7, 40))
	require.Equal(uint64(0), s.Winners(8, 40))

	s.SetLastDuelID(268, 9)
	require.Equal(uint64(9), s.LastDuelID(268))
	require.Equal(uint64(0), s.LastDuelID(524))
}

func TestPermitsAndSettings(t *testing.T) {
	require := require.New(t)
	s := newTestStore(t)
	grantor := common.HexToAddress("0x8FB58D8a64a579CfcA349b8b34B69b48FC9C0CB2")

	require.False(s.PermitUsed(grantor, big.NewInt(1)))
	s.UsePermit(grantor, big.NewInt(1))
	require.True(s.PermitUsed(grantor, big.NewInt(1)))
	require.False(s.PermitUsed(grantor, big.NewInt(2)))
	require.False(s.PermitUsed(common.Address{1}, big.NewInt(1)))

	_, ok := s.MaxRewardRatio()
	require.False(ok)
	s.SetMaxRewardRatio(0)
	v, ok := s.MaxRewardRatio()
	require.True(ok)
	require.Equal(uint64(0), v)

	s.SetChainCurrencyPrice(big.NewInt(45100))
	s.SetExchangeRate(big.NewInt(100000))
	require.Equal(int64(45100), s.ChainCurrencyPrice().Int64())
	require.Equal(int64(100000), s.ExchangeRate().Int64())

	require.False(s.HasRole("admin", grantor))
	s.SetRole("admin", grantor, true)
	require.True(s.HasRole("admin", grantor))
	s.SetRole("admin", grantor, false)
	require.False(s.HasRole("admin", grantor))
}
