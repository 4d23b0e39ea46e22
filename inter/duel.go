package inter

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Ambros-Technology/bcm-public-smartcontract/utils/bits"
	"github.com/Ambros-Technology/bcm-public-smartcontract/utils/fast"
)

// ErrInvalidMessage is returned for packed messages that cannot be decoded.
var ErrInvalidMessage = errors.New("invalid message")

// DuelOutcome is an oracle-signed duel result for a single creature.
//
// Battle identifies the battle shared by both participants: its block seed
// drives the survival roll and it keys the per-species winner quota.
// DuelID is the per-creature sequence number, strictly increasing.
type DuelOutcome struct {
	Battle uint64

	DuelID       uint64
	Species      uint32
	MonsterID    uint64
	KillRate     uint32
	Exp          uint32
	RewardRatio  uint16
	MatchupBonus uint16

	Expiry          uint64 // UNIX seconds
	ChainID         uint64
	OpponentChain   uint64
	OpponentMonster uint64
}

// Outcome flags reported with duel events.
const (
	OutcomeDied uint8 = 1 << iota
	OutcomeInsured
	OutcomeLate
)

var (
	duelLayout1 = bits.MustLayout(
		bits.Slot{Name: "duelId", Width: 64},
		bits.Slot{Name: "species", Width: 32},
		bits.Slot{Name: "monsterId", Width: 64},
		bits.Slot{Name: "killRate", Width: 32},
		bits.Slot{Name: "exp", Width: 32},
		bits.Slot{Name: "rewardRatio", Width: 16},
		bits.Slot{Name: "matchupBonus", Width: 16},
	)
	duelLayout2 = bits.MustLayout(
		bits.Slot{Name: "expiry", Width: 64},
		bits.Slot{Name: "chainId", Width: 64},
		bits.Slot{Name: "opponentChain", Width: 64},
		bits.Slot{Name: "opponentMonster", Width: 64},
	)
	outcomeLayout = bits.MustLayout(
		bits.Slot{Name: "duelId", Width: 64},
		bits.Slot{Name: "exp", Width: 32},
		bits.Slot{Name: "zero0", Width: 64},
		bits.Slot{Name: "zero1", Width: 64},
		bits.Slot{Name: "zero2", Width: 32},
	)
)

// Words packs the message into its two 256-bit words.
func (m DuelOutcome) Words() (w1, w2 *big.Int) {
	var err error
	w1, err = duelLayout1.Pack([]uint64{
		m.DuelID,
		uint64(m.Species),
		m.MonsterID,
		uint64(m.KillRate),
		uint64(m.Exp),
		uint64(m.RewardRatio),
		uint64(m.MatchupBonus),
	})
	if err != nil {
		panic(err)
	}
	w2, err = duelLayout2.Pack([]uint64{m.Expiry, m.ChainID, m.OpponentChain, m.OpponentMonster})
	if err != nil {
		panic(err)
	}
	return w1, w2
}

// DecodeDuelOutcome rebuilds a message from the battle id and its two words.
func DecodeDuelOutcome(battle uint64, w1, w2 *big.Int) (DuelOutcome, error) {
	v1, err := duelLayout1.Unpack(w1)
	if err != nil {
		return DuelOutcome{}, fmt.Errorf("%w: word 1: %v", ErrInvalidMessage, err)
	}
	v2, err := duelLayout2.Unpack(w2)
	if err != nil {
		return DuelOutcome{}, fmt.Errorf("%w: word 2: %v", ErrInvalidMessage, err)
	}
	return DuelOutcome{
		Battle:          battle,
		DuelID:          v1[0],
		Species:         uint32(v1[1]),
		MonsterID:       v1[2],
		KillRate:        uint32(v1[3]),
		Exp:             uint32(v1[4]),
		RewardRatio:     uint16(v1[5]),
		MatchupBonus:    uint16(v1[6]),
		Expiry:          v2[0],
		ChainID:         v2[1],
		OpponentChain:   v2[2],
		OpponentMonster: v2[3],
	}, nil
}

// MarshalBinary returns the packed preimage: battle (8 bytes) followed by
// both words (32 bytes each).
func (m DuelOutcome) MarshalBinary() ([]byte, error) {
	w1, w2 := m.Words()
	w := fast.NewWriter(make([]byte, 0, 8+32+32))
	w.WriteUint64(m.Battle)
	w.WriteUint256(w1)
	w.WriteUint256(w2)
	return w.Bytes(), nil
}

// UnmarshalBinary decodes the packed preimage.
func (m *DuelOutcome) UnmarshalBinary(raw []byte) error {
	if len(raw) != 8+32+32 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidMessage, len(raw))
	}
	r := fast.NewReader(raw)
	battle := r.ReadUint64()
	res, err := DecodeDuelOutcome(battle, r.ReadUint256(), r.ReadUint256())
	if err != nil {
		return err
	}
	*m = res
	return nil
}

// Digest is the EIP-191 prefixed hash signed by the duel oracle.
func (m DuelOutcome) Digest() common.Hash {
	raw, _ := m.MarshalBinary()
	return common.BytesToHash(accounts.TextHash(crypto.Keccak256(raw)))
}

// Expired reports whether the message is no longer acceptable at now.
func (m DuelOutcome) Expired(now Timestamp) bool {
	return uint64(now.Unix()) > m.Expiry
}

// PackDuelResult builds the outcome word emitted with duel events: the duel
// id and the experience granted, the rest of the word is zero.
func PackDuelResult(duelID uint64, exp uint32) *big.Int {
	w, err := outcomeLayout.Pack([]uint64{duelID, uint64(exp), 0, 0, 0})
	if err != nil {
		panic(err)
	}
	return w
}
