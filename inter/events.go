package inter

import (
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// CaptureEvent is emitted for every charged capture attempt. A failed roll
// carries a zero MonsterID and a zero Gene.
type CaptureEvent struct {
	Capturer  common.Address
	Block     idx.Block
	MonsterID uint64
	Gene      *big.Int
}

// DuelEvent is emitted for every resolved duel message.
type DuelEvent struct {
	Player    common.Address
	MonsterID uint64
	Battle    uint64
	Result    *big.Int // see PackDuelResult
	Reward    *big.Int // token base units
	Roll      uint8
	Flags     uint8 // Outcome* bits
}

// PermitCancelEvent is emitted when a grantor cancels a trade permit.
type PermitCancelEvent struct {
	Grantor common.Address
	Nonce   *big.Int
}

// TransferEvent mirrors the ownership registry's transfer log. Mints come
// from the zero address and burns go to it.
type TransferEvent struct {
	From      common.Address
	To        common.Address
	MonsterID uint64
}
