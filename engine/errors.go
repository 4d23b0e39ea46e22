package engine

import (
	"errors"

	"github.com/Ambros-Technology/bcm-public-smartcontract/economy"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/randomness"
)

// Capture failures.
var (
	ErrNotCatchBlock       = errors.New("not_catch_block")
	ErrInvalidBlock        = errors.New("invalid_block")
	ErrInvalidSpecies      = errors.New("invalid_species")
	ErrInvalidCapturePower = errors.New("invalid_cp")
	ErrLimitReached        = errors.New("limit_reach")
	ErrNotAssistantOwner   = errors.New("not_support_owner")
)

// Duel and permit failures.
var (
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrExpired               = errors.New("expired")
	ErrInvalidOwner          = errors.New("invalid_owner")
	ErrInvalidChain          = errors.New("invalid_chain")
	ErrInvalidMonsterID      = errors.New("invalid_monster_id")
	ErrInvalidDuelID         = errors.New("invalid_duel_id")
	ErrInvalidBalance        = errors.New("invalid_balance")
	ErrInsufficientInsurance = errors.New("insufficient_insurance")
	ErrInvalidRatio          = errors.New("invalid_ratio")
	ErrUsedPermit            = errors.New("used_permit")
)

// Settings failures.
var (
	ErrBlockHashLocked = errors.New("block_hash_locked")
	ErrInvalidValue    = errors.New("invalid_value")
)

// ErrUnknownBlock is returned when the seed of a block is not available.
var ErrUnknownBlock = randomness.ErrUnknownBlock

var callerErrors = []error{
	ErrNotCatchBlock, ErrInvalidBlock, ErrInvalidSpecies, ErrInvalidCapturePower,
	ErrLimitReached, ErrNotAssistantOwner, ErrInvalidSignature, ErrExpired,
	ErrInvalidOwner, ErrInvalidChain, ErrInvalidMonsterID, ErrInvalidDuelID,
	ErrInvalidBalance, ErrInsufficientInsurance, ErrInvalidRatio, ErrUsedPermit,
	ErrBlockHashLocked, ErrInvalidValue,
	inter.ErrInvalidConfig, inter.ErrInvalidMessage, economy.ErrPriceUnset, economy.ErrRateUnset,
}

// isCallerError reports whether err is a rejection of the caller's input,
// as opposed to a collaborator failure.
func isCallerError(err error) bool {
	for _, e := range callerErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
