package engine

import (
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Ambros-Technology/bcm-public-smartcontract/economy"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

func checkWord(v *big.Int) error {
	if v == nil || v.Sign() < 0 || v.Cmp(maxUint256) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}
	return nil
}

// SetSpeciesConfig replaces the configuration of a species wholesale.
func (e *Engine) SetSpeciesConfig(caller common.Address, id uint32, a, b *big.Int) error {
	return e.atomic("setSpeciesConfig", func() error {
		if err := e.Roles.IsAuthorized(caller, inter.ActionConfigure); err != nil {
			return err
		}
		if id == 0 {
			return fmt.Errorf("%w: species id 0", inter.ErrInvalidConfig)
		}
		cfg, err := inter.DecodeSpecies(a, b)
		if err != nil {
			return err
		}
		if err := cfg.ValidateRate(e.rules.Capture.MaxBoost); err != nil {
			return err
		}
		e.Store.SetSpecies(id, a, b)
		e.log.WithField("species", id).WithField("range", fmt.Sprintf("%d..%d", cfg.HashStart, cfg.HashEnd)).Info("Species configured")
		return nil
	})
}

// SetBlockHash publishes the record of a block. Records that already
// produced a creature cannot be changed.
func (e *Engine) SetBlockHash(caller common.Address, block idx.Block, hash *big.Int) error {
	return e.atomic("setBlockHash", func() error {
		if err := e.Roles.IsAuthorized(caller, inter.ActionSetBlockHash); err != nil {
			return err
		}
		if err := checkWord(hash); err != nil {
			return err
		}
		if e.Store.BlockHashLocked(block) {
			return fmt.Errorf("%w: %d", ErrBlockHashLocked, block)
		}
		e.Store.SetBlockHash(block, hash)
		e.log.WithField("block", block).Debug("Block hash recorded")
		return nil
	})
}

// SetChainCurrencyPrice sets the USD cents paid for one whole native coin.
func (e *Engine) SetChainCurrencyPrice(caller common.Address, cents *big.Int) error {
	return e.atomic("setChainCurrencyPrice", func() error {
		if err := e.Roles.IsAuthorized(caller, inter.ActionConfigure); err != nil {
			return err
		}
		if err := checkWord(cents); err != nil {
			return err
		}
		e.Store.SetChainCurrencyPrice(cents)
		e.log.WithField("cents", cents).Info("Chain currency price updated")
		return nil
	})
}

// SetExchangeRate sets the game tokens per native coin in basis points.
func (e *Engine) SetExchangeRate(caller common.Address, bps *big.Int) error {
	return e.atomic("setExchangeRate", func() error {
		if err := e.Roles.IsAuthorized(caller, inter.ActionConfigure); err != nil {
			return err
		}
		if err := checkWord(bps); err != nil {
			return err
		}
		e.Store.SetExchangeRate(bps)
		e.log.WithField("bps", bps).Info("Exchange rate updated")
		return nil
	})
}

// SetMaxRewardRatio sets the highest reward ratio a duel outcome may carry.
func (e *Engine) SetMaxRewardRatio(caller common.Address, ratio uint16) error {
	return e.atomic("setMaxRewardRatio", func() error {
		if err := e.Roles.IsAuthorized(caller, inter.ActionConfigure); err != nil {
			return err
		}
		e.Store.SetMaxRewardRatio(uint64(ratio))
		e.log.WithField("ratio", ratio).Info("Max reward ratio updated")
		return nil
	})
}

// GrantRole gives acc the role for action. Only admins manage roles.
func (e *Engine) GrantRole(caller common.Address, action inter.Action, acc common.Address) error {
	return e.atomic("grantRole", func() error {
		if err := e.Roles.IsAuthorized(caller, inter.ActionAdmin); err != nil {
			return err
		}
		e.Roles.Grant(action, acc)
		e.log.WithField("role", action).WithField("account", acc.Hex()).Info("Role granted")
		return nil
	})
}

// RevokeRole takes the role for action away from acc.
func (e *Engine) RevokeRole(caller common.Address, action inter.Action, acc common.Address) error {
	return e.atomic("revokeRole", func() error {
		if err := e.Roles.IsAuthorized(caller, inter.ActionAdmin); err != nil {
			return err
		}
		e.Roles.Revoke(action, acc)
		e.log.WithField("role", action).WithField("account", acc.Hex()).Info("Role revoked")
		return nil
	})
}

// MaxRewardRatio returns the configured cap, or the network default.
func (e *Engine) MaxRewardRatio() uint64 {
	var max uint64
	_ = e.view(func() error {
		max = e.maxRewardRatio()
		return nil
	})
	return max
}

func (e *Engine) maxRewardRatio() uint64 {
	if v, ok := e.Store.MaxRewardRatio(); ok {
		return v
	}
	return uint64(e.rules.Duel.DefaultMaxRewardRatio)
}

// BlockHash returns the published record of a block.
func (e *Engine) BlockHash(block idx.Block) (*big.Int, bool) {
	var (
		h  *big.Int
		ok bool
	)
	_ = e.view(func() error {
		h, ok = e.Store.BlockHash(block)
		return nil
	})
	return h, ok
}

// SpeciesWords returns the raw settings words of a species.
func (e *Engine) SpeciesWords(id uint32) (a, b *big.Int, err error) {
	err = e.view(func() error {
		var ok bool
		a, b, ok = e.Store.Species(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidSpecies, id)
		}
		return nil
	})
	return
}

// SpeciesConfig returns the decoded settings of a species.
func (e *Engine) SpeciesConfig(id uint32) (cfg inter.SpeciesConfig, err error) {
	err = e.view(func() error {
		var ok bool
		cfg, ok, err = e.species(id)
		if err == nil && !ok {
			err = fmt.Errorf("%w: %d", ErrInvalidSpecies, id)
		}
		return err
	})
	return
}

// SpeciesIDs lists the configured species.
func (e *Engine) SpeciesIDs() []uint32 {
	var ids []uint32
	_ = e.view(func() error {
		ids = e.Store.SpeciesIDs()
		return nil
	})
	return ids
}

// FixedView is the immutable part of a species.
type FixedView struct {
	HashStart     uint64
	HashEnd       uint64
	PrimaryType   uint8
	SecondaryType uint8
}

// CatchView shows capture parameters with USD amounts in native base units.
type CatchView struct {
	MinPower      *big.Int
	LimitPerBlock uint16
	BaseRate      uint8
	CostPerPoint  *big.Int
	AssistType    uint8
	AssistMinExp  uint32
	AssistMaxExp  uint32
}

// BattleView shows duel parameters: token amounts in base units, the
// insurance fee in native base units.
type BattleView struct {
	Staking        *big.Int
	Reward         *big.Int
	WinnersPerDuel uint16
	Insurance      *big.Int
}

// FixedSpeciesView returns the hash range and types of a species.
func (e *Engine) FixedSpeciesView(id uint32) (FixedView, error) {
	cfg, err := e.SpeciesConfig(id)
	if err != nil {
		return FixedView{}, err
	}
	return FixedView{
		HashStart:     cfg.HashStart,
		HashEnd:       cfg.HashEnd,
		PrimaryType:   cfg.PrimaryType,
		SecondaryType: cfg.SecondaryType,
	}, nil
}

// CatchSpeciesView returns the capture parameters of a species. Amounts are
// truncated conversions; MinCapturePayment gives the least accepted payment.
func (e *Engine) CatchSpeciesView(id uint32) (v CatchView, err error) {
	err = e.view(func() error {
		cfg, ok, err := e.species(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidSpecies, id)
		}
		conv := e.converter()
		v = CatchView{
			LimitPerBlock: cfg.LimitPerBlock,
			BaseRate:      cfg.BaseRate,
			AssistType:    cfg.Assist.Type,
			AssistMinExp:  cfg.Assist.MinExp,
			AssistMaxExp:  cfg.Assist.MaxExp,
		}
		if v.MinPower, err = conv.ToNative(uint64(cfg.MinPowerCents)); err != nil {
			return err
		}
		v.CostPerPoint, err = conv.ToNative(uint64(cfg.CostPerPointCents))
		return err
	})
	return
}

// BattleSpeciesView returns the duel parameters of a species.
func (e *Engine) BattleSpeciesView(id uint32) (v BattleView, err error) {
	err = e.view(func() error {
		cfg, ok, err := e.species(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidSpecies, id)
		}
		v = BattleView{
			Staking:        economy.MilliTokens(cfg.StakingMilli),
			Reward:         economy.MilliTokens(cfg.RewardMilli),
			WinnersPerDuel: cfg.WinnersPerDuel,
		}
		v.Insurance, err = e.converter().ToNative(uint64(cfg.InsuranceCents))
		return err
	})
	return
}

// BattleStats returns the stat ladder of a species.
func (e *Engine) BattleStats(id uint32) ([inter.StatCount]uint8, error) {
	cfg, err := e.SpeciesConfig(id)
	return cfg.Ladder, err
}

// MinCapturePayment returns the smallest native payment accepted for a
// capture of the species.
func (e *Engine) MinCapturePayment(id uint32) (*big.Int, error) {
	cfg, err := e.SpeciesConfig(id)
	if err != nil {
		return nil, err
	}
	var v *big.Int
	err = e.view(func() error {
		v, err = e.converter().ToNativeCeil(uint64(cfg.MinPowerCents))
		return err
	})
	return v, err
}
