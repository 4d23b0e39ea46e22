package engine

import (
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Ambros-Technology/bcm-public-smartcontract/economy"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/randomness"
)

// DuelRequest submits an oracle-signed duel outcome for one creature.
type DuelRequest struct {
	Player    common.Address
	MonsterID uint64
	Battle    uint64
	Word1     *big.Int
	Word2     *big.Int
	Signature []byte
	Insurance inter.Payment // zero for none
}

// DuelResult describes an accepted duel outcome. Losing is not an error.
type DuelResult struct {
	Roll    uint8
	Died    bool
	Insured bool
	Late    bool // won after the winner quota was used up
	Reward  *big.Int
	Gene    *big.Int // zero when Died
}

// Flags returns the outcome flags reported with duel events.
func (r DuelResult) Flags() uint8 {
	var f uint8
	if r.Died {
		f |= inter.OutcomeDied
	}
	if r.Insured {
		f |= inter.OutcomeInsured
	}
	if r.Late {
		f |= inter.OutcomeLate
	}
	return f
}

// ResolveDuel verifies a signed outcome and applies it to the creature.
func (e *Engine) ResolveDuel(req DuelRequest) (res DuelResult, err error) {
	err = e.atomic("resolveDuel", func() error {
		res, err = e.resolveDuel(req)
		return err
	})
	return
}

func (e *Engine) resolveDuel(req DuelRequest) (DuelResult, error) {
	if req.Word1 == nil || req.Word2 == nil {
		return DuelResult{}, fmt.Errorf("%w: missing word", inter.ErrInvalidMessage)
	}
	msg, err := inter.DecodeDuelOutcome(req.Battle, req.Word1, req.Word2)
	if err != nil {
		return DuelResult{}, err
	}
	if err := e.verifyOracle(msg, req.Signature); err != nil {
		return DuelResult{}, err
	}
	if msg.Expired(e.Clock.Now()) {
		return DuelResult{}, fmt.Errorf("%w: duel %d expired at %d", ErrExpired, msg.DuelID, msg.Expiry)
	}
	owner, err := e.Registry.OwnerOf(req.MonsterID)
	if err != nil || owner != req.Player {
		return DuelResult{}, fmt.Errorf("%w: monster %d", ErrInvalidOwner, req.MonsterID)
	}
	if msg.ChainID != e.rules.ChainID {
		return DuelResult{}, fmt.Errorf("%w: message chain %d, running on %d", ErrInvalidChain, msg.ChainID, e.rules.ChainID)
	}
	if msg.MonsterID != req.MonsterID {
		return DuelResult{}, fmt.Errorf("%w: message monster %d, submitted for %d", ErrInvalidMonsterID, msg.MonsterID, req.MonsterID)
	}
	if last := e.Store.LastDuelID(req.MonsterID); msg.DuelID <= last {
		return DuelResult{}, fmt.Errorf("%w: duel %d, last accepted %d", ErrInvalidDuelID, msg.DuelID, last)
	}

	// the message species is the battle's species and keys staking, reward
	// and winner quota; the monster's own species does not take part
	cfg, ok, err := e.species(msg.Species)
	if err != nil {
		return DuelResult{}, err
	}
	word, known := e.Store.Gene(req.MonsterID)
	if !ok || !known {
		return DuelResult{}, fmt.Errorf("%w: %d", ErrInvalidSpecies, msg.Species)
	}
	gene, err := inter.DecodeGene(word)
	if err != nil {
		return DuelResult{}, err
	}

	res := DuelResult{Reward: new(big.Int), Gene: new(big.Int)}
	if req.Insurance.IsZero() {
		stake := economy.MilliTokens(cfg.StakingMilli)
		if bal := e.Token.BalanceOf(req.Player); bal.Cmp(stake) < 0 {
			return DuelResult{}, fmt.Errorf("%w: staked %v, need %v", ErrInvalidBalance, bal, stake)
		}
	} else {
		conv := e.converter()
		paid, err := paymentValue(conv, req.Insurance)
		if err != nil {
			return DuelResult{}, err
		}
		covers, err := conv.Covers(paid, uint64(cfg.InsuranceCents))
		if err != nil {
			return DuelResult{}, err
		}
		if !covers {
			return DuelResult{}, fmt.Errorf("%w: paid %v native, fee %d cents", ErrInsufficientInsurance, paid, cfg.InsuranceCents)
		}
		res.Insured = true
	}
	if max := e.maxRewardRatio(); uint64(msg.RewardRatio) > max {
		return DuelResult{}, fmt.Errorf("%w: %d > %d", ErrInvalidRatio, msg.RewardRatio, max)
	}

	if err := e.charge(req.Player, req.Insurance); err != nil {
		return DuelResult{}, err
	}
	seed, err := e.Seeds.Seed(idx.Block(msg.Battle))
	if err != nil {
		return DuelResult{}, err
	}
	res.Roll = randomness.Roll(seed)
	e.Store.SetLastDuelID(req.MonsterID, msg.DuelID)

	lost := uint32(res.Roll) < msg.KillRate
	exp := msg.Exp
	switch {
	case lost && !res.Insured:
		res.Died = true
		exp = 0
		if err := e.Registry.Burn(req.MonsterID); err != nil {
			return DuelResult{}, err
		}
		e.Store.DeleteGene(req.MonsterID)
		e.emitTransfer(inter.TransferEvent{From: req.Player, MonsterID: req.MonsterID})
	case lost:
		res.Gene = e.grantExp(req.MonsterID, gene, exp)
	default:
		res.Gene = e.grantExp(req.MonsterID, gene, exp)
		if e.Store.Winners(msg.Battle, msg.Species) < uint64(cfg.WinnersPerDuel) {
			e.Store.IncWinners(msg.Battle, msg.Species)
			res.Reward = rewardFor(cfg.RewardMilli, msg.RewardRatio)
			if err := e.Token.Transfer(e.treasury(), req.Player, res.Reward); err != nil {
				return DuelResult{}, fmt.Errorf("pay duel reward: %w", err)
			}
		} else {
			res.Late = true
		}
	}

	e.emitDuel(inter.DuelEvent{
		Player:    req.Player,
		MonsterID: req.MonsterID,
		Battle:    msg.Battle,
		Result:    inter.PackDuelResult(msg.DuelID, exp),
		Reward:    new(big.Int).Set(res.Reward),
		Roll:      res.Roll,
		Flags:     res.Flags(),
	})
	e.log.WithField("monster", req.MonsterID).WithField("duel", msg.DuelID).WithField("roll", res.Roll).
		WithField("died", res.Died).WithField("reward", res.Reward).Info("Duel resolved")
	return res, nil
}

// verifyOracle fails unless sig is a trusted duel signer's signature of msg.
func (e *Engine) verifyOracle(msg inter.DuelOutcome, sig []byte) error {
	signer, err := e.Recoverer.Recover(msg.Digest(), sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if err := e.Roles.IsAuthorized(signer, inter.ActionSignDuel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

func (e *Engine) grantExp(id uint64, gene inter.Gene, exp uint32) *big.Int {
	word := inter.EncodeGene(gene.AddExp(exp))
	e.Store.SetGene(id, word)
	return word
}

// rewardFor scales a species reward by ratio percent.
func rewardFor(milli uint32, ratio uint16) *big.Int {
	r := economy.MilliTokens(milli)
	r.Mul(r, big.NewInt(int64(ratio)))
	return r.Div(r, big.NewInt(100))
}

// Gene returns the current gene word of a creature.
func (e *Engine) Gene(id uint64) (*big.Int, bool) {
	var (
		w  *big.Int
		ok bool
	)
	_ = e.view(func() error {
		w, ok = e.Store.Gene(id)
		return nil
	})
	return w, ok
}

// LastDuelID returns the highest duel id accepted for a creature.
func (e *Engine) LastDuelID(id uint64) uint64 {
	var last uint64
	_ = e.view(func() error {
		last = e.Store.LastDuelID(id)
		return nil
	})
	return last
}
