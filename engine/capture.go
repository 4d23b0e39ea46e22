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

// CaptureRequest is a capture attempt.
type CaptureRequest struct {
	Capturer  common.Address
	Payment   inter.Payment
	Block     idx.Block
	Assistant uint64 // 0 for none
	Species   uint32
}

// CaptureResult describes a charged capture attempt. A failed roll is not
// an error: Success is false and MonsterID and Gene are zero.
type CaptureResult struct {
	Success   bool
	Roll      uint8
	Rate      uint8
	MonsterID uint64
	Gene      *big.Int
}

// AttemptCapture charges the payment and rolls for a creature of the
// requested species from the given block.
func (e *Engine) AttemptCapture(req CaptureRequest) (res CaptureResult, err error) {
	err = e.atomic("attemptCapture", func() error {
		res, err = e.attemptCapture(req)
		return err
	})
	return
}

func (e *Engine) attemptCapture(req CaptureRequest) (CaptureResult, error) {
	cfg, hash, err := e.resolveSpecies(req.Block, req.Species)
	if err != nil {
		return CaptureResult{}, err
	}

	conv := e.converter()
	paid, err := paymentValue(conv, req.Payment)
	if err != nil {
		return CaptureResult{}, err
	}
	covers, err := conv.Covers(paid, uint64(cfg.MinPowerCents))
	if err != nil {
		return CaptureResult{}, err
	}
	if !covers {
		return CaptureResult{}, fmt.Errorf("%w: paid %v native, need %d cents", ErrInvalidCapturePower, paid, cfg.MinPowerCents)
	}
	if e.Store.Captures(req.Species, req.Block) >= uint64(cfg.LimitPerBlock) {
		return CaptureResult{}, fmt.Errorf("%w: species %d block %d", ErrLimitReached, req.Species, req.Block)
	}

	rate := uint(cfg.BaseRate)
	if req.Assistant != 0 {
		matches, err := e.assistantMatches(req.Capturer, req.Assistant, cfg)
		if err != nil {
			return CaptureResult{}, err
		}
		if matches {
			rate += uint(e.rules.Capture.AssistantBonus)
		}
	}
	boost, err := conv.Points(paid, uint64(cfg.MinPowerCents), uint64(cfg.CostPerPointCents), uint64(e.rules.Capture.MaxBoost))
	if err != nil {
		return CaptureResult{}, err
	}
	rate += uint(boost)
	if max := uint(e.rules.Capture.MaxRate); rate > max {
		rate = max
	}

	// captures are charged whatever the roll
	if err := e.charge(req.Capturer, req.Payment); err != nil {
		return CaptureResult{}, err
	}

	seed, err := e.Seeds.Seed(req.Block)
	if err != nil {
		return CaptureResult{}, err
	}
	res := CaptureResult{
		Roll: randomness.Roll(seed),
		Rate: uint8(rate),
		Gene: new(big.Int),
	}
	log := e.log.WithField("capturer", req.Capturer.Hex()).WithField("species", req.Species).WithField("block", req.Block)

	if uint(res.Roll) > rate {
		e.emitCapture(inter.CaptureEvent{Capturer: req.Capturer, Block: req.Block, Gene: new(big.Int)})
		log.WithField("roll", res.Roll).WithField("rate", rate).Info("Capture failed")
		return res, nil
	}

	gene := inter.Gene{
		Kind:          inter.KindCaptured,
		OriginBlock:   hash.Uint64(),
		Species:       req.Species,
		PrimaryType:   cfg.PrimaryType,
		SecondaryType: cfg.SecondaryType,
		Stats:         inter.DeriveBattleStats(cfg.Ladder, new(big.Int).Div(seed, big.NewInt(100))),
	}
	id := e.rules.MonsterID(e.Store.NextMonsterSeq())
	if err := e.Registry.Mint(req.Capturer, id); err != nil {
		return CaptureResult{}, err
	}
	res.Success = true
	res.MonsterID = id
	res.Gene = inter.EncodeGene(gene)

	e.Store.SetGene(id, res.Gene)
	e.Store.IncCaptures(req.Species, req.Block)
	e.Store.LockBlockHash(req.Block)

	e.emitTransfer(inter.TransferEvent{To: req.Capturer, MonsterID: id})
	e.emitCapture(inter.CaptureEvent{Capturer: req.Capturer, Block: req.Block, MonsterID: id, Gene: new(big.Int).Set(res.Gene)})
	log.WithField("id", id).WithField("roll", res.Roll).WithField("rate", rate).Info("Monster captured")
	return res, nil
}

// resolveSpecies checks that the block's record falls in the range of the
// requested species.
func (e *Engine) resolveSpecies(block idx.Block, hint uint32) (inter.SpeciesConfig, *big.Int, error) {
	hash, ok := e.Store.BlockHash(block)
	if !ok {
		return inter.SpeciesConfig{}, nil, fmt.Errorf("%w: %d", ErrNotCatchBlock, block)
	}
	cfg, ok, err := e.species(hint)
	if err != nil {
		return inter.SpeciesConfig{}, nil, err
	}
	if ok && cfg.Contains(hash) {
		return cfg, hash, nil
	}
	for _, id := range e.Store.SpeciesIDs() {
		if id == hint {
			continue
		}
		other, ok, err := e.species(id)
		if err != nil {
			return inter.SpeciesConfig{}, nil, err
		}
		if ok && other.Contains(hash) {
			return inter.SpeciesConfig{}, nil, fmt.Errorf("%w: block %d belongs to species %d, not %d", ErrInvalidSpecies, block, id, hint)
		}
	}
	return inter.SpeciesConfig{}, nil, fmt.Errorf("%w: no species for block %d", ErrInvalidBlock, block)
}

// assistantMatches fails unless the capturer owns the assistant and reports
// whether it earns the assistant bonus.
func (e *Engine) assistantMatches(capturer common.Address, assistant uint64, cfg inter.SpeciesConfig) (bool, error) {
	owner, err := e.Registry.OwnerOf(assistant)
	if err != nil || owner != capturer {
		return false, fmt.Errorf("%w: %d", ErrNotAssistantOwner, assistant)
	}
	word, ok := e.Store.Gene(assistant)
	if !ok {
		return false, nil
	}
	gene, err := inter.DecodeGene(word)
	if err != nil {
		return false, err
	}
	return cfg.AssistMatches(gene.PrimaryType, gene.Exp), nil
}

// paymentValue returns what a payment is worth in native base units.
func paymentValue(conv *economy.Converter, p inter.Payment) (*big.Int, error) {
	if p.Currency != inter.Native && p.Currency != inter.Token {
		return nil, fmt.Errorf("%w: currency %s", ErrInvalidValue, p.Currency)
	}
	if p.Amount != nil && p.Amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative payment", ErrInvalidValue)
	}
	if p.IsZero() {
		return new(big.Int), nil
	}
	return conv.NativeValue(p)
}
