// Package engine implements the game rules: capture attempts, duel
// resolution, trade permits and the configurator settings they depend on.
//
// Every operation runs as one atomic unit over the game state: the engine
// takes a StateDB snapshot, applies the operation and reverts to the
// snapshot on any error, so a rejected call never leaves a partial effect.
// Events raised by an operation are delivered to subscribers only after the
// operation succeeded, in operation order.
package engine

import (
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/sirupsen/logrus"

	"github.com/Ambros-Technology/bcm-public-smartcontract/bcm"
	"github.com/Ambros-Technology/bcm-public-smartcontract/economy"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/randomness"
	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

// Ledger moves a fungible currency between accounts.
type Ledger interface {
	BalanceOf(acc common.Address) *big.Int
	Transfer(from, to common.Address, amount *big.Int) error
}

// Registry tracks creature ownership.
type Registry interface {
	OwnerOf(id uint64) (common.Address, error)
	Mint(to common.Address, id uint64) error
	Burn(id uint64) error
}

// Authorizer checks role-gated actions.
type Authorizer interface {
	IsAuthorized(caller common.Address, action inter.Action) error
}

// RoleManager is an Authorizer whose grants can be changed.
type RoleManager interface {
	Authorizer
	Grant(action inter.Action, acc common.Address)
	Revoke(action inter.Action, acc common.Address)
}

// Clock returns the current logical time.
type Clock interface {
	Now() inter.Timestamp
}

// Recoverer returns the signer of a digest.
type Recoverer interface {
	Recover(digest common.Hash, sig []byte) (common.Address, error)
}

// Snapshotter provides the all-or-nothing boundary of an operation.
type Snapshotter interface {
	Snapshot() int
	RevertToSnapshot(int)
}

// Deps are the collaborators of an Engine.
type Deps struct {
	State     Snapshotter
	Store     *store.Store
	Native    Ledger
	Token     Ledger
	Registry  Registry
	Roles     RoleManager
	Clock     Clock
	Recoverer Recoverer
	Seeds     randomness.Source
}

// Engine executes game operations.
type Engine struct {
	rules bcm.Rules
	Deps

	mu      sync.Mutex
	emitMu  sync.Mutex
	pending []func()

	captureFeed  event.Feed
	duelFeed     event.Feed
	cancelFeed   event.Feed
	transferFeed event.Feed
	scope        event.SubscriptionScope

	log *logrus.Entry
}

// New returns an engine operating under rules.
func New(rules bcm.Rules, deps Deps) *Engine {
	return &Engine{
		rules: rules.Copy(),
		Deps:  deps,
		log:   logrus.WithField("module", "engine"),
	}
}

// Rules returns a copy of the rules the engine operates under.
func (e *Engine) Rules() bcm.Rules {
	return e.rules.Copy()
}

func (e *Engine) treasury() common.Address {
	return e.rules.Economy.Treasury
}

// atomic runs op under the snapshot boundary. Events queued by op are sent
// after the state lock is released but before the next operation's events.
func (e *Engine) atomic(name string, op func() error) error {
	e.mu.Lock()
	snap := e.State.Snapshot()
	e.pending = nil

	if err := op(); err != nil {
		e.State.RevertToSnapshot(snap)
		e.pending = nil
		e.mu.Unlock()

		log := e.log.WithField("op", name).WithError(err)
		if isCallerError(err) {
			log.Debug("Operation rejected")
		} else {
			log.Warn("Operation reverted")
		}
		return err
	}

	sends := e.pending
	e.pending = nil
	e.emitMu.Lock()
	e.mu.Unlock()
	defer e.emitMu.Unlock()
	for _, send := range sends {
		send()
	}
	return nil
}

// view runs a read-only function against a consistent state.
func (e *Engine) view(fn func() error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn()
}

func (e *Engine) emitCapture(ev inter.CaptureEvent) {
	e.pending = append(e.pending, func() { e.captureFeed.Send(ev) })
}

func (e *Engine) emitDuel(ev inter.DuelEvent) {
	e.pending = append(e.pending, func() { e.duelFeed.Send(ev) })
}

func (e *Engine) emitCancel(ev inter.PermitCancelEvent) {
	e.pending = append(e.pending, func() { e.cancelFeed.Send(ev) })
}

func (e *Engine) emitTransfer(ev inter.TransferEvent) {
	e.pending = append(e.pending, func() { e.transferFeed.Send(ev) })
}

// SubscribeCaptures delivers every charged capture attempt.
func (e *Engine) SubscribeCaptures(ch chan<- inter.CaptureEvent) event.Subscription {
	return e.scope.Track(e.captureFeed.Subscribe(ch))
}

// SubscribeDuels delivers every resolved duel.
func (e *Engine) SubscribeDuels(ch chan<- inter.DuelEvent) event.Subscription {
	return e.scope.Track(e.duelFeed.Subscribe(ch))
}

// SubscribePermitCancels delivers permit cancellations.
func (e *Engine) SubscribePermitCancels(ch chan<- inter.PermitCancelEvent) event.Subscription {
	return e.scope.Track(e.cancelFeed.Subscribe(ch))
}

// SubscribeTransfers delivers creature mints and burns.
func (e *Engine) SubscribeTransfers(ch chan<- inter.TransferEvent) event.Subscription {
	return e.scope.Track(e.transferFeed.Subscribe(ch))
}

// Close unsubscribes all subscribers.
func (e *Engine) Close() {
	e.scope.Close()
}

func (e *Engine) converter() *economy.Converter {
	return economy.New(e.Store.ChainCurrencyPrice(), e.Store.ExchangeRate())
}

func (e *Engine) ledgerOf(c inter.Currency) Ledger {
	if c == inter.Token {
		return e.Token
	}
	return e.Native
}

// charge moves a payment from payer to the treasury.
func (e *Engine) charge(payer common.Address, p inter.Payment) error {
	if p.IsZero() {
		return nil
	}
	return e.ledgerOf(p.Currency).Transfer(payer, e.treasury(), p.Value())
}

func (e *Engine) species(id uint32) (inter.SpeciesConfig, bool, error) {
	a, b, ok := e.Store.Species(id)
	if !ok {
		return inter.SpeciesConfig{}, false, nil
	}
	cfg, err := inter.DecodeSpecies(a, b)
	if err != nil {
		return inter.SpeciesConfig{}, false, err
	}
	return cfg, true, nil
}
