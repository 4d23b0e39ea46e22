// Package settingsabi exposes the game settings in contract-call form.
//
// Overview:
//
//	Configurators of the deployed game talk to the settings contract with
//	ABI-encoded calldata. This package accepts the same calldata, dispatches
//	it by method selector to the engine and ABI-encodes the results, so that
//	recorded contract calls can be replayed against the engine unchanged and
//	tools built for the contract can read engine state.
//
// Security Model:
//   - The caller address is passed through to the engine, which checks roles
//   - Input must carry a known 4-byte selector and well-formed arguments
//   - Failures are reported as reverts carrying the contract's reason string
//
// Methods:
//   - setSpeciesSetting(uint32,uint256,uint256), setBlockHash(uint256,uint256)
//   - setChainCurrencyPrice(uint256), setExchangeRate(uint256), setRewardRatioMax(uint16)
//   - speciesSetting1/2, getSpeciesSetting, getFixedSpeciesSetting,
//     getCatchSpeciesSetting, getBattleSpeciesSetting, getBattleStats,
//     getMinCapturePayment, blockHash, rewardRatioMax
package settingsabi

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Ambros-Technology/bcm-public-smartcontract/engine"
	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

// ContractAddress is the address configurator calls are addressed to.
var ContractAddress = store.ContractAddress

// ContractABI is the JSON ABI of the settings contract.
const ContractABI = `[
{"type":"function","name":"setSpeciesSetting","stateMutability":"nonpayable","inputs":[{"name":"speciesId","type":"uint32"},{"name":"setting1","type":"uint256"},{"name":"setting2","type":"uint256"}],"outputs":[]},
{"type":"function","name":"setBlockHash","stateMutability":"nonpayable","inputs":[{"name":"blockNumber","type":"uint256"},{"name":"hash","type":"uint256"}],"outputs":[]},
{"type":"function","name":"setChainCurrencyPrice","stateMutability":"nonpayable","inputs":[{"name":"price","type":"uint256"}],"outputs":[]},
{"type":"function","name":"setExchangeRate","stateMutability":"nonpayable","inputs":[{"name":"rate","type":"uint256"}],"outputs":[]},
{"type":"function","name":"setRewardRatioMax","stateMutability":"nonpayable","inputs":[{"name":"ratio","type":"uint16"}],"outputs":[]},
{"type":"function","name":"speciesSetting1","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"speciesSetting2","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"getSpeciesSetting","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"","type":"uint256"},{"name":"","type":"uint256"}]},
{"type":"function","name":"getFixedSpeciesSetting","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"hashStart","type":"uint256"},{"name":"hashEnd","type":"uint256"},{"name":"type1","type":"uint256"},{"name":"type2","type":"uint256"}]},
{"type":"function","name":"getCatchSpeciesSetting","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"minCatchPower","type":"uint256"},{"name":"limitPerBlock","type":"uint16"},{"name":"baseRate","type":"uint8"},{"name":"costPerPoint","type":"uint256"},{"name":"assistType","type":"uint8"},{"name":"minExp","type":"uint32"},{"name":"maxExp","type":"uint32"}]},
{"type":"function","name":"getBattleSpeciesSetting","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"staking","type":"uint256"},{"name":"reward","type":"uint256"},{"name":"winners","type":"uint256"},{"name":"insurance","type":"uint256"}]},
{"type":"function","name":"getBattleStats","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"","type":"uint8[6]"}]},
{"type":"function","name":"getMinCapturePayment","stateMutability":"view","inputs":[{"name":"speciesId","type":"uint32"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"blockHash","stateMutability":"view","inputs":[{"name":"blockNumber","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"rewardRatioMax","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

var (
	// ErrUnknownMethod is returned for calldata with an unknown selector.
	ErrUnknownMethod = errors.New("unknown settings method")
	// ErrShortInput is returned for calldata shorter than a selector.
	ErrShortInput = errors.New("calldata shorter than selector")
)

var (
	contractABI abi.ABI

	// revertSelector prefixes Error(string) revert data
	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	revertArgs     abi.Arguments
)

func init() {
	var err error
	contractABI, err = abi.JSON(strings.NewReader(ContractABI))
	if err != nil {
		panic(err)
	}
	str, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(err)
	}
	revertArgs = abi.Arguments{{Type: str}}
}

// ABI returns the parsed contract ABI.
func ABI() abi.ABI {
	return contractABI
}

// Pack returns the calldata of a call to the named method.
func Pack(method string, args ...interface{}) ([]byte, error) {
	return contractABI.Pack(method, args...)
}

// Backend is the part of the engine configurator calls reach.
type Backend interface {
	SetSpeciesConfig(caller common.Address, id uint32, a, b *big.Int) error
	SetBlockHash(caller common.Address, block idx.Block, hash *big.Int) error
	SetChainCurrencyPrice(caller common.Address, cents *big.Int) error
	SetExchangeRate(caller common.Address, bps *big.Int) error
	SetMaxRewardRatio(caller common.Address, ratio uint16) error

	SpeciesWords(id uint32) (a, b *big.Int, err error)
	FixedSpeciesView(id uint32) (engine.FixedView, error)
	CatchSpeciesView(id uint32) (engine.CatchView, error)
	BattleSpeciesView(id uint32) (engine.BattleView, error)
	BattleStats(id uint32) ([inter.StatCount]uint8, error)
	MinCapturePayment(id uint32) (*big.Int, error)
	BlockHash(block idx.Block) (*big.Int, bool)
	MaxRewardRatio() uint64
}

// Contract dispatches calldata to a Backend.
type Contract struct {
	backend Backend
}

// New returns a contract over backend.
func New(backend Backend) *Contract {
	return &Contract{backend: backend}
}

// Call executes calldata on behalf of caller and returns the ABI-encoded
// results. Failures wrap vm.ErrExecutionReverted; RevertData returns the
// matching revert payload.
func (c *Contract) Call(caller common.Address, input []byte) ([]byte, error) {
	if len(input) < 4 {
		return nil, fmt.Errorf("%w: %v", vm.ErrExecutionReverted, ErrShortInput)
	}
	method, err := contractABI.MethodById(input[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vm.ErrExecutionReverted, ErrUnknownMethod)
	}
	args, err := method.Inputs.Unpack(input[4:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", vm.ErrExecutionReverted, method.Name, err)
	}

	out, err := c.dispatch(caller, method.Name, args)
	if err != nil {
		return nil, &Revert{Method: method.Name, Err: err}
	}
	return method.Outputs.Pack(out...)
}

func (c *Contract) dispatch(caller common.Address, name string, args []interface{}) ([]interface{}, error) {
	b := c.backend
	switch name {
	case "setSpeciesSetting":
		return nil, b.SetSpeciesConfig(caller, args[0].(uint32), args[1].(*big.Int), args[2].(*big.Int))
	case "setBlockHash":
		block, err := blockArg(args[0])
		if err != nil {
			return nil, err
		}
		return nil, b.SetBlockHash(caller, block, args[1].(*big.Int))
	case "setChainCurrencyPrice":
		return nil, b.SetChainCurrencyPrice(caller, args[0].(*big.Int))
	case "setExchangeRate":
		return nil, b.SetExchangeRate(caller, args[0].(*big.Int))
	case "setRewardRatioMax":
		return nil, b.SetMaxRewardRatio(caller, args[0].(uint16))

	case "speciesSetting1", "speciesSetting2", "getSpeciesSetting":
		a, w, err := b.SpeciesWords(args[0].(uint32))
		if err != nil {
			return nil, err
		}
		switch name {
		case "speciesSetting1":
			return []interface{}{a}, nil
		case "speciesSetting2":
			return []interface{}{w}, nil
		}
		return []interface{}{a, w}, nil
	case "getFixedSpeciesSetting":
		v, err := b.FixedSpeciesView(args[0].(uint32))
		if err != nil {
			return nil, err
		}
		return []interface{}{
			new(big.Int).SetUint64(v.HashStart),
			new(big.Int).SetUint64(v.HashEnd),
			big.NewInt(int64(v.PrimaryType)),
			big.NewInt(int64(v.SecondaryType)),
		}, nil
	case "getCatchSpeciesSetting":
		v, err := b.CatchSpeciesView(args[0].(uint32))
		if err != nil {
			return nil, err
		}
		return []interface{}{v.MinPower, v.LimitPerBlock, v.BaseRate, v.CostPerPoint, v.AssistType, v.AssistMinExp, v.AssistMaxExp}, nil
	case "getBattleSpeciesSetting":
		v, err := b.BattleSpeciesView(args[0].(uint32))
		if err != nil {
			return nil, err
		}
		return []interface{}{v.Staking, v.Reward, big.NewInt(int64(v.WinnersPerDuel)), v.Insurance}, nil
	case "getBattleStats":
		ladder, err := b.BattleStats(args[0].(uint32))
		if err != nil {
			return nil, err
		}
		return []interface{}{ladder}, nil
	case "getMinCapturePayment":
		v, err := b.MinCapturePayment(args[0].(uint32))
		if err != nil {
			return nil, err
		}
		return []interface{}{v}, nil
	case "blockHash":
		block, err := blockArg(args[0])
		if err != nil {
			return nil, err
		}
		h, ok := b.BlockHash(block)
		if !ok {
			h = new(big.Int)
		}
		return []interface{}{h}, nil
	case "rewardRatioMax":
		return []interface{}{new(big.Int).SetUint64(b.MaxRewardRatio())}, nil
	}
	return nil, ErrUnknownMethod
}

func blockArg(v interface{}) (idx.Block, error) {
	n := v.(*big.Int)
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: block %v", engine.ErrInvalidValue, n)
	}
	return idx.Block(n.Uint64()), nil
}

// Revert is a failed call.
type Revert struct {
	Method string
	Err    error
}

func (r *Revert) Error() string {
	return fmt.Sprintf("%s: %s: %v", vm.ErrExecutionReverted, r.Method, r.Err)
}

// Unwrap lets errors.Is see both the revert and its cause.
func (r *Revert) Unwrap() error {
	return r.Err
}

// Is reports a Revert as vm.ErrExecutionReverted.
func (r *Revert) Is(target error) bool {
	return target == vm.ErrExecutionReverted
}

// Reason returns the revert reason the deployed contract gives for the
// failure, e.g. "invalid_species".
func (r *Revert) Reason() string {
	err := r.Err
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// RevertData returns the Error(string) payload of the revert.
func (r *Revert) RevertData() []byte {
	packed, err := revertArgs.Pack(r.Reason())
	if err != nil {
		return nil
	}
	return append(append([]byte{}, revertSelector...), packed...)
}
