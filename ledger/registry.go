package ledger

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common"

	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

// RegistryAddress is the account holding creature ownership storage.
var RegistryAddress = common.HexToAddress("0xbc30000000000000000000000000000000000721")

var (
	// ErrNonexistentMonster is returned for ids that were never minted or were burned.
	ErrNonexistentMonster = errors.New("owner query for nonexistent monster")
	// ErrAlreadyMinted is returned when minting an id that is owned.
	ErrAlreadyMinted = errors.New("monster already minted")
	// ErrNotOwner is returned when a transfer names the wrong current owner.
	ErrNotOwner = errors.New("transfer of monster that is not own")
	// ErrZeroAddress is returned for mints and transfers to the zero address.
	ErrZeroAddress = errors.New("transfer to the zero address")
)

// Registry records which account owns each creature.
type Registry struct {
	db   store.StateDB
	addr common.Address
}

// NewRegistry returns the ownership registry stored at RegistryAddress.
func NewRegistry(db store.StateDB) *Registry {
	return &Registry{db: db, addr: RegistryAddress}
}

func ownerKey(id uint64) common.Hash {
	return store.Slot("registry.owner", bigendian.Uint64ToBytes(id))
}

func countKey(acc common.Address) common.Hash {
	return store.Slot("registry.count", acc.Bytes())
}

// OwnerOf returns the current owner of a creature.
func (r *Registry) OwnerOf(id uint64) (common.Address, error) {
	owner := common.BytesToAddress(r.db.GetState(r.addr, ownerKey(id)).Bytes())
	if owner == (common.Address{}) {
		return common.Address{}, fmt.Errorf("%w: %d", ErrNonexistentMonster, id)
	}
	return owner, nil
}

// Exists reports whether id is currently owned.
func (r *Registry) Exists(id uint64) bool {
	_, err := r.OwnerOf(id)
	return err == nil
}

// BalanceOf returns the number of creatures owned by acc.
func (r *Registry) BalanceOf(acc common.Address) uint64 {
	return bigendian.BytesToUint64(r.db.GetState(r.addr, countKey(acc)).Bytes()[24:])
}

func (r *Registry) setCount(acc common.Address, n uint64) {
	var h common.Hash
	copy(h[24:], bigendian.Uint64ToBytes(n))
	r.db.SetState(r.addr, countKey(acc), h)
}

func (r *Registry) setOwner(id uint64, owner common.Address) {
	r.db.SetState(r.addr, ownerKey(id), common.BytesToHash(owner.Bytes()))
}

// Mint assigns a new creature id to an owner.
func (r *Registry) Mint(to common.Address, id uint64) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if r.Exists(id) {
		return fmt.Errorf("%w: %d", ErrAlreadyMinted, id)
	}
	r.setOwner(id, to)
	r.setCount(to, r.BalanceOf(to)+1)
	return nil
}

// Burn removes a creature from the ownership set.
func (r *Registry) Burn(id uint64) error {
	owner, err := r.OwnerOf(id)
	if err != nil {
		return err
	}
	r.setOwner(id, common.Address{})
	r.setCount(owner, r.BalanceOf(owner)-1)
	return nil
}

// Transfer moves a creature between accounts.
func (r *Registry) Transfer(from, to common.Address, id uint64) error {
	owner, err := r.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from {
		return fmt.Errorf("%w: %d owned by %s", ErrNotOwner, id, owner.Hex())
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	r.setOwner(id, to)
	r.setCount(from, r.BalanceOf(from)-1)
	r.setCount(to, r.BalanceOf(to)+1)
	return nil
}
