package ledger

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
	"github.com/Ambros-Technology/bcm-public-smartcontract/store"
)

// ErrUnauthorized is returned when a caller lacks the role for an action.
var ErrUnauthorized = errors.New("caller is missing role")

// Roles checks actions against role grants kept in game storage.
//
// Admins may perform every action except signing duels: duel outcomes are
// only trusted from keys granted ActionSignDuel explicitly.
type Roles struct {
	store *store.Store
}

// NewRoles returns an authorizer over s.
func NewRoles(s *store.Store) *Roles {
	return &Roles{store: s}
}

// IsAuthorized returns nil if caller may perform action.
func (r *Roles) IsAuthorized(caller common.Address, action inter.Action) error {
	if r.store.HasRole(string(action), caller) {
		return nil
	}
	if action != inter.ActionSignDuel && r.store.HasRole(string(inter.ActionAdmin), caller) {
		return nil
	}
	return fmt.Errorf("%w: account %s role %s", ErrUnauthorized, caller.Hex(), action)
}

// Grant gives acc the role for action.
func (r *Roles) Grant(action inter.Action, acc common.Address) {
	r.store.SetRole(string(action), acc, true)
}

// Revoke takes the role for action away from acc.
func (r *Roles) Revoke(action inter.Action, acc common.Address) {
	r.store.SetRole(string(action), acc, false)
}
