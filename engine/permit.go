package engine

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Ambros-Technology/bcm-public-smartcontract/inter"
)

// VerifyAndConsume checks a grantor-signed trade permit and marks its nonce
// used. The returned permit carries the authorized transfer parameters.
func (e *Engine) VerifyAndConsume(p inter.TradePermit, sig []byte) (inter.TradePermit, error) {
	err := e.atomic("verifyPermit", func() error {
		if p.Nonce == nil || p.Price == nil {
			return fmt.Errorf("%w: incomplete permit", inter.ErrInvalidMessage)
		}
		if err := checkWord(p.Nonce); err != nil {
			return fmt.Errorf("nonce: %w", err)
		}
		if err := checkWord(p.Price); err != nil {
			return fmt.Errorf("price: %w", err)
		}
		signer, err := e.Recoverer.Recover(p.Digest(), sig)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		if signer != p.Grantor {
			return fmt.Errorf("%w: signed by %s, not grantor %s", ErrInvalidSignature, signer.Hex(), p.Grantor.Hex())
		}
		if e.Store.PermitUsed(p.Grantor, p.Nonce) {
			return fmt.Errorf("%w: grantor %s nonce %v", ErrUsedPermit, p.Grantor.Hex(), p.Nonce)
		}
		if p.Expired(e.Clock.Now()) {
			return fmt.Errorf("%w: permit expired at %d", ErrExpired, p.Expiry)
		}
		if p.ChainID != e.rules.ChainID {
			return fmt.Errorf("%w: permit chain %d, running on %d", ErrInvalidChain, p.ChainID, e.rules.ChainID)
		}
		e.Store.UsePermit(p.Grantor, p.Nonce)
		e.log.WithField("grantor", p.Grantor.Hex()).WithField("nonce", p.Nonce).Debug("Permit consumed")
		return nil
	})
	if err != nil {
		return inter.TradePermit{}, err
	}
	return p, nil
}

// CancelPermit makes every permit of the caller carrying nonce unusable,
// including permits not issued yet.
func (e *Engine) CancelPermit(grantor common.Address, nonce *big.Int) error {
	return e.atomic("cancelPermit", func() error {
		if err := checkWord(nonce); err != nil {
			return err
		}
		e.Store.UsePermit(grantor, nonce)
		e.emitCancel(inter.PermitCancelEvent{Grantor: grantor, Nonce: new(big.Int).Set(nonce)})
		e.log.WithField("grantor", grantor.Hex()).WithField("nonce", nonce).Info("Permit cancelled")
		return nil
	})
}

// PermitUsed reports whether a grantor's nonce was consumed or cancelled.
func (e *Engine) PermitUsed(grantor common.Address, nonce *big.Int) bool {
	var used bool
	_ = e.view(func() error {
		used = e.Store.PermitUsed(grantor, nonce)
		return nil
	})
	return used
}
