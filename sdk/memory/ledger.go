// Package memory implements the controller effect backends in process. It is used by tests and
// local dry runs; balances only move and flags only flip.
package memory

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/sdk"
	sdkerrors "github.com/tetu-io/tetu-timelock/sdk/errors"
)

var _ sdk.TokenLedger = (*Ledger)(nil)

// Ledger tracks ERC20 balances per token and holder.
type Ledger struct {
	mu       sync.RWMutex
	balances map[common.Address]map[common.Address]*big.Int
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[common.Address]map[common.Address]*big.Int)}
}

// Credit adds amount to the holder balance out of thin air.
func (l *Ledger) Credit(token, holder common.Address, amount *big.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.credit(token, holder, amount)
}

func (l *Ledger) credit(token, holder common.Address, amount *big.Int) {
	holders, ok := l.balances[token]
	if !ok {
		holders = make(map[common.Address]*big.Int)
		l.balances[token] = holders
	}
	bal, ok := holders[holder]
	if !ok {
		bal = new(big.Int)
		holders[holder] = bal
	}
	bal.Add(bal, amount)
}

func (l *Ledger) BalanceOf(_ context.Context, token, holder common.Address) (*big.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balanceOf(token, holder), nil
}

func (l *Ledger) balanceOf(token, holder common.Address) *big.Int {
	if bal, ok := l.balances[token][holder]; ok {
		return new(big.Int).Set(bal)
	}

	return new(big.Int)
}

func (l *Ledger) Transfer(_ context.Context, token, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %v", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bal := l.balanceOf(token, from)
	if bal.Cmp(amount) < 0 {
		return sdkerrors.NewInsufficientBalanceError(token, from, bal, amount)
	}

	l.balances[token][from].Sub(l.balances[token][from], amount)
	l.credit(token, to, amount)

	return nil
}
