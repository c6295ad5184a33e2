// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_ledger.go . Ledger

package ledger

import (
	"context"
	"fmt"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/pricing"
)

// Ledger holds the balances that pool operations move. Every method is
// atomic: a failed call leaves no partial update behind.
type Ledger interface {
	// GetBalance returns the balance of [account] in [asset].
	// If [account] never held [asset], this should return 0 and no error.
	GetBalance(ctx context.Context, asset codec.Address, account codec.Address) (uint64, error)

	// Transfer moves [amount] of [asset] and fails on insufficient funds.
	Transfer(ctx context.Context, asset codec.Address, from codec.Address, to codec.Address, amount uint64) error

	// Mint creates [amount] of [asset] for [to].
	Mint(ctx context.Context, asset codec.Address, to codec.Address, amount uint64) error

	// Burn destroys [amount] of [asset] held by [from].
	Burn(ctx context.Context, asset codec.Address, from codec.Address, amount uint64) error
}

// Accounts resolves the parties named by transfer instructions.
type Accounts struct {
	Caller  codec.Address
	Pool    codec.Address
	FeeSink codec.Address
}

func (a Accounts) resolve(p pricing.Party) (codec.Address, error) {
	switch p {
	case pricing.Caller:
		return a.Caller, nil
	case pricing.PoolAccount:
		return a.Pool, nil
	case pricing.FeeSink:
		return a.FeeSink, nil
	default:
		return codec.EmptyAddress, fmt.Errorf("%w: %d", ErrUnknownParty, p)
	}
}

// Settle applies [transfers] in order. Zero amounts are skipped. Any
// failure is wrapped in [ErrLedger].
func Settle(ctx context.Context, l Ledger, accounts Accounts, transfers []pricing.Transfer) error {
	for _, t := range transfers {
		if t.Amount == 0 {
			continue
		}
		from, err := accounts.resolve(t.From)
		if err != nil {
			return err
		}
		to, err := accounts.resolve(t.To)
		if err != nil {
			return err
		}
		if err := l.Transfer(ctx, t.Asset, from, to, t.Amount); err != nil {
			return fmt.Errorf("%w: %s %s -> %s: %w", ErrLedger, t.Asset, t.From, t.To, err)
		}
	}
	return nil
}
