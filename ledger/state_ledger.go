// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var _ Ledger = (*StateLedger)(nil)

// StateLedger keeps balances in [state.Mutable] using the token layout of
// the storage package.
type StateLedger struct {
	mu state.Mutable
}

func NewStateLedger(mu state.Mutable) *StateLedger {
	return &StateLedger{mu: mu}
}

func (s *StateLedger) GetBalance(ctx context.Context, asset codec.Address, account codec.Address) (uint64, error) {
	return storage.GetTokenAccountBalance(ctx, s.mu, asset, account)
}

func (s *StateLedger) Transfer(ctx context.Context, asset codec.Address, from codec.Address, to codec.Address, amount uint64) error {
	return storage.TransferToken(ctx, s.mu, asset, from, to, amount)
}

func (s *StateLedger) Mint(ctx context.Context, asset codec.Address, to codec.Address, amount uint64) error {
	return storage.MintToken(ctx, s.mu, asset, to, amount)
}

func (s *StateLedger) Burn(ctx context.Context, asset codec.Address, from codec.Address, amount uint64) error {
	return storage.BurnToken(ctx, s.mu, asset, from, amount)
}
