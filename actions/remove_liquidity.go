// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"fmt"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/ledger"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ codec.Typed  = (*RemoveLiquidityResult)(nil)
	_ chain.Action = (*RemoveLiquidity)(nil)
)

type RemoveLiquidityResult struct {
	AmountA     uint64 `json:"amountA"`
	AmountB     uint64 `json:"amountB"`
	Burned      uint64 `json:"burned"`
	ShareSupply uint64 `json:"shareSupply"`
}

func (*RemoveLiquidityResult) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

// RemoveLiquidity burns [Shares] of the pool share token for a
// proportional cut of both reserves.
type RemoveLiquidity struct {
	TokenX     codec.Address `json:"tokenX"`
	TokenY     codec.Address `json:"tokenY"`
	Shares     uint64        `json:"shares"`
	MinAmountX uint64        `json:"minAmountX"`
	MinAmountY uint64        `json:"minAmountY"`
}

func (*RemoveLiquidity) GetTypeID() uint8 {
	return consts.RemoveLiquidityID
}

func (r *RemoveLiquidity) StateKeys(actor codec.Address) state.Keys {
	lpAddress, keys := poolStateKeys(r.TokenX, r.TokenY, actor)
	return shareStateKeys(keys, lpAddress, actor)
}

func (r *RemoveLiquidity) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	return r.execute(ctx, mu, ledger.NewStateLedger(mu), actor)
}

func (r *RemoveLiquidity) execute(ctx context.Context, mu state.Mutable, l ledger.Ledger, actor codec.Address) (codec.Typed, error) {
	lpAddress := storage.LiquidityPoolAddress(r.TokenX, r.TokenY)
	lp, err := storage.GetLiquidityPool(ctx, mu, lpAddress)
	if err != nil {
		return nil, err
	}
	callerShares, err := l.GetBalance(ctx, lp.ShareToken, actor)
	if err != nil {
		return nil, fmt.Errorf("%w: share balance: %w", ledger.ErrLedger, err)
	}

	minA, minB := orient(lp, r.TokenX, r.MinAmountX, r.MinAmountY)
	res, err := pricing.RemoveLiquidity(lp.Pool(), r.Shares, minA, minB, callerShares)
	if err != nil {
		return nil, err
	}
	if err := l.Burn(ctx, lp.ShareToken, actor, res.Burned); err != nil {
		return nil, fmt.Errorf("%w: burn shares: %w", ledger.ErrLedger, err)
	}
	accounts := ledger.Accounts{Caller: actor, Pool: lpAddress, FeeSink: lp.FeeSink}
	if err := ledger.Settle(ctx, l, accounts, res.Transfers); err != nil {
		return nil, err
	}

	lp.SetPool(res.Pool)
	if err := storage.SetLiquidityPool(ctx, mu, lpAddress, lp); err != nil {
		return nil, err
	}
	return &RemoveLiquidityResult{
		AmountA:     res.AmountA,
		AmountB:     res.AmountB,
		Burned:      res.Burned,
		ShareSupply: lp.ShareSupply,
	}, nil
}
