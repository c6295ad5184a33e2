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
	_ codec.Typed  = (*AddLiquidityResult)(nil)
	_ chain.Action = (*AddLiquidity)(nil)
)

type AddLiquidityResult struct {
	AmountA     uint64 `json:"amountA"`
	AmountB     uint64 `json:"amountB"`
	Minted      uint64 `json:"minted"`
	ShareSupply uint64 `json:"shareSupply"`
}

func (*AddLiquidityResult) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

// AddLiquidity deposits up to [AmountX] of [TokenX] and [AmountY] of
// [TokenY]. Only the amounts matching the pool ratio are taken.
type AddLiquidity struct {
	TokenX    codec.Address `json:"tokenX"`
	TokenY    codec.Address `json:"tokenY"`
	AmountX   uint64        `json:"amountX"`
	AmountY   uint64        `json:"amountY"`
	MinShares uint64        `json:"minShares"`
}

func (*AddLiquidity) GetTypeID() uint8 {
	return consts.AddLiquidityID
}

func (a *AddLiquidity) StateKeys(actor codec.Address) state.Keys {
	lpAddress, keys := poolStateKeys(a.TokenX, a.TokenY, actor)
	return shareStateKeys(keys, lpAddress, actor)
}

func (a *AddLiquidity) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	return a.execute(ctx, mu, ledger.NewStateLedger(mu), actor)
}

func (a *AddLiquidity) execute(ctx context.Context, mu state.Mutable, l ledger.Ledger, actor codec.Address) (codec.Typed, error) {
	lpAddress := storage.LiquidityPoolAddress(a.TokenX, a.TokenY)
	lp, err := storage.GetLiquidityPool(ctx, mu, lpAddress)
	if err != nil {
		return nil, err
	}

	amountA, amountB := orient(lp, a.TokenX, a.AmountX, a.AmountY)
	res, err := pricing.AddLiquidity(lp.Pool(), amountA, amountB, a.MinShares)
	if err != nil {
		return nil, err
	}
	accounts := ledger.Accounts{Caller: actor, Pool: lpAddress, FeeSink: lp.FeeSink}
	if err := ledger.Settle(ctx, l, accounts, res.Transfers); err != nil {
		return nil, err
	}
	if err := l.Mint(ctx, lp.ShareToken, actor, res.Minted); err != nil {
		return nil, fmt.Errorf("%w: mint shares: %w", ledger.ErrLedger, err)
	}

	lp.SetPool(res.Pool)
	if err := storage.SetLiquidityPool(ctx, mu, lpAddress, lp); err != nil {
		return nil, err
	}
	return &AddLiquidityResult{
		AmountA:     res.AmountA,
		AmountB:     res.AmountB,
		Minted:      res.Minted,
		ShareSupply: lp.ShareSupply,
	}, nil
}
