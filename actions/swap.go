// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/ledger"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ codec.Typed  = (*SwapResult)(nil)
	_ chain.Action = (*Swap)(nil)
)

type SwapResult struct {
	AmountOut uint64        `json:"amountOut"`
	TokenOut  codec.Address `json:"tokenOut"`
	Fee       uint64        `json:"fee"`
	SinkFee   uint64        `json:"sinkFee"`
	ReserveA  uint64        `json:"reserveA"`
	ReserveB  uint64        `json:"reserveB"`
}

func (*SwapResult) GetTypeID() uint8 {
	return consts.SwapID
}

// Swap sells [AmountIn] of [TokenIn] for [TokenOut]. [FeeSink] must name
// the pool's fee sink so its balance can be declared up front.
type Swap struct {
	TokenIn      codec.Address `json:"tokenIn"`
	TokenOut     codec.Address `json:"tokenOut"`
	AmountIn     uint64        `json:"amountIn"`
	MinAmountOut uint64        `json:"minAmountOut"`
	FeeSink      codec.Address `json:"feeSink"`
}

func (*Swap) GetTypeID() uint8 {
	return consts.SwapID
}

func (s *Swap) StateKeys(actor codec.Address) state.Keys {
	_, keys := poolStateKeys(s.TokenIn, s.TokenOut, actor)
	keys.Add(string(storage.TokenAccountBalanceKey(s.TokenIn, s.FeeSink)), state.All)
	return keys
}

func (s *Swap) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	return s.execute(ctx, mu, ledger.NewStateLedger(mu), actor)
}

func (s *Swap) execute(ctx context.Context, mu state.Mutable, l ledger.Ledger, actor codec.Address) (codec.Typed, error) {
	lpAddress := storage.LiquidityPoolAddress(s.TokenIn, s.TokenOut)
	lp, err := storage.GetLiquidityPool(ctx, mu, lpAddress)
	if err != nil {
		return nil, err
	}
	if lp.FeeSink != s.FeeSink {
		return nil, ErrOutputFeeSinkMismatch
	}

	res, err := pricing.Swap(lp.Pool(), s.AmountIn, s.MinAmountOut, s.TokenIn, lp.FeeBPS)
	if err != nil {
		return nil, err
	}
	accounts := ledger.Accounts{Caller: actor, Pool: lpAddress, FeeSink: lp.FeeSink}
	if err := ledger.Settle(ctx, l, accounts, res.Transfers); err != nil {
		return nil, err
	}

	lp.SetPool(res.Pool)
	if err := storage.SetLiquidityPool(ctx, mu, lpAddress, lp); err != nil {
		return nil, err
	}
	return &SwapResult{
		AmountOut: res.AmountOut,
		TokenOut:  res.AssetOut,
		Fee:       res.Fee,
		SinkFee:   res.SinkFee,
		ReserveA:  lp.ReserveA,
		ReserveB:  lp.ReserveB,
	}, nil
}
