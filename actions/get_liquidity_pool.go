// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ codec.Typed  = (*GetLiquidityPoolResult)(nil)
	_ chain.Action = (*GetLiquidityPool)(nil)
)

type GetLiquidityPoolResult struct {
	Address codec.Address `json:"address"`
	storage.LiquidityPool
}

func (*GetLiquidityPoolResult) GetTypeID() uint8 {
	return consts.GetLiquidityPoolID
}

type GetLiquidityPool struct {
	TokenX codec.Address `json:"tokenX"`
	TokenY codec.Address `json:"tokenY"`
}

func (*GetLiquidityPool) GetTypeID() uint8 {
	return consts.GetLiquidityPoolID
}

func (g *GetLiquidityPool) StateKeys(codec.Address) state.Keys {
	lpAddress := storage.LiquidityPoolAddress(g.TokenX, g.TokenY)
	return state.Keys{
		string(storage.LiquidityPoolKey(lpAddress)): state.Read,
	}
}

func (g *GetLiquidityPool) Execute(ctx context.Context, mu state.Mutable, _ codec.Address) (codec.Typed, error) {
	lpAddress := storage.LiquidityPoolAddress(g.TokenX, g.TokenY)
	lp, err := storage.GetLiquidityPool(ctx, mu, lpAddress)
	if err != nil {
		return nil, err
	}
	return &GetLiquidityPoolResult{
		Address:       lpAddress,
		LiquidityPool: *lp,
	}, nil
}
