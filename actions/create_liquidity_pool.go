// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ codec.Typed  = (*CreateLiquidityPoolResult)(nil)
	_ chain.Action = (*CreateLiquidityPool)(nil)
)

type CreateLiquidityPoolResult struct {
	LiquidityPool codec.Address `json:"liquidityPool"`
	ShareToken    codec.Address `json:"shareToken"`
}

func (*CreateLiquidityPoolResult) GetTypeID() uint8 {
	return consts.CreateLiquidityPoolID
}

// CreateLiquidityPool stores an empty pool for a pair of existing tokens.
// An empty [FeeSink] defaults to the actor.
type CreateLiquidityPool struct {
	TokenX  codec.Address `json:"tokenX"`
	TokenY  codec.Address `json:"tokenY"`
	FeeBPS  uint16        `json:"feeBPS"`
	FeeSink codec.Address `json:"feeSink"`
}

func (*CreateLiquidityPool) GetTypeID() uint8 {
	return consts.CreateLiquidityPoolID
}

func (c *CreateLiquidityPool) StateKeys(codec.Address) state.Keys {
	lpAddress := storage.LiquidityPoolAddress(c.TokenX, c.TokenY)
	lpTokenAddress := storage.LiquidityPoolTokenAddress(lpAddress)
	return state.Keys{
		string(storage.TokenInfoKey(c.TokenX)):       state.Read,
		string(storage.TokenInfoKey(c.TokenY)):       state.Read,
		string(storage.LiquidityPoolKey(lpAddress)):  state.All,
		string(storage.TokenInfoKey(lpTokenAddress)): state.All,
	}
}

func (c *CreateLiquidityPool) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	if uint64(c.FeeBPS) > consts.BasisPoints {
		return nil, pricing.ErrInvalidFee
	}
	if c.TokenX == c.TokenY {
		return nil, ErrOutputIdenticalTokens
	}
	if !storage.TokenExists(ctx, mu, c.TokenX) {
		return nil, ErrOutputTokenXDoesNotExist
	}
	if !storage.TokenExists(ctx, mu, c.TokenY) {
		return nil, ErrOutputTokenYDoesNotExist
	}

	poolAddress := storage.LiquidityPoolAddress(c.TokenX, c.TokenY)
	if storage.LiquidityPoolExists(ctx, mu, poolAddress) {
		return nil, ErrOutputLiquidityPoolAlreadyExists
	}
	feeSink := c.FeeSink
	if feeSink == codec.EmptyAddress {
		feeSink = actor
	}

	// Share token is owned by the pool so no account can mint it directly
	shareToken := storage.LiquidityPoolTokenAddress(poolAddress)
	if err := storage.SetTokenInfo(ctx, mu, shareToken, &storage.TokenInfo{
		Name:     []byte(storage.LiquidityPoolTokenName),
		Symbol:   []byte(storage.LiquidityPoolTokenSymbol),
		Metadata: []byte(storage.LiquidityPoolTokenMetadata),
		Owner:    poolAddress,
	}); err != nil {
		return nil, err
	}
	assetA, assetB := storage.SortAssets(c.TokenX, c.TokenY)
	if err := storage.SetLiquidityPool(ctx, mu, poolAddress, &storage.LiquidityPool{
		AssetA:     assetA,
		AssetB:     assetB,
		FeeBPS:     c.FeeBPS,
		FeeSink:    feeSink,
		ShareToken: shareToken,
	}); err != nil {
		return nil, err
	}
	return &CreateLiquidityPoolResult{
		LiquidityPool: poolAddress,
		ShareToken:    shareToken,
	}, nil
}
