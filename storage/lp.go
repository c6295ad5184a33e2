// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/utils"
)

const liquidityPoolSize = codec.AddressLen + codec.AddressLen + consts.Uint16Len +
	codec.AddressLen + codec.AddressLen +
	consts.Uint64Len + consts.Uint64Len + consts.Uint64Len

// LiquidityPool is the stored pool record. Reserves and share supply are
// kept in the same value so they are always read and written together.
type LiquidityPool struct {
	AssetA      codec.Address `json:"assetA"`
	AssetB      codec.Address `json:"assetB"`
	FeeBPS      uint16        `json:"feeBPS"`
	FeeSink     codec.Address `json:"feeSink"`
	ShareToken  codec.Address `json:"shareToken"`
	ReserveA    uint64        `json:"reserveA"`
	ReserveB    uint64        `json:"reserveB"`
	ShareSupply uint64        `json:"shareSupply"`
}

// Pool returns the pricing view of the record.
func (lp *LiquidityPool) Pool() pricing.Pool {
	return pricing.Pool{
		AssetA:      lp.AssetA,
		AssetB:      lp.AssetB,
		ReserveA:    lp.ReserveA,
		ReserveB:    lp.ReserveB,
		ShareSupply: lp.ShareSupply,
	}
}

// SetPool copies the reserves and share supply of [p] into the record.
func (lp *LiquidityPool) SetPool(p pricing.Pool) {
	lp.ReserveA = p.ReserveA
	lp.ReserveB = p.ReserveB
	lp.ShareSupply = p.ShareSupply
}

func LiquidityPoolKey(liquidityPoolAddress codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = liquidityPoolPrefix
	copy(k[1:1+codec.AddressLen], liquidityPoolAddress[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], LiquidityPoolChunks)
	return k
}

// SortAssets orders a pair so that the same two assets always map to the
// same pool.
func SortAssets(assetX codec.Address, assetY codec.Address) (codec.Address, codec.Address) {
	if assetX.Compare(assetY) <= 0 {
		return assetX, assetY
	}
	return assetY, assetX
}

func LiquidityPoolAddress(assetX codec.Address, assetY codec.Address) codec.Address {
	first, second := SortAssets(assetX, assetY)
	v := make([]byte, codec.AddressLen+codec.AddressLen)
	copy(v, first[:])
	copy(v[codec.AddressLen:], second[:])
	id := utils.ToID(v)
	return codec.CreateAddress(consts.LiquidityPoolID, id)
}

func LiquidityPoolTokenAddress(liquidityPool codec.Address) codec.Address {
	id := utils.ToID(liquidityPool[:])
	return codec.CreateAddress(consts.LiquidityPoolTokenID, id)
}

func SetLiquidityPool(
	ctx context.Context,
	mu state.Mutable,
	liquidityPoolAddress codec.Address,
	lp *LiquidityPool,
) error {
	p := codec.NewWriter(liquidityPoolSize, liquidityPoolSize)
	p.PackAddress(lp.AssetA)
	p.PackAddress(lp.AssetB)
	p.PackUint16(lp.FeeBPS)
	p.PackAddress(lp.FeeSink)
	p.PackAddress(lp.ShareToken)
	p.PackUint64(lp.ReserveA)
	p.PackUint64(lp.ReserveB)
	p.PackUint64(lp.ShareSupply)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, LiquidityPoolKey(liquidityPoolAddress), p.Bytes())
}

func GetLiquidityPool(
	ctx context.Context,
	im state.Immutable,
	poolAddress codec.Address,
) (*LiquidityPool, error) {
	v, err := im.GetValue(ctx, LiquidityPoolKey(poolAddress))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrLiquidityPoolDoesNotExist, poolAddress)
	}
	if err != nil {
		return nil, err
	}
	return innerGetLiquidityPool(v)
}

func innerGetLiquidityPool(v []byte) (*LiquidityPool, error) {
	var lp LiquidityPool
	p := codec.NewReader(v, liquidityPoolSize)
	p.UnpackAddress(true, &lp.AssetA)
	p.UnpackAddress(true, &lp.AssetB)
	lp.FeeBPS = p.UnpackUint16(false)
	p.UnpackAddress(true, &lp.FeeSink)
	p.UnpackAddress(true, &lp.ShareToken)
	lp.ReserveA = p.UnpackUint64(false)
	lp.ReserveB = p.UnpackUint64(false)
	lp.ShareSupply = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: liquidity pool has trailing bytes", ErrInvalidRecord)
	}
	return &lp, nil
}

func LiquidityPoolExists(
	ctx context.Context,
	im state.Immutable,
	poolAddress codec.Address,
) bool {
	v, err := im.GetValue(ctx, LiquidityPoolKey(poolAddress))
	return v != nil && err == nil
}
