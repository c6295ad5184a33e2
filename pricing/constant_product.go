// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	smath "github.com/ava-labs/avalanchego/utils/math"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
)

// Fee returns floor(amount * feeBPS / 10_000).
func Fee(amount uint64, feeBPS uint16) (uint64, error) {
	if uint64(feeBPS) > consts.BasisPoints {
		return 0, ErrInvalidFee
	}
	return mulDiv(amount, uint64(feeBPS), consts.BasisPoints)
}

// Swap prices [amountIn] of [assetIn] against [pool].
//
// The fee is charged once, in the input asset. Half of it (floor) is paid
// to the fee sink and the rest stays in the pool, so the input reserve
// grows by amountIn minus the sink share.
func Swap(
	pool Pool,
	amountIn uint64,
	minAmountOut uint64,
	assetIn codec.Address,
	feeBPS uint16,
) (*SwapResult, error) {
	if !pool.Has(assetIn) {
		return nil, ErrInvalidAsset
	}
	if uint64(feeBPS) > consts.BasisPoints {
		return nil, ErrInvalidFee
	}
	if amountIn == 0 {
		return nil, ErrZeroAmount
	}
	if pool.Empty() {
		return nil, ErrEmptyPool
	}

	reserveIn, reserveOut, assetOut := pool.ReserveA, pool.ReserveB, pool.AssetB
	if assetIn == pool.AssetB {
		reserveIn, reserveOut, assetOut = pool.ReserveB, pool.ReserveA, pool.AssetA
	}

	fee, err := Fee(amountIn, feeBPS)
	if err != nil {
		return nil, err
	}
	amountInAfterFee, err := smath.Sub(amountIn, fee)
	if err != nil {
		return nil, err
	}
	denominator, err := smath.Add64(reserveIn, amountInAfterFee)
	if err != nil {
		return nil, err
	}
	amountOut, err := mulDiv(reserveOut, amountInAfterFee, denominator)
	if err != nil {
		return nil, err
	}
	if amountOut < minAmountOut {
		return nil, ErrSlippageExceeded
	}

	sinkFee := fee / 2
	credited, err := smath.Sub(amountIn, sinkFee)
	if err != nil {
		return nil, err
	}
	newReserveIn, err := smath.Add64(reserveIn, credited)
	if err != nil {
		return nil, err
	}
	newReserveOut, err := smath.Sub(reserveOut, amountOut)
	if err != nil {
		return nil, err
	}

	next := pool
	if assetIn == pool.AssetA {
		next.ReserveA, next.ReserveB = newReserveIn, newReserveOut
	} else {
		next.ReserveB, next.ReserveA = newReserveIn, newReserveOut
	}

	transfers := []Transfer{
		{Asset: assetIn, From: Caller, To: PoolAccount, Amount: amountIn},
		{Asset: assetOut, From: PoolAccount, To: Caller, Amount: amountOut},
	}
	if sinkFee > 0 {
		transfers = append(transfers, Transfer{Asset: assetIn, From: PoolAccount, To: FeeSink, Amount: sinkFee})
	}
	return &SwapResult{
		Pool:      next,
		AssetOut:  assetOut,
		AmountOut: amountOut,
		Fee:       fee,
		SinkFee:   sinkFee,
		Transfers: transfers,
	}, nil
}

// AddLiquidity deposits up to [amountA] and [amountB] into [pool].
//
// The first deposit sets the price and mints isqrt(amountA * amountB)
// shares. Later deposits take the scarcer side in full, cap the other side
// to the pool ratio, and mint the smaller of the two proportional claims.
func AddLiquidity(
	pool Pool,
	amountA uint64,
	amountB uint64,
	minShares uint64,
) (*AddLiquidityResult, error) {
	var (
		acceptedA uint64
		acceptedB uint64
		minted    uint64
	)
	if pool.ShareSupply == 0 {
		acceptedA, acceptedB = amountA, amountB
		minted = isqrt(amountA, amountB)
	} else {
		if pool.ReserveA == 0 || pool.ReserveB == 0 {
			return nil, ErrEmptyPool
		}
		acceptedA = capMulDiv(amountA, amountB, pool.ReserveA, pool.ReserveB)
		acceptedB = capMulDiv(amountB, amountA, pool.ReserveB, pool.ReserveA)
		sharesA, err := mulDiv(pool.ShareSupply, acceptedA, pool.ReserveA)
		if err != nil {
			return nil, err
		}
		sharesB, err := mulDiv(pool.ShareSupply, acceptedB, pool.ReserveB)
		if err != nil {
			return nil, err
		}
		minted = min(sharesA, sharesB)
	}
	if minted == 0 {
		return nil, ErrInsufficientLiquidityMinted
	}
	if minted < minShares {
		return nil, ErrSlippageExceeded
	}

	next := pool
	var err error
	if next.ReserveA, err = smath.Add64(pool.ReserveA, acceptedA); err != nil {
		return nil, err
	}
	if next.ReserveB, err = smath.Add64(pool.ReserveB, acceptedB); err != nil {
		return nil, err
	}
	if next.ShareSupply, err = smath.Add64(pool.ShareSupply, minted); err != nil {
		return nil, err
	}

	return &AddLiquidityResult{
		Pool:    next,
		AmountA: acceptedA,
		AmountB: acceptedB,
		Minted:  minted,
		Transfers: []Transfer{
			{Asset: pool.AssetA, From: Caller, To: PoolAccount, Amount: acceptedA},
			{Asset: pool.AssetB, From: Caller, To: PoolAccount, Amount: acceptedB},
		},
	}, nil
}

// RemoveLiquidity burns [shares] for a proportional cut of both reserves.
func RemoveLiquidity(
	pool Pool,
	shares uint64,
	minAmountA uint64,
	minAmountB uint64,
	callerShares uint64,
) (*RemoveLiquidityResult, error) {
	if callerShares < shares {
		return nil, ErrInsufficientShares
	}
	if pool.ShareSupply == 0 {
		return nil, ErrEmptyPool
	}
	if shares == 0 {
		return nil, ErrZeroAmount
	}
	if shares > pool.ShareSupply {
		return nil, ErrInsufficientShares
	}

	amountA, err := mulDiv(pool.ReserveA, shares, pool.ShareSupply)
	if err != nil {
		return nil, err
	}
	amountB, err := mulDiv(pool.ReserveB, shares, pool.ShareSupply)
	if err != nil {
		return nil, err
	}
	if amountA < minAmountA || amountB < minAmountB {
		return nil, ErrSlippageExceeded
	}

	next := pool
	if next.ReserveA, err = smath.Sub(pool.ReserveA, amountA); err != nil {
		return nil, err
	}
	if next.ReserveB, err = smath.Sub(pool.ReserveB, amountB); err != nil {
		return nil, err
	}
	if next.ShareSupply, err = smath.Sub(pool.ShareSupply, shares); err != nil {
		return nil, err
	}

	return &RemoveLiquidityResult{
		Pool:    next,
		AmountA: amountA,
		AmountB: amountB,
		Burned:  shares,
		Transfers: []Transfer{
			{Asset: pool.AssetA, From: PoolAccount, To: Caller, Amount: amountA},
			{Asset: pool.AssetB, From: PoolAccount, To: Caller, Amount: amountB},
		},
	}, nil
}

// capMulDiv returns min(limit, floor(x * y / d)). A quotient that does not
// fit in a uint64 is larger than any limit.
func capMulDiv(limit, x, y, d uint64) uint64 {
	v, err := mulDiv(x, y, d)
	if err != nil {
		return limit
	}
	return min(limit, v)
}
