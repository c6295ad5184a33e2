// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/ava-labs/cpamm/codec"

// Party identifies one side of a transfer instruction. Accounts are
// resolved by the host: the engine only knows roles.
type Party uint8

const (
	Caller Party = iota
	PoolAccount
	FeeSink
)

func (p Party) String() string {
	switch p {
	case Caller:
		return "caller"
	case PoolAccount:
		return "pool"
	case FeeSink:
		return "fee_sink"
	default:
		return "unknown"
	}
}

func (p Party) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Transfer moves [Amount] of [Asset] from one party to another.
type Transfer struct {
	Asset  codec.Address `json:"asset"`
	From   Party         `json:"from"`
	To     Party         `json:"to"`
	Amount uint64        `json:"amount"`
}

// Pool is a snapshot of a two-asset pool. Reserves and share supply are
// always read and written together.
type Pool struct {
	AssetA      codec.Address `json:"assetA"`
	AssetB      codec.Address `json:"assetB"`
	ReserveA    uint64        `json:"reserveA"`
	ReserveB    uint64        `json:"reserveB"`
	ShareSupply uint64        `json:"shareSupply"`
}

// Empty reports whether the pool cannot price a trade.
func (p Pool) Empty() bool {
	return p.ShareSupply == 0 || p.ReserveA == 0 || p.ReserveB == 0
}

// Has reports whether [asset] is one of the pool's assets.
func (p Pool) Has(asset codec.Address) bool {
	return asset == p.AssetA || asset == p.AssetB
}

type SwapResult struct {
	Pool      Pool          `json:"pool"`
	AssetOut  codec.Address `json:"assetOut"`
	AmountOut uint64        `json:"amountOut"`
	Fee       uint64        `json:"fee"`
	SinkFee   uint64        `json:"sinkFee"`
	Transfers []Transfer    `json:"transfers"`
}

type AddLiquidityResult struct {
	Pool      Pool       `json:"pool"`
	AmountA   uint64     `json:"amountA"`
	AmountB   uint64     `json:"amountB"`
	Minted    uint64     `json:"minted"`
	Transfers []Transfer `json:"transfers"`
}

type RemoveLiquidityResult struct {
	Pool      Pool       `json:"pool"`
	AmountA   uint64     `json:"amountA"`
	AmountB   uint64     `json:"amountB"`
	Burned    uint64     `json:"burned"`
	Transfers []Transfer `json:"transfers"`
}
