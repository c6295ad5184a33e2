// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// Key prefixes
const (
	tokenInfoPrefix byte = iota
	tokenAccountBalancePrefix
	liquidityPoolPrefix
)

// Chunks
const (
	TokenInfoChunks           uint16 = 4
	TokenAccountBalanceChunks uint16 = 1
	LiquidityPoolChunks       uint16 = 3
)

// Related to action invariants
const (
	MaxTokenNameSize     = 64
	MaxTokenSymbolSize   = 8
	MaxTokenMetadataSize = 128
)

// All pool share tokens have the following data
const (
	LiquidityPoolTokenName     = "CPAMM-Pair" // #nosec G101
	LiquidityPoolTokenSymbol   = "CPAMMP"
	LiquidityPoolTokenMetadata = "A liquidity pool share"
)
