// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

// TypeIDs for actions
const (
	// Token-related
	CreateTokenID uint8 = iota
	MintTokenID
	BurnTokenID
	TransferTokenID

	// LP-related
	CreateLiquidityPoolID
	AddLiquidityID
	RemoveLiquidityID
	SwapID

	// Read-only
	GetBalanceID
	GetLiquidityPoolID
)

// TypeIDs used as the first byte of a derived address
const (
	AccountID uint8 = iota
	TokenID
	LiquidityPoolID
	LiquidityPoolTokenID
)

const Name = "cpamm"

// ActionNames labels action metrics and log lines.
var ActionNames = map[uint8]string{
	CreateTokenID:         "create_token",
	MintTokenID:           "mint_token",
	BurnTokenID:           "burn_token",
	TransferTokenID:       "transfer_token",
	CreateLiquidityPoolID: "create_liquidity_pool",
	AddLiquidityID:        "add_liquidity",
	RemoveLiquidityID:     "remove_liquidity",
	SwapID:                "swap",
	GetBalanceID:          "get_balance",
	GetLiquidityPoolID:    "get_liquidity_pool",
}
