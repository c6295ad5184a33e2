// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import "errors"

var (
	// Token-related errors
	ErrOutputTokenNameEmpty        = errors.New("token name is empty")
	ErrOutputTokenNameTooLarge     = errors.New("token name is too large")
	ErrOutputTokenSymbolEmpty      = errors.New("token symbol is empty")
	ErrOutputTokenSymbolTooLarge   = errors.New("token symbol is too large")
	ErrOutputTokenMetadataTooLarge = errors.New("token metadata is too large")
	ErrOutputTokenAlreadyExists    = errors.New("token already exists")
	ErrOutputTokenNotOwner         = errors.New("actor is not token owner")
	ErrOutputMintValueZero         = errors.New("mint value is zero")
	ErrOutputBurnValueZero         = errors.New("burn value is zero")
	ErrOutputTransferValueZero     = errors.New("transfer value is zero")
	ErrOutputPoolAccount           = errors.New("pool balances only move through pool actions")

	// LP-related errors
	ErrOutputIdenticalTokens            = errors.New("token X and token Y are identical")
	ErrOutputTokenXDoesNotExist         = errors.New("token X does not exist")
	ErrOutputTokenYDoesNotExist         = errors.New("token Y does not exist")
	ErrOutputLiquidityPoolAlreadyExists = errors.New("liquidity pool already exists")
	ErrOutputFeeSinkMismatch            = errors.New("fee sink does not match the pool")
)
