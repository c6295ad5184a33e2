// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrTokenDoesNotExist         = errors.New("token does not exist")
	ErrLiquidityPoolDoesNotExist = errors.New("liquidity pool does not exist")
	ErrInsufficientBalance       = errors.New("insufficient balance")
	ErrInvalidRecord             = errors.New("invalid record")
)
