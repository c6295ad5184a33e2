// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"errors"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrInvalidAsset                = errors.New("asset is not part of the pool")
	ErrInvalidFee                  = errors.New("fee is not between 0 and 10000 basis points")
	ErrZeroAmount                  = errors.New("amount is zero")
	ErrEmptyPool                   = errors.New("pool is empty")
	ErrSlippageExceeded            = errors.New("slippage exceeded")
	ErrInsufficientShares          = errors.New("insufficient pool shares")
	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")

	// Checked arithmetic failures match the errors returned by smath.
	ErrOverflow  = smath.ErrOverflow
	ErrUnderflow = smath.ErrUnderflow
)
