// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import "github.com/holiman/uint256"

// mulDiv returns floor(x * y / d) using a 256-bit intermediate product.
// The quotient must fit in a uint64.
func mulDiv(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrEmptyPool
	}
	var z uint256.Int
	z.Mul(uint256.NewInt(x), uint256.NewInt(y))
	z.Div(&z, uint256.NewInt(d))
	if !z.IsUint64() {
		return 0, ErrOverflow
	}
	return z.Uint64(), nil
}

// isqrt returns floor(sqrt(x * y)). The product of two uint64 values is
// at most 128 bits, so its root always fits in a uint64.
func isqrt(x, y uint64) uint64 {
	var z uint256.Int
	z.Mul(uint256.NewInt(x), uint256.NewInt(y))
	z.Sqrt(&z)
	return z.Uint64()
}
