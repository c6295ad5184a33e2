// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

// poolStateKeys returns the keys every pool operation touches: the pool
// record, token info of both assets, and both balances of the actor and
// the pool.
func poolStateKeys(tokenX codec.Address, tokenY codec.Address, actor codec.Address) (codec.Address, state.Keys) {
	lpAddress := storage.LiquidityPoolAddress(tokenX, tokenY)
	return lpAddress, state.Keys{
		string(storage.LiquidityPoolKey(lpAddress)):               state.All,
		string(storage.TokenInfoKey(tokenX)):                      state.Read,
		string(storage.TokenInfoKey(tokenY)):                      state.Read,
		string(storage.TokenAccountBalanceKey(tokenX, actor)):     state.All,
		string(storage.TokenAccountBalanceKey(tokenY, actor)):     state.All,
		string(storage.TokenAccountBalanceKey(tokenX, lpAddress)): state.All,
		string(storage.TokenAccountBalanceKey(tokenY, lpAddress)): state.All,
	}
}

// shareStateKeys adds the keys needed to mint or burn pool shares.
func shareStateKeys(keys state.Keys, lpAddress codec.Address, actor codec.Address) state.Keys {
	shareToken := storage.LiquidityPoolTokenAddress(lpAddress)
	keys.Add(string(storage.TokenInfoKey(shareToken)), state.All)
	keys.Add(string(storage.TokenAccountBalanceKey(shareToken, actor)), state.All)
	return keys
}

// orient maps amounts given for (tokenX, tokenY) onto the pool's (A, B)
// order.
func orient(lp *storage.LiquidityPool, tokenX codec.Address, x uint64, y uint64) (uint64, uint64) {
	if tokenX == lp.AssetA {
		return x, y
	}
	return y, x
}
