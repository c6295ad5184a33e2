// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
)

var (
	alice = AccountAddress("alice")
	bob   = AccountAddress("bob")
	coin  = TokenAddress([]byte("Coin"), []byte("CN"), []byte("a coin"))
)

func newTokenState(t *testing.T) state.MutableStorage {
	mu := state.MutableStorage{}
	require.NoError(t, SetTokenInfo(context.TODO(), mu, coin, &TokenInfo{
		Name:     []byte("Coin"),
		Symbol:   []byte("CN"),
		Metadata: []byte("a coin"),
		Owner:    alice,
	}))
	return mu
}

func TestAddresses(t *testing.T) {
	require := require.New(t)

	require.Equal(consts.AccountID, alice.TypeID())
	require.Equal(consts.TokenID, coin.TypeID())
	require.NotEqual(alice, bob)

	other := TokenAddress([]byte("Other"), []byte("OT"), []byte("another coin"))
	pool := LiquidityPoolAddress(coin, other)
	require.Equal(pool, LiquidityPoolAddress(other, coin))
	require.Equal(consts.LiquidityPoolID, pool.TypeID())
	require.Equal(consts.LiquidityPoolTokenID, LiquidityPoolTokenAddress(pool).TypeID())

	first, second := SortAssets(other, coin)
	require.Equal(-1, first.Compare(second))
}

func TestTokenInfo(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := newTokenState(t)

	require.True(TokenExists(ctx, mu, coin))
	info, err := GetTokenInfo(ctx, mu, coin)
	require.NoError(err)
	require.Equal([]byte("Coin"), info.Name)
	require.Equal([]byte("CN"), info.Symbol)
	require.Equal([]byte("a coin"), info.Metadata)
	require.Zero(info.TotalSupply)
	require.Equal(alice, info.Owner)

	missing := TokenAddress([]byte("Missing"), nil, nil)
	require.False(TokenExists(ctx, mu, missing))
	_, err = GetTokenInfo(ctx, mu, missing)
	require.ErrorIs(err, ErrTokenDoesNotExist)
}

func TestTokenInfoFitsChunks(t *testing.T) {
	require := require.New(t)

	info := &TokenInfo{
		Name:     make([]byte, MaxTokenNameSize),
		Symbol:   make([]byte, MaxTokenSymbolSize),
		Metadata: make([]byte, MaxTokenMetadataSize),
		Owner:    alice,
	}
	mu := state.MutableStorage{}
	require.NoError(SetTokenInfo(context.TODO(), mu, coin, info))
	v := mu[string(TokenInfoKey(coin))]
	require.True(state.VerifyValue(TokenInfoKey(coin), v))
}

func TestMintBurnTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := newTokenState(t)

	require.NoError(MintToken(ctx, mu, coin, alice, 100))
	require.NoError(TransferToken(ctx, mu, coin, alice, bob, 40))

	balance, err := GetTokenAccountBalance(ctx, mu, coin, alice)
	require.NoError(err)
	require.Equal(uint64(60), balance)
	balance, err = GetTokenAccountBalance(ctx, mu, coin, bob)
	require.NoError(err)
	require.Equal(uint64(40), balance)

	err = TransferToken(ctx, mu, coin, bob, alice, 41)
	require.ErrorIs(err, ErrInsufficientBalance)

	require.NoError(BurnToken(ctx, mu, coin, bob, 40))
	info, err := GetTokenInfo(ctx, mu, coin)
	require.NoError(err)
	require.Equal(uint64(60), info.TotalSupply)

	// Zero balances are removed from state
	_, ok := mu[string(TokenAccountBalanceKey(coin, bob))]
	require.False(ok)

	err = BurnToken(ctx, mu, coin, bob, 1)
	require.ErrorIs(err, ErrInsufficientBalance)

	missing := TokenAddress([]byte("Missing"), nil, nil)
	require.ErrorIs(MintToken(ctx, mu, missing, alice, 1), ErrTokenDoesNotExist)
	require.ErrorIs(TransferToken(ctx, mu, missing, alice, bob, 0), ErrTokenDoesNotExist)
}

func TestSelfTransfer(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := newTokenState(t)

	require.NoError(MintToken(ctx, mu, coin, alice, 10))
	require.NoError(TransferToken(ctx, mu, coin, alice, alice, 10))
	balance, err := GetTokenAccountBalance(ctx, mu, coin, alice)
	require.NoError(err)
	require.Equal(uint64(10), balance)
}

func TestLiquidityPool(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := state.MutableStorage{}

	other := TokenAddress([]byte("Other"), []byte("OT"), []byte("another coin"))
	assetA, assetB := SortAssets(coin, other)
	poolAddress := LiquidityPoolAddress(assetA, assetB)
	require.False(LiquidityPoolExists(ctx, mu, poolAddress))
	_, err := GetLiquidityPool(ctx, mu, poolAddress)
	require.ErrorIs(err, ErrLiquidityPoolDoesNotExist)

	lp := &LiquidityPool{
		AssetA:     assetA,
		AssetB:     assetB,
		FeeBPS:     30,
		FeeSink:    bob,
		ShareToken: LiquidityPoolTokenAddress(poolAddress),
	}
	lp.SetPool(pricing.Pool{ReserveA: 1000, ReserveB: 4000, ShareSupply: 2000})
	require.NoError(SetLiquidityPool(ctx, mu, poolAddress, lp))
	require.True(LiquidityPoolExists(ctx, mu, poolAddress))
	require.True(state.VerifyValue(LiquidityPoolKey(poolAddress), mu[string(LiquidityPoolKey(poolAddress))]))

	stored, err := GetLiquidityPool(ctx, mu, poolAddress)
	require.NoError(err)
	require.Equal(lp, stored)
	require.Equal(pricing.Pool{
		AssetA:      assetA,
		AssetB:      assetB,
		ReserveA:    1000,
		ReserveB:    4000,
		ShareSupply: 2000,
	}, stored.Pool())
}

func TestInvalidRecord(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	mu := state.MutableStorage{}

	poolAddress := codec.CreateAddress(consts.LiquidityPoolID, [32]byte{1})
	mu[string(LiquidityPoolKey(poolAddress))] = []byte{1, 2, 3}
	_, err := GetLiquidityPool(ctx, mu, poolAddress)
	require.ErrorIs(err, ErrInvalidRecord)

	mu[string(TokenAccountBalanceKey(coin, alice))] = []byte{1}
	_, err = GetTokenAccountBalance(ctx, mu, coin, alice)
	require.ErrorIs(err, ErrInvalidRecord)
}
