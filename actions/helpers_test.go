// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

const (
	TokenOneName     = "LuigiCoin"
	TokenOneSymbol   = "LC"
	TokenOneMetadata = "A coin that represents Luigi" // #nosec G101

	TokenTwoName     = "MartinCoin"
	TokenTwoSymbol   = "MC"
	TokenTwoMetadata = "A coin that represents Martin" // #nosec G101

	TooLargeTokenName   = "Lorem ipsum dolor sit amet, consectetur adipiscing elit pharetra." // #nosec G101
	TooLargeTokenSymbol = "AAAAAAAAA"

	InitialMintValue = 10_000
	InitialFeeBPS    = 30
)

var (
	owner   = storage.AccountAddress("owner")
	trader  = storage.AccountAddress("trader")
	feeSink = storage.AccountAddress("fee-sink")

	tokenOneAddress = storage.TokenAddress([]byte(TokenOneName), []byte(TokenOneSymbol), []byte(TokenOneMetadata))
	tokenTwoAddress = storage.TokenAddress([]byte(TokenTwoName), []byte(TokenTwoSymbol), []byte(TokenTwoMetadata))

	// Pool order of the two test tokens
	assetA, assetB = storage.SortAssets(tokenOneAddress, tokenTwoAddress)

	lpAddress      = storage.LiquidityPoolAddress(tokenOneAddress, tokenTwoAddress)
	lpTokenAddress = storage.LiquidityPoolTokenAddress(lpAddress)
)

func createTokens() []chain.Action {
	return []chain.Action{
		&CreateToken{
			Name:     []byte(TokenOneName),
			Symbol:   []byte(TokenOneSymbol),
			Metadata: []byte(TokenOneMetadata),
		},
		&CreateToken{
			Name:     []byte(TokenTwoName),
			Symbol:   []byte(TokenTwoSymbol),
			Metadata: []byte(TokenTwoMetadata),
		},
	}
}

func fund(account codec.Address, amount uint64) []chain.Action {
	return []chain.Action{
		&MintToken{To: account, Token: tokenOneAddress, Value: amount},
		&MintToken{To: account, Token: tokenTwoAddress, Value: amount},
	}
}

func createPool(feeBPS uint16) chain.Action {
	return &CreateLiquidityPool{
		TokenX:  tokenOneAddress,
		TokenY:  tokenTwoAddress,
		FeeBPS:  feeBPS,
		FeeSink: feeSink,
	}
}

// setup executes [actions] as [owner] on a fresh store.
func setup(t *testing.T, actions ...[]chain.Action) *chaintest.InMemoryStore {
	store := chaintest.NewInMemoryStore()
	for _, batch := range actions {
		for _, action := range batch {
			_, err := action.Execute(context.TODO(), store, owner)
			require.NoError(t, err)
		}
	}
	return store
}

// setupPool returns a store with both tokens, [owner] and [trader] funded,
// and an empty pool.
func setupPool(t *testing.T) *chaintest.InMemoryStore {
	return setup(t,
		createTokens(),
		fund(owner, InitialMintValue),
		fund(trader, InitialMintValue),
		[]chain.Action{createPool(InitialFeeBPS)},
	)
}

// setupFundedPool deposits 1000 of asset A and 4000 of asset B from
// [owner].
func setupFundedPool(t *testing.T) *chaintest.InMemoryStore {
	store := setupPool(t)
	_, err := (&AddLiquidity{
		TokenX:  assetA,
		TokenY:  assetB,
		AmountX: 1000,
		AmountY: 4000,
	}).Execute(context.TODO(), store, owner)
	require.NoError(t, err)
	return store
}

func requireBalance(ctx context.Context, t *testing.T, im state.Immutable, token codec.Address, account codec.Address, expected uint64) {
	balance, err := storage.GetTokenAccountBalance(ctx, im, token, account)
	require.NoError(t, err)
	require.Equal(t, expected, balance)
}

func requirePool(ctx context.Context, t *testing.T, im state.Immutable, reserveA, reserveB, supply uint64) {
	lp, err := storage.GetLiquidityPool(ctx, im, lpAddress)
	require.NoError(t, err)
	require.Equal(t, reserveA, lp.ReserveA)
	require.Equal(t, reserveB, lp.ReserveB)
	require.Equal(t, supply, lp.ShareSupply)

	// Reserves are backed by the pool's balances
	requireBalance(ctx, t, im, assetA, lpAddress, reserveA)
	requireBalance(ctx, t, im, assetB, lpAddress, reserveB)

	info, err := storage.GetTokenInfo(ctx, im, lpTokenAddress)
	require.NoError(t, err)
	require.Equal(t, supply, info.TotalSupply)
}
