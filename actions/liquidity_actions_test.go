// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/cpamm/chain/chaintest"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/ledger"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var errLedgerDown = errors.New("ledger down")

func TestCreateLiquidityPool(t *testing.T) {
	store := setup(t, createTokens())

	tests := []chaintest.ActionTest{
		{
			Name: "Fee above 100%",
			Action: &CreateLiquidityPool{
				TokenX: tokenOneAddress,
				TokenY: tokenTwoAddress,
				FeeBPS: 10_001,
			},
			ExpectedErr: pricing.ErrInvalidFee,
			State:       store,
			Actor:       owner,
		},
		{
			Name: "Identical tokens",
			Action: &CreateLiquidityPool{
				TokenX: tokenOneAddress,
				TokenY: tokenOneAddress,
				FeeBPS: InitialFeeBPS,
			},
			ExpectedErr: ErrOutputIdenticalTokens,
			State:       store,
			Actor:       owner,
		},
		{
			Name: "Token X does not exist",
			Action: &CreateLiquidityPool{
				TokenX: lpTokenAddress,
				TokenY: tokenTwoAddress,
				FeeBPS: InitialFeeBPS,
			},
			ExpectedErr: ErrOutputTokenXDoesNotExist,
			State:       store,
			Actor:       owner,
		},
		{
			Name: "Token Y does not exist",
			Action: &CreateLiquidityPool{
				TokenX: tokenOneAddress,
				TokenY: lpTokenAddress,
				FeeBPS: InitialFeeBPS,
			},
			ExpectedErr: ErrOutputTokenYDoesNotExist,
			State:       store,
			Actor:       owner,
		},
		{
			Name:   "Correct pool is created",
			Action: createPool(InitialFeeBPS),
			ExpectedOutputs: &CreateLiquidityPoolResult{
				LiquidityPool: lpAddress,
				ShareToken:    lpTokenAddress,
			},
			State: store,
			Actor: owner,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				require := require.New(t)
				lp, err := storage.GetLiquidityPool(ctx, m, lpAddress)
				require.NoError(err)
				require.Equal(&storage.LiquidityPool{
					AssetA:     assetA,
					AssetB:     assetB,
					FeeBPS:     InitialFeeBPS,
					FeeSink:    feeSink,
					ShareToken: lpTokenAddress,
				}, lp)

				info, err := storage.GetTokenInfo(ctx, m, lpTokenAddress)
				require.NoError(err)
				require.Equal(lpAddress, info.Owner)
				require.Zero(info.TotalSupply)
			},
		},
		{
			Name:        "Pool already exists",
			Action:      createPool(InitialFeeBPS),
			ExpectedErr: ErrOutputLiquidityPoolAlreadyExists,
			State:       store,
			Actor:       owner,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestCreateLiquidityPoolDefaultFeeSink(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	store := setup(t, createTokens())

	_, err := (&CreateLiquidityPool{
		TokenX: tokenTwoAddress,
		TokenY: tokenOneAddress,
	}).Execute(ctx, store, trader)
	require.NoError(err)

	lp, err := storage.GetLiquidityPool(ctx, store, lpAddress)
	require.NoError(err)
	require.Equal(trader, lp.FeeSink)
	require.Zero(lp.FeeBPS)
}

func TestAddLiquidity(t *testing.T) {
	store := setupPool(t)

	tests := []chaintest.ActionTest{
		{
			Name: "First deposit mints isqrt of the product",
			Action: &AddLiquidity{
				TokenX:  assetA,
				TokenY:  assetB,
				AmountX: 1000,
				AmountY: 4000,
			},
			ExpectedOutputs: &AddLiquidityResult{
				AmountA:     1000,
				AmountB:     4000,
				Minted:      2000,
				ShareSupply: 2000,
			},
			State: store,
			Actor: owner,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requirePool(ctx, t, m, 1000, 4000, 2000)
				requireBalance(ctx, t, m, assetA, owner, InitialMintValue-1000)
				requireBalance(ctx, t, m, assetB, owner, InitialMintValue-4000)
				requireBalance(ctx, t, m, lpTokenAddress, owner, 2000)
			},
		},
		{
			Name: "Slippage",
			Action: &AddLiquidity{
				TokenX:    assetA,
				TokenY:    assetB,
				AmountX:   500,
				AmountY:   400,
				MinShares: 201,
			},
			ExpectedErr: pricing.ErrSlippageExceeded,
			State:       store,
			Actor:       trader,
		},
		{
			Name: "Excess is not taken",
			Action: &AddLiquidity{
				TokenX:  assetB,
				TokenY:  assetA,
				AmountX: 400,
				AmountY: 500,
			},
			ExpectedOutputs: &AddLiquidityResult{
				AmountA:     100,
				AmountB:     400,
				Minted:      200,
				ShareSupply: 2200,
			},
			State: store,
			Actor: trader,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requirePool(ctx, t, m, 1100, 4400, 2200)
				requireBalance(ctx, t, m, assetA, trader, InitialMintValue-100)
				requireBalance(ctx, t, m, assetB, trader, InitialMintValue-400)
				requireBalance(ctx, t, m, lpTokenAddress, trader, 200)
			},
		},
		{
			Name: "Dust deposit",
			Action: &AddLiquidity{
				TokenX:  assetA,
				TokenY:  assetB,
				AmountX: 1,
				AmountY: 1,
			},
			ExpectedErr: pricing.ErrInsufficientLiquidityMinted,
			State:       store,
			Actor:       trader,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestAddLiquidityPoolDoesNotExist(t *testing.T) {
	store := setup(t, createTokens(), fund(owner, InitialMintValue))

	test := chaintest.ActionTest{
		Name: "Pool does not exist",
		Action: &AddLiquidity{
			TokenX:  tokenOneAddress,
			TokenY:  tokenTwoAddress,
			AmountX: 1,
			AmountY: 1,
		},
		ExpectedErr: storage.ErrLiquidityPoolDoesNotExist,
		State:       store,
		Actor:       owner,
	}
	test.Run(context.Background(), t)
}

func TestSwap(t *testing.T) {
	store := setupFundedPool(t)

	tests := []chaintest.ActionTest{
		{
			Name: "Pool does not exist",
			Action: &Swap{
				TokenIn:  tokenOneAddress,
				TokenOut: lpTokenAddress,
				AmountIn: 100,
				FeeSink:  feeSink,
			},
			ExpectedErr: storage.ErrLiquidityPoolDoesNotExist,
			State:       store,
			Actor:       trader,
		},
		{
			Name: "Fee sink must match",
			Action: &Swap{
				TokenIn:  assetA,
				TokenOut: assetB,
				AmountIn: 100,
				FeeSink:  trader,
			},
			ExpectedErr: ErrOutputFeeSinkMismatch,
			State:       store,
			Actor:       trader,
		},
		{
			Name: "Zero input",
			Action: &Swap{
				TokenIn:  assetA,
				TokenOut: assetB,
				FeeSink:  feeSink,
			},
			ExpectedErr: pricing.ErrZeroAmount,
			State:       store,
			Actor:       trader,
		},
		{
			Name: "Slippage",
			Action: &Swap{
				TokenIn:      assetA,
				TokenOut:     assetB,
				AmountIn:     100,
				MinAmountOut: 364,
				FeeSink:      feeSink,
			},
			ExpectedErr: pricing.ErrSlippageExceeded,
			State:       store,
			Actor:       trader,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requirePool(ctx, t, m, 1000, 4000, 2000)
			},
		},
		{
			Name: "Fee rounds to zero",
			Action: &Swap{
				TokenIn:      assetA,
				TokenOut:     assetB,
				AmountIn:     100,
				MinAmountOut: 363,
				FeeSink:      feeSink,
			},
			ExpectedOutputs: &SwapResult{
				AmountOut: 363,
				TokenOut:  assetB,
				ReserveA:  1100,
				ReserveB:  3637,
			},
			State: store,
			Actor: trader,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requirePool(ctx, t, m, 1100, 3637, 2000)
				requireBalance(ctx, t, m, assetA, trader, InitialMintValue-100)
				requireBalance(ctx, t, m, assetB, trader, InitialMintValue+363)
				requireBalance(ctx, t, m, assetA, feeSink, 0)
			},
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestSwapPaysFeeSink(t *testing.T) {
	store := setupFundedPool(t)

	test := chaintest.ActionTest{
		Name: "Half of the fee goes to the sink",
		Action: &Swap{
			TokenIn:  assetA,
			TokenOut: assetB,
			AmountIn: 1000,
			FeeSink:  feeSink,
		},
		// fee = 3, sink = 1, out = floor(4000 * 997 / 1997)
		ExpectedOutputs: &SwapResult{
			AmountOut: 1996,
			TokenOut:  assetB,
			Fee:       3,
			SinkFee:   1,
			ReserveA:  1999,
			ReserveB:  2004,
		},
		State: store,
		Actor: trader,
		Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
			requirePool(ctx, t, m, 1999, 2004, 2000)
			requireBalance(ctx, t, m, assetA, feeSink, 1)
			requireBalance(ctx, t, m, assetA, trader, InitialMintValue-1000)
			requireBalance(ctx, t, m, assetB, trader, InitialMintValue+1996)
		},
	}
	test.Run(context.Background(), t)
}

func TestRemoveLiquidity(t *testing.T) {
	store := setupFundedPool(t)
	_, err := (&Swap{
		TokenIn:  assetA,
		TokenOut: assetB,
		AmountIn: 100,
		FeeSink:  feeSink,
	}).Execute(context.TODO(), store, trader)
	require.NoError(t, err)

	tests := []chaintest.ActionTest{
		{
			Name: "More shares than owned",
			Action: &RemoveLiquidity{
				TokenX: assetA,
				TokenY: assetB,
				Shares: 1,
			},
			ExpectedErr: pricing.ErrInsufficientShares,
			State:       store,
			Actor:       trader,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requirePool(ctx, t, m, 1100, 3637, 2000)
			},
		},
		{
			Name: "Slippage",
			Action: &RemoveLiquidity{
				TokenX:     assetB,
				TokenY:     assetA,
				Shares:     2000,
				MinAmountX: 3638,
			},
			ExpectedErr: pricing.ErrSlippageExceeded,
			State:       store,
			Actor:       owner,
		},
		{
			Name: "Remove every share",
			Action: &RemoveLiquidity{
				TokenX:     assetA,
				TokenY:     assetB,
				Shares:     2000,
				MinAmountX: 1100,
				MinAmountY: 3637,
			},
			ExpectedOutputs: &RemoveLiquidityResult{
				AmountA: 1100,
				AmountB: 3637,
				Burned:  2000,
			},
			State: store,
			Actor: owner,
			Assertion: func(ctx context.Context, t *testing.T, m state.Mutable) {
				requirePool(ctx, t, m, 0, 0, 0)
				requireBalance(ctx, t, m, lpTokenAddress, owner, 0)
				requireBalance(ctx, t, m, assetA, owner, InitialMintValue-1000+1100)
				requireBalance(ctx, t, m, assetB, owner, InitialMintValue-4000+3637)
			},
		},
		{
			Name: "Pool is empty",
			Action: &RemoveLiquidity{
				TokenX: assetA,
				TokenY: assetB,
			},
			ExpectedErr: pricing.ErrEmptyPool,
			State:       store,
			Actor:       owner,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}

func TestLedgerFailures(t *testing.T) {
	ctx := context.TODO()
	anyAddr := gomock.AssignableToTypeOf(codec.Address{})

	t.Run("swap transfer", func(t *testing.T) {
		require := require.New(t)
		ctrl := gomock.NewController(t)
		store := setupFundedPool(t)

		l := ledger.NewMockLedger(ctrl)
		l.EXPECT().Transfer(ctx, assetA, trader, lpAddress, uint64(100)).Return(errLedgerDown)

		_, err := (&Swap{
			TokenIn:  assetA,
			TokenOut: assetB,
			AmountIn: 100,
			FeeSink:  feeSink,
		}).execute(ctx, store, l, trader)
		require.ErrorIs(err, ledger.ErrLedger)
		require.ErrorIs(err, errLedgerDown)
		requirePool(ctx, t, store, 1000, 4000, 2000)
	})

	t.Run("add liquidity mint", func(t *testing.T) {
		require := require.New(t)
		ctrl := gomock.NewController(t)
		store := setupPool(t)

		l := ledger.NewMockLedger(ctrl)
		l.EXPECT().Transfer(ctx, anyAddr, owner, lpAddress, gomock.Any()).Return(nil).Times(2)
		l.EXPECT().Mint(ctx, lpTokenAddress, owner, uint64(2000)).Return(errLedgerDown)

		_, err := (&AddLiquidity{
			TokenX:  assetA,
			TokenY:  assetB,
			AmountX: 1000,
			AmountY: 4000,
		}).execute(ctx, store, l, owner)
		require.ErrorIs(err, ledger.ErrLedger)
		require.ErrorIs(err, errLedgerDown)
		requirePool(ctx, t, store, 0, 0, 0)
	})

	t.Run("remove liquidity share balance", func(t *testing.T) {
		require := require.New(t)
		ctrl := gomock.NewController(t)
		store := setupFundedPool(t)

		l := ledger.NewMockLedger(ctrl)
		l.EXPECT().GetBalance(ctx, lpTokenAddress, owner).Return(uint64(0), errLedgerDown)

		_, err := (&RemoveLiquidity{
			TokenX: assetA,
			TokenY: assetB,
			Shares: 1,
		}).execute(ctx, store, l, owner)
		require.ErrorIs(err, ledger.ErrLedger)
		require.ErrorIs(err, errLedgerDown)
	})

	t.Run("remove liquidity burn", func(t *testing.T) {
		require := require.New(t)
		ctrl := gomock.NewController(t)
		store := setupFundedPool(t)

		l := ledger.NewMockLedger(ctrl)
		l.EXPECT().GetBalance(ctx, lpTokenAddress, owner).Return(uint64(2000), nil)
		l.EXPECT().Burn(ctx, lpTokenAddress, owner, uint64(1000)).Return(errLedgerDown)

		_, err := (&RemoveLiquidity{
			TokenX: assetA,
			TokenY: assetB,
			Shares: 1000,
		}).execute(ctx, store, l, owner)
		require.ErrorIs(err, ledger.ErrLedger)
		requirePool(ctx, t, store, 1000, 4000, 2000)
	})
}

func TestGetLiquidityPool(t *testing.T) {
	store := setupFundedPool(t)

	tests := []chaintest.ActionTest{
		{
			Name:   "Funded pool",
			Action: &GetLiquidityPool{TokenX: tokenTwoAddress, TokenY: tokenOneAddress},
			ExpectedOutputs: &GetLiquidityPoolResult{
				Address: lpAddress,
				LiquidityPool: storage.LiquidityPool{
					AssetA:      assetA,
					AssetB:      assetB,
					FeeBPS:      InitialFeeBPS,
					FeeSink:     feeSink,
					ShareToken:  lpTokenAddress,
					ReserveA:    1000,
					ReserveB:    4000,
					ShareSupply: 2000,
				},
			},
			State: store,
		},
		{
			Name:        "Unknown pool",
			Action:      &GetLiquidityPool{TokenX: tokenOneAddress, TokenY: lpTokenAddress},
			ExpectedErr: storage.ErrLiquidityPoolDoesNotExist,
			State:       store,
		},
	}

	for _, tt := range tests {
		tt.Run(context.Background(), t)
	}
}
