// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/pricing"
	"github.com/ava-labs/cpamm/utils"
)

var (
	quoteAssetA = codec.CreateAddress(consts.TokenID, ids.ID{'a'})
	quoteAssetB = codec.CreateAddress(consts.TokenID, ids.ID{'b'})
)

type quoteFlags struct {
	reserveA uint64
	reserveB uint64
	supply   uint64
}

func (q *quoteFlags) pool() pricing.Pool {
	return pricing.Pool{
		AssetA:      quoteAssetA,
		AssetB:      quoteAssetB,
		ReserveA:    q.reserveA,
		ReserveB:    q.reserveB,
		ShareSupply: q.supply,
	}
}

func newQuoteCmd() *cobra.Command {
	q := &quoteFlags{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price an action against the given reserves without touching state",
	}
	cmd.PersistentFlags().Uint64Var(&q.reserveA, "reserve-a", 0, "reserve of asset A")
	cmd.PersistentFlags().Uint64Var(&q.reserveB, "reserve-b", 0, "reserve of asset B")
	cmd.PersistentFlags().Uint64Var(&q.supply, "supply", 0, "outstanding pool shares")

	cmd.AddCommand(
		newQuoteSwapCmd(q),
		newQuoteAddCmd(q),
		newQuoteRemoveCmd(q),
	)
	return cmd
}

func newQuoteSwapCmd(q *quoteFlags) *cobra.Command {
	var (
		amountIn uint64
		feeBPS   uint16
		sellB    bool
	)
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a swap",
		RunE: func(*cobra.Command, []string) error {
			assetIn := quoteAssetA
			if sellB {
				assetIn = quoteAssetB
			}
			res, err := pricing.Swap(q.pool(), amountIn, 0, assetIn, feeBPS)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}amount out:{{/}} %d\n", res.AmountOut)
			utils.Outf("{{yellow}}fee:{{/}} %d {{yellow}}to sink:{{/}} %d\n", res.Fee, res.SinkFee)
			utils.Outf("{{yellow}}reserves:{{/}} %d/%d\n", res.Pool.ReserveA, res.Pool.ReserveB)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&amountIn, "amount", 0, "amount sold")
	cmd.Flags().Uint16Var(&feeBPS, "fee-bps", 30, "pool fee in basis points")
	cmd.Flags().BoolVar(&sellB, "sell-b", false, "sell asset B instead of asset A")
	return cmd
}

func newQuoteAddCmd(q *quoteFlags) *cobra.Command {
	var amountA, amountB uint64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Quote a deposit",
		RunE: func(*cobra.Command, []string) error {
			res, err := pricing.AddLiquidity(q.pool(), amountA, amountB, 0)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}accepted:{{/}} %d/%d\n", res.AmountA, res.AmountB)
			utils.Outf("{{yellow}}minted:{{/}} %d {{yellow}}supply:{{/}} %d\n", res.Minted, res.Pool.ShareSupply)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&amountA, "amount-a", 0, "amount of asset A offered")
	cmd.Flags().Uint64Var(&amountB, "amount-b", 0, "amount of asset B offered")
	return cmd
}

func newQuoteRemoveCmd(q *quoteFlags) *cobra.Command {
	var shares uint64
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Quote a withdrawal",
		RunE: func(*cobra.Command, []string) error {
			res, err := pricing.RemoveLiquidity(q.pool(), shares, 0, 0, shares)
			if err != nil {
				return err
			}
			utils.Outf("{{yellow}}returned:{{/}} %d/%d\n", res.AmountA, res.AmountB)
			utils.Outf("{{yellow}}supply:{{/}} %d\n", res.Pool.ShareSupply)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&shares, "shares", 0, "shares burned")
	return cmd
}
