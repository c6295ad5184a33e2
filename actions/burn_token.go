// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/storage"
)

var (
	_ codec.Typed  = (*BurnTokenResult)(nil)
	_ chain.Action = (*BurnToken)(nil)
)

type BurnTokenResult struct {
	Balance     uint64 `json:"balance"`
	TotalSupply uint64 `json:"totalSupply"`
}

func (*BurnTokenResult) GetTypeID() uint8 {
	return consts.BurnTokenID
}

// BurnToken destroys [Value] of the actor's [Token].
type BurnToken struct {
	Token codec.Address `json:"token"`
	Value uint64        `json:"value"`
}

func (*BurnToken) GetTypeID() uint8 {
	return consts.BurnTokenID
}

func (b *BurnToken) StateKeys(actor codec.Address) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(b.Token)):                 state.Write,
		string(storage.TokenAccountBalanceKey(b.Token, actor)): state.Write,
	}
}

func (b *BurnToken) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	if b.Value == 0 {
		return nil, ErrOutputBurnValueZero
	}
	// Share supply is tracked by the pool record and only shrinks on removal
	if b.Token.TypeID() == consts.LiquidityPoolTokenID {
		return nil, ErrOutputPoolAccount
	}
	if err := storage.BurnToken(ctx, mu, b.Token, actor, b.Value); err != nil {
		return nil, err
	}
	balance, err := storage.GetTokenAccountBalance(ctx, mu, b.Token, actor)
	if err != nil {
		return nil, err
	}
	info, err := storage.GetTokenInfo(ctx, mu, b.Token)
	if err != nil {
		return nil, err
	}
	return &BurnTokenResult{
		Balance:     balance,
		TotalSupply: info.TotalSupply,
	}, nil
}
