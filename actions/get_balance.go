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
	_ codec.Typed  = (*GetBalanceResult)(nil)
	_ chain.Action = (*GetBalance)(nil)
)

type GetBalanceResult struct {
	Balance uint64 `json:"balance"`
}

func (*GetBalanceResult) GetTypeID() uint8 {
	return consts.GetBalanceID
}

type GetBalance struct {
	Token   codec.Address `json:"token"`
	Account codec.Address `json:"account"`
}

func (*GetBalance) GetTypeID() uint8 {
	return consts.GetBalanceID
}

func (g *GetBalance) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.TokenAccountBalanceKey(g.Token, g.Account)): state.Read,
	}
}

func (g *GetBalance) Execute(ctx context.Context, mu state.Mutable, _ codec.Address) (codec.Typed, error) {
	balance, err := storage.GetTokenAccountBalance(ctx, mu, g.Token, g.Account)
	if err != nil {
		return nil, err
	}
	return &GetBalanceResult{Balance: balance}, nil
}
