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
	_ codec.Typed  = (*MintTokenResult)(nil)
	_ chain.Action = (*MintToken)(nil)
)

type MintTokenResult struct {
	Balance     uint64 `json:"balance"`
	TotalSupply uint64 `json:"totalSupply"`
}

func (*MintTokenResult) GetTypeID() uint8 {
	return consts.MintTokenID
}

type MintToken struct {
	To    codec.Address `json:"to"`
	Token codec.Address `json:"token"`
	Value uint64        `json:"value"`
}

func (*MintToken) GetTypeID() uint8 {
	return consts.MintTokenID
}

func (m *MintToken) StateKeys(codec.Address) state.Keys {
	return state.Keys{
		string(storage.TokenInfoKey(m.Token)):                 state.Read | state.Write,
		string(storage.TokenAccountBalanceKey(m.Token, m.To)): state.All,
	}
}

func (m *MintToken) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	if m.Value == 0 {
		return nil, ErrOutputMintValueZero
	}
	if m.To.TypeID() == consts.LiquidityPoolID {
		return nil, ErrOutputPoolAccount
	}
	info, err := storage.GetTokenInfo(ctx, mu, m.Token)
	if err != nil {
		return nil, err
	}
	if info.Owner != actor {
		return nil, ErrOutputTokenNotOwner
	}
	if err := storage.MintToken(ctx, mu, m.Token, m.To, m.Value); err != nil {
		return nil, err
	}
	balance, err := storage.GetTokenAccountBalance(ctx, mu, m.Token, m.To)
	if err != nil {
		return nil, err
	}
	info, err = storage.GetTokenInfo(ctx, mu, m.Token)
	if err != nil {
		return nil, err
	}
	return &MintTokenResult{
		Balance:     balance,
		TotalSupply: info.TotalSupply,
	}, nil
}
