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
	_ codec.Typed  = (*TransferTokenResult)(nil)
	_ chain.Action = (*TransferToken)(nil)
)

type TransferTokenResult struct {
	SenderBalance   uint64 `json:"senderBalance"`
	ReceiverBalance uint64 `json:"receiverBalance"`
}

func (*TransferTokenResult) GetTypeID() uint8 {
	return consts.TransferTokenID
}

// TransferToken moves [Value] of [Token] from the actor to [To]. Pool
// shares are tokens too, so this is how a position changes hands.
type TransferToken struct {
	To    codec.Address `json:"to"`
	Token codec.Address `json:"token"`
	Value uint64        `json:"value"`
}

func (*TransferToken) GetTypeID() uint8 {
	return consts.TransferTokenID
}

func (t *TransferToken) StateKeys(actor codec.Address) state.Keys {
	keys := state.Keys{
		string(storage.TokenInfoKey(t.Token)): state.Read,
	}
	keys.Add(string(storage.TokenAccountBalanceKey(t.Token, actor)), state.Write)
	keys.Add(string(storage.TokenAccountBalanceKey(t.Token, t.To)), state.All)
	return keys
}

func (t *TransferToken) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	if t.Value == 0 {
		return nil, ErrOutputTransferValueZero
	}
	// Pool balances must always equal the stored reserves
	if t.To.TypeID() == consts.LiquidityPoolID {
		return nil, ErrOutputPoolAccount
	}
	if err := storage.TransferToken(ctx, mu, t.Token, actor, t.To, t.Value); err != nil {
		return nil, err
	}
	senderBalance, err := storage.GetTokenAccountBalance(ctx, mu, t.Token, actor)
	if err != nil {
		return nil, err
	}
	receiverBalance, err := storage.GetTokenAccountBalance(ctx, mu, t.Token, t.To)
	if err != nil {
		return nil, err
	}
	return &TransferTokenResult{
		SenderBalance:   senderBalance,
		ReceiverBalance: receiverBalance,
	}, nil
}
