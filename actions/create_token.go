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
	_ codec.Typed  = (*CreateTokenResult)(nil)
	_ chain.Action = (*CreateToken)(nil)
)

type CreateTokenResult struct {
	TokenAddress codec.Address `json:"tokenAddress"`
}

func (*CreateTokenResult) GetTypeID() uint8 {
	return consts.CreateTokenID
}

// CreateToken registers a new token owned by the actor. Only the owner may
// mint it.
type CreateToken struct {
	Name     []byte `json:"name"`
	Symbol   []byte `json:"symbol"`
	Metadata []byte `json:"metadata"`
}

func (*CreateToken) GetTypeID() uint8 {
	return consts.CreateTokenID
}

func (c *CreateToken) StateKeys(codec.Address) state.Keys {
	tokenAddress := storage.TokenAddress(c.Name, c.Symbol, c.Metadata)
	return state.Keys{
		string(storage.TokenInfoKey(tokenAddress)): state.All,
	}
}

func (c *CreateToken) Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error) {
	if len(c.Name) == 0 {
		return nil, ErrOutputTokenNameEmpty
	}
	if len(c.Name) > storage.MaxTokenNameSize {
		return nil, ErrOutputTokenNameTooLarge
	}
	if len(c.Symbol) == 0 {
		return nil, ErrOutputTokenSymbolEmpty
	}
	if len(c.Symbol) > storage.MaxTokenSymbolSize {
		return nil, ErrOutputTokenSymbolTooLarge
	}
	if len(c.Metadata) > storage.MaxTokenMetadataSize {
		return nil, ErrOutputTokenMetadataTooLarge
	}

	tokenAddress := storage.TokenAddress(c.Name, c.Symbol, c.Metadata)
	if storage.TokenExists(ctx, mu, tokenAddress) {
		return nil, ErrOutputTokenAlreadyExists
	}
	if err := storage.SetTokenInfo(ctx, mu, tokenAddress, &storage.TokenInfo{
		Name:     c.Name,
		Symbol:   c.Symbol,
		Metadata: c.Metadata,
		Owner:    actor,
	}); err != nil {
		return nil, err
	}
	return &CreateTokenResult{TokenAddress: tokenAddress}, nil
}
