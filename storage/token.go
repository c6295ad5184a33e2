// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/utils"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

const maxTokenInfoSize = consts.ByteLen + MaxTokenNameSize +
	consts.ByteLen + MaxTokenSymbolSize +
	consts.ByteLen + MaxTokenMetadataSize +
	consts.Uint64Len + codec.AddressLen

type TokenInfo struct {
	Name        []byte        `json:"name"`
	Symbol      []byte        `json:"symbol"`
	Metadata    []byte        `json:"metadata"`
	TotalSupply uint64        `json:"totalSupply"`
	Owner       codec.Address `json:"owner"`
}

func TokenAddress(name []byte, symbol []byte, metadata []byte) codec.Address {
	v := make([]byte, len(name)+len(symbol)+len(metadata))
	copy(v, name)
	copy(v[len(name):], symbol)
	copy(v[len(name)+len(symbol):], metadata)
	id := utils.ToID(v)
	return codec.CreateAddress(consts.TokenID, id)
}

// AccountAddress derives a deterministic account address from a name.
// Signatures are out of scope, so a name is all an account is.
func AccountAddress(name string) codec.Address {
	return codec.CreateAddress(consts.AccountID, utils.ToID([]byte(name)))
}

func TokenInfoKey(tokenAddress codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+consts.Uint16Len)
	k[0] = tokenInfoPrefix
	copy(k[1:1+codec.AddressLen], tokenAddress[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen:], TokenInfoChunks)
	return k
}

func TokenAccountBalanceKey(token codec.Address, account codec.Address) []byte {
	k := make([]byte, 1+codec.AddressLen+codec.AddressLen+consts.Uint16Len)
	k[0] = tokenAccountBalancePrefix
	copy(k[1:], token[:])
	copy(k[1+codec.AddressLen:], account[:])
	binary.BigEndian.PutUint16(k[1+codec.AddressLen+codec.AddressLen:], TokenAccountBalanceChunks)
	return k
}

func SetTokenInfo(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	info *TokenInfo,
) error {
	p := codec.NewWriter(maxTokenInfoSize, maxTokenInfoSize)
	p.PackShortBytes(info.Name)
	p.PackShortBytes(info.Symbol)
	p.PackShortBytes(info.Metadata)
	p.PackUint64(info.TotalSupply)
	p.PackAddress(info.Owner)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, TokenInfoKey(tokenAddress), p.Bytes())
}

func GetTokenInfo(
	ctx context.Context,
	im state.Immutable,
	tokenAddress codec.Address,
) (*TokenInfo, error) {
	v, err := im.GetValue(ctx, TokenInfoKey(tokenAddress))
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTokenDoesNotExist, tokenAddress)
	}
	if err != nil {
		return nil, err
	}
	return innerGetTokenInfo(v)
}

func innerGetTokenInfo(v []byte) (*TokenInfo, error) {
	var info TokenInfo
	p := codec.NewReader(v, maxTokenInfoSize)
	p.UnpackShortBytes(&info.Name)
	p.UnpackShortBytes(&info.Symbol)
	p.UnpackShortBytes(&info.Metadata)
	info.TotalSupply = p.UnpackUint64(false)
	p.UnpackAddress(true, &info.Owner)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if !p.Empty() {
		return nil, fmt.Errorf("%w: token info has trailing bytes", ErrInvalidRecord)
	}
	return &info, nil
}

func TokenExists(
	ctx context.Context,
	im state.Immutable,
	tokenAddress codec.Address,
) bool {
	v, err := im.GetValue(ctx, TokenInfoKey(tokenAddress))
	return v != nil && err == nil
}

func SetTokenAccountBalance(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	account codec.Address,
	balance uint64,
) error {
	k := TokenAccountBalanceKey(tokenAddress, account)
	if balance == 0 {
		return mu.Remove(ctx, k)
	}
	v := make([]byte, consts.Uint64Len)
	binary.BigEndian.PutUint64(v, balance)
	return mu.Insert(ctx, k, v)
}

// GetTokenAccountBalance returns zero for accounts that never held
// [tokenAddress].
func GetTokenAccountBalance(
	ctx context.Context,
	im state.Immutable,
	tokenAddress codec.Address,
	account codec.Address,
) (uint64, error) {
	k := TokenAccountBalanceKey(tokenAddress, account)
	v, err := im.GetValue(ctx, k)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, fmt.Errorf("%w: balance is %d bytes", ErrInvalidRecord, len(v))
	}
	return binary.BigEndian.Uint64(v), nil
}

// MintToken credits [to] and grows the token's total supply.
func MintToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	to codec.Address,
	mintAmount uint64,
) error {
	info, err := GetTokenInfo(ctx, mu, tokenAddress)
	if err != nil {
		return err
	}
	balance, err := GetTokenAccountBalance(ctx, mu, tokenAddress, to)
	if err != nil {
		return err
	}
	newTotalSupply, err := smath.Add64(info.TotalSupply, mintAmount)
	if err != nil {
		return err
	}
	newBalance, err := smath.Add64(balance, mintAmount)
	if err != nil {
		return err
	}
	info.TotalSupply = newTotalSupply
	if err := SetTokenInfo(ctx, mu, tokenAddress, info); err != nil {
		return err
	}
	return SetTokenAccountBalance(ctx, mu, tokenAddress, to, newBalance)
}

// BurnToken debits [from] and shrinks the token's total supply.
func BurnToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	from codec.Address,
	value uint64,
) error {
	info, err := GetTokenInfo(ctx, mu, tokenAddress)
	if err != nil {
		return err
	}
	balance, err := GetTokenAccountBalance(ctx, mu, tokenAddress, from)
	if err != nil {
		return err
	}
	if balance < value {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, balance, value)
	}
	newTotalSupply, err := smath.Sub(info.TotalSupply, value)
	if err != nil {
		return err
	}
	info.TotalSupply = newTotalSupply
	if err := SetTokenAccountBalance(ctx, mu, tokenAddress, from, balance-value); err != nil {
		return err
	}
	return SetTokenInfo(ctx, mu, tokenAddress, info)
}

// TransferToken moves [value] of [tokenAddress] from [from] to [to].
func TransferToken(
	ctx context.Context,
	mu state.Mutable,
	tokenAddress codec.Address,
	from codec.Address,
	to codec.Address,
	value uint64,
) error {
	if !TokenExists(ctx, mu, tokenAddress) {
		return fmt.Errorf("%w: %s", ErrTokenDoesNotExist, tokenAddress)
	}
	fromBalance, err := GetTokenAccountBalance(ctx, mu, tokenAddress, from)
	if err != nil {
		return err
	}
	if fromBalance < value {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, fromBalance, value)
	}
	if from == to {
		return nil
	}
	toBalance, err := GetTokenAccountBalance(ctx, mu, tokenAddress, to)
	if err != nil {
		return err
	}
	newToBalance, err := smath.Add64(toBalance, value)
	if err != nil {
		return err
	}
	if err := SetTokenAccountBalance(ctx, mu, tokenAddress, from, fromBalance-value); err != nil {
		return err
	}
	return SetTokenAccountBalance(ctx, mu, tokenAddress, to, newToBalance)
}
