// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

type Op string

const (
	OpCreateToken     Op = "create_token"
	OpMint            Op = "mint"
	OpTransfer        Op = "transfer"
	OpBurn            Op = "burn"
	OpCreatePool      Op = "create_pool"
	OpAddLiquidity    Op = "add_liquidity"
	OpSwap            Op = "swap"
	OpRemoveLiquidity Op = "remove_liquidity"
	OpBalance         Op = "balance"
	OpPool            Op = "pool"
)

// Plan is a list of steps run in order against a fresh in-memory ledger.
type Plan struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	// Account that runs steps without their own actor.
	Actor string `json:"actor" yaml:"actor"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// Step describes one action. Tokens are referenced by the symbol they were
// created with or by address, and X/Y names the share token of the pool
// holding X and Y. Accounts are referenced by name.
type Step struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Op          Op     `json:"op" yaml:"op"`
	Actor       string `json:"actor,omitempty" yaml:"actor,omitempty"`

	// create_token
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Symbol   string `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Metadata string `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// mint, transfer, burn, balance. Account is the recipient of mint and
	// transfer.
	Token   string `json:"token,omitempty" yaml:"token,omitempty"`
	Account string `json:"account,omitempty" yaml:"account,omitempty"`

	// create_pool, add_liquidity, swap, remove_liquidity, pool
	TokenX  string  `json:"tokenX,omitempty" yaml:"tokenX,omitempty"`
	TokenY  string  `json:"tokenY,omitempty" yaml:"tokenY,omitempty"`
	FeeBPS  *uint16 `json:"feeBPS,omitempty" yaml:"feeBPS,omitempty"`
	FeeSink string  `json:"feeSink,omitempty" yaml:"feeSink,omitempty"`

	// Amounts are read by op: mint, transfer and burn use AmountX, swap
	// sells AmountX of TokenX, remove_liquidity burns Shares.
	AmountX uint64 `json:"amountX,omitempty" yaml:"amountX,omitempty"`
	AmountY uint64 `json:"amountY,omitempty" yaml:"amountY,omitempty"`
	Shares  uint64 `json:"shares,omitempty" yaml:"shares,omitempty"`
	MinX    uint64 `json:"minX,omitempty" yaml:"minX,omitempty"`
	MinY    uint64 `json:"minY,omitempty" yaml:"minY,omitempty"`
	MinOut  uint64 `json:"minOut,omitempty" yaml:"minOut,omitempty"`

	Require *Require `json:"require,omitempty" yaml:"require,omitempty"`
}

type Require struct {
	// Substring of the expected error. A step with a required error fails
	// the plan if it succeeds.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Assertions against fields of the step result.
	Result []Assertion `json:"result,omitempty" yaml:"result,omitempty"`
}

type Assertion struct {
	Field    string   `json:"field" yaml:"field"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    uint64   `json:"value" yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	NumericEq Operator = "=="
	NumericNe Operator = "!="
)

func (a *Assertion) check(actual uint64) (bool, error) {
	switch a.Operator {
	case NumericGt:
		return actual > a.Value, nil
	case NumericLt:
		return actual < a.Value, nil
	case NumericGe:
		return actual >= a.Value, nil
	case NumericLe:
		return actual <= a.Value, nil
	case NumericEq:
		return actual == a.Value, nil
	case NumericNe:
		return actual != a.Value, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidOperator, a.Operator)
	}
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	if json.Valid(b) {
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, err
		}
	} else if err := yaml.UnmarshalStrict(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlanFormat, err)
	}
	if err := p.verify(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Plan) verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		switch step.Op {
		case OpCreateToken, OpMint, OpTransfer, OpBurn, OpCreatePool, OpAddLiquidity, OpSwap, OpRemoveLiquidity:
			if len(step.Actor) == 0 && len(p.Actor) == 0 {
				return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, ErrMissingActor)
			}
		case OpBalance, OpPool:
		default:
			return fmt.Errorf("%w %d: %w %q", ErrInvalidStep, i, ErrUnknownOp, step.Op)
		}
		if step.Require == nil {
			continue
		}
		for _, a := range step.Require.Result {
			if _, err := a.check(0); err != nil {
				return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
			}
		}
	}
	return nil
}
