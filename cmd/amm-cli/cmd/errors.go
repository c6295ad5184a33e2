// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import "errors"

var (
	ErrInvalidPlan       = errors.New("invalid plan")
	ErrInvalidPlanFormat = errors.New("plan is neither json nor yaml")
	ErrInvalidStep       = errors.New("invalid step")
	ErrUnknownOp         = errors.New("unknown op")
	ErrUnknownToken      = errors.New("unknown token")
	ErrMissingActor      = errors.New("missing actor")
	ErrInvalidOperator   = errors.New("invalid operator")
	ErrUnknownField      = errors.New("unknown result field")
	ErrAssertionFailed   = errors.New("assertion failed")
	ErrUnexpectedSuccess = errors.New("step succeeded but an error was required")
	ErrEmptyCommand      = errors.New("command is empty")
	ErrInvalidCommand    = errors.New("invalid command")
)
