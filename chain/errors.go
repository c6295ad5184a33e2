// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrNilAction    = errors.New("action is nil")
	ErrEmptyActor   = errors.New("actor is empty")
	ErrCommitFailed = errors.New("failed to commit state changes")
)
