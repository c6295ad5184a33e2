// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrLedger       = errors.New("ledger operation failed")
	ErrUnknownParty = errors.New("unknown party")
)
