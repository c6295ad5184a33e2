// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/state"
)

type Action interface {
	// GetTypeID uniquely identifies each supported [Action]. We use IDs to
	// label metrics and log lines.
	GetTypeID() uint8

	// StateKeys is a full enumeration of all database keys that could be touched during execution
	// of an [Action] by [actor]. Any key read or written outside of this set fails.
	//
	// All keys specified must be suffixed with the number of chunks that could ever be read from that
	// key (formatted as a big-endian uint16).
	StateKeys(actor codec.Address) state.Keys

	// Execute actually runs the [Action]. Any state changes that the [Action] performs should
	// be done here.
	//
	// If any keys are touched during [Execute] that are not specified in [StateKeys], the action
	// fails. A failed action leaves no state behind.
	Execute(ctx context.Context, mu state.Mutable, actor codec.Address) (codec.Typed, error)
}
