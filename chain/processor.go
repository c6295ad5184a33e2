// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/state"
	"github.com/ava-labs/cpamm/state/tstate"
)

// Processor applies actions to a database one at a time. Each action runs
// in its own transactional view: either every change it makes is written
// in a single batch or none is.
type Processor struct {
	log     logging.Logger
	metrics *chainMetrics
	db      database.Database

	l sync.Mutex

	committed atomic.Uint64
}

func NewProcessor(
	log logging.Logger,
	db database.Database,
	namespace string,
	registerer prometheus.Registerer,
) (*Processor, error) {
	m, err := newMetrics(namespace, registerer)
	if err != nil {
		return nil, err
	}
	return &Processor{
		log:     log,
		metrics: m,
		db:      db,
	}, nil
}

// Execute runs [action] on behalf of [actor]. Concurrent callers are
// serialized, so every action observes the changes of the one before it.
func (p *Processor) Execute(ctx context.Context, actor codec.Address, action Action) (codec.Typed, error) {
	if action == nil {
		return nil, ErrNilAction
	}
	if actor == codec.EmptyAddress {
		return nil, ErrEmptyActor
	}

	p.l.Lock()
	defer p.l.Unlock()

	start := time.Now()
	name := actionName(action.GetTypeID())
	keys := action.StateKeys(actor)
	storage, err := state.Load(ctx, state.NewDatabaseReader(p.db), keys)
	if err != nil {
		return nil, err
	}

	ts := tstate.New(len(keys))
	tsv := ts.NewView(keys, storage)
	result, err := action.Execute(ctx, tsv, actor)
	if err != nil {
		tsv.Rollback(ctx, 0)
		p.metrics.actionsFailed.WithLabelValues(name).Inc()
		p.log.Debug("action rolled back",
			zap.String("action", name),
			zap.Stringer("actor", actor),
			zap.Error(err),
		)
		return nil, err
	}

	ops := tsv.OpIndex()
	tsv.Commit()
	batch := p.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	if err := batch.Write(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	p.committed.Inc()
	p.metrics.actionsExecuted.WithLabelValues(name).Inc()
	p.metrics.stateChanges.Add(float64(ts.PendingChanges()))
	p.metrics.stateOperations.Add(float64(ops))
	p.metrics.executeAction.Observe(float64(time.Since(start)))
	p.log.Debug("action executed",
		zap.String("action", name),
		zap.Stringer("actor", actor),
		zap.Int("changes", ts.PendingChanges()),
		zap.Duration("t", time.Since(start)),
	)
	return result, nil
}

// Committed returns the number of actions written so far. It does not wait
// for an in-flight action.
func (p *Processor) Committed() uint64 {
	return p.committed.Load()
}

func actionName(typeID uint8) string {
	if name, ok := consts.ActionNames[typeID]; ok {
		return name
	}
	return strconv.Itoa(int(typeID))
}
