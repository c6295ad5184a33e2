// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type chainMetrics struct {
	actionsExecuted *prometheus.CounterVec
	actionsFailed   *prometheus.CounterVec

	stateChanges    prometheus.Counter
	stateOperations prometheus.Counter

	executeAction metric.Averager
}

func newMetrics(namespace string, r prometheus.Registerer) (*chainMetrics, error) {
	executeAction, err := metric.NewAverager(
		"",
		namespace+"_execute_action",
		"time spent executing an action and committing its changes",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &chainMetrics{
		actionsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_executed",
			Help:      "number of actions executed successfully",
		}, []string{"action"}),
		actionsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_failed",
			Help:      "number of actions rolled back",
		}, []string{"action"}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		stateOperations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_operations",
			Help:      "number of state operations",
		}),
		executeAction: executeAction,
	}

	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.actionsExecuted),
		r.Register(m.actionsFailed),
		r.Register(m.stateChanges),
		r.Register(m.stateOperations),
	)
	return m, errs.Err
}
