// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/cpamm/codec"
	"github.com/ava-labs/cpamm/consts"
	"github.com/ava-labs/cpamm/storage"
)

const (
	defaultLogLevel         = logging.Info
	defaultLogDir           = ""
	defaultFeeBPS           = 30
	defaultMetricsNamespace = consts.Name
	defaultFeeSink          = "fee-sink"
)

var (
	ErrInvalidFee     = errors.New("default fee is not between 0 and 10000 basis points")
	ErrMissingFeeSink = errors.New("fee sink is empty")
)

type Config struct {
	// Logging
	LogLevel   logging.Level `json:"logLevel"`
	LogDir     string        `json:"logDir"` // empty disables the log file
	LogDisplay bool          `json:"logDisplay"`

	// Pools
	DefaultFeeBPS uint16 `json:"defaultFeeBPS"`
	FeeSink       string `json:"feeSink"` // account name

	// Metrics
	MetricsNamespace string `json:"metricsNamespace"`
}

func New(b []byte) (*Config, error) {
	c := &Config{}
	c.setDefault()
	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", string(b), err)
		}
	}
	if err := c.Verify(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefault() {
	c.LogLevel = defaultLogLevel
	c.LogDir = defaultLogDir
	c.LogDisplay = true
	c.DefaultFeeBPS = defaultFeeBPS
	c.FeeSink = defaultFeeSink
	c.MetricsNamespace = defaultMetricsNamespace
}

func (c *Config) Verify() error {
	if uint64(c.DefaultFeeBPS) > consts.BasisPoints {
		return fmt.Errorf("%w: %d", ErrInvalidFee, c.DefaultFeeBPS)
	}
	if len(c.FeeSink) == 0 {
		return ErrMissingFeeSink
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level { return c.LogLevel }
func (c *Config) GetFeeSink() codec.Address  { return storage.AccountAddress(c.FeeSink) }
