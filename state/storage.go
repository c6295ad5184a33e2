// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
)

var (
	_ Mutable   = (*MutableStorage)(nil)
	_ Immutable = (*DatabaseReader)(nil)
)

// MutableStorage implements [Mutable] over a plain map.
type MutableStorage map[string][]byte

func (m MutableStorage) GetValue(_ context.Context, key []byte) (value []byte, err error) {
	if v, has := m[string(key)]; has {
		return v, nil
	}
	return nil, database.ErrNotFound
}

func (m MutableStorage) Insert(_ context.Context, key []byte, value []byte) error {
	m[string(key)] = value
	return nil
}

func (m MutableStorage) Remove(_ context.Context, key []byte) error {
	delete(m, string(key))
	return nil
}

// DatabaseReader serves reads straight from a committed database.
type DatabaseReader struct {
	db database.KeyValueReader
}

func NewDatabaseReader(db database.KeyValueReader) *DatabaseReader {
	return &DatabaseReader{db: db}
}

func (d *DatabaseReader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return d.db.Get(key)
}

// Load reads every key in [keys] from [im] into a map. Missing keys are
// skipped.
func Load(ctx context.Context, im Immutable, keys Keys) (map[string][]byte, error) {
	storage := make(map[string][]byte, len(keys))
	for k := range keys {
		v, err := im.GetValue(ctx, []byte(k))
		if err == database.ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		storage[k] = v
	}
	return storage, nil
}
