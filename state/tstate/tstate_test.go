// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/cpamm/state"
)

var (
	testKey  = state.EncodeChunks([]byte("key"), 1)
	testVal  = []byte("value")
	testKey2 = state.EncodeChunks([]byte("key2"), 1)
)

func TestScope(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// No Scope
	tsv := ts.NewView(state.Keys{}, map[string][]byte{})
	val, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, ErrInvalidKeyOrPermission)
	require.Nil(val)
	require.ErrorIs(tsv.Insert(ctx, testKey, testVal), ErrInvalidKeyOrPermission)
	require.ErrorIs(tsv.Remove(ctx, testKey), ErrInvalidKeyOrPermission)
}

func TestPermissions(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	// Read-only existing key
	tsv := ts.NewView(state.Keys{string(testKey): state.Read}, map[string][]byte{string(testKey): testVal})
	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, val)
	require.ErrorIs(tsv.Insert(ctx, testKey, []byte("new")), ErrInvalidKeyOrPermission)

	// Write without Allocate cannot create
	tsv = ts.NewView(state.Keys{string(testKey2): state.Write}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, testKey2, testVal), ErrInvalidKeyOrPermission)

	// Allocate can create
	tsv = ts.NewView(state.Keys{string(testKey2): state.Allocate}, map[string][]byte{})
	require.NoError(tsv.Insert(ctx, testKey2, testVal))
}

func TestInsertInvalid(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	key := state.EncodeChunks([]byte("hello"), 0)
	tsv := ts.NewView(state.Keys{string(key): state.All}, map[string][]byte{})
	require.ErrorIs(tsv.Insert(ctx, key, []byte("cool")), ErrInvalidKeyValue)

	_, err := tsv.GetValue(ctx, key)
	require.ErrorIs(err, database.ErrNotFound)
}

func TestRollback(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(
		state.Keys{string(testKey): state.All, string(testKey2): state.All},
		map[string][]byte{string(testKey): testVal},
	)
	require.NoError(tsv.Insert(ctx, testKey, []byte("a")))
	restore := tsv.OpIndex()

	require.NoError(tsv.Insert(ctx, testKey, []byte("b")))
	require.NoError(tsv.Insert(ctx, testKey2, []byte("c")))
	require.NoError(tsv.Remove(ctx, testKey))
	require.Equal(4, tsv.OpIndex())

	tsv.Rollback(ctx, restore)
	require.Equal(restore, tsv.OpIndex())

	val, err := tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal([]byte("a"), val)
	_, err = tsv.GetValue(ctx, testKey2)
	require.ErrorIs(err, database.ErrNotFound)

	// Back to the base storage
	tsv.Rollback(ctx, 0)
	val, err = tsv.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal(testVal, val)
	require.Zero(tsv.PendingChanges())
}

func TestRollbackRemoveInsert(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)

	tsv := ts.NewView(state.Keys{string(testKey): state.All}, map[string][]byte{string(testKey): testVal})
	require.NoError(tsv.Remove(ctx, testKey))
	restore := tsv.OpIndex()
	require.NoError(tsv.Insert(ctx, testKey, []byte("again")))

	tsv.Rollback(ctx, restore)
	_, err := tsv.GetValue(ctx, testKey)
	require.ErrorIs(err, database.ErrNotFound)

	// Remove empty should do nothing
	require.NoError(tsv.Remove(ctx, testKey))
	require.Equal(restore, tsv.OpIndex())
}

func TestCommitAndWrite(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()
	ts := New(10)
	db := memdb.New()
	require.NoError(db.Put(testKey2, testVal))

	tsv := ts.NewView(
		state.Keys{string(testKey): state.All, string(testKey2): state.All},
		map[string][]byte{string(testKey2): testVal},
	)
	require.NoError(tsv.Insert(ctx, testKey, []byte("new")))
	require.NoError(tsv.Remove(ctx, testKey2))
	tsv.Commit()
	require.Equal(2, ts.OpIndex())
	require.Equal(2, ts.PendingChanges())

	// A later view sees committed changes
	next := ts.NewView(state.Keys{string(testKey): state.Read, string(testKey2): state.Read}, map[string][]byte{string(testKey2): testVal})
	val, err := next.GetValue(ctx, testKey)
	require.NoError(err)
	require.Equal([]byte("new"), val)
	_, err = next.GetValue(ctx, testKey2)
	require.ErrorIs(err, database.ErrNotFound)

	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(batch))
	require.NoError(batch.Write())

	val, err = db.Get(testKey)
	require.NoError(err)
	require.Equal([]byte("new"), val)
	has, err := db.Has(testKey2)
	require.NoError(err)
	require.False(has)
}
