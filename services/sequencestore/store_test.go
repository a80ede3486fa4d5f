// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package sequencestore

import (
	"github.com/orbs-network/orbs-load-tester/services/sequencestore/adapter/memory"
	"github.com/orbs-network/orbs-load-tester/test"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func newStore(t *testing.T) (*Store, *memory.Storage) {
	storage := memory.NewStorage()
	s, err := Initialize(storage)
	require.NoError(t, err, "initialize should succeed on empty storage")
	return s, storage
}

func requireSnapshot(t *testing.T, s *Store, expected []uint64) {
	actual, err := s.Snapshot()
	require.NoError(t, err)
	test.RequireSequence(t, expected, actual)
}

func TestSequenceStore_SnapshotIsEmptyAfterInitialize(t *testing.T) {
	s, _ := newStore(t)

	requireSnapshot(t, s, []uint64{})
}

func TestSequenceStore_BloatAppendsFromOne(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Bloat(4))
	requireSnapshot(t, s, []uint64{1, 2, 3, 4})
}

func TestSequenceStore_EveryBloatRestartsCounting(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Bloat(4))
	require.NoError(t, s.Bloat(3))
	requireSnapshot(t, s, []uint64{1, 2, 3, 4, 1, 2, 3})

	require.NoError(t, s.Bloat(0))
	requireSnapshot(t, s, []uint64{1, 2, 3, 4, 1, 2, 3})
}

func TestSequenceStore_BloatOne(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Bloat(1))
	requireSnapshot(t, s, []uint64{1})
}

func TestSequenceStore_BloatZeroWritesNothing(t *testing.T) {
	s, storage := newStore(t)
	writesBefore := storage.Writes()

	require.NoError(t, s.Bloat(0))

	require.Equal(t, writesBefore, storage.Writes(), "bloat(0) must not touch storage")
}

func TestSequenceStore_LengthIsSumOfCounts(t *testing.T) {
	s, _ := newStore(t)
	counts := []uint64{5, 0, 17, 1, 3}

	var expectedLen uint64
	var expected []uint64
	for _, c := range counts {
		require.NoError(t, s.Bloat(c))
		expectedLen += c
		for i := uint64(1); i <= c; i++ {
			expected = append(expected, i)
		}

		length, err := s.Len()
		require.NoError(t, err)
		require.EqualValues(t, expectedLen, length, "length should be the sum of counts so far")
	}

	requireSnapshot(t, s, expected)
}

func TestSequenceStore_SnapshotIsACopy(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Bloat(3))

	first, err := s.Snapshot()
	require.NoError(t, err)
	first[0] = 99

	requireSnapshot(t, s, []uint64{1, 2, 3})
}

func TestSequenceStore_RepeatedSnapshotsAreIdentical(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Bloat(6))

	first, err := s.Snapshot()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		next, err := s.Snapshot()
		require.NoError(t, err)
		require.Equal(t, first, next)
	}
}

func TestSequenceStore_AttachSeesExistingSequence(t *testing.T) {
	s, storage := newStore(t)
	require.NoError(t, s.Bloat(2))

	requireSnapshot(t, Attach(storage), []uint64{1, 2})
}

type exhaustingStorage struct {
	*memory.Storage
	writesLeft int
}

func (e *exhaustingStorage) WriteUint64(key []byte, value uint64) error {
	if e.writesLeft == 0 {
		return errors.Wrap(ErrResourceExhausted, "no writes left")
	}
	e.writesLeft--
	return e.Storage.WriteUint64(key, value)
}

func TestSequenceStore_BloatPropagatesStorageErrors(t *testing.T) {
	storage := &exhaustingStorage{Storage: memory.NewStorage(), writesLeft: 3}
	s, err := Initialize(storage)
	require.NoError(t, err)

	err = s.Bloat(10)

	require.Error(t, err)
	require.Equal(t, ErrResourceExhausted, errors.Cause(err))
}

func TestSequenceStore_InitializeFailsWhenStorageCannotAllocate(t *testing.T) {
	storage := &exhaustingStorage{Storage: memory.NewStorage(), writesLeft: 0}

	s, err := Initialize(storage)

	require.Nil(t, s)
	require.Equal(t, ErrInitializationFailure, errors.Cause(err))
}

func TestSequenceStore_InitializeFailsWithoutStorage(t *testing.T) {
	_, err := Initialize(nil)

	require.Equal(t, ErrInitializationFailure, errors.Cause(err))
}

func TestSequenceStore_BloatRefusesToOverflowLength(t *testing.T) {
	s, storage := newStore(t)
	require.NoError(t, storage.WriteUint64(lengthKey(), math.MaxUint64-2))
	writesBefore := storage.Writes()

	err := s.Bloat(3)

	require.Equal(t, ErrResourceExhausted, errors.Cause(err))
	require.Equal(t, writesBefore, storage.Writes(), "a refused bloat must not touch storage")
	length, err := s.Len()
	require.NoError(t, err)
	require.EqualValues(t, uint64(math.MaxUint64-2), length)
}

func TestSequenceStore_BloatKeepsOneKeyPerElement(t *testing.T) {
	s, storage := newStore(t)

	require.NoError(t, s.Bloat(3))
	require.NoError(t, s.Bloat(2))

	require.Equal(t, 6, storage.Keys(), "one length key plus one key per element")
}
