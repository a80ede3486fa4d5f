// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package sequencestore

import (
	"github.com/pkg/errors"
	"math"
)

var ErrInitializationFailure = errors.New("sequence store initialization failed")
var ErrResourceExhausted = errors.New("execution budget exhausted")

// Storage is the keyed state the host lends to a contract instance for the duration of a call.
// A key that was never written reads as zero.
type Storage interface {
	ReadUint64(key []byte) (uint64, error)
	WriteUint64(key []byte, value uint64) error
}

type SequenceStore interface {
	Bloat(count uint64) error
	Snapshot() ([]uint64, error)
	Len() (uint64, error)
}

// Store is an append-only sequence of uint64 values kept in host storage.
// It does no locking: the host serializes calls to an instance.
type Store struct {
	storage Storage
}

// Initialize allocates an empty sequence in storage.
func Initialize(storage Storage) (*Store, error) {
	if storage == nil {
		return nil, errors.Wrap(ErrInitializationFailure, "no storage provided")
	}
	if err := storage.WriteUint64(lengthKey(), 0); err != nil {
		return nil, errors.Wrapf(ErrInitializationFailure, "allocating sequence: %s", err)
	}
	return &Store{storage: storage}, nil
}

// Attach binds to a sequence previously allocated by Initialize.
func Attach(storage Storage) *Store {
	return &Store{storage: storage}
}

// Bloat appends 1..count. Every call starts counting from 1 again.
func (s *Store) Bloat(count uint64) error {
	if count == 0 {
		return nil
	}

	length, err := s.Len()
	if err != nil {
		return err
	}

	if count > math.MaxUint64-length {
		return errors.Wrapf(ErrResourceExhausted, "bloat(%d) would overflow sequence of length %d", count, length)
	}

	for i := uint64(0); i < count; i++ {
		if err := s.storage.WriteUint64(elementKey(length+i), i+1); err != nil {
			return err
		}
	}

	return s.storage.WriteUint64(lengthKey(), length+count)
}

func (s *Store) Snapshot() ([]uint64, error) {
	length, err := s.Len()
	if err != nil {
		return nil, err
	}

	values := make([]uint64, 0, length)
	for i := uint64(0); i < length; i++ {
		v, err := s.storage.ReadUint64(elementKey(i))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

func (s *Store) Len() (uint64, error) {
	return s.storage.ReadUint64(lengthKey())
}
