// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

// Storage keeps sequence state in a map. Zero values are deleted, as in node state.
type Storage struct {
	values map[string]uint64
	writes int
}

func NewStorage() *Storage {
	return &Storage{values: make(map[string]uint64)}
}

func (s *Storage) ReadUint64(key []byte) (uint64, error) {
	return s.values[string(key)], nil
}

func (s *Storage) WriteUint64(key []byte, value uint64) error {
	s.writes++
	if value == 0 {
		delete(s.values, string(key))
		return nil
	}
	s.values[string(key)] = value
	return nil
}

func (s *Storage) Keys() int {
	return len(s.values)
}

func (s *Storage) Writes() int {
	return s.writes
}
