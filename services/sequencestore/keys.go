// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package sequencestore

import (
	"encoding/binary"
	"github.com/pkg/errors"
)

const keyPrefix = "values."

func lengthKey() []byte {
	return []byte(keyPrefix + "length")
}

func elementKey(index uint64) []byte {
	key := make([]byte, len(keyPrefix)+8)
	copy(key, keyPrefix)
	binary.BigEndian.PutUint64(key[len(keyPrefix):], index)
	return key
}

// EncodeValues packs values as consecutive 8 byte big endian words, the shape
// in which a snapshot crosses an ABI that has no uint64 array type.
func EncodeValues(values []uint64) []byte {
	packed := make([]byte, 8*len(values))
	for i, v := range values {
		binary.BigEndian.PutUint64(packed[8*i:], v)
	}
	return packed
}

func DecodeValues(packed []byte) ([]uint64, error) {
	if len(packed)%8 != 0 {
		return nil, errors.Errorf("packed sequence length %d is not a multiple of 8", len(packed))
	}

	values := make([]uint64, len(packed)/8)
	for i := range values {
		values[i] = binary.BigEndian.Uint64(packed[8*i:])
	}
	return values, nil
}
