// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package adapter

import (
	"bytes"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type StateDiff struct {
	Key   string
	Value []byte
}

type ContractStateDiff struct {
	ContractName primitives.ContractName
	StateDiffs   []*StateDiff
}

// StatePersistence is the durable keyed storage of the host.
// Writing a zero value deletes the key.
type StatePersistence interface {
	Write(contractStateDiffs []*ContractStateDiff) error
	Read(contract primitives.ContractName, key string) ([]byte, bool, error)
	Size() int
	Close() error
}

func IsZeroValue(value []byte) bool {
	return bytes.Equal(value, []byte{})
}
