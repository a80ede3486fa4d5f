// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package memory

import (
	"encoding/hex"
	"fmt"
	"github.com/orbs-network/orbs-load-tester/services/host/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"sort"
	"strings"
	"sync"
)

type ContractState map[string][]byte

type InMemoryStatePersistence struct {
	mutex sync.RWMutex
	state map[primitives.ContractName]ContractState
	size  int
}

func NewStatePersistence() *InMemoryStatePersistence {
	return &InMemoryStatePersistence{
		state: map[primitives.ContractName]ContractState{},
	}
}

func (sp *InMemoryStatePersistence) Write(contractStateDiffs []*adapter.ContractStateDiff) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	for _, contractDiff := range contractStateDiffs {
		for _, diff := range contractDiff.StateDiffs {
			sp.writeOne(contractDiff.ContractName, diff)
		}
	}
	return nil
}

func (sp *InMemoryStatePersistence) writeOne(contract primitives.ContractName, diff *adapter.StateDiff) {
	if _, ok := sp.state[contract]; !ok {
		sp.state[contract] = ContractState{}
	}

	_, existed := sp.state[contract][diff.Key]
	if adapter.IsZeroValue(diff.Value) {
		if existed {
			delete(sp.state[contract], diff.Key)
			sp.size--
		}
		return
	}

	if !existed {
		sp.size++
	}
	value := make([]byte, len(diff.Value))
	copy(value, diff.Value)
	sp.state[contract][diff.Key] = value
}

func (sp *InMemoryStatePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	if contractState, ok := sp.state[contract]; ok {
		value, found := contractState[key]
		if !found {
			return nil, false, nil
		}
		res := make([]byte, len(value))
		copy(res, value)
		return res, true, nil
	}
	return nil, false, nil
}

func (sp *InMemoryStatePersistence) Size() int {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()
	return sp.size
}

func (sp *InMemoryStatePersistence) Close() error {
	return nil
}

func (sp *InMemoryStatePersistence) Dump() string {
	sp.mutex.RLock()
	defer sp.mutex.RUnlock()

	contracts := make([]string, 0, len(sp.state))
	for c := range sp.state {
		contracts = append(contracts, string(c))
	}
	sort.Strings(contracts)

	output := strings.Builder{}
	output.WriteString("{")
	for _, currentContract := range contracts {
		contractState := sp.state[primitives.ContractName(currentContract)]
		keys := make([]string, 0, len(contractState))
		for k := range contractState {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		output.WriteString(currentContract + ":{")
		for _, k := range keys {
			output.WriteString(fmt.Sprintf("%s:%s,", hex.EncodeToString([]byte(k)), hex.EncodeToString(contractState[k])))
		}
		output.WriteString("},")
	}
	output.WriteString("}")
	return output.String()
}
