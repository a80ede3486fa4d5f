// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"github.com/orbs-network/orbs-load-tester/services/host/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

type keyValuePair struct {
	key     []byte
	value   []byte
	isDirty bool
}

type transientContract map[string]*keyValuePair

// transientState holds the writes of a call until the host decides to commit or drop them
type transientState struct {
	contracts         map[primitives.ContractName]transientContract
	contractSortOrder []primitives.ContractName
}

func newTransientState() *transientState {
	return &transientState{
		contracts: make(map[primitives.ContractName]transientContract),
	}
}

func (t *transientState) getValue(contract primitives.ContractName, key []byte) ([]byte, bool) {
	contractMap, found := t.contracts[contract]
	if !found {
		return nil, false
	}
	record, found := contractMap[string(key)]
	if !found {
		return nil, false
	}
	return record.value, true
}

func (t *transientState) setValue(contract primitives.ContractName, key []byte, value []byte, isDirty bool) {
	contractMap, found := t.contracts[contract]
	if !found {
		contractMap = make(transientContract)
		t.contracts[contract] = contractMap
		t.contractSortOrder = append(t.contractSortOrder, contract)
	}

	if record, found := contractMap[string(key)]; found {
		record.value = value
		record.isDirty = record.isDirty || isDirty
		return
	}
	contractMap[string(key)] = &keyValuePair{key, value, isDirty}
}

func (t *transientState) forDirty(contract primitives.ContractName, f func(key []byte, value []byte)) {
	contractMap, found := t.contracts[contract]
	if !found {
		return
	}
	for _, record := range contractMap {
		if record.isDirty {
			f(record.key, record.value)
		}
	}
}

func (t *transientState) mergeIntoTransientState(other *transientState) {
	for _, contract := range t.contractSortOrder {
		t.forDirty(contract, func(key []byte, value []byte) {
			other.setValue(contract, key, value, true)
		})
	}
}

func (t *transientState) toStateDiffs() []*adapter.ContractStateDiff {
	res := []*adapter.ContractStateDiff{}
	for _, contract := range t.contractSortOrder {
		var diffs []*adapter.StateDiff
		t.forDirty(contract, func(key []byte, value []byte) {
			diffs = append(diffs, &adapter.StateDiff{Key: string(key), Value: value})
		})
		if len(diffs) > 0 {
			res = append(res, &adapter.ContractStateDiff{ContractName: contract, StateDiffs: diffs})
		}
	}
	return res
}
