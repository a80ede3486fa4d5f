// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/stretchr/testify/require"
	"testing"
)

func requireDirtyPairs(t *testing.T, s *transientState, contract primitives.ContractName, expected []keyValuePair) {
	d := []keyValuePair{}
	s.forDirty(contract, func(key []byte, value []byte) {
		d = append(d, keyValuePair{key, value, true})
	})
	require.ElementsMatch(t, expected, d, "dirty keys should be equal")
}

func TestTransientStateReadMissingContract(t *testing.T) {
	s := newTransientState()

	_, found := s.getValue("Contract1", []byte{0x01})
	require.False(t, found, "key should not be found")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{})
}

func TestTransientStateReplaceKeyKeepsDirtyFlag(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x77, 0x88}, true)
	s.setValue("Contract1", []byte{0x01}, []byte{0x99, 0xaa, 0xbb}, false)

	v, found := s.getValue("Contract1", []byte{0x01})
	require.True(t, found, "key should be found")
	require.Equal(t, []byte{0x99, 0xaa, 0xbb}, v, "value should be equal")

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{
		{[]byte{0x01}, []byte{0x99, 0xaa, 0xbb}, true},
	})
}

func TestTransientStateWriteDirtyReadKeys(t *testing.T) {
	s := newTransientState()
	s.setValue("Contract1", []byte{0x01}, []byte{0x22, 0x33}, true)
	s.setValue("Contract1", []byte{0x02}, []byte{0x33, 0x44}, false)
	s.setValue("Contract1", []byte{0x03}, []byte{0x55, 0x66}, true)

	requireDirtyPairs(t, s, "Contract1", []keyValuePair{
		{[]byte{0x01}, []byte{0x22, 0x33}, true},
		{[]byte{0x03}, []byte{0x55, 0x66}, true},
	})
}

func TestTransientStateMergeCarriesOnlyDirtyKeys(t *testing.T) {
	call := newTransientState()
	call.setValue("Contract1", []byte{0x01}, []byte{0x01}, true)
	call.setValue("Contract1", []byte{0x02}, []byte{0x02}, false)
	batch := newTransientState()

	call.mergeIntoTransientState(batch)

	requireDirtyPairs(t, batch, "Contract1", []keyValuePair{
		{[]byte{0x01}, []byte{0x01}, true},
	})
	_, found := batch.getValue("Contract1", []byte{0x02})
	require.False(t, found, "clean reads should not be merged")
}

func TestTransientStateToStateDiffsSkipsCleanContracts(t *testing.T) {
	s := newTransientState()
	s.setValue("Clean", []byte{0x01}, []byte{0x01}, false)
	s.setValue("Dirty", []byte{0x02}, []byte{0x02}, true)

	diffs := s.toStateDiffs()

	require.Len(t, diffs, 1)
	require.EqualValues(t, "Dirty", diffs[0].ContractName)
	require.Equal(t, string([]byte{0x02}), diffs[0].StateDiffs[0].Key)
}
