// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loadtester_systemcontract

import (
	. "github.com/orbs-network/orbs-contract-sdk/go/testing/unit"
	"github.com/orbs-network/orbs-load-tester/services/sequencestore"
	"github.com/stretchr/testify/require"
	"testing"
)

func requireGet(t *testing.T, expected []uint64) {
	values, err := sequencestore.DecodeValues(get())
	require.NoError(t, err)
	require.Equal(t, expected, values)
	require.EqualValues(t, len(expected), length())
}

func TestLoadTester_GetAfterInitIsEmpty(t *testing.T) {
	InServiceScope(nil, nil, func(m Mockery) {
		_init()

		requireGet(t, []uint64{})
	})
}

func TestLoadTester_BloatTwiceRestartsCounting(t *testing.T) {
	InServiceScope(nil, nil, func(m Mockery) {
		_init()

		bloat(4)
		requireGet(t, []uint64{1, 2, 3, 4})

		bloat(3)
		requireGet(t, []uint64{1, 2, 3, 4, 1, 2, 3})

		bloat(0)
		requireGet(t, []uint64{1, 2, 3, 4, 1, 2, 3})
	})
}

func TestLoadTester_BloatOne(t *testing.T) {
	InServiceScope(nil, nil, func(m Mockery) {
		_init()

		bloat(1)

		requireGet(t, []uint64{1})
	})
}
