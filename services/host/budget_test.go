// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"github.com/orbs-network/orbs-load-tester/services/sequencestore"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestExecutionBudget_UnlimitedWhenZero(t *testing.T) {
	b := &executionBudget{readCost: 1, writeCost: 10}

	for i := 0; i < 1000; i++ {
		require.NoError(t, b.chargeWrite())
	}
	require.EqualValues(t, 10000, b.used)
}

func TestExecutionBudget_FailsWhenExceededAndStaysExhausted(t *testing.T) {
	b := &executionBudget{limit: 25, readCost: 1, writeCost: 10}

	require.NoError(t, b.chargeWrite())
	require.NoError(t, b.chargeWrite())
	err := b.chargeWrite()

	require.Equal(t, sequencestore.ErrResourceExhausted, errors.Cause(err))
	require.True(t, b.exhausted)
	require.Equal(t, sequencestore.ErrResourceExhausted, errors.Cause(b.chargeRead()), "reads after exhaustion must fail too")
	require.EqualValues(t, 20, b.used)
}
