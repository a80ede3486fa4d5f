// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"testing"
)

// RequireSequence fails unless actual is a []uint64 holding expected, and prints a diff when it does not.
// Empty and nil sequences are equal.
func RequireSequence(tb testing.TB, expected []uint64, actual interface{}, msgAndArgs ...interface{}) {
	tb.Helper()

	values, ok := actual.([]uint64)
	require.True(tb, ok, "expected a []uint64 sequence but got %T", actual)

	if diff := cmp.Diff(expected, values, cmpopts.EquateEmpty()); diff != "" {
		require.FailNow(tb, "sequence mismatch (-expected +actual):\n"+diff, msgAndArgs...)
	}
}
