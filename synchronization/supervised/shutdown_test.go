// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package supervised

import (
	"context"
	"github.com/orbs-network/orbs-load-tester/test"
	"github.com/orbs-network/orbs-load-tester/test/with"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
)

func TestShutdownListener_CancelsRunOnSignal(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(parent context.Context) {
			ctx, cancel := context.WithCancel(parent)
			listener := NewShutdownListener(harness.Logger, cancel)
			listener.ListenToOSShutdownSignal(ctx)

			listener.signals <- os.Interrupt

			require.True(t, test.Eventually(func() bool {
				return ctx.Err() != nil
			}), "run context should be cancelled after a signal")
		})
	})
}
