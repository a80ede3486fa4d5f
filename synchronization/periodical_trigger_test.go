// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package synchronization_test

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-load-tester/synchronization"
	"github.com/orbs-network/orbs-load-tester/test"
	"github.com/orbs-network/orbs-load-tester/test/with"
	"github.com/stretchr/testify/require"
	"sync/atomic"
	"testing"
	"time"
)

func TestPeriodicalTrigger_FiresRepeatedly(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithSupervisedContext(func(ctx context.Context) govnr.ShutdownWaiter {
			var x int32
			p := synchronization.NewPeriodicalTrigger(ctx, "test trigger", time.Millisecond, harness.Logger, func() { atomic.AddInt32(&x, 1) }, nil)

			require.True(t, test.Eventually(func() bool {
				return atomic.LoadInt32(&x) >= 3
			}), "expected at least three ticks")
			return p
		})
	})
}

func TestPeriodicalTrigger_StopRunsOnStopBeforeReturning(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			stopped := false
			p := synchronization.NewPeriodicalTrigger(ctx, "test trigger", time.Hour, harness.Logger, func() {}, func() { stopped = true })

			p.Stop()

			require.True(t, stopped, "onStop should have run")
		})
	})
}

func TestPeriodicalTrigger_StopsWhenContextEnds(t *testing.T) {
	with.Logging(t, func(harness *with.LoggingHarness) {
		ctx, cancel := context.WithCancel(context.Background())
		var x int32
		p := synchronization.NewPeriodicalTrigger(ctx, "test trigger", time.Millisecond, harness.Logger, func() { atomic.AddInt32(&x, 1) }, nil)

		cancel()
		<-p.Closed
		ticks := atomic.LoadInt32(&x)
		time.Sleep(5 * time.Millisecond)

		require.Equal(t, ticks, atomic.LoadInt32(&x), "no ticks expected after context ended")
	})
}
