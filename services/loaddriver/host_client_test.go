// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loaddriver

import (
	"context"
	"github.com/orbs-network/orbs-load-tester/config"
	"github.com/orbs-network/orbs-load-tester/services/host"
	"github.com/orbs-network/orbs-load-tester/services/host/adapter/memory"
	"github.com/orbs-network/orbs-load-tester/services/host/repository"
	"github.com/orbs-network/orbs-load-tester/services/host/repository/LoadTester"
	"github.com/orbs-network/orbs-load-tester/test"
	"github.com/orbs-network/orbs-load-tester/test/with"
	"github.com/stretchr/testify/require"
	"testing"
)

func newDeployedHostClient(ctx context.Context, h *with.LoggingHarness, cfg host.Config) *HostClient {
	service := host.NewHost(cfg, memory.NewStatePersistence(), repository.Contracts, h.Logger, h.Metrics)
	require.NoError(h.T, service.Deploy(ctx, loadtester.CONTRACT_NAME))
	return NewHostClient(service, loadtester.CONTRACT_NAME)
}

func TestHostClient_BloatAndReadThroughHost(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			client := newDeployedHostClient(ctx, h, config.ForTests())
			driver := NewDriver(config.ForTests(), client, h.Logger, h.Metrics)

			report, err := driver.BloatAndRead(ctx, 100)
			require.NoError(t, err)
			require.Equal(t, 100, report.Length)

			report, err = driver.BloatAndRead(ctx, 3)
			require.NoError(t, err)
			require.Equal(t, 103, report.Length)

			values, err := client.Snapshot(ctx)
			require.NoError(t, err)
			require.Equal(t, []uint64{1, 2, 3}, values[100:])
		})
	})
}

func TestHostClient_TxLoopGrowsSequence(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			cfg := config.ForTests()
			cfg.SetUint32(config.TX_LOOP_ITERATIONS, 12)
			client := newDeployedHostClient(ctx, h, cfg)

			report, err := NewDriver(cfg, client, h.Logger, h.Metrics).TxLoop(ctx, 2)
			require.NoError(t, err)
			require.EqualValues(t, 12, report.Succeeded)

			length, err := client.Length(ctx)
			require.NoError(t, err)
			require.EqualValues(t, 24, length)

			values, err := client.Snapshot(ctx)
			require.NoError(t, err)
			for i := 0; i < len(values); i += 2 {
				require.Equal(t, []uint64{1, 2}, values[i:i+2], "concurrent bloats must not interleave")
			}
		})
	})
}

func TestHostClient_BloatOverBudgetFails(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			cfg := config.ForTests()
			cfg.SetUint32(config.HOST_STATE_READ_COST, 1)
			cfg.SetUint32(config.HOST_STATE_WRITE_COST, 1)
			cfg.SetUint32(config.HOST_EXECUTION_BUDGET, 20)
			client := newDeployedHostClient(ctx, h, cfg)

			require.Error(t, client.Bloat(ctx, 100))

			length, err := client.Length(ctx)
			require.NoError(t, err)
			require.Zero(t, length)
		})
	})
}
