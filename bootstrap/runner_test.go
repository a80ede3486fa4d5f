// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/orbs-load-tester/config"
	"github.com/orbs-network/orbs-load-tester/test"
	"github.com/orbs-network/orbs-load-tester/test/with"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"testing"
	"time"
)

func TestSimulation_BloatAndReadInMemory(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			r, err := NewSimulation(ctx, config.ForTests(), h.Logger)
			require.NoError(t, err)
			defer r.GracefulShutdown(time.Second)

			report, err := r.Driver().BloatAndRead(r.Context(), 7)
			require.NoError(t, err)
			require.Equal(t, 7, report.Length)
			require.NotNil(t, r.Metrics().Get("LoadDriver.Sequence.Length"))
		})
	})
}

func TestSimulation_ResumesFromStateDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "loadtester-runner")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	with.Logging(t, func(h *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			cfg := config.ForTests()
			cfg.SetString(config.HOST_STATE_DIRECTORY, dir)

			first, err := NewSimulation(ctx, cfg, h.Logger)
			require.NoError(t, err)
			_, err = first.Driver().BloatAndRead(first.Context(), 3)
			require.NoError(t, err)
			first.GracefulShutdown(time.Second)

			second, err := NewSimulation(ctx, cfg, h.Logger)
			require.NoError(t, err, "a deployed contract in the state directory should be reused")
			defer second.GracefulShutdown(time.Second)

			report, err := second.Driver().BloatAndRead(second.Context(), 2)
			require.NoError(t, err)
			require.Equal(t, 5, report.Length)
		})
	})
}

func TestSimulation_UnknownContractFails(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			cfg := config.ForTests()
			cfg.SetString(config.CONTRACT_NAME, "NoSuchContract")

			_, err := NewSimulation(ctx, cfg, h.Logger)

			require.Error(t, err)
		})
	})
}

func TestRunner_CancelEndsRunContext(t *testing.T) {
	with.Logging(t, func(h *with.LoggingHarness) {
		test.WithContext(func(ctx context.Context) {
			r, err := NewSimulation(ctx, config.ForTests(), h.Logger)
			require.NoError(t, err)
			defer r.GracefulShutdown(time.Second)

			r.Cancel()

			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
				t.Fatal("run context should end on cancel")
			}
		})
	})
}
