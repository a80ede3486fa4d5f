// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package bootstrap

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-load-tester/config"
	"github.com/orbs-network/orbs-load-tester/instrumentation/metric"
	"github.com/orbs-network/orbs-load-tester/services/host"
	"github.com/orbs-network/orbs-load-tester/services/host/adapter"
	"github.com/orbs-network/orbs-load-tester/services/host/adapter/leveldb"
	"github.com/orbs-network/orbs-load-tester/services/host/adapter/memory"
	"github.com/orbs-network/orbs-load-tester/services/host/repository"
	"github.com/orbs-network/orbs-load-tester/services/loaddriver"
	"github.com/orbs-network/orbs-load-tester/synchronization/supervised"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"time"
)

// Runner owns one load run: the driver, the client it drives and the metric reporters around them.
type Runner struct {
	govnr.TreeSupervisor
	logger  log.Logger
	metrics metric.Registry
	driver  *loaddriver.Driver
	host    *host.Service
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewSimulation deploys the sequence contract into an in-process host and drives it directly.
// State is kept in leveldb when a state directory is configured, otherwise in memory.
func NewSimulation(parentCtx context.Context, cfg config.LoadTesterConfig, logger log.Logger) (*Runner, error) {
	persistence, err := newStatePersistence(cfg)
	if err != nil {
		return nil, err
	}

	registry := metric.NewRegistry()
	contractName := primitives.ContractName(cfg.ContractName())
	h := host.NewHost(cfg, persistence, repository.Contracts, logger, registry)

	deployed, err := h.IsDeployed(contractName)
	if err != nil {
		_ = h.Close()
		return nil, errors.Wrap(err, "could not read deployments")
	}
	if deployed {
		logger.Info("contract already deployed in state directory", log.String("contract", cfg.ContractName()))
	} else if err := h.Deploy(parentCtx, contractName); err != nil {
		_ = h.Close()
		return nil, err
	}

	r := newRunner(parentCtx, cfg, logger, registry, loaddriver.NewHostClient(h, contractName))
	r.host = h
	return r, nil
}

// NewRemote drives a contract already deployed on an Orbs virtual chain.
func NewRemote(parentCtx context.Context, cfg config.LoadTesterConfig, logger log.Logger) (*Runner, error) {
	client, err := loaddriver.NewOrbsClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	return newRunner(parentCtx, cfg, logger, metric.NewRegistry(), client), nil
}

func newRunner(parentCtx context.Context, cfg config.LoadTesterConfig, logger log.Logger, registry metric.Registry, client loaddriver.Client) *Runner {
	ctx, cancel := context.WithCancel(parentCtx)
	r := &Runner{
		logger:  logger,
		metrics: registry,
		driver:  loaddriver.NewDriver(cfg, client, logger, registry),
		ctx:     ctx,
		cancel:  cancel,
	}

	r.Supervise(metric.NewSystemReporter(ctx, cfg.SystemMetricsInterval(), registry, logger))
	r.Supervise(registry.ReportEvery(ctx, cfg.MetricsReportInterval(), logger))

	return r
}

func newStatePersistence(cfg config.HostConfig) (adapter.StatePersistence, error) {
	if cfg.HostStateDirectory() == "" {
		return memory.NewStatePersistence(), nil
	}
	return leveldb.NewStatePersistence(cfg)
}

// Context ends when the run is shut down.
func (r *Runner) Context() context.Context {
	return r.ctx
}

func (r *Runner) Driver() *loaddriver.Driver {
	return r.driver
}

func (r *Runner) Metrics() metric.Registry {
	return r.metrics
}

// Cancel ends the run context without waiting, as an OS shutdown signal does.
func (r *Runner) Cancel() {
	r.cancel()
}

// GracefulShutdown stops the reporters, which log a final report, and closes host state.
func (r *Runner) GracefulShutdown(timeout time.Duration) {
	r.cancel()
	supervised.WaitGracefully(r, timeout)

	if r.host != nil {
		if err := r.host.Close(); err != nil {
			r.logger.Error("failed to close host state", log.Error(err))
		}
	}
}
