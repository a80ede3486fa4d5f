// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package supervised

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-load-tester/instrumentation/logfields"
	"github.com/orbs-network/scribe/log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type ShutdownWaiter interface {
	WaitUntilShutdown(shutdownContext context.Context)
}

func WaitGracefully(w ShutdownWaiter, timeout time.Duration) {
	shutdownContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	w.WaitUntilShutdown(shutdownContext)
}

// OSShutdownListener cancels a run when the process receives SIGINT or SIGTERM.
type OSShutdownListener struct {
	Logger  log.Logger
	cancel  context.CancelFunc
	signals chan os.Signal
}

func NewShutdownListener(logger log.Logger, cancel context.CancelFunc) *OSShutdownListener {
	return &OSShutdownListener{
		Logger:  logger,
		cancel:  cancel,
		signals: make(chan os.Signal, 1),
	}
}

func (n *OSShutdownListener) ListenToOSShutdownSignal(ctx context.Context) {
	signal.Notify(n.signals, os.Interrupt, syscall.SIGTERM)
	govnr.Once(logfields.GovnrErrorer(n.Logger), func() {
		defer signal.Stop(n.signals)
		select {
		case sig := <-n.signals:
			n.Logger.Info("terminating run gracefully due to os signal received", log.String("signal", sig.String()))
			n.cancel()
		case <-ctx.Done():
		}
	})
}
