// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package cli

import (
	"context"
	"github.com/orbs-network/orbs-load-tester/bootstrap"
	"github.com/orbs-network/orbs-load-tester/config"
	"github.com/orbs-network/orbs-load-tester/synchronization/supervised"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"strconv"
)

type runnerFactory func(ctx context.Context, cfg config.LoadTesterConfig, logger log.Logger) (*bootstrap.Runner, error)

type scenario func(ctx context.Context, r *bootstrap.Runner, cfg config.LoadTesterConfig) error

// run builds a runner, cancels it on SIGINT or SIGTERM and shuts it down once the scenario returns.
func (o *options) run(newRunner runnerFactory, s scenario) error {
	cfg, logger, logFile, err := o.load()
	if err != nil {
		return err
	}
	defer logFile.Close()

	r, err := newRunner(context.Background(), cfg, logger)
	if err != nil {
		return errors.Wrap(err, "failed starting run")
	}
	defer r.GracefulShutdown(SHUTDOWN_TIMEOUT)

	supervised.NewShutdownListener(logger, r.Cancel).ListenToOSShutdownSignal(r.Context())

	return s(r.Context(), r, cfg)
}

func parseCount(args []string, cfg config.LoadDriverConfig) (uint64, error) {
	if len(args) == 0 {
		return uint64(cfg.BloatCount()), nil
	}

	count, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, exitErrorf(EXIT_CODE_BAD_USAGE, "count must be a non negative integer: %s", args[0])
	}
	return count, nil
}

func (o *options) bloatAndRead(args []string) scenario {
	return func(ctx context.Context, r *bootstrap.Runner, cfg config.LoadTesterConfig) error {
		count, err := parseCount(args, cfg)
		if err != nil {
			return err
		}

		report, err := r.Driver().BloatAndRead(ctx, count)
		if err != nil {
			return err
		}
		o.printf("run %s: sequence length %d after bloat of %d (%s)", r.Driver().RunId(), report.Length, report.Count, report.Elapsed)
		return nil
	}
}

func (o *options) txLoop(args []string) scenario {
	return func(ctx context.Context, r *bootstrap.Runner, cfg config.LoadTesterConfig) error {
		count, err := parseCount(args, cfg)
		if err != nil {
			return err
		}

		report, err := r.Driver().TxLoop(ctx, count)
		if report != nil {
			o.printf("run %s: sent %d bloat transactions, %d failed, %.2f tps", r.Driver().RunId(), report.Sent, report.Failed, report.Tps())
		}
		return err
	}
}

func (o *options) readLoop(ctx context.Context, r *bootstrap.Runner, cfg config.LoadTesterConfig) error {
	report, err := r.Driver().ReadLoop(ctx)
	if report != nil {
		o.printf("run %s: %d reads, %d failed, last length %d, %.2f reads per second", r.Driver().RunId(), report.Reads, report.Failed, report.LastLength, report.LastRate)
	}
	return err
}

func newSimulateCommand(o *options) *cobra.Command {
	var withTxLoop, withReadLoop bool

	cmd := &cobra.Command{
		Use:   "simulate [count]",
		Short: "deploy the contract into an in-process host and bloat it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(bootstrap.NewSimulation, func(ctx context.Context, r *bootstrap.Runner, cfg config.LoadTesterConfig) error {
				if err := o.bloatAndRead(args)(ctx, r, cfg); err != nil {
					return err
				}
				if withTxLoop {
					if err := o.txLoop(args)(ctx, r, cfg); err != nil {
						return err
					}
				}
				if withReadLoop {
					return o.readLoop(ctx, r, cfg)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&withTxLoop, "tx-loop", false, "run the tx loop after the first bloat")
	cmd.Flags().BoolVar(&withReadLoop, "read-loop", false, "run the read loop last")
	return cmd
}

func newBloatCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "bloat [count]",
		Short: "append 1..count to the contract on a node and read the sequence back",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(bootstrap.NewRemote, o.bloatAndRead(args))
		},
	}
}

func newReadCommand(o *options) *cobra.Command {
	var printValues bool

	cmd := &cobra.Command{
		Use:   "read",
		Short: "read the stored sequence from a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(bootstrap.NewRemote, func(ctx context.Context, r *bootstrap.Runner, cfg config.LoadTesterConfig) error {
				values, err := r.Driver().Read(ctx)
				if err != nil {
					return err
				}
				o.printf("sequence length %d", len(values))
				if printValues {
					o.printf("%v", values)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&printValues, "values", false, "print the values as well")
	return cmd
}

func newTxLoopCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tx-loop [count]",
		Short: "send bloat transactions to a node in rate limited batches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(bootstrap.NewRemote, o.txLoop(args))
		},
	}
}

func newReadLoopCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "read-loop",
		Short: "read the sequence length from a node repeatedly and report the read rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(bootstrap.NewRemote, o.readLoop)
		},
	}
}
