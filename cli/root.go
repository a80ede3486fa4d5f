// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package cli

import (
	"fmt"
	"github.com/orbs-network/orbs-load-tester/config"
	"github.com/orbs-network/orbs-load-tester/instrumentation"
	"github.com/orbs-network/scribe/log"
	"github.com/spf13/cobra"
	"io"
	"time"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

type options struct {
	configFiles config.ArrayFlags
	logPath     string
	silent      bool
	stdout      io.Writer
}

// NewRootCommand builds the orbs-load-tester command tree. Results are printed to stdout.
func NewRootCommand(stdout io.Writer) *cobra.Command {
	o := &options{stdout: stdout}

	root := &cobra.Command{
		Use:           "orbs-load-tester",
		Short:         "grows contract state on demand and measures how a node copes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOutput(stdout)

	root.PersistentFlags().Var(&o.configFiles, "config", "path/to/config.json, may be repeated")
	root.PersistentFlags().StringVar(&o.logPath, "log", "", "path/to/load-tester.log")
	root.PersistentFlags().BoolVar(&o.silent, "silent", false, "disable log output to stdout")

	root.AddCommand(
		newSimulateCommand(o),
		newBloatCommand(o),
		newReadCommand(o),
		newTxLoopCommand(o),
		newReadLoopCommand(o),
		newVersionCommand(o),
	)

	return root
}

// load reads the configuration and opens the run logger. The closer releases the log file.
func (o *options) load() (config.LoadTesterConfig, log.Logger, io.Closer, error) {
	cfg, err := config.GetConfigFromFiles(o.configFiles)
	if err != nil {
		return nil, nil, nil, exitErrorf(EXIT_CODE_INVALID_CONFIG, "error reading configuration: %s", err)
	}

	logger, logFile, err := instrumentation.GetLogger(o.logPath, o.silent, o.stdout, cfg)
	if err != nil {
		return nil, nil, nil, exitErrorf(EXIT_CODE_INVALID_CONFIG, "error creating logger: %s", err)
	}

	if err := validate(cfg, logger); err != nil {
		_ = logFile.Close()
		return nil, nil, nil, err
	}

	return cfg, logger, logFile, nil
}

func validate(cfg config.LoadTesterConfig, logger log.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = exitErrorf(EXIT_CODE_INVALID_CONFIG, "invalid configuration: %v", r)
		}
	}()

	config.NewValidator(logger).Validate(cfg)
	return nil
}

func (o *options) printf(format string, args ...interface{}) {
	fmt.Fprintf(o.stdout, format+"\n", args...)
}

func newVersionCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			o.printf("%s", config.GetVersion())
		},
	}
}
