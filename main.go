// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package main

import (
	"github.com/orbs-network/orbs-load-tester/cli"
	"github.com/orbs-network/orbs-load-tester/instrumentation"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"os"
)

func main() {
	logger := instrumentation.GetBootstrapCrashLogger(os.Stderr)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("unexpected error in main goroutine", log.Error(errors.Errorf("unknown error: %v", r)))
			os.Exit(8)
		}
	}()

	if err := cli.NewRootCommand(os.Stdout).Execute(); err != nil {
		logger.Error("load tester failed", log.Error(err))
		os.Exit(cli.ExitCode(err))
	}
}
