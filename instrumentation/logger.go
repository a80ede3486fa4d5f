// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package instrumentation

import (
	"github.com/orbs-network/orbs-load-tester/config"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"io"
	"os"
)

func GetBootstrapCrashLogger(stderr io.Writer) log.Logger {
	return log.GetLogger().WithOutput(log.NewFormattingOutput(stderr, log.NewHumanReadableFormatter()))
}

type noLogFile struct{}

func (noLogFile) Close() error {
	return nil
}

// GetLogger writes human readable lines to stdout unless silent, and JSON lines to path when one is given.
// Per-call execution failures are dropped unless the config asks for the full log.
// The returned closer releases the log file and must be called once logging is over.
func GetLogger(path string, silent bool, stdout io.Writer, cfg config.LoggerConfig) (log.Logger, io.Closer, error) {
	outputs := make([]log.Output, 0, 2)
	var logFile io.Closer = noLogFile{}

	if !silent {
		outputs = append(outputs, log.NewFormattingOutput(stdout, log.NewHumanReadableFormatter()))
	}

	if path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "could not open log file %s", path)
		}
		logFile = file

		fileWriter := log.NewTruncatingFileWriter(file, cfg.LoggerFileTruncationInterval())
		outputs = append(outputs, log.NewFormattingOutput(fileWriter, log.NewJsonFormatter()))
	}

	logger := log.GetLogger(log.String("app", "orbs-load-tester")).WithOutput(outputs...)

	if !cfg.LoggerFullLog() {
		logger = logger.WithFilters(log.IgnoreMessagesMatching("execution failed"))
	}

	return logger, logFile, nil
}
