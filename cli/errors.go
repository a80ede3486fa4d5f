// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package cli

import (
	"fmt"
	"github.com/pkg/errors"
)

const (
	EXIT_CODE_RUN_FAILED     = 1
	EXIT_CODE_INVALID_CONFIG = 2
	EXIT_CODE_BAD_USAGE      = 3
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func exitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error returned by a command to the code the process exits with.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := errors.Cause(err).(*ExitError); ok {
		return exitErr.Code
	}
	return EXIT_CODE_RUN_FAILED
}
