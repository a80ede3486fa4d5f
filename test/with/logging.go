// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package with

import (
	"github.com/orbs-network/orbs-load-tester/instrumentation/metric"
	"github.com/orbs-network/scribe/log"
	"testing"
)

type LoggingHarness struct {
	Logger     log.Logger
	Metrics    metric.Registry
	testOutput *log.TestOutput
	T          testing.TB
}

func (h *LoggingHarness) AllowErrorsMatching(pattern string) {
	h.testOutput.AllowErrorsMatching(pattern)
}

// Logging fails the test if anything logged an error that was not explicitly allowed.
func Logging(tb testing.TB, f func(harness *LoggingHarness)) {
	testOutput := log.NewTestOutput(tb, log.NewHumanReadableFormatter())
	h := &LoggingHarness{
		Logger:     log.GetLogger().WithTags(log.String("test", tb.Name())).WithOutput(testOutput),
		Metrics:    metric.NewRegistry(),
		testOutput: testOutput,
		T:          tb,
	}
	defer testOutput.TestTerminated()
	f(h)
	requireNoUnexpectedErrors(tb, testOutput)
}

type fataler interface {
	Fatal(args ...interface{})
}

type errorTracker interface {
	HasErrors() bool
}

func requireNoUnexpectedErrors(f fataler, tracker errorTracker) {
	if tracker.HasErrors() {
		f.Fatal("Test failed; encountered unexpected errors")
	}
}
