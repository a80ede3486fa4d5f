// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/orbs-network/scribe/log"
	"reflect"
	"runtime"
	"strings"
)

type validator struct {
	logger log.Logger
}

func NewValidator(logger log.Logger) *validator {
	return &validator{logger: logger}
}

func (v *validator) Validate(cfg LoadTesterConfig) {
	v.requirePositive(cfg.TxLoopBatchSize, "tx loop batch size must be positive")
	v.requirePositive(cfg.ReadLoopCheckpoint, "read loop checkpoint must be positive")
	v.requireNonEmpty(cfg.ContractName, "contract name must be set")
	if cfg.MetricsReportInterval() <= 0 {
		v.fail("metrics report interval must be positive", log.Stringable("interval", cfg.MetricsReportInterval()))
	}
	if cfg.SystemMetricsInterval() <= 0 {
		v.fail("system metrics interval must be positive", log.Stringable("interval", cfg.SystemMetricsInterval()))
	}
	if budget := cfg.HostExecutionBudget(); budget != 0 && budget < cfg.HostStateWriteCost() {
		v.fail("execution budget must allow at least one state write", log.Uint64("budget", uint64(budget)), log.Uint64("write-cost", uint64(cfg.HostStateWriteCost())))
	}
}

func (v *validator) fail(msg string, fields ...*log.Field) {
	v.logger.Error(msg, fields...)
	panic(msg)
}

func (v *validator) requirePositive(value func() uint32, msg string) {
	if value() == 0 {
		v.fail(msg, log.Uint64(funcName(value), uint64(value())))
	}
}

func (v *validator) requireNonEmpty(value func() string, msg string) {
	if value() == "" {
		v.fail(msg, log.String(funcName(value), value()))
	}
}

func funcName(i interface{}) string {
	fullName := runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
	lastDot := strings.LastIndex(fullName, ".")
	return strings.TrimSuffix(fullName[lastDot+1:], "-fm")
}
