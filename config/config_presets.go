// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"time"
)

// all other configs are variations from the production one
func defaultProductionConfig() mutableLoadTesterConfig {
	cfg := emptyConfig()

	// 0 means unlimited
	cfg.SetUint32(HOST_EXECUTION_BUDGET, 0)
	cfg.SetUint32(HOST_STATE_READ_COST, 1)
	cfg.SetUint32(HOST_STATE_WRITE_COST, 10)
	cfg.SetString(HOST_STATE_DIRECTORY, "")

	cfg.SetUint32(VIRTUAL_CHAIN_ID, 42)
	cfg.SetString(ORBS_ENDPOINT, "http://localhost:8080")
	cfg.SetString(CONTRACT_NAME, "LoadTester")
	cfg.SetUint32(BLOAT_COUNT, 100)

	// 0 iterations runs until interrupted
	cfg.SetUint32(TX_LOOP_ITERATIONS, 0)
	cfg.SetUint32(TX_LOOP_BATCH_SIZE, 10)
	cfg.SetUint32(TX_LOOP_TARGET_TPS, 50)
	cfg.SetUint32(READ_LOOP_ITERATIONS, 0)
	cfg.SetUint32(READ_LOOP_CHECKPOINT, 1000)
	cfg.SetDuration(REQUEST_TIMEOUT, 30*time.Second)

	cfg.SetDuration(METRICS_REPORT_INTERVAL, 30*time.Second)
	cfg.SetDuration(SYSTEM_METRICS_INTERVAL, 3*time.Second)

	cfg.SetDuration(LOGGER_FILE_TRUNCATION_INTERVAL, 24*time.Hour)
	cfg.SetBool(LOGGER_FULL_LOG, false)

	return cfg
}

func ForProduction() mutableLoadTesterConfig {
	return defaultProductionConfig()
}

func ForTests() mutableLoadTesterConfig {
	cfg := defaultProductionConfig()

	cfg.SetUint32(BLOAT_COUNT, 10)
	cfg.SetUint32(TX_LOOP_ITERATIONS, 20)
	cfg.SetUint32(TX_LOOP_BATCH_SIZE, 4)
	cfg.SetUint32(TX_LOOP_TARGET_TPS, 0)
	cfg.SetUint32(READ_LOOP_ITERATIONS, 20)
	cfg.SetUint32(READ_LOOP_CHECKPOINT, 5)
	cfg.SetDuration(REQUEST_TIMEOUT, 5*time.Second)
	cfg.SetDuration(METRICS_REPORT_INTERVAL, 100*time.Millisecond)
	cfg.SetDuration(SYSTEM_METRICS_INTERVAL, 100*time.Millisecond)
	cfg.SetBool(LOGGER_FULL_LOG, true)

	return cfg
}
