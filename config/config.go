// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"time"
)

type HostConfig interface {
	HostExecutionBudget() uint32
	HostStateReadCost() uint32
	HostStateWriteCost() uint32
	HostStateDirectory() string
}

type LoadDriverConfig interface {
	VirtualChainId() primitives.VirtualChainId
	OrbsEndpoint() string
	ContractName() string
	BloatCount() uint32
	TxLoopIterations() uint32
	TxLoopBatchSize() uint32
	TxLoopTargetTps() uint32
	ReadLoopIterations() uint32
	ReadLoopCheckpoint() uint32
	RequestTimeout() time.Duration
}

type LoggerConfig interface {
	LoggerFileTruncationInterval() time.Duration
	LoggerFullLog() bool
}

type LoadTesterConfig interface {
	HostConfig
	LoadDriverConfig
	LoggerConfig
	MetricsReportInterval() time.Duration
	SystemMetricsInterval() time.Duration
}

type mutableLoadTesterConfig interface {
	LoadTesterConfig
	Set(key string, value NodeConfigValue) mutableLoadTesterConfig
	SetDuration(key string, value time.Duration) mutableLoadTesterConfig
	SetUint32(key string, value uint32) mutableLoadTesterConfig
	SetString(key string, value string) mutableLoadTesterConfig
	SetBool(key string, value bool) mutableLoadTesterConfig
	Modify(newValues ...NodeConfigKeyValue)
}

type NodeConfigKeyValue struct {
	Key   string
	Value NodeConfigValue
}

type NodeConfigValue struct {
	Uint32Value   uint32
	DurationValue time.Duration
	StringValue   string
	BoolValue     bool
}

const (
	HOST_EXECUTION_BUDGET = "HOST_EXECUTION_BUDGET"
	HOST_STATE_READ_COST  = "HOST_STATE_READ_COST"
	HOST_STATE_WRITE_COST = "HOST_STATE_WRITE_COST"
	HOST_STATE_DIRECTORY  = "HOST_STATE_DIRECTORY"

	VIRTUAL_CHAIN_ID      = "VIRTUAL_CHAIN_ID"
	ORBS_ENDPOINT         = "ORBS_ENDPOINT"
	CONTRACT_NAME         = "CONTRACT_NAME"
	BLOAT_COUNT           = "BLOAT_COUNT"
	TX_LOOP_ITERATIONS    = "TX_LOOP_ITERATIONS"
	TX_LOOP_BATCH_SIZE    = "TX_LOOP_BATCH_SIZE"
	TX_LOOP_TARGET_TPS    = "TX_LOOP_TARGET_TPS"
	READ_LOOP_ITERATIONS  = "READ_LOOP_ITERATIONS"
	READ_LOOP_CHECKPOINT  = "READ_LOOP_CHECKPOINT"
	REQUEST_TIMEOUT       = "REQUEST_TIMEOUT"

	METRICS_REPORT_INTERVAL = "METRICS_REPORT_INTERVAL"
	SYSTEM_METRICS_INTERVAL = "SYSTEM_METRICS_INTERVAL"

	LOGGER_FILE_TRUNCATION_INTERVAL = "LOGGER_FILE_TRUNCATION_INTERVAL"
	LOGGER_FULL_LOG                 = "LOGGER_FULL_LOG"
)

type config struct {
	kv map[string]NodeConfigValue
}

func emptyConfig() mutableLoadTesterConfig {
	return &config{
		kv: make(map[string]NodeConfigValue),
	}
}

func (c *config) Set(key string, value NodeConfigValue) mutableLoadTesterConfig {
	c.kv[key] = value
	return c
}

func (c *config) SetDuration(key string, value time.Duration) mutableLoadTesterConfig {
	c.kv[key] = NodeConfigValue{DurationValue: value}
	return c
}

func (c *config) SetUint32(key string, value uint32) mutableLoadTesterConfig {
	c.kv[key] = NodeConfigValue{Uint32Value: value}
	return c
}

func (c *config) SetString(key string, value string) mutableLoadTesterConfig {
	c.kv[key] = NodeConfigValue{StringValue: value}
	return c
}

func (c *config) SetBool(key string, value bool) mutableLoadTesterConfig {
	c.kv[key] = NodeConfigValue{BoolValue: value}
	return c
}

func (c *config) Modify(newValues ...NodeConfigKeyValue) {
	for _, kv := range newValues {
		c.kv[kv.Key] = kv.Value
	}
}

func (c *config) HostExecutionBudget() uint32 {
	return c.kv[HOST_EXECUTION_BUDGET].Uint32Value
}

func (c *config) HostStateReadCost() uint32 {
	return c.kv[HOST_STATE_READ_COST].Uint32Value
}

func (c *config) HostStateWriteCost() uint32 {
	return c.kv[HOST_STATE_WRITE_COST].Uint32Value
}

func (c *config) HostStateDirectory() string {
	return c.kv[HOST_STATE_DIRECTORY].StringValue
}

func (c *config) VirtualChainId() primitives.VirtualChainId {
	return primitives.VirtualChainId(c.kv[VIRTUAL_CHAIN_ID].Uint32Value)
}

func (c *config) OrbsEndpoint() string {
	return c.kv[ORBS_ENDPOINT].StringValue
}

func (c *config) ContractName() string {
	return c.kv[CONTRACT_NAME].StringValue
}

func (c *config) BloatCount() uint32 {
	return c.kv[BLOAT_COUNT].Uint32Value
}

func (c *config) TxLoopIterations() uint32 {
	return c.kv[TX_LOOP_ITERATIONS].Uint32Value
}

func (c *config) TxLoopBatchSize() uint32 {
	return c.kv[TX_LOOP_BATCH_SIZE].Uint32Value
}

func (c *config) TxLoopTargetTps() uint32 {
	return c.kv[TX_LOOP_TARGET_TPS].Uint32Value
}

func (c *config) ReadLoopIterations() uint32 {
	return c.kv[READ_LOOP_ITERATIONS].Uint32Value
}

func (c *config) ReadLoopCheckpoint() uint32 {
	return c.kv[READ_LOOP_CHECKPOINT].Uint32Value
}

func (c *config) RequestTimeout() time.Duration {
	return c.kv[REQUEST_TIMEOUT].DurationValue
}

func (c *config) MetricsReportInterval() time.Duration {
	return c.kv[METRICS_REPORT_INTERVAL].DurationValue
}

func (c *config) SystemMetricsInterval() time.Duration {
	return c.kv[SYSTEM_METRICS_INTERVAL].DurationValue
}

func (c *config) LoggerFileTruncationInterval() time.Duration {
	return c.kv[LOGGER_FILE_TRUNCATION_INTERVAL].DurationValue
}

func (c *config) LoggerFullLog() bool {
	return c.kv[LOGGER_FULL_LOG].BoolValue
}
