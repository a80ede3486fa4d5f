// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loaddriver

import (
	"context"
	"github.com/google/uuid"
	"github.com/orbs-network/orbs-load-tester/instrumentation/logfields"
	"github.com/orbs-network/orbs-load-tester/instrumentation/metric"
	"github.com/orbs-network/scribe/log"
	"sort"
	"sync"
	"time"
)

type Config interface {
	TxLoopIterations() uint32
	TxLoopBatchSize() uint32
	TxLoopTargetTps() uint32
	ReadLoopIterations() uint32
	ReadLoopCheckpoint() uint32
	RequestTimeout() time.Duration
}

type metrics struct {
	bloatRate    *metric.Rate
	bloatLatency *metric.Histogram
	bloatSent    *metric.Gauge
	bloatFailed  *metric.Gauge
	readRate     *metric.Rate
	readLatency  *metric.Histogram
	readFailed   *metric.Gauge
	length       *metric.Gauge
}

func newMetrics(factory metric.Factory) *metrics {
	return &metrics{
		bloatRate:    factory.NewRate("LoadDriver.Bloat.Rate"),
		bloatLatency: factory.NewLatency("LoadDriver.Bloat.Latency.Millis", time.Minute),
		bloatSent:    factory.NewGauge("LoadDriver.Bloat.Sent"),
		bloatFailed:  factory.NewGauge("LoadDriver.Bloat.Failed"),
		readRate:     factory.NewRate("LoadDriver.Read.Rate"),
		readLatency:  factory.NewLatency("LoadDriver.Read.Latency.Millis", time.Minute),
		readFailed:   factory.NewGauge("LoadDriver.Read.Failed"),
		length:       factory.NewGauge("LoadDriver.Sequence.Length"),
	}
}

// Driver runs load scenarios against a Client. Each driver is one run with its own run id.
type Driver struct {
	config  Config
	client  Client
	logger  log.Logger
	metrics *metrics
	runId   string
}

func NewDriver(config Config, client Client, parentLogger log.Logger, metricFactory metric.Factory) *Driver {
	runId := uuid.New().String()
	return &Driver{
		config:  config,
		client:  client,
		logger:  parentLogger.WithTags(log.String("service", "load-driver"), logfields.RunId(runId)),
		metrics: newMetrics(metricFactory),
		runId:   runId,
	}
}

func (d *Driver) RunId() string {
	return d.runId
}

func (d *Driver) withRequestTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := d.config.RequestTimeout(); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

func (d *Driver) bloat(ctx context.Context, count uint64) error {
	callCtx, cancel := d.withRequestTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := d.client.Bloat(callCtx, count)
	d.metrics.bloatLatency.RecordSince(start)
	d.metrics.bloatSent.Inc()
	d.metrics.bloatRate.Measure(1)
	if err != nil {
		d.metrics.bloatFailed.Inc()
	}
	return err
}

func (d *Driver) length(ctx context.Context) (uint64, error) {
	callCtx, cancel := d.withRequestTimeout(ctx)
	defer cancel()

	start := time.Now()
	length, err := d.client.Length(callCtx)
	d.metrics.readLatency.RecordSince(start)
	d.metrics.readRate.Measure(1)
	if err != nil {
		d.metrics.readFailed.Inc()
		return 0, err
	}
	d.metrics.length.Update(int64(length))
	return length, nil
}

func (d *Driver) snapshot(ctx context.Context) ([]uint64, error) {
	callCtx, cancel := d.withRequestTimeout(ctx)
	defer cancel()

	start := time.Now()
	values, err := d.client.Snapshot(callCtx)
	d.metrics.readLatency.RecordSince(start)
	d.metrics.readRate.Measure(1)
	if err != nil {
		d.metrics.readFailed.Inc()
		return nil, err
	}
	d.metrics.length.Update(int64(len(values)))
	return values, nil
}

// errorGroups counts failures by message. Safe for concurrent use.
type errorGroups struct {
	mutex  sync.Mutex
	counts map[string]int
}

func newErrorGroups() *errorGroups {
	return &errorGroups{counts: make(map[string]int)}
}

func (g *errorGroups) add(err error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.counts[err.Error()]++
}

func (g *errorGroups) snapshot() map[string]int {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	res := make(map[string]int, len(g.counts))
	for k, v := range g.counts {
		res[k] = v
	}
	return res
}

func (d *Driver) logErrorGroups(scenario string, groups map[string]int) {
	messages := make([]string, 0, len(groups))
	for message := range groups {
		messages = append(messages, message)
	}
	sort.Strings(messages)

	for _, message := range messages {
		d.logger.Info("grouped call failures", logfields.Scenario(scenario), log.String("failure", message), log.Int64("times", int64(groups[message])))
	}
}
