// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"fmt"
	"github.com/c9s/goprocinfo/linux"
	"github.com/orbs-network/orbs-load-tester/synchronization"
	"github.com/orbs-network/scribe/log"
	"os"
	"runtime"
	"time"
)

const PAGESIZE = 4096

type systemMetrics struct {
	rssBytes       *Gauge
	cpuUtilization *Gauge
	heapAlloc      *Gauge
	goroutines     *Gauge
}

type systemReporter struct {
	metrics systemMetrics
	logger  log.Logger
	lastCpu *cpuSample
}

type cpuSample struct {
	process uint64
	total   uint64
}

// NewSystemReporter samples process memory and cpu usage every interval until ctx ends.
// Process stats come from /proc and are skipped where it does not exist.
func NewSystemReporter(ctx context.Context, interval time.Duration, metricFactory Factory, logger log.Logger) *synchronization.PeriodicalTrigger {
	r := &systemReporter{
		metrics: systemMetrics{
			rssBytes:       metricFactory.NewGauge("OS.Process.Memory.Bytes"),
			cpuUtilization: metricFactory.NewGauge("OS.Process.CPU.PerCent"),
			heapAlloc:      metricFactory.NewGauge("Runtime.HeapAlloc"),
			goroutines:     metricFactory.NewGauge("Runtime.Goroutines"),
		},
		logger: logger,
	}

	return synchronization.NewPeriodicalTrigger(ctx, "system metrics reporter", interval, logger, r.reportSystemMetrics, nil)
}

func (r *systemReporter) reportSystemMetrics() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	r.metrics.heapAlloc.Update(int64(mem.HeapAlloc))
	r.metrics.goroutines.Update(int64(runtime.NumGoroutine()))

	if _, err := os.Stat("/proc"); os.IsNotExist(err) {
		return
	}

	if rss, err := getRssMemory(); err != nil {
		r.logger.Info("failed to retrieve memory stats", log.Error(err))
	} else {
		r.metrics.rssBytes.Update(rss)
	}

	sample, err := getCpuSample()
	if err != nil {
		r.logger.Info("failed to retrieve cpu stats", log.Error(err))
		return
	}
	if r.lastCpu != nil {
		r.metrics.cpuUtilization.Update(cpuPercent(r.lastCpu, sample))
	}
	r.lastCpu = sample
}

func getRssMemory() (int64, error) {
	statm, err := linux.ReadProcessStatm(fmt.Sprintf("/proc/%d/statm", os.Getpid()))
	if err != nil {
		return 0, err
	}

	return int64(statm.Resident * PAGESIZE), nil
}

func getCpuSample() (*cpuSample, error) {
	process, err := linux.ReadProcess(uint64(os.Getpid()), "/proc")
	if err != nil {
		return nil, err
	}
	stat, err := linux.ReadStat("/proc/stat")
	if err != nil {
		return nil, err
	}

	e := stat.CPUStatAll
	return &cpuSample{
		process: process.Stat.Utime + process.Stat.Stime,
		total:   e.User + e.Nice + e.System + e.Idle,
	}, nil
}

// procfs counters are totals since boot, so utilization is the process share of the delta between two samples.
func cpuPercent(prev *cpuSample, next *cpuSample) int64 {
	if next.total <= prev.total {
		return 0
	}
	return int64(float64(next.process-prev.process) / float64(next.total-prev.total) * 100)
}
