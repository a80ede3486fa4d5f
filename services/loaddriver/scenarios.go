// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loaddriver

import (
	"context"
	"github.com/orbs-network/govnr"
	"github.com/orbs-network/orbs-load-tester/instrumentation/logfields"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"sync"
	"time"
)

const (
	SCENARIO_BLOAT_AND_READ = "bloat-and-read"
	SCENARIO_TX_LOOP        = "tx-loop"
	SCENARIO_READ_LOOP      = "read-loop"
)

type BloatAndReadReport struct {
	Count   uint64
	Length  int
	Elapsed time.Duration
}

// BloatAndRead appends 1..count once and then reads back the whole sequence.
func (d *Driver) BloatAndRead(ctx context.Context, count uint64) (*BloatAndReadReport, error) {
	logger := d.logger.WithTags(logfields.Scenario(SCENARIO_BLOAT_AND_READ))
	start := time.Now()

	if err := d.bloat(ctx, count); err != nil {
		return nil, errors.Wrapf(err, "bloat(%d) failed", count)
	}
	logger.Info("bloat committed", log.Uint64("count", count))

	values, err := d.snapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading sequence failed")
	}

	report := &BloatAndReadReport{
		Count:   count,
		Length:  len(values),
		Elapsed: time.Since(start),
	}
	logger.Info("sequence read", log.Int64("length", int64(report.Length)), log.Stringable("elapsed", report.Elapsed))
	return report, nil
}

// Read returns the whole stored sequence.
func (d *Driver) Read(ctx context.Context) ([]uint64, error) {
	values, err := d.snapshot(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "reading sequence failed")
	}
	d.logger.Info("sequence read", log.Int64("length", int64(len(values))))
	return values, nil
}

type TxLoopReport struct {
	Sent      uint64
	Succeeded uint64
	Failed    uint64
	Errors    map[string]int
	Elapsed   time.Duration
}

func (r *TxLoopReport) Tps() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Succeeded) / r.Elapsed.Seconds()
}

// TxLoop sends bloat(count) transactions in concurrent batches, throttled to the configured tps.
// With zero iterations it runs until ctx ends; otherwise ending ctx early is an error.
func (d *Driver) TxLoop(ctx context.Context, count uint64) (*TxLoopReport, error) {
	logger := d.logger.WithTags(logfields.Scenario(SCENARIO_TX_LOOP))
	iterations := uint64(d.config.TxLoopIterations())
	batchSize := uint64(d.config.TxLoopBatchSize())
	if batchSize == 0 {
		return nil, errors.New("tx loop batch size must be positive")
	}

	limit := rate.Inf
	if tps := d.config.TxLoopTargetTps(); tps > 0 {
		limit = rate.Limit(tps)
	}
	limiter := rate.NewLimiter(limit, int(batchSize))

	groups := newErrorGroups()
	report := &TxLoopReport{}
	var mutex sync.Mutex
	var stopErr error
	start := time.Now()

	logger.Info("starting tx loop", log.Uint64("iterations", iterations), log.Uint64("batch-size", batchSize), log.Uint64("count", count))

	for iterations == 0 || report.Sent < iterations {
		batch := batchSize
		if iterations != 0 && iterations-report.Sent < batch {
			batch = iterations - report.Sent
		}

		var wg sync.WaitGroup
		for i := uint64(0); i < batch; i++ {
			if err := limiter.Wait(ctx); err != nil {
				stopErr = err
				break
			}
			report.Sent++
			wg.Add(1)
			govnr.Once(logfields.GovnrErrorer(logger), func() {
				defer wg.Done()
				err := d.bloat(ctx, count)

				mutex.Lock()
				defer mutex.Unlock()
				if err != nil {
					report.Failed++
					groups.add(err)
				} else {
					report.Succeeded++
				}
			})
		}
		wg.Wait()

		logger.Info("processed transactions", log.String("flow", "checkpoint"), log.Uint64("sent", report.Sent), log.Uint64("iterations", iterations), log.Uint64("failed", report.Failed))

		if stopErr != nil || ctx.Err() != nil {
			break
		}
	}

	report.Elapsed = time.Since(start)
	report.Errors = groups.snapshot()
	d.logErrorGroups(SCENARIO_TX_LOOP, report.Errors)
	logger.Info("tx loop finished", log.Uint64("sent", report.Sent), log.Uint64("succeeded", report.Succeeded), log.Uint64("failed", report.Failed), log.Float64("tps", report.Tps()))

	if iterations != 0 && report.Sent < iterations {
		if stopErr == nil {
			stopErr = ctx.Err()
		}
		return report, errors.Wrapf(stopErr, "tx loop stopped after %d of %d transactions", report.Sent, iterations)
	}
	return report, nil
}

type ReadLoopReport struct {
	Reads      uint64
	Failed     uint64
	LastLength uint64
	LastRate   float64
	Errors     map[string]int
	Elapsed    time.Duration
}

// ReadLoop reads the sequence length back to back and reports the read rate every checkpoint reads.
// With zero iterations it runs until ctx ends; otherwise ending ctx early is an error.
func (d *Driver) ReadLoop(ctx context.Context) (*ReadLoopReport, error) {
	logger := d.logger.WithTags(logfields.Scenario(SCENARIO_READ_LOOP))
	iterations := uint64(d.config.ReadLoopIterations())
	checkpoint := uint64(d.config.ReadLoopCheckpoint())
	if checkpoint == 0 {
		return nil, errors.New("read loop checkpoint must be positive")
	}

	groups := newErrorGroups()
	report := &ReadLoopReport{}
	start := time.Now()
	lastCheckpoint := start

	for (iterations == 0 || report.Reads < iterations) && ctx.Err() == nil {
		length, err := d.length(ctx)
		report.Reads++
		if err != nil {
			report.Failed++
			groups.add(err)
		} else {
			report.LastLength = length
		}

		if report.Reads%checkpoint == 0 {
			now := time.Now()
			if elapsed := now.Sub(lastCheckpoint); elapsed > 0 {
				report.LastRate = float64(checkpoint) / elapsed.Seconds()
			}
			lastCheckpoint = now
			logger.Info("read checkpoint", log.String("flow", "checkpoint"), log.Uint64("reads", report.Reads), log.Float64("rate", report.LastRate), log.Uint64("length", report.LastLength))
		}
	}

	report.Elapsed = time.Since(start)
	report.Errors = groups.snapshot()
	d.logErrorGroups(SCENARIO_READ_LOOP, report.Errors)
	logger.Info("read loop finished", log.Uint64("reads", report.Reads), log.Uint64("failed", report.Failed), log.Float64("rate", report.LastRate))

	if iterations != 0 && report.Reads < iterations {
		return report, errors.Wrapf(ctx.Err(), "read loop stopped after %d of %d reads", report.Reads, iterations)
	}
	return report, nil
}
