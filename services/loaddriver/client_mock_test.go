// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loaddriver

import (
	"context"
	"github.com/orbs-network/go-mock"
	"github.com/pkg/errors"
	"sync"
)

type clientMock struct {
	mock.Mock
}

func (c *clientMock) Bloat(ctx context.Context, count uint64) error {
	ret := c.Called(ctx, count)
	return ret.Error(0)
}

func (c *clientMock) Snapshot(ctx context.Context) ([]uint64, error) {
	ret := c.Called(ctx)
	if values := ret.Get(0); values != nil {
		return values.([]uint64), ret.Error(1)
	}
	return nil, ret.Error(1)
}

func (c *clientMock) Length(ctx context.Context) (uint64, error) {
	ret := c.Called(ctx)
	return ret.Get(0).(uint64), ret.Error(1)
}

// flakyClient fails every failEvery-th bloat and counts calls.
type flakyClient struct {
	mutex     sync.Mutex
	failEvery int
	calls     int
	length    uint64
}

func (c *flakyClient) Bloat(ctx context.Context, count uint64) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.calls++
	if c.failEvery != 0 && c.calls%c.failEvery == 0 {
		return errors.New("transaction rejected: congestion")
	}
	c.length += count
	return nil
}

func (c *flakyClient) Snapshot(ctx context.Context) ([]uint64, error) {
	return nil, errors.New("not supported")
}

func (c *flakyClient) Length(ctx context.Context) (uint64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.calls++
	if c.failEvery != 0 && c.calls%c.failEvery == 0 {
		return 0, errors.New("request timed out")
	}
	return c.length, nil
}

func (c *flakyClient) callCount() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.calls
}
