// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loaddriver

import (
	"context"
)

// Client reaches a deployed LoadTester contract.
type Client interface {
	Bloat(ctx context.Context, count uint64) error
	Snapshot(ctx context.Context) ([]uint64, error)
	Length(ctx context.Context) (uint64, error)
}
