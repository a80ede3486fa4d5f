// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"github.com/orbs-network/orbs-load-tester/services/sequencestore"
	"github.com/pkg/errors"
)

// executionBudget meters state access of a single call. A limit of zero means unlimited.
type executionBudget struct {
	limit     uint64
	readCost  uint64
	writeCost uint64
	used      uint64
	exhausted bool
}

func newExecutionBudget(config Config) *executionBudget {
	return &executionBudget{
		limit:     uint64(config.HostExecutionBudget()),
		readCost:  uint64(config.HostStateReadCost()),
		writeCost: uint64(config.HostStateWriteCost()),
	}
}

func (b *executionBudget) chargeRead() error {
	return b.charge(b.readCost, "state read")
}

func (b *executionBudget) chargeWrite() error {
	return b.charge(b.writeCost, "state write")
}

func (b *executionBudget) charge(cost uint64, operation string) error {
	if b.exhausted {
		return errors.Wrapf(sequencestore.ErrResourceExhausted, "%s after budget of %d was used up", operation, b.limit)
	}
	if b.limit != 0 && b.used+cost > b.limit {
		b.exhausted = true
		return errors.Wrapf(sequencestore.ErrResourceExhausted, "%s costing %d exceeds budget (used %d of %d)", operation, cost, b.used, b.limit)
	}
	b.used += cost
	return nil
}
