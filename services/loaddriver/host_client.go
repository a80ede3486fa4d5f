// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loaddriver

import (
	"context"
	"github.com/orbs-network/orbs-load-tester/services/host"
	"github.com/orbs-network/orbs-load-tester/services/host/repository/LoadTester"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
)

// HostClient drives a contract deployed in an in-process host.
type HostClient struct {
	host         *host.Service
	contractName primitives.ContractName
}

func NewHostClient(h *host.Service, contractName primitives.ContractName) *HostClient {
	return &HostClient{
		host:         h,
		contractName: contractName,
	}
}

func (c *HostClient) Bloat(ctx context.Context, count uint64) error {
	_, err := c.host.SendTransaction(ctx, c.contractName, loadtester.METHOD_BLOAT.Name, count)
	return err
}

func (c *HostClient) Snapshot(ctx context.Context) ([]uint64, error) {
	out, err := c.query(ctx, loadtester.METHOD_GET.Name)
	if err != nil {
		return nil, err
	}

	values, ok := out.([]uint64)
	if !ok {
		return nil, errors.Errorf("%s returned %T instead of []uint64", loadtester.METHOD_GET.Name, out)
	}
	return values, nil
}

func (c *HostClient) Length(ctx context.Context) (uint64, error) {
	out, err := c.query(ctx, loadtester.METHOD_LENGTH.Name)
	if err != nil {
		return 0, err
	}

	length, ok := out.(uint64)
	if !ok {
		return 0, errors.Errorf("%s returned %T instead of uint64", loadtester.METHOD_LENGTH.Name, out)
	}
	return length, nil
}

func (c *HostClient) query(ctx context.Context, method primitives.MethodName) (interface{}, error) {
	receipt, err := c.host.RunQuery(ctx, c.contractName, method)
	if err != nil {
		return nil, err
	}
	if len(receipt.OutputArguments) != 1 {
		return nil, errors.Errorf("%s returned %d output arguments instead of 1", method, len(receipt.OutputArguments))
	}
	return receipt.OutputArguments[0], nil
}
