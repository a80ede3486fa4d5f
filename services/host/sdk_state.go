// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"github.com/orbs-network/membuffers/go"
	"github.com/orbs-network/orbs-load-tester/services/host/types"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/pkg/errors"
)

// stateSdk serves contract state calls from the transient state of the calling context,
// falling through to persistence for keys the call has not touched yet
type stateSdk struct {
	host *Service
}

func (s *stateSdk) context(ctx types.Context) (*executionContext, error) {
	executionContext := s.host.contexts.loadExecutionContext(ctx)
	if executionContext == nil {
		return nil, errors.Errorf("invalid execution context %d", ctx)
	}
	return executionContext, nil
}

func (s *stateSdk) ReadBytes(ctx types.Context, key []byte) ([]byte, error) {
	executionContext, err := s.context(ctx)
	if err != nil {
		return nil, err
	}
	if err := executionContext.budget.chargeRead(); err != nil {
		return nil, err
	}

	if value, found := executionContext.transientState.getValue(executionContext.contractName, key); found {
		return copyBytes(value), nil
	}

	value, found, err := s.host.persistence.Read(executionContext.contractName, string(key))
	if err != nil {
		return nil, errors.Wrapf(err, "state read failed for contract %s", executionContext.contractName)
	}
	if !found {
		value = []byte{}
	}
	executionContext.transientState.setValue(executionContext.contractName, key, value, false)
	return copyBytes(value), nil
}

// contracts own the slices they read; the cached and persisted values stay untouched
func copyBytes(value []byte) []byte {
	res := make([]byte, len(value))
	copy(res, value)
	return res
}

func (s *stateSdk) ReadUint64(ctx types.Context, key []byte) (uint64, error) {
	bytes, err := s.ReadBytes(ctx, key)
	if err != nil || len(bytes) == 0 {
		return 0, err
	}
	if len(bytes) != 8 {
		return 0, errors.Errorf("state value of %d bytes is not a uint64", len(bytes))
	}
	return membuffers.GetUint64(bytes), nil
}

func (s *stateSdk) ReadUint64ByKey(ctx types.Context, key string) (uint64, error) {
	return s.ReadUint64(ctx, []byte(key))
}

func (s *stateSdk) WriteBytes(ctx types.Context, key []byte, value []byte) error {
	executionContext, err := s.context(ctx)
	if err != nil {
		return err
	}
	if executionContext.accessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		return errors.Errorf("write attempted without write access to contract %s", executionContext.contractName)
	}
	if err := executionContext.budget.chargeWrite(); err != nil {
		return err
	}

	executionContext.transientState.setValue(executionContext.contractName, key, value, true)
	return nil
}

func (s *stateSdk) WriteUint64(ctx types.Context, key []byte, value uint64) error {
	if value == 0 {
		return s.Clear(ctx, key)
	}
	bytes := make([]byte, 8)
	membuffers.WriteUint64(bytes, value)
	return s.WriteBytes(ctx, key, bytes)
}

func (s *stateSdk) WriteUint64ByKey(ctx types.Context, key string, value uint64) error {
	return s.WriteUint64(ctx, []byte(key), value)
}

func (s *stateSdk) Clear(ctx types.Context, key []byte) error {
	return s.WriteBytes(ctx, key, []byte{})
}
