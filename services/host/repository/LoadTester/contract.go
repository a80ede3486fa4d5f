// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loadtester

import (
	"github.com/orbs-network/orbs-load-tester/services/host/types"
	"github.com/orbs-network/orbs-load-tester/services/sequencestore"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

const CONTRACT_NAME = "LoadTester"

var CONTRACT = types.ContractInfo{
	Name:       CONTRACT_NAME,
	Methods: []types.MethodInfo{
		METHOD_INIT,
		METHOD_BLOAT,
		METHOD_GET,
		METHOD_LENGTH,
	},
	InitSingleton: newContract,
}

func newContract(base *types.BaseContract) types.Contract {
	return &contract{base}
}

type contract struct{ *types.BaseContract }

func (c *contract) store(ctx types.Context) *sequencestore.Store {
	return sequencestore.Attach(&callState{ctx: ctx, state: c.State})
}

///////////////////////////////////////////////////////////////////////////

var METHOD_INIT = types.MethodInfo{
	Name:           "_init",
	External:       false,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract)._init,
}

func (c *contract) _init(ctx types.Context) error {
	_, err := sequencestore.Initialize(&callState{ctx: ctx, state: c.State})
	return err
}

///////////////////////////////////////////////////////////////////////////

var METHOD_BLOAT = types.MethodInfo{
	Name:           "bloat",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_WRITE,
	Implementation: (*contract).bloat,
}

func (c *contract) bloat(ctx types.Context, count uint64) error {
	return c.store(ctx).Bloat(count)
}

///////////////////////////////////////////////////////////////////////////

var METHOD_GET = types.MethodInfo{
	Name:           "get",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).get,
}

func (c *contract) get(ctx types.Context) ([]uint64, error) {
	return c.store(ctx).Snapshot()
}

///////////////////////////////////////////////////////////////////////////

var METHOD_LENGTH = types.MethodInfo{
	Name:           "length",
	External:       true,
	Access:         protocol.ACCESS_SCOPE_READ_ONLY,
	Implementation: (*contract).length,
}

func (c *contract) length(ctx types.Context) (uint64, error) {
	return c.store(ctx).Len()
}

///////////////////////////////////////////////////////////////////////////

// callState binds the host state sdk to the context of the running call
type callState struct {
	ctx   types.Context
	state types.StateSdk
}

func (s *callState) ReadUint64(key []byte) (uint64, error) {
	return s.state.ReadUint64(s.ctx, key)
}

func (s *callState) WriteUint64(key []byte, value uint64) error {
	return s.state.WriteUint64(s.ctx, key, value)
}
