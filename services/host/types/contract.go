// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

import (
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
)

// Context identifies the execution context of a single call inside the host.
type Context uint64

// Contract receiver for repository contracts (instantiated once per host)
type Contract interface{}

type BaseContract struct {
	State StateSdk
}

func NewBaseContract(state StateSdk) *BaseContract {
	return &BaseContract{
		State: state,
	}
}

type ContractInfo struct {
	Name          primitives.ContractName
	Methods       []MethodInfo
	InitSingleton func(base *BaseContract) Contract
}

// MethodInfo describes one callable method. Implementation is a method expression
// on the contract receiver whose first argument is a Context and whose last result is an error.
type MethodInfo struct {
	Name           primitives.MethodName
	External       bool
	Access         protocol.ExecutionAccessScope
	Implementation interface{}
}

func (c *ContractInfo) Method(name primitives.MethodName) (MethodInfo, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return MethodInfo{}, false
}
