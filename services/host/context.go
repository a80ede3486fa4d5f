// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"github.com/orbs-network/orbs-load-tester/services/host/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"sync"
)

type executionContext struct {
	contractName   primitives.ContractName
	accessScope    protocol.ExecutionAccessScope
	transientState *transientState
	budget         *executionBudget
}

type executionContextProvider struct {
	mutex          sync.RWMutex
	lastContextId  types.Context
	activeContexts map[types.Context]*executionContext
}

func newExecutionContextProvider() *executionContextProvider {
	return &executionContextProvider{
		activeContexts: make(map[types.Context]*executionContext),
	}
}

func (p *executionContextProvider) allocateExecutionContext(contractName primitives.ContractName, accessScope protocol.ExecutionAccessScope, budget *executionBudget) (types.Context, *executionContext) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	newContext := &executionContext{
		contractName:   contractName,
		accessScope:    accessScope,
		transientState: newTransientState(),
		budget:         budget,
	}

	p.lastContextId++
	p.activeContexts[p.lastContextId] = newContext
	return p.lastContextId, newContext
}

func (p *executionContextProvider) destroyExecutionContext(contextId types.Context) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	delete(p.activeContexts, contextId)
}

func (p *executionContextProvider) loadExecutionContext(contextId types.Context) *executionContext {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return p.activeContexts[contextId]
}
