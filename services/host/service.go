// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package host

import (
	"context"
	"github.com/orbs-network/orbs-load-tester/instrumentation/logfields"
	"github.com/orbs-network/orbs-load-tester/instrumentation/metric"
	"github.com/orbs-network/orbs-load-tester/services/host/adapter"
	"github.com/orbs-network/orbs-load-tester/services/host/types"
	"github.com/orbs-network/orbs-load-tester/services/sequencestore"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/orbs-spec/types/go/protocol"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
	"sync"
	"time"
)

const DEPLOYMENTS_CONTRACT_NAME = primitives.ContractName("_Deployments")
const METHOD_INIT = primitives.MethodName("_init")

type Config interface {
	HostExecutionBudget() uint32
	HostStateReadCost() uint32
	HostStateWriteCost() uint32
}

type Receipt struct {
	ExecutionResult protocol.ExecutionResult
	OutputArguments []interface{}
	BlockHeight     primitives.BlockHeight
	ExecutionCost   uint64
}

type metrics struct {
	committed     *metric.Gauge
	rolledBack    *metric.Gauge
	queries       *metric.Gauge
	stateKeys     *metric.Gauge
	executionTime *metric.Histogram
}

func newMetrics(factory metric.Factory) *metrics {
	return &metrics{
		committed:     factory.NewGauge("Host.Transactions.Committed"),
		rolledBack:    factory.NewGauge("Host.Transactions.RolledBack"),
		queries:       factory.NewGauge("Host.Queries.Count"),
		stateKeys:     factory.NewGauge("Host.State.Keys"),
		executionTime: factory.NewLatency("Host.ExecutionTime.Millis", 30*time.Second),
	}
}

// Service is an in-process contract runtime. It serializes all calls, keeps the writes of a
// call in a transient state and commits them to persistence only when the call succeeds.
type Service struct {
	logger      log.Logger
	config      Config
	persistence adapter.StatePersistence
	metrics     *metrics
	contexts    *executionContextProvider

	mutex       sync.Mutex
	contracts   map[primitives.ContractName]types.ContractInfo
	instances   map[primitives.ContractName]types.Contract
	blockHeight primitives.BlockHeight
}

func NewHost(config Config, persistence adapter.StatePersistence, contracts map[primitives.ContractName]types.ContractInfo, parentLogger log.Logger, metricFactory metric.Factory) *Service {
	s := &Service{
		logger:      parentLogger.WithTags(log.String("service", "host")),
		config:      config,
		persistence: persistence,
		metrics:     newMetrics(metricFactory),
		contexts:    newExecutionContextProvider(),
		contracts:   contracts,
		instances:   make(map[primitives.ContractName]types.Contract),
	}

	base := types.NewBaseContract(&stateSdk{host: s})
	for name, info := range contracts {
		s.instances[name] = info.InitSingleton(base)
	}
	s.metrics.stateKeys.Update(int64(persistence.Size()))

	return s
}

// Deploy creates the instance of a repository contract by running its _init method.
func (s *Service) Deploy(ctx context.Context, contractName primitives.ContractName) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	logger := s.logger.WithTags(logfields.ContractName(contractName))

	if _, found := s.contracts[contractName]; !found {
		return errors.Wrapf(sequencestore.ErrInitializationFailure, "contract %s not found in repository", contractName)
	}

	deployed, err := s.isDeployed(contractName)
	if err != nil {
		return errors.Wrapf(sequencestore.ErrInitializationFailure, "could not check deployment of %s: %s", contractName, err)
	}
	if deployed {
		return errors.Wrapf(sequencestore.ErrInitializationFailure, "contract %s is already deployed", contractName)
	}

	receipt, callState, err := s.runMethod(ctx, contractName, METHOD_INIT, protocol.ACCESS_SCOPE_READ_WRITE, nil, true)
	if err != nil {
		logger.Info("contract initialization failed", log.Error(err), log.Stringable("result", receipt.ExecutionResult))
		return errors.Wrapf(sequencestore.ErrInitializationFailure, "running _init of %s: %s", contractName, err)
	}

	blockState := newTransientState()
	callState.mergeIntoTransientState(blockState)
	blockState.setValue(DEPLOYMENTS_CONTRACT_NAME, []byte(contractName), []byte{0x01}, true)
	if err := s.commit(blockState); err != nil {
		return errors.Wrapf(sequencestore.ErrInitializationFailure, "persisting %s: %s", contractName, err)
	}

	logger.Info("contract deployed", logfields.BlockHeight(s.blockHeight))
	return nil
}

// SendTransaction runs a method that may write state. Writes are committed only on success.
func (s *Service) SendTransaction(ctx context.Context, contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) (*Receipt, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	receipt, callState, err := s.runMethod(ctx, contractName, methodName, protocol.ACCESS_SCOPE_READ_WRITE, args, false)
	if err != nil {
		s.metrics.rolledBack.Inc()
		s.logger.Info("transaction execution failed", log.Error(err), log.Stringable("result", receipt.ExecutionResult), logfields.ContractName(contractName), logfields.MethodName(methodName))
		receipt.BlockHeight = s.blockHeight
		return receipt, err
	}

	blockState := newTransientState()
	callState.mergeIntoTransientState(blockState)
	if err := s.commit(blockState); err != nil {
		s.metrics.rolledBack.Inc()
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_UNEXPECTED
		receipt.OutputArguments = nil
		receipt.BlockHeight = s.blockHeight
		return receipt, err
	}

	s.metrics.committed.Inc()
	receipt.BlockHeight = s.blockHeight
	return receipt, nil
}

// RunQuery runs a method without write access. Nothing is committed.
func (s *Service) RunQuery(ctx context.Context, contractName primitives.ContractName, methodName primitives.MethodName, args ...interface{}) (*Receipt, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.metrics.queries.Inc()
	receipt, _, err := s.runMethod(ctx, contractName, methodName, protocol.ACCESS_SCOPE_READ_ONLY, args, false)
	receipt.BlockHeight = s.blockHeight
	if err != nil {
		s.logger.Info("query execution failed", log.Error(err), log.Stringable("result", receipt.ExecutionResult), logfields.ContractName(contractName), logfields.MethodName(methodName))
	}
	return receipt, err
}

func (s *Service) BlockHeight() primitives.BlockHeight {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.blockHeight
}

// IsDeployed reports whether contractName was deployed, possibly by an earlier run over the same persistence.
func (s *Service) IsDeployed(contractName primitives.ContractName) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.isDeployed(contractName)
}

func (s *Service) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.persistence.Close()
}

func (s *Service) isDeployed(contractName primitives.ContractName) (bool, error) {
	_, found, err := s.persistence.Read(DEPLOYMENTS_CONTRACT_NAME, string(contractName))
	return found, err
}

func (s *Service) commit(blockState *transientState) error {
	if err := s.persistence.Write(blockState.toStateDiffs()); err != nil {
		s.logger.Error("failed to commit state", log.Error(err), logfields.BlockHeight(s.blockHeight+1))
		return errors.Wrap(err, "commit failed")
	}
	s.blockHeight++
	s.metrics.stateKeys.Update(int64(s.persistence.Size()))
	return nil
}

func (s *Service) runMethod(
	ctx context.Context,
	contractName primitives.ContractName,
	methodName primitives.MethodName,
	accessScope protocol.ExecutionAccessScope,
	args []interface{},
	allowInternal bool,
) (*Receipt, *transientState, error) {

	receipt := &Receipt{ExecutionResult: protocol.EXECUTION_RESULT_RESERVED}
	if err := ctx.Err(); err != nil {
		return receipt, nil, errors.Wrap(err, "call aborted before execution")
	}

	info, found := s.contracts[contractName]
	if !found {
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED
		return receipt, nil, errors.Errorf("contract '%s' not found", contractName)
	}
	if !allowInternal {
		deployed, err := s.isDeployed(contractName)
		if err != nil {
			receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_UNEXPECTED
			return receipt, nil, err
		}
		if !deployed {
			receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_CONTRACT_NOT_DEPLOYED
			return receipt, nil, errors.Errorf("contract '%s' is not deployed", contractName)
		}
	}

	method, found := info.Method(methodName)
	if !found {
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_INPUT
		return receipt, nil, errors.Errorf("method '%s' not found on contract '%s'", methodName, contractName)
	}
	if !method.External && !allowInternal {
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_INPUT
		return receipt, nil, errors.Errorf("method '%s' on contract '%s' is internal", methodName, contractName)
	}
	if method.Access == protocol.ACCESS_SCOPE_READ_WRITE && accessScope != protocol.ACCESS_SCOPE_READ_WRITE {
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_INPUT
		return receipt, nil, errors.Errorf("method '%s' on contract '%s' requires write access", methodName, contractName)
	}

	budget := newExecutionBudget(s.config)
	executionContextId, executionContext := s.contexts.allocateExecutionContext(contractName, accessScope, budget)
	defer s.contexts.destroyExecutionContext(executionContextId)

	start := time.Now()
	outputArgs, contractErr, err := processMethodCall(executionContextId, s.instances[contractName], method, args)
	s.metrics.executionTime.RecordSince(start)
	receipt.ExecutionCost = budget.used

	switch {
	case err != nil && isInvalidInput(err):
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_INPUT
		return receipt, nil, err
	case err != nil:
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_UNEXPECTED
		return receipt, nil, err
	case budget.exhausted:
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT
		if contractErr != nil && errors.Cause(contractErr) == sequencestore.ErrResourceExhausted {
			return receipt, nil, contractErr
		}
		return receipt, nil, errors.Wrapf(sequencestore.ErrResourceExhausted, "%s.%s used %d of %d", contractName, methodName, budget.used, budget.limit)
	case contractErr != nil:
		receipt.ExecutionResult = protocol.EXECUTION_RESULT_ERROR_SMART_CONTRACT
		return receipt, nil, contractErr
	}

	receipt.ExecutionResult = protocol.EXECUTION_RESULT_SUCCESS
	receipt.OutputArguments = outputArgs
	return receipt, executionContext.transientState, nil
}
