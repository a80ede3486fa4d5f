// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loaddriver

import (
	"context"
	"github.com/orbs-network/orbs-client-sdk-go/codec"
	orbsClient "github.com/orbs-network/orbs-client-sdk-go/orbs"
	"github.com/orbs-network/orbs-load-tester/services/processor/native/repository/LoadTester"
	"github.com/orbs-network/orbs-load-tester/services/sequencestore"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/orbs-network/scribe/log"
	"github.com/pkg/errors"
)

type OrbsClientConfig interface {
	OrbsEndpoint() string
	VirtualChainId() primitives.VirtualChainId
	ContractName() string
}

// OrbsClient talks to a node's public api. Every call signs with the same generated account.
type OrbsClient struct {
	client       *orbsClient.OrbsClient
	account      *orbsClient.OrbsAccount
	contractName string
	logger       log.Logger
}

func NewOrbsClient(config OrbsClientConfig, parentLogger log.Logger) (*OrbsClient, error) {
	account, err := orbsClient.CreateAccount()
	if err != nil {
		return nil, errors.Wrap(err, "failed creating orbs account")
	}

	logger := parentLogger.WithTags(log.String("endpoint", config.OrbsEndpoint()), log.String("contract", config.ContractName()))
	logger.Info("created orbs client", log.String("account", account.Address))

	return &OrbsClient{
		client:       orbsClient.NewClient(config.OrbsEndpoint(), uint32(config.VirtualChainId()), codec.NETWORK_TYPE_TEST_NET),
		account:      account,
		contractName: config.ContractName(),
		logger:       logger,
	}, nil
}

func (c *OrbsClient) Bloat(ctx context.Context, count uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, txId, err := c.client.CreateTransaction(c.account.PublicKey, c.account.PrivateKey, c.contractName, loadtester_systemcontract.METHOD_BLOAT, count)
	if err != nil {
		return errors.Wrapf(err, "failed creating %s transaction", loadtester_systemcontract.METHOD_BLOAT)
	}

	res, err := c.client.SendTransaction(tx)
	if err != nil {
		return errors.Wrapf(err, "failed sending transaction %s", txId)
	}

	return checkTransactionResponse(txId, res)
}

func (c *OrbsClient) Snapshot(ctx context.Context) ([]uint64, error) {
	res, err := c.query(ctx, loadtester_systemcontract.METHOD_GET)
	if err != nil {
		return nil, err
	}

	packed, ok := res.OutputArguments[0].([]byte)
	if !ok {
		return nil, errors.Errorf("%s returned %T instead of bytes", loadtester_systemcontract.METHOD_GET, res.OutputArguments[0])
	}
	return sequencestore.DecodeValues(packed)
}

func (c *OrbsClient) Length(ctx context.Context) (uint64, error) {
	res, err := c.query(ctx, loadtester_systemcontract.METHOD_LENGTH)
	if err != nil {
		return 0, err
	}

	length, ok := res.OutputArguments[0].(uint64)
	if !ok {
		return 0, errors.Errorf("%s returned %T instead of uint64", loadtester_systemcontract.METHOD_LENGTH, res.OutputArguments[0])
	}
	return length, nil
}

func (c *OrbsClient) query(ctx context.Context, method string) (*codec.RunQueryResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := c.client.CreateQuery(c.account.PublicKey, c.contractName, method)
	if err != nil {
		return nil, errors.Wrapf(err, "failed creating %s query", method)
	}

	res, err := c.client.SendQuery(q)
	if err != nil {
		return nil, errors.Wrapf(err, "failed sending %s query", method)
	}

	return res, checkQueryResponse(method, res)
}

func checkTransactionResponse(txId string, res *codec.SendTransactionResponse) error {
	if res.TransactionStatus != codec.TRANSACTION_STATUS_COMMITTED {
		return errors.Errorf("transaction %s not committed: %s", txId, res.TransactionStatus)
	}
	if res.ExecutionResult != codec.EXECUTION_RESULT_SUCCESS {
		return errors.Errorf("transaction %s failed: %s %v", txId, res.ExecutionResult, res.OutputArguments)
	}
	return nil
}

func checkQueryResponse(method string, res *codec.RunQueryResponse) error {
	if res.RequestStatus != codec.REQUEST_STATUS_COMPLETED {
		return errors.Errorf("%s query not completed: %s", method, res.RequestStatus)
	}
	if res.ExecutionResult != codec.EXECUTION_RESULT_SUCCESS {
		return errors.Errorf("%s query failed: %s %v", method, res.ExecutionResult, res.OutputArguments)
	}
	if len(res.OutputArguments) != 1 {
		return errors.Errorf("%s query returned %d output arguments instead of 1", method, len(res.OutputArguments))
	}
	return nil
}
