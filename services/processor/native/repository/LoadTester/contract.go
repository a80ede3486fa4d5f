// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package loadtester_systemcontract

import (
	"github.com/orbs-network/orbs-contract-sdk/go/sdk/v1"
	"github.com/orbs-network/orbs-contract-sdk/go/sdk/v1/state"
	"github.com/orbs-network/orbs-load-tester/services/sequencestore"
)

// helpers for avoiding reliance on strings throughout the system
const CONTRACT_NAME = "LoadTester"
const METHOD_BLOAT = "bloat"
const METHOD_GET = "get"
const METHOD_LENGTH = "length"

var PUBLIC = sdk.Export(bloat, get, length)
var SYSTEM = sdk.Export(_init)

func _init() {
	if _, err := sequencestore.Initialize(sdkState{}); err != nil {
		panic(err.Error())
	}
}

func bloat(count uint64) {
	if err := _store().Bloat(count); err != nil {
		panic(err.Error())
	}
}

func get() []byte {
	values, err := _store().Snapshot()
	if err != nil {
		panic(err.Error())
	}
	return sequencestore.EncodeValues(values)
}

func length() uint64 {
	l, err := _store().Len()
	if err != nil {
		panic(err.Error())
	}
	return l
}

func _store() *sequencestore.Store {
	return sequencestore.Attach(sdkState{})
}

// sdkState hands the contract state of the running call to the sequence store.
// The SDK aborts the call itself on state failures, so no error surfaces here.
type sdkState struct{}

func (sdkState) ReadUint64(key []byte) (uint64, error) {
	return state.ReadUint64(key), nil
}

func (sdkState) WriteUint64(key []byte, value uint64) error {
	state.WriteUint64(key, value)
	return nil
}
