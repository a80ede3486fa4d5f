// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package repository

import (
	"github.com/orbs-network/orbs-load-tester/services/host/repository/LoadTester"
	"github.com/orbs-network/orbs-load-tester/services/host/types"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
)

var Contracts = map[primitives.ContractName]types.ContractInfo{
	loadtester.CONTRACT.Name: loadtester.CONTRACT,
	// add new native contracts here
}
