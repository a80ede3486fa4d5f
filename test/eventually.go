// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package test

import (
	"github.com/orbs-network/go-mock"
	"time"
)

const iterationsEventually = 100
const interval = 5 * time.Millisecond

func Eventually(f func() bool) bool {
	for i := 0; i < iterationsEventually; i++ {
		if f() {
			return true
		}
		time.Sleep(interval)
	}
	return false
}

// EventuallyVerify returns the last verification error of the first mock that never verified.
func EventuallyVerify(mocks ...mock.HasVerify) error {
	var lastErr error
	ok := Eventually(func() bool {
		for _, m := range mocks {
			if verified, err := m.Verify(); !verified {
				lastErr = err
				return false
			}
		}
		return true
	})
	if ok {
		return nil
	}
	return lastErr
}
