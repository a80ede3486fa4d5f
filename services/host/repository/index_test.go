// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package repository

import (
	"github.com/stretchr/testify/require"
	"reflect"
	"testing"
)

func TestContracts_AreIndexedByTheirOwnName(t *testing.T) {
	for name, info := range Contracts {
		require.EqualValues(t, name, info.Name, "contract indexed under a foreign name")
	}
}

func TestContracts_MethodsTakeContextAndReturnError(t *testing.T) {
	for name, info := range Contracts {
		require.NotNil(t, info.InitSingleton, "contract %s has no singleton factory", name)
		_, hasInit := info.Method("_init")
		require.True(t, hasInit, "contract %s has no _init", name)

		for _, m := range info.Methods {
			methodType := reflect.TypeOf(m.Implementation)
			require.Equal(t, reflect.Func, methodType.Kind(), "%s.%s is not a function", name, m.Name)
			require.True(t, methodType.NumIn() >= 2, "%s.%s must take a receiver and a context", name, m.Name)
			require.True(t, methodType.NumOut() >= 1, "%s.%s must return an error", name, m.Name)
			require.Equal(t, "error", methodType.Out(methodType.NumOut()-1).String(), "%s.%s last result must be error", name, m.Name)
		}
	}
}
