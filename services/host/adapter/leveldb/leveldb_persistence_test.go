// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package leveldb

import (
	"github.com/orbs-network/orbs-load-tester/services/host/adapter"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"os"
	"testing"
)

type dirConfig string

func (d dirConfig) HostStateDirectory() string {
	return string(d)
}

func withStateDir(t *testing.T, f func(cfg dirConfig)) {
	dir, err := ioutil.TempDir("", "loadtester-state")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	f(dirConfig(dir))
}

func write(t *testing.T, p adapter.StatePersistence, kv ...string) {
	var diffs []*adapter.StateDiff
	for i := 0; i < len(kv); i += 2 {
		diffs = append(diffs, &adapter.StateDiff{Key: kv[i], Value: []byte(kv[i+1])})
	}
	require.NoError(t, p.Write([]*adapter.ContractStateDiff{{ContractName: "LoadTester", StateDiffs: diffs}}))
}

func TestLevelDbStatePersistence_WriteReadAndDelete(t *testing.T) {
	withStateDir(t, func(cfg dirConfig) {
		p, err := NewStatePersistence(cfg)
		require.NoError(t, err)
		defer p.Close()

		write(t, p, "k1", "v1", "k2", "v2")
		write(t, p, "k1", "")

		_, found, err := p.Read("LoadTester", "k1")
		require.NoError(t, err)
		require.False(t, found, "k1 should have been deleted")

		v, found, err := p.Read("LoadTester", "k2")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, []byte("v2"), v)
		require.Equal(t, 1, p.Size())
	})
}

func TestLevelDbStatePersistence_KeysAreScopedByContract(t *testing.T) {
	withStateDir(t, func(cfg dirConfig) {
		p, err := NewStatePersistence(cfg)
		require.NoError(t, err)
		defer p.Close()

		write(t, p, "k1", "v1")

		_, found, err := p.Read("OtherContract", "k1")
		require.NoError(t, err)
		require.False(t, found)
	})
}

func TestLevelDbStatePersistence_SurvivesReopen(t *testing.T) {
	withStateDir(t, func(cfg dirConfig) {
		p, err := NewStatePersistence(cfg)
		require.NoError(t, err)
		write(t, p, "k1", "v1", "k2", "v2", "k2", "v3")
		require.NoError(t, p.Close())

		reopened, err := NewStatePersistence(cfg)
		require.NoError(t, err)
		defer reopened.Close()

		v, found, err := reopened.Read("LoadTester", "k2")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, []byte("v3"), v)
		require.Equal(t, 2, reopened.Size(), "size should be recounted on open")
	})
}
