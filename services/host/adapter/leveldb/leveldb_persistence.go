// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package leveldb

import (
	"github.com/orbs-network/orbs-load-tester/services/host/adapter"
	"github.com/orbs-network/orbs-spec/types/go/primitives"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"sync"
)

type Config interface {
	HostStateDirectory() string
}

// statePersistence keeps every contract in one LevelDB keyspace as "<contract>/<key>".
type statePersistence struct {
	db *leveldb.DB

	mutex sync.Mutex
	size  int
}

func NewStatePersistence(config Config) (adapter.StatePersistence, error) {
	db, err := leveldb.OpenFile(config.HostStateDirectory(), nil)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open state directory %s", config.HostStateDirectory())
	}

	size, err := countKeys(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &statePersistence{db: db, size: size}, nil
}

func countKeys(db *leveldb.DB) (int, error) {
	iter := db.NewIterator(nil, nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		count++
	}
	return count, iter.Error()
}

func dbKey(contract primitives.ContractName, key string) []byte {
	return []byte(string(contract) + "/" + key)
}

func (sp *statePersistence) Write(contractStateDiffs []*adapter.ContractStateDiff) error {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()

	batch := new(leveldb.Batch)
	sizeDelta := 0
	pending := make(map[string]bool)
	for _, contractDiff := range contractStateDiffs {
		for _, diff := range contractDiff.StateDiffs {
			k := dbKey(contractDiff.ContractName, diff.Key)

			existed, seen := pending[string(k)]
			if !seen {
				var err error
				if existed, err = sp.db.Has(k, nil); err != nil {
					return errors.Wrap(err, "could not check state key")
				}
			}

			if adapter.IsZeroValue(diff.Value) {
				batch.Delete(k)
				if existed {
					sizeDelta--
				}
				pending[string(k)] = false
			} else {
				batch.Put(k, diff.Value)
				if !existed {
					sizeDelta++
				}
				pending[string(k)] = true
			}
		}
	}

	if err := sp.db.Write(batch, nil); err != nil {
		return errors.Wrap(err, "could not write state batch")
	}
	sp.size += sizeDelta
	return nil
}

func (sp *statePersistence) Read(contract primitives.ContractName, key string) ([]byte, bool, error) {
	value, err := sp.db.Get(dbKey(contract, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "could not read key of contract %s", contract)
	}
	return value, true, nil
}

func (sp *statePersistence) Size() int {
	sp.mutex.Lock()
	defer sp.mutex.Unlock()
	return sp.size
}

func (sp *statePersistence) Close() error {
	return sp.db.Close()
}
