// Copyright 2020 Wearless Tech Inc All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package services

import (
	"encoding/json"

	badger "github.com/dgraph-io/badger/v2"
	g "github.com/ptzrig/ptz-console/globals"
)

// Storage - main local datastore functions (Get, Put, Del, List)
type Storage struct {
	db *badger.DB
}

func NewStorage(db *badger.DB) *Storage {
	return &Storage{
		db: db,
	}
}

func (s *Storage) Put(prefix, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Set([]byte(prefix+key), value)
		return err
	})
	return err
}

// PutJSON marshals value and stores it under prefix+key.
func (s *Storage) PutJSON(prefix, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		g.Log.Error("failed to marshal value for datastore", prefix, key, err)
		return err
	}
	return s.Put(prefix, key, b)
}

func (s *Storage) Get(prefix, key string) ([]byte, error) {
	var valCopy []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefix + key))
		if err != nil {
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	return valCopy, err
}

// GetJSON reads prefix+key and unmarshals it into out.
func (s *Storage) GetJSON(prefix, key string, out interface{}) error {
	b, err := s.Get(prefix, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func (s *Storage) Del(prefix, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(prefix + key))
		return err
	})
	return err
}

// List returns all values under the prefix, keyed without the prefix.
func (s *Storage) List(prefix string) (map[string][]byte, error) {

	results := make(map[string][]byte)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 128
		it := txn.NewIterator(opts)
		defer it.Close()
		pfix := []byte(prefix)
		for it.Seek(pfix); it.ValidForPrefix(pfix); it.Next() {
			item := it.Item()
			k := string(item.Key())
			err := item.Value(func(v []byte) error {
				cp := make([]byte, len(v))
				copy(cp, v)
				results[k[len(prefix):]] = cp
				return nil
			})
			if err != nil {
				g.Log.Error("failed to iterate in db", err)
				return err
			}
		}
		return nil
	})
	return results, err
}
