// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package types

type StateSdk interface {
	// read
	ReadBytes(ctx Context, key []byte) ([]byte, error)
	ReadUint64(ctx Context, key []byte) (uint64, error)
	ReadUint64ByKey(ctx Context, key string) (uint64, error)

	// write
	WriteBytes(ctx Context, key []byte, value []byte) error
	WriteUint64(ctx Context, key []byte, value uint64) error
	WriteUint64ByKey(ctx Context, key string, value uint64) error

	// clear
	Clear(ctx Context, key []byte) error
}
