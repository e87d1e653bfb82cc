// Copyright © 2022 AMIS Technologies
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// HashSize is based on blake2b256
const HashSize = 32

// HashList hashes the concatenation of the given byte slices.
func HashList(data ...[]byte) []byte {
	var input []byte
	for _, d := range data {
		input = append(input, d...)
	}
	bs := blake2b.Sum256(input)
	return bs[:]
}

// HashListToInt hashes the given byte slices to a non-negative integer.
func HashListToInt(data ...[]byte) *big.Int {
	return new(big.Int).SetBytes(HashList(data...))
}

// ExpandHash stretches a digest to the given byte length by counter-driven
// rehashing: hash(digest || i) for i = 0, 1, ..., truncated to byteLength.
func ExpandHash(digest []byte, byteLength int) []byte {
	var expanded []byte
	var counter [4]byte
	for i := uint32(0); len(expanded) < byteLength; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		expanded = append(expanded, HashList(digest, counter[:])...)
	}
	return expanded[:byteLength]
}
