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

package vdf

import (
	"encoding/binary"
	"math/big"

	"github.com/getamis/vdf/crypto/utils"
)

const (
	// DefaultDiscriminantBits is the default bit length of the derived discriminant.
	DefaultDiscriminantBits = 1024

	// maxDiscriminantRetries caps the counter search before the deterministic fallback.
	maxDiscriminantRetries = 10000
)

var (
	discriminantTag = []byte("discriminant_generation")

	big7 = big.NewInt(7)
	big8 = big.NewInt(8)
)

// DeriveDiscriminant deterministically maps a seed to a negative discriminant
// of roughly the target bit length. The result is 1 mod 8, so both the
// principal form and the (2, 1, c) generator exist, and its bit length lies in
// [bits-8, bits+8]. If no candidate in the counter search fits the window, a
// fixed fallback of the correct shape is returned.
func DeriveDiscriminant(seed []byte, bits int) *big.Int {
	byteLength := (bits + 7) / 8
	var counter [8]byte
	for i := uint64(0); i < maxDiscriminantRetries; i++ {
		binary.BigEndian.PutUint64(counter[:], i)
		digest := utils.HashList(seed, discriminantTag, counter[:])
		bs := digest
		if bits > 8*utils.HashSize {
			bs = utils.ExpandHash(digest, byteLength)
		}
		discriminant := new(big.Int).SetBytes(bs)
		discriminant.Neg(discriminant)
		adjustCongruence(discriminant)
		bitLength := discriminant.BitLen()
		if bitLength >= bits-8 && bitLength <= bits+8 {
			return discriminant
		}
	}
	fallback := new(big.Int).Lsh(big1, uint(bits-1))
	fallback.Neg(fallback)
	fallback.Sub(fallback, big7)
	return fallback
}

// adjustCongruence subtracts the unique value in [0, 8) that makes the
// negative discriminant 1 mod 8.
func adjustCongruence(discriminant *big.Int) {
	absolute := new(big.Int).Abs(discriminant)
	remainder := new(big.Int).Mod(absolute, big8).Uint64()
	delta := (7 - remainder) % 8
	if delta != 0 {
		discriminant.Sub(discriminant, new(big.Int).SetUint64(delta))
	}
}
