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

	bqForm "github.com/getamis/vdf/crypto/binaryquadraticform"
)

// Proof is the Wesolowski proof bundle (pi, q, r): pi = g^q where
// 2^T = l*q + r for the Fiat-Shamir challenge prime l. The transmitted q and
// r are redundant with (l, T) and serve as a sanity check during verification.
type Proof struct {
	Pi        *bqForm.BQuadraticForm
	Quotient  *big.Int
	Remainder *big.Int
}

// Bytes serializes the proof as
// pi || u32_be(len_q) || q_magnitude || u32_be(len_r) || r_magnitude.
func (p *Proof) Bytes() []byte {
	bs := p.Pi.Bytes()
	bs = appendMagnitude(bs, p.Quotient)
	bs = appendMagnitude(bs, p.Remainder)
	return bs
}

func appendMagnitude(bs []byte, value *big.Int) []byte {
	magnitude := value.Bytes()
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(magnitude)))
	bs = append(bs, length[:]...)
	return append(bs, magnitude...)
}

// ParseProof parses a serialized proof against the given discriminant. Any
// overrun, trailing garbage, non-minimal magnitude, or a pi component that is
// not a reduced form of the discriminant yields ErrInvalidMessage.
func ParseProof(bs []byte, discriminant *big.Int) (*Proof, error) {
	pi, offset, err := bqForm.ParseBQuadraticForm(bs, discriminant)
	if err != nil {
		return nil, err
	}
	quotient, offset, err := parseMagnitude(bs, offset)
	if err != nil {
		return nil, err
	}
	remainder, offset, err := parseMagnitude(bs, offset)
	if err != nil {
		return nil, err
	}
	if offset != len(bs) {
		return nil, bqForm.ErrInvalidMessage
	}
	return &Proof{
		Pi:        pi,
		Quotient:  quotient,
		Remainder: remainder,
	}, nil
}

func parseMagnitude(bs []byte, offset int) (*big.Int, int, error) {
	if offset+4 > len(bs) {
		return nil, 0, bqForm.ErrInvalidMessage
	}
	length := int(binary.BigEndian.Uint32(bs[offset : offset+4]))
	offset += 4
	if length > len(bs)-offset {
		return nil, 0, bqForm.ErrInvalidMessage
	}
	magnitude := bs[offset : offset+length]
	if length > 0 && magnitude[0] == 0 {
		return nil, 0, bqForm.ErrInvalidMessage
	}
	return new(big.Int).SetBytes(magnitude), offset + length, nil
}
