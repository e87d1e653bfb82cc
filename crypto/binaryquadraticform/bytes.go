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
package binaryquadraticform

import (
	"encoding/binary"
	"errors"
	"math/big"
)

var (
	// ErrInvalidMessage is returned if the message is invalid
	ErrInvalidMessage = errors.New("invalid message")
)

const (
	signPositive = byte(0)
	signNegative = byte(1)
)

// Bytes serializes the form as, for each of a, b, c in order,
// a 4-byte big-endian length of the magnitude, a sign byte (1 if negative,
// 0 otherwise), and the big-endian magnitude.
func (bqForm *BQuadraticForm) Bytes() []byte {
	var bs []byte
	bs = appendComponent(bs, bqForm.a)
	bs = appendComponent(bs, bqForm.b)
	bs = appendComponent(bs, bqForm.c)
	return bs
}

func appendComponent(bs []byte, value *big.Int) []byte {
	magnitude := new(big.Int).Abs(value).Bytes()
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(magnitude)))
	bs = append(bs, length[:]...)
	if value.Sign() < 0 {
		bs = append(bs, signNegative)
	} else {
		bs = append(bs, signPositive)
	}
	return append(bs, magnitude...)
}

// ParseBQuadraticForm reads one serialized form from the head of bs. The
// discriminant is not part of the encoding and must be supplied out of band.
// The parsed form must be reduced, have a positive a, and satisfy
// b^2 - 4ac = discriminant; anything else is rejected as ErrInvalidMessage.
// The second return value is the number of bytes consumed.
func ParseBQuadraticForm(bs []byte, discriminant *big.Int) (*BQuadraticForm, int, error) {
	a, offset, err := parseComponent(bs, 0)
	if err != nil {
		return nil, 0, err
	}
	b, offset, err := parseComponent(bs, offset)
	if err != nil {
		return nil, 0, err
	}
	c, offset, err := parseComponent(bs, offset)
	if err != nil {
		return nil, 0, err
	}
	if a.Sign() <= 0 {
		return nil, 0, ErrInvalidMessage
	}
	got, err := computeDiscriminant(a, b, c)
	if err != nil {
		return nil, 0, ErrInvalidMessage
	}
	if got.Cmp(discriminant) != 0 {
		return nil, 0, ErrInvalidMessage
	}
	// Only primitive forms take part in the class group.
	gcd := new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
	gcd.GCD(nil, nil, gcd, new(big.Int).Abs(c))
	if gcd.Cmp(big1) != 0 {
		return nil, 0, ErrInvalidMessage
	}
	form := &BQuadraticForm{
		a:            a,
		b:            b,
		c:            c,
		shanksBound:  computeroot4thOver4(discriminant),
		discriminant: new(big.Int).Set(discriminant),
	}
	if !form.IsReducedForm() {
		return nil, 0, ErrInvalidMessage
	}
	return form, offset, nil
}

// NewBQuadraticFormFromBytes parses a serialized form and rejects trailing bytes.
func NewBQuadraticFormFromBytes(bs []byte, discriminant *big.Int) (*BQuadraticForm, error) {
	form, consumed, err := ParseBQuadraticForm(bs, discriminant)
	if err != nil {
		return nil, err
	}
	if consumed != len(bs) {
		return nil, ErrInvalidMessage
	}
	return form, nil
}

func parseComponent(bs []byte, offset int) (*big.Int, int, error) {
	if offset+4 > len(bs) {
		return nil, 0, ErrInvalidMessage
	}
	length := int(binary.BigEndian.Uint32(bs[offset : offset+4]))
	offset += 4
	if offset+1 > len(bs) {
		return nil, 0, ErrInvalidMessage
	}
	sign := bs[offset]
	if sign != signPositive && sign != signNegative {
		return nil, 0, ErrInvalidMessage
	}
	offset++
	if length > len(bs)-offset {
		return nil, 0, ErrInvalidMessage
	}
	magnitude := bs[offset : offset+length]
	// Reject non-minimal encodings so serialization round-trips bijectively.
	if length > 0 && magnitude[0] == 0 {
		return nil, 0, ErrInvalidMessage
	}
	value := new(big.Int).SetBytes(magnitude)
	if sign == signNegative {
		if value.Sign() == 0 {
			return nil, 0, ErrInvalidMessage
		}
		value.Neg(value)
	}
	return value, offset + length, nil
}
