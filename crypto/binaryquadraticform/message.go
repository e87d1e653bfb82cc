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
	"math/big"
)

// BQForm carries the three coefficients of a form as decimal strings.
type BQForm struct {
	A string
	B string
	C string
}

func (bqForm *BQuadraticForm) ToMessage() *BQForm {
	return &BQForm{
		A: bqForm.a.String(),
		B: bqForm.b.String(),
		C: bqForm.c.String(),
	}
}

func (bf *BQForm) ToBQuadraticForm() (*BQuadraticForm, error) {
	if bf == nil {
		return nil, ErrInvalidMessage
	}
	a, ok := new(big.Int).SetString(bf.A, 10)
	if !ok {
		return nil, ErrInvalidMessage
	}
	b, ok := new(big.Int).SetString(bf.B, 10)
	if !ok {
		return nil, ErrInvalidMessage
	}
	c, ok := new(big.Int).SetString(bf.C, 10)
	if !ok {
		return nil, ErrInvalidMessage
	}
	return NewBQuadraticForm(a, b, c)
}
