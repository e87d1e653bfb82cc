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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("message", func() {
	It("round trip", func() {
		form, err := NewBQuadraticForm(big.NewInt(19), big.NewInt(-12), big.NewInt(262))
		Expect(err).Should(BeNil())
		got, err := form.ToMessage().ToBQuadraticForm()
		Expect(err).Should(BeNil())
		Expect(got.Equal(form)).Should(BeTrue())
	})

	It("nil message", func() {
		var msg *BQForm
		got, err := msg.ToBQuadraticForm()
		Expect(got).Should(BeNil())
		Expect(err).Should(Equal(ErrInvalidMessage))
	})

	It("invalid decimal strings", func() {
		msg := &BQForm{
			A: "2",
			B: "not-a-number",
			C: "3",
		}
		got, err := msg.ToBQuadraticForm()
		Expect(got).Should(BeNil())
		Expect(err).Should(Equal(ErrInvalidMessage))
	})

	It("rejects forms with a positive discriminant", func() {
		msg := &BQForm{
			A: "1",
			B: "10",
			C: "10",
		}
		got, err := msg.ToBQuadraticForm()
		Expect(got).Should(BeNil())
		Expect(err).Should(Equal(ErrPositiveDiscriminant))
	})
})
