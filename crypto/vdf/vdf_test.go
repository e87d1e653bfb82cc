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
	"bytes"
	"math/big"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	bqForm "github.com/getamis/vdf/crypto/binaryquadraticform"
)

// testBits keeps the class-group arithmetic fast in tests; the default 1024-bit
// derivation is covered separately.
const testBits = 256

var _ = Describe("vdf", func() {
	Context("New()", func() {
		It("derives the discriminant and generator", func() {
			v, err := New([]byte("test"))
			Expect(err).Should(BeNil())
			Expect(v.Discriminant().Sign() < 0).Should(BeTrue())
			Expect(v.Discriminant().BitLen() >= DefaultDiscriminantBits-8).Should(BeTrue())
			Expect(v.Discriminant().BitLen() <= DefaultDiscriminantBits+8).Should(BeTrue())
			Expect(v.Generator().GetA().Cmp(big.NewInt(2)) == 0).Should(BeTrue())
			Expect(v.Generator().GetB().Cmp(big.NewInt(1)) == 0).Should(BeTrue())
			Expect(v.Generator().IsReducedForm()).Should(BeTrue())
		})

		It("rejects a too small bit length", func() {
			v, err := NewWithBitLength([]byte("test"), 8)
			Expect(v).Should(BeNil())
			Expect(err).Should(Equal(ErrSmallDiscriminant))
		})
	})

	DescribeTable("completeness", func(seed string, iterations uint64) {
		v, err := NewWithBitLength([]byte(seed), testBits)
		Expect(err).Should(BeNil())
		output, proof, err := v.Compute(iterations)
		Expect(err).Should(BeNil())
		Expect(v.Verify(output, proof, iterations)).Should(BeTrue())
	},
		Entry("T = 0", "test", uint64(0)),
		Entry("T = 1", "test", uint64(1)),
		Entry("T = 4", "abc", uint64(4)),
		Entry("T = 16", "abc", uint64(16)),
		Entry("T = 64", "another-seed", uint64(64)),
		// 2^300 exceeds the challenge prime, so the quotient is non-trivial
		// and the proof element is no longer the identity.
		Entry("T = 300", "test", uint64(300)),
	)

	It("completeness with the default discriminant size", func() {
		v, err := New([]byte("test"))
		Expect(err).Should(BeNil())
		output, proof, err := v.Compute(4)
		Expect(err).Should(BeNil())
		Expect(v.Verify(output, proof, 4)).Should(BeTrue())
	})

	It("zero iterations yield the generator", func() {
		v, err := NewWithBitLength([]byte("test"), testBits)
		Expect(err).Should(BeNil())
		output, proof, err := v.Compute(0)
		Expect(err).Should(BeNil())
		Expect(output.Equal(v.Generator())).Should(BeTrue())
		Expect(v.Verify(output, proof, 0)).Should(BeTrue())
	})

	It("the output is the iterated squaring of the generator", func() {
		v, err := NewWithBitLength([]byte("abc"), testBits)
		Expect(err).Should(BeNil())
		output, _, err := v.Compute(4)
		Expect(err).Should(BeNil())

		expected := v.Generator().Copy()
		for i := 0; i < 4; i++ {
			expected, err = expected.Square()
			Expect(err).Should(BeNil())
		}
		Expect(output.Equal(expected)).Should(BeTrue())
	})

	It("is deterministic", func() {
		v1, err := NewWithBitLength([]byte("test"), testBits)
		Expect(err).Should(BeNil())
		v2, err := NewWithBitLength([]byte("test"), testBits)
		Expect(err).Should(BeNil())
		output1, proof1, err := v1.Compute(16)
		Expect(err).Should(BeNil())
		output2, proof2, err := v2.Compute(16)
		Expect(err).Should(BeNil())
		Expect(output1.Equal(output2)).Should(BeTrue())
		Expect(bytes.Equal(output1.Bytes(), output2.Bytes())).Should(BeTrue())
		Expect(bytes.Equal(proof1, proof2)).Should(BeTrue())
	})

	It("accepts an output rebuilt from its decimal components", func() {
		v, err := NewWithBitLength([]byte("abc"), testBits)
		Expect(err).Should(BeNil())
		output, proof, err := v.Compute(8)
		Expect(err).Should(BeNil())
		rebuilt, err := output.ToMessage().ToBQuadraticForm()
		Expect(err).Should(BeNil())
		Expect(v.Verify(rebuilt, proof, 8)).Should(BeTrue())
	})

	Context("soundness", func() {
		var v *VDF
		var output *bqForm.BQuadraticForm
		var proof []byte

		BeforeEach(func() {
			var err error
			v, err = NewWithBitLength([]byte("abc"), testBits)
			Expect(err).Should(BeNil())
			output, proof, err = v.Compute(4)
			Expect(err).Should(BeNil())
		})

		It("rejects a flipped bit in the remainder region", func() {
			mutated := make([]byte, len(proof))
			copy(mutated, proof)
			mutated[len(mutated)-1] ^= 1
			Expect(v.Verify(output, mutated, 4)).Should(BeFalse())
		})

		It("rejects a flipped bit in the proof element region", func() {
			mutated := make([]byte, len(proof))
			copy(mutated, proof)
			// The byte after the first length prefix and sign byte belongs to
			// the magnitude of pi's a component.
			mutated[5] ^= 1
			Expect(v.Verify(output, mutated, 4)).Should(BeFalse())
		})

		It("rejects a wrong output", func() {
			Expect(v.Verify(v.Generator(), proof, 4)).Should(BeFalse())
		})

		It("rejects a wrong iteration count", func() {
			Expect(v.Verify(output, proof, 5)).Should(BeFalse())
		})

		It("rejects a cross-seed proof", func() {
			other, err := NewWithBitLength([]byte("b"), testBits)
			Expect(err).Should(BeNil())
			Expect(other.Verify(output, proof, 4)).Should(BeFalse())
		})

		It("rejects a truncated proof", func() {
			Expect(v.Verify(output, proof[:len(proof)-1], 4)).Should(BeFalse())
		})

		It("rejects an empty proof", func() {
			Expect(v.Verify(output, nil, 4)).Should(BeFalse())
		})

		It("rejects trailing bytes", func() {
			Expect(v.Verify(output, append(proof, 0), 4)).Should(BeFalse())
		})

		It("rejects an oversized length prefix", func() {
			mutated := make([]byte, len(proof))
			copy(mutated, proof)
			mutated[0] = 0xff
			Expect(v.Verify(output, mutated, 4)).Should(BeFalse())
		})
	})

	Context("proof wire format", func() {
		It("round trips through ParseProof", func() {
			v, err := NewWithBitLength([]byte("test"), testBits)
			Expect(err).Should(BeNil())
			output, proofBytes, err := v.Compute(300)
			Expect(err).Should(BeNil())
			proof, err := ParseProof(proofBytes, v.Discriminant())
			Expect(err).Should(BeNil())
			Expect(bytes.Equal(proof.Bytes(), proofBytes)).Should(BeTrue())
			Expect(proof.Pi.IsReducedForm()).Should(BeTrue())
			// 2^300 exceeds the challenge prime, so both q and r are positive.
			Expect(output).ShouldNot(BeNil())
			Expect(proof.Quotient.Sign() > 0).Should(BeTrue())
			Expect(proof.Remainder.Sign() > 0).Should(BeTrue())
		})
	})
})
