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
	"math/big"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("prime", func() {
	DescribeTable("IsProbablePrime()", func(value string, expected bool) {
		n, ok := new(big.Int).SetString(value, 10)
		Expect(ok).Should(BeTrue())
		Expect(IsProbablePrime(n)).Should(Equal(expected))
	},
		Entry("0 is not prime", "0", false),
		Entry("1 is not prime", "1", false),
		Entry("2 is prime", "2", true),
		Entry("3 is prime", "3", true),
		Entry("4 is composite", "4", false),
		Entry("5 is prime", "5", true),
		Entry("9 is composite", "9", false),
		Entry("23 is prime", "23", true),
		Entry("541 is prime", "541", true),
		Entry("561 is a Carmichael number", "561", false),
		Entry("7919 is prime", "7919", true),
		Entry("25326001 is a strong pseudoprime to bases 2, 3 and 5", "25326001", false),
		Entry("2^127 - 1 is a Mersenne prime", "170141183460469231731687303715884105727", true),
		Entry("2^128 is composite", "340282366920938463463374607431768211456", false),
	)

	Context("HashToPrime()", func() {
		It("is deterministic", func() {
			got1, err := HashToPrime([]byte("g-bytes"), []byte("y-bytes"))
			Expect(err).Should(BeNil())
			got2, err := HashToPrime([]byte("g-bytes"), []byte("y-bytes"))
			Expect(err).Should(BeNil())
			Expect(got1.Cmp(got2) == 0).Should(BeTrue())
		})

		It("yields an odd probable prime near the digest", func() {
			got, err := HashToPrime([]byte("g-bytes"), []byte("y-bytes"))
			Expect(err).Should(BeNil())
			Expect(got.Bit(0)).Should(Equal(uint(1)))
			Expect(IsProbablePrime(got)).Should(BeTrue())
			digest := HashListToInt([]byte("g-bytes"), []byte("y-bytes"))
			gap := new(big.Int).Sub(got, digest)
			Expect(gap.Sign() >= 0).Should(BeTrue())
			Expect(gap.Cmp(big.NewInt(10000)) < 0).Should(BeTrue())
		})

		It("different transcripts give different primes", func() {
			got1, err := HashToPrime([]byte("transcript-a"))
			Expect(err).Should(BeNil())
			got2, err := HashToPrime([]byte("transcript-b"))
			Expect(err).Should(BeNil())
			Expect(got1.Cmp(got2) != 0).Should(BeTrue())
		})
	})
})
