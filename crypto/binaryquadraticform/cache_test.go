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

var _ = Describe("cache", func() {
	var bq *BQuadraticForm
	var c Exper

	BeforeEach(func() {
		var err error
		bq, err = NewBQuadraticForm(big.NewInt(31), big.NewInt(24), big.NewInt(15951))
		Expect(err).Should(BeNil())
		c = NewCacheExp(bq)
	})

	It("implement Exper interface", func() {
		var _ Exper = c
		Expect(c).ShouldNot(BeNil())
	})

	It("agrees with the plain exponentiation", func() {
		for _, power := range []int64{0, 1, 2, 3, 7, 64, 200, 12345} {
			exp := big.NewInt(power)
			expected, err := bq.Exp(exp)
			Expect(err).Should(BeNil())
			got, err := c.Exp(exp)
			Expect(err).Should(BeNil())
			Expect(got.Equal(expected)).Should(BeTrue())
		}
	})

	It("negative power", func() {
		expected, err := bq.Exp(big.NewInt(-10))
		Expect(err).Should(BeNil())
		got, err := c.Exp(big.NewInt(-10))
		Expect(err).Should(BeNil())
		Expect(got.Equal(expected)).Should(BeTrue())
	})

	It("reuses the cache across calls", func() {
		first, err := c.Exp(big.NewInt(200))
		Expect(err).Should(BeNil())
		second, err := c.Exp(big.NewInt(200))
		Expect(err).Should(BeNil())
		Expect(first.Equal(second)).Should(BeTrue())
	})
})
