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
	"errors"
	"math/big"
)

var (
	// ErrExceedMaxRetry is returned if we retried over times
	ErrExceedMaxRetry = errors.New("exceed max retries")

	// The fixed witness set of the Miller-Rabin test.
	millerRabinWitnesses = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23}

	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	big3 = big.NewInt(3)
)

// maxHashToPrimeSteps caps the hash-and-increment search. A 256-bit starting
// point finds a prime within a few hundred steps with overwhelming probability.
const maxHashToPrimeSteps = 1 << 16

// IsProbablePrime runs the Miller-Rabin test with the fixed witness set
// {2, 3, 5, 7, 11, 13, 17, 19, 23}. For a witness a >= n, n is treated as
// prime iff n == a.
func IsProbablePrime(n *big.Int) bool {
	if n.Cmp(big2) < 0 {
		return false
	}
	if n.Cmp(big2) == 0 || n.Cmp(big3) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	nMinus1 := new(big.Int).Sub(n, big1)
	// n - 1 = 2^r * d with d odd
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	for _, witness := range millerRabinWitnesses {
		a := big.NewInt(witness)
		if n.Cmp(a) <= 0 {
			return n.Cmp(a) == 0
		}

		x := new(big.Int).Exp(a, d, n)
		if x.Cmp(big1) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}

		composite := true
		for i := 0; i < r-1; i++ {
			x.Exp(x, big2, n)
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}

// HashToPrime derives a prime from the given byte slices: hash the
// concatenation to a 256-bit integer, force it odd, and add 2 until the
// Miller-Rabin witness set accepts. The search is deterministic.
func HashToPrime(data ...[]byte) (*big.Int, error) {
	candidate := HashListToInt(data...)
	if candidate.Bit(0) == 0 {
		candidate.Add(candidate, big1)
	}
	for i := 0; i < maxHashToPrimeSteps; i++ {
		if IsProbablePrime(candidate) {
			return candidate, nil
		}
		candidate.Add(candidate, big2)
	}
	return nil, ErrExceedMaxRetry
}
