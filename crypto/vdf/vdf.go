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

// Package vdf implements the Wesolowski verifiable delay function over the
// class group of binary quadratic forms with a challenge-derived negative
// discriminant. Computing the output requires the prescribed number of
// sequential squarings; the accompanying proof verifies in time logarithmic
// in the iteration count.
package vdf

import (
	"errors"
	"math/big"

	bqForm "github.com/getamis/vdf/crypto/binaryquadraticform"
	"github.com/getamis/vdf/crypto/utils"
)

const (
	// minDiscriminantBits rejects degenerate class groups.
	minDiscriminantBits = 16
)

var (
	big1 = big.NewInt(1)

	// ErrSmallDiscriminant is returned if the requested discriminant bit length is too small.
	ErrSmallDiscriminant = errors.New("discriminant bit length too small")
	// ErrProofArithmetic is returned if l*q + r != 2^T during proof generation.
	ErrProofArithmetic = errors.New("proof arithmetic check failed")
)

// VDF owns the challenge-derived discriminant and class-group generator. It is
// immutable after construction and safe for concurrent Compute/Verify calls.
type VDF struct {
	discriminant *big.Int
	generator    *bqForm.BQuadraticForm

	// ladder of generator squarings for the short exponents in Verify; the
	// cache depth stays bounded by the challenge-prime bit length
	generatorPowers bqForm.Exper
}

// New derives a VDF instance from a challenge with the default 1024-bit
// discriminant.
func New(challenge []byte) (*VDF, error) {
	return NewWithBitLength(challenge, DefaultDiscriminantBits)
}

// NewWithBitLength derives a VDF instance from a challenge with a discriminant
// of the given bit length.
func NewWithBitLength(challenge []byte, bits int) (*VDF, error) {
	if bits < minDiscriminantBits {
		return nil, ErrSmallDiscriminant
	}
	discriminant := DeriveDiscriminant(challenge, bits)
	generator, err := bqForm.Generator(discriminant)
	if err != nil {
		return nil, err
	}
	return &VDF{
		discriminant:    discriminant,
		generator:       generator,
		generatorPowers: bqForm.NewCacheExp(generator),
	}, nil
}

// Discriminant returns the negative discriminant of the class group.
func (v *VDF) Discriminant() *big.Int {
	return v.discriminant
}

// Generator returns the class-group generator (2, 1, (1-discriminant)/8).
func (v *VDF) Generator() *bqForm.BQuadraticForm {
	return v.generator
}

// Compute evaluates y = g^(2^iterations) by exactly `iterations` sequential
// squarings and returns the output with its serialized proof. The loop never
// short-circuits: the delay guarantee rests on every squaring being performed
// in order, so intermediate values are consumed immediately and discarded.
func (v *VDF) Compute(iterations uint64) (*bqForm.BQuadraticForm, []byte, error) {
	current := v.generator.Copy()
	var err error
	for i := uint64(0); i < iterations; i++ {
		current, err = current.Square()
		if err != nil {
			return nil, nil, err
		}
	}
	proof, err := v.Prove(current, iterations)
	if err != nil {
		return nil, nil, err
	}
	return current, proof, nil
}

// Prove produces the serialized Wesolowski proof for a computed output:
// l = hashToPrime(g, y), q = floor(2^T / l), r = 2^T mod l, pi = g^q.
func (v *VDF) Prove(output *bqForm.BQuadraticForm, iterations uint64) ([]byte, error) {
	challengePrime, err := utils.HashToPrime(v.generator.Bytes(), output.Bytes())
	if err != nil {
		return nil, err
	}
	twoPowT := new(big.Int).Lsh(big1, uint(iterations))
	quotient, remainder := new(big.Int).DivMod(twoPowT, challengePrime, new(big.Int))
	check := new(big.Int).Mul(challengePrime, quotient)
	check.Add(check, remainder)
	if check.Cmp(twoPowT) != 0 {
		return nil, ErrProofArithmetic
	}
	pi, err := v.generator.Exp(quotient)
	if err != nil {
		return nil, err
	}
	proof := &Proof{
		Pi:        pi,
		Quotient:  quotient,
		Remainder: remainder,
	}
	return proof.Bytes(), nil
}

// Verify checks a claimed (output, proof) pair against the iteration count.
// It recomputes the Fiat-Shamir prime, cross-checks the transmitted quotient
// and remainder, and tests pi^l ∘ g^r == y. Malformed input is an invalid
// proof, never an error.
func (v *VDF) Verify(output *bqForm.BQuadraticForm, proofBytes []byte, iterations uint64) bool {
	if output == nil || output.GetDiscriminant().Cmp(v.discriminant) != 0 {
		return false
	}
	if !output.IsReducedForm() {
		return false
	}
	proof, err := ParseProof(proofBytes, v.discriminant)
	if err != nil {
		return false
	}
	challengePrime, err := utils.HashToPrime(v.generator.Bytes(), output.Bytes())
	if err != nil {
		return false
	}
	twoPowT := new(big.Int).Lsh(big1, uint(iterations))
	quotient, remainder := new(big.Int).DivMod(twoPowT, challengePrime, new(big.Int))
	if proof.Quotient.Cmp(quotient) != 0 || proof.Remainder.Cmp(remainder) != 0 {
		return false
	}

	// The parsed pi and the generator are validated reduced forms of the
	// instance discriminant, so the group operations below cannot fail; a
	// failure is a programming error, not an invalid proof.
	piToL, err := proof.Pi.Exp(challengePrime)
	if err != nil {
		panic(err)
	}
	gToR, err := v.generatorPowers.Exp(remainder)
	if err != nil {
		panic(err)
	}
	leftSide, err := piToL.Composition(gToR)
	if err != nil {
		panic(err)
	}
	return leftSide.Equal(output)
}
