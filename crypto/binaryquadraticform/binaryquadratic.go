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
	"errors"
	"math/big"
)

var (
	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)

	gmbLimbBits = 64

	// ErrPositiveDiscriminant is returned if the discriminant is not negative.
	ErrPositiveDiscriminant = errors.New("not a negative discriminant")
	// ErrDifferentDiscriminant is returned if the discriminants are different.
	ErrDifferentDiscriminant = errors.New("different discriminant")
	// ErrInvariantViolation is returned if an operation breaks b^2 - 4ac = discriminant,
	// or if the reduction loop fails to terminate within its bound.
	ErrInvariantViolation = errors.New("discriminant invariant violation")
)

// maxReductionSteps bounds the reduction loop. Reduction of a form with
// negative discriminant terminates in O(log(a)) steps, so hitting this
// bound means a corrupted form.
const maxReductionSteps = 4096

/* This Library only supports some operations of "primitives positive definite binary quadratic forms" (i.e.
 * corresponding to ideal operations over imaginary quadratic fields).
 * A Quadratic form is given by: (a,b,c) := ax^2+bxy+cy^2 with discriminant = b^2 - 4ac < 0
 */
type BQuadraticForm struct {
	a *big.Int
	b *big.Int
	c *big.Int

	// cache
	shanksBound  *big.Int
	discriminant *big.Int
}

// Exper is the exponentiation interface over a fixed binary quadratic form.
type Exper interface {
	Exp(power *big.Int) (*BQuadraticForm, error)
}

// Give a, b, c to construct quadratic forms.
func NewBQuadraticForm(a *big.Int, b *big.Int, c *big.Int) (*BQuadraticForm, error) {
	discriminant, err := computeDiscriminant(a, b, c)
	if err != nil {
		return nil, err
	}
	// The definition of shanksBound is the floor of (|discriminant/4|)^(1/4).
	shanksBound := computeroot4thOver4(discriminant)
	bqform := &BQuadraticForm{
		a:            new(big.Int).Set(a),
		b:            new(big.Int).Set(b),
		c:            new(big.Int).Set(c),
		shanksBound:  shanksBound,
		discriminant: discriminant,
	}
	if err := bqform.reduction(); err != nil {
		return nil, err
	}
	return bqform, nil
}

func computeDiscriminant(a *big.Int, b *big.Int, c *big.Int) (*big.Int, error) {
	// discriminant = b^2 - 4ac
	discriminant := new(big.Int).Mul(b, b)
	ac := new(big.Int).Mul(a, c)
	discriminant = discriminant.Sub(discriminant, ac.Lsh(ac, 2))
	if discriminant.Sign() > -1 {
		return nil, ErrPositiveDiscriminant
	}
	return discriminant, nil
}

// Give a, b, discriminant to construct quadratic forms. 4a must divide b^2 - discriminant.
func NewBQuadraticFormByDiscriminant(a *big.Int, b *big.Int, discriminant *big.Int) (*BQuadraticForm, error) {
	if discriminant.Sign() > -1 {
		return nil, ErrPositiveDiscriminant
	}

	// The definition of shanksBound is the floor of (|discriminant/4|)^(1/4).
	shanksBound := computeroot4thOver4(discriminant)
	return newBQForm(a, b, discriminant, shanksBound)
}

// Identity returns the principal form, the neutral element of the class group
// of the given discriminant: (1, 1, (1-discriminant)/4) for odd discriminants
// and (1, 0, -discriminant/4) for even ones.
func Identity(discriminant *big.Int) (*BQuadraticForm, error) {
	if discriminant.Bit(0) == 0 {
		return NewBQuadraticFormByDiscriminant(big1, big0, discriminant)
	}
	return NewBQuadraticFormByDiscriminant(big1, big1, discriminant)
}

// Generator returns the form (2, 1, (1-discriminant)/8), the reduced form with
// the smallest a > 1. The discriminant must be 1 mod 8 for this form to exist.
func Generator(discriminant *big.Int) (*BQuadraticForm, error) {
	return NewBQuadraticFormByDiscriminant(big2, big1, discriminant)
}

func newBQForm(a *big.Int, b *big.Int, discriminant *big.Int, shanksBound *big.Int) (*BQuadraticForm, error) {
	if a.Sign() <= 0 {
		return nil, ErrInvariantViolation
	}
	// c = (b^2 - discriminant) / 4a
	bSquare := new(big.Int).Mul(b, b)
	numerator := new(big.Int).Sub(bSquare, discriminant)
	fourA := new(big.Int).Lsh(a, 2)
	c, remainder := new(big.Int).DivMod(numerator, fourA, new(big.Int))
	if remainder.Sign() != 0 {
		return nil, ErrInvariantViolation
	}
	bqform := &BQuadraticForm{
		a:            new(big.Int).Set(a),
		b:            new(big.Int).Set(b),
		c:            c,
		shanksBound:  shanksBound,
		discriminant: new(big.Int).Set(discriminant),
	}
	if err := bqform.reduction(); err != nil {
		return nil, err
	}
	return bqform, nil
}

// Note that: D < 0. (a,b,c) is reduced if |b| <= a <= c and if b >= 0 whenever
// a = |b| or a = c
func (bqForm *BQuadraticForm) IsReducedForm() bool {
	absoluteB := new(big.Int).Abs(bqForm.b)
	// |b| < a < c
	if bqForm.a.Cmp(absoluteB) > 0 && bqForm.c.Cmp(bqForm.a) > 0 {
		return true
	}
	// a = |b| <= c and b >= 0
	if bqForm.a.Cmp(absoluteB) == 0 && bqForm.c.Cmp(bqForm.a) > -1 && bqForm.b.Cmp(big0) > -1 {
		return true
	}
	// a = c and |b| <= a and b >= 0
	if bqForm.a.Cmp(bqForm.c) == 0 && bqForm.a.Cmp(absoluteB) > -1 && bqForm.b.Cmp(big0) > -1 {
		return true
	}
	return false
}

// Get the coefficient of a binary quadratic form: ax^2 + bxy + cy^2
// Get a
func (bqForm *BQuadraticForm) GetA() *big.Int {
	return bqForm.a
}

// Get b
func (bqForm *BQuadraticForm) GetB() *big.Int {
	return bqForm.b
}

// Get c
func (bqForm *BQuadraticForm) GetC() *big.Int {
	return bqForm.c
}

// Get discriminant
func (bqForm *BQuadraticForm) GetDiscriminant() *big.Int {
	return bqForm.discriminant
}

// Equal checks structural equality of the reduced tuples and their discriminant.
func (bqForm *BQuadraticForm) Equal(bqForm1 *BQuadraticForm) bool {
	return bqForm.a.Cmp(bqForm1.a) == 0 &&
		bqForm.b.Cmp(bqForm1.b) == 0 &&
		bqForm.c.Cmp(bqForm1.c) == 0 &&
		bqForm.discriminant.Cmp(bqForm1.discriminant) == 0
}

// The inverse quadratic Form of [a,b,c] is [a,-b,c]
func (bqForm *BQuadraticForm) Inverse() (*BQuadraticForm, error) {
	result := &BQuadraticForm{
		a:            new(big.Int).Set(bqForm.a),
		b:            new(big.Int).Neg(bqForm.b),
		c:            new(big.Int).Set(bqForm.c),
		shanksBound:  new(big.Int).Set(bqForm.shanksBound),
		discriminant: new(big.Int).Set(bqForm.discriminant),
	}
	if err := result.reduction(); err != nil {
		return nil, err
	}
	return result, nil
}

// Identity returns the principal form of this form's discriminant.
func (bqForm *BQuadraticForm) Identity() (*BQuadraticForm, error) {
	return Identity(bqForm.discriminant)
}

// IsIdentity checks whether the reduced form is the principal form.
func (bqForm *BQuadraticForm) IsIdentity() bool {
	return bqForm.a.Cmp(big1) == 0
}

/* The composition operation of binary quadratic forms
 * NUCOMP algorithm. Adapted from "Solving the Pell Equation"
 * by Michael J. Jacobson, Jr. and Hugh C. Williams.
 * http://www.springer.com/mathematics/numbers/book/978-0-387-84922-5
 * The code original author: Maxwell Sayles.
 * Code: https://github.com/maxwellsayles/libqform/blob/master/mpz_qform.c
 */
func (bqForm *BQuadraticForm) Composition(inputForm *BQuadraticForm) (*BQuadraticForm, error) {
	if bqForm.discriminant.Cmp(inputForm.discriminant) != 0 {
		return nil, ErrDifferentDiscriminant
	}
	// The principal form is neutral for composition.
	if bqForm.IsIdentity() {
		return inputForm.Copy(), nil
	}
	if inputForm.IsIdentity() {
		return bqForm.Copy(), nil
	}
	a1 := new(big.Int).Set(bqForm.a)
	b1 := new(big.Int).Set(bqForm.b)
	a2 := new(big.Int).Set(inputForm.a)
	b2 := new(big.Int).Set(inputForm.b)
	c2 := new(big.Int).Set(inputForm.c)

	if a1.Cmp(a2) < 0 {
		a1 = new(big.Int).Set(inputForm.a)
		b1 = new(big.Int).Set(inputForm.b)
		a2 = new(big.Int).Set(bqForm.a)
		b2 = new(big.Int).Set(bqForm.b)
		c2 = new(big.Int).Set(bqForm.c)
	}

	ss := new(big.Int).Add(b1, b2)
	ss.Rsh(ss, 1)
	m := new(big.Int).Sub(b1, b2)
	m.Rsh(m, 1)
	v1, _, SP := exGCD(a2, a1)
	K := new(big.Int).Mul(m, v1)
	K.Mod(K, a1)
	var u2, v2, S *big.Int
	if SP.Cmp(big1) != 0 {
		u2, v2, S = exGCD(SP, ss)
		K.Mul(K, u2)
		tempValue := new(big.Int).Mul(v2, c2)
		K.Sub(K, tempValue)
		if S.Cmp(big1) != 0 {
			a1.Div(a1, S)
			a2.Div(a2, S)
			c2.Mul(c2, S)
		}
		K.Mod(K, a1)
	}

	if a1.Cmp(bqForm.shanksBound) < 0 {
		T := new(big.Int).Mul(a2, K)
		a := new(big.Int).Mul(a2, a1)
		b := new(big.Int).Lsh(T, 1)
		b.Add(b, b2)
		c := new(big.Int).Add(b2, T)
		c.Mul(c, K)
		c.Add(c, c2)
		c.Div(c, a1)
		result := &BQuadraticForm{
			a:            a,
			b:            b,
			c:            c,
			shanksBound:  new(big.Int).Set(bqForm.shanksBound),
			discriminant: new(big.Int).Set(bqForm.discriminant),
		}
		if err := result.reduction(); err != nil {
			return nil, err
		}
		return result, nil
	}

	R2 := new(big.Int).Set(a1)
	R1 := new(big.Int).Set(K)
	C2 := big.NewInt(0)
	C1 := big.NewInt(-1)
	_, R1, C2, C1 = partialGCD(R2, R1, C2, C1, bqForm.shanksBound)
	T := new(big.Int).Mul(a2, R1)
	M1 := new(big.Int).Mul(m, C1)
	M1.Add(M1, T)
	M1.Div(M1, a1)
	M2 := new(big.Int).Mul(ss, R1)
	tempValue := new(big.Int).Mul(c2, C1)
	M2.Sub(M2, tempValue)
	M2.Div(M2, a1)
	a := new(big.Int).Mul(R1, M1)
	tempValue = new(big.Int).Mul(C1, M2)
	a.Sub(a, tempValue)
	if C1.Sign() > 0 {
		a.Neg(a)
	}
	b := new(big.Int).Mul(a, C2)
	b.Sub(T, b)
	b.Lsh(b, 1)
	b.Div(b, C1)
	b.Sub(b, b2)
	b.Mod(b, new(big.Int).Lsh(a, 1))
	if a.Sign() < 0 {
		a.Neg(a)
	}
	return newBQForm(a, b, bqForm.discriminant, bqForm.shanksBound)
}

/* Square computes the reduced form equivalent to the composition of the form
 * with itself (NUDUPL).
 * The code original author : Maxwell Sayles.
 * Code: https://github.com/maxwellsayles/libqform/blob/master/mpz_qform.c
 */
func (bqForm *BQuadraticForm) Square() (*BQuadraticForm, error) {
	if bqForm.IsIdentity() {
		return bqForm.Copy(), nil
	}
	var a, b *big.Int
	a1 := new(big.Int).Set(bqForm.a)
	b1 := new(big.Int).Set(bqForm.b)
	c1 := new(big.Int).Set(bqForm.c)
	_, v, s := exGCD(a1, b1)
	U := new(big.Int).Mul(v, bqForm.c)
	U.Neg(U)
	if s.Cmp(big1) != 0 {
		a1.Div(a1, s)
		c1.Mul(c1, s)
	}
	U.Mod(U, a1)
	if a1.Cmp(bqForm.shanksBound) < 1 {
		T := new(big.Int).Mul(a1, U)
		a = new(big.Int).Mul(a1, a1)
		b := new(big.Int).Lsh(T, 1)
		b.Add(b1, b)
		c := new(big.Int).Add(b1, T)
		c.Mul(c, U)
		c.Add(c, c1)
		c.Div(c, a1)
		result := &BQuadraticForm{
			a:            a,
			b:            b,
			c:            c,
			shanksBound:  new(big.Int).Set(bqForm.shanksBound),
			discriminant: new(big.Int).Set(bqForm.discriminant),
		}
		if err := result.reduction(); err != nil {
			return nil, err
		}
		return result, nil
	}
	R2 := new(big.Int).Set(a1)
	R1 := new(big.Int).Set(U)
	C2 := big.NewInt(0)
	C1 := big.NewInt(-1)
	_, R1, C2, C1 = partialGCD(R2, R1, C2, C1, bqForm.shanksBound)
	M2 := new(big.Int).Mul(R1, b1)
	tempValue := new(big.Int).Mul(s, C1)
	tempValue.Mul(tempValue, bqForm.c)
	M2.Sub(M2, tempValue)
	M2.Div(M2, a1)
	tempValue = new(big.Int).Mul(R1, R1)
	a = new(big.Int).Mul(C1, M2)
	a.Sub(tempValue, a)
	if C1.Sign() > 0 {
		a.Neg(a)
	}
	b = new(big.Int).Mul(C2, a)
	tempValue = new(big.Int).Mul(R1, a1)
	b.Sub(tempValue, b)
	b.Div(new(big.Int).Lsh(b, 1), C1)
	b.Sub(b, b1)
	b.Mod(b, new(big.Int).Lsh(a, 1))
	if a.Sign() < 0 {
		a.Neg(a)
	}
	return newBQForm(a, b, bqForm.discriminant, bqForm.shanksBound)
}

// Exp computes bqForm ^ power by binary exponentiation. A zero power yields the
// principal form; negative powers go through the inverse form.
func (bqForm *BQuadraticForm) Exp(power *big.Int) (*BQuadraticForm, error) {
	if power.Sign() < 0 {
		inverse, err := bqForm.Inverse()
		if err != nil {
			return nil, err
		}
		return inverse.Exp(new(big.Int).Neg(power))
	}
	result, err := bqForm.Identity()
	if err != nil {
		return nil, err
	}
	if power.Sign() == 0 {
		return result, nil
	}
	base := bqForm.Copy()
	for i := 0; i < power.BitLen(); i++ {
		if power.Bit(i) != 0 {
			result, err = result.Composition(base)
			if err != nil {
				return nil, err
			}
		}
		if i+1 < power.BitLen() {
			base, err = base.Square()
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// copy the binary quadratic form
func (bqForm *BQuadraticForm) Copy() *BQuadraticForm {
	return &BQuadraticForm{
		a:            new(big.Int).Set(bqForm.a),
		b:            new(big.Int).Set(bqForm.b),
		c:            new(big.Int).Set(bqForm.c),
		shanksBound:  new(big.Int).Set(bqForm.shanksBound),
		discriminant: new(big.Int).Set(bqForm.discriminant),
	}
}

// Reduction of Positive Definite Forms: Given a positive definite quadratic form f = (a,b,c)
// of discriminant D = b^2 -4ac < 0, this algorithm outputs the unique reduced form equivalent
// to f. cf: Algorithm 5.4.2, A Course in Computational Algebraic Number theory, Cohen GTM 138.
// The loop is capped and the discriminant is re-verified at exit; a failure of either is a
// programming error surfaced as ErrInvariantViolation.
func (bqForm *BQuadraticForm) reduction() error {
	steps := 0
	for !bqForm.IsReducedForm() {
		if steps >= maxReductionSteps {
			return ErrInvariantViolation
		}
		// if a > c, set b = -b and exchange a and c.
		if bqForm.a.Cmp(bqForm.c) > 0 {
			bqForm.b.Neg(bqForm.b)
			bqForm.a, bqForm.c = bqForm.c, bqForm.a

			// if a = c and b < 0, set b = -b
		} else if bqForm.a.Cmp(bqForm.c) == 0 && bqForm.b.Cmp(big0) < 0 {
			bqForm.b.Neg(bqForm.b)
		}
		bqForm.euclideanStep()
		steps++
	}
	got, err := computeDiscriminant(bqForm.a, bqForm.b, bqForm.c)
	if err != nil {
		return ErrInvariantViolation
	}
	if got.Cmp(bqForm.discriminant) != 0 {
		return ErrInvariantViolation
	}
	return nil
}

// Euclidean step of Algorithm 5.4.2 : Reduction of Positive definite forms.
func (bqForm *BQuadraticForm) euclideanStep() {
	// Get b = 2aq + r, where 0 <= r < 2a
	var q *big.Int
	r := big.NewInt(0)
	twicea := new(big.Int).Lsh(bqForm.a, 1)
	q, r = new(big.Int).DivMod(bqForm.b, twicea, r)

	// if r > a, set r = r - 2a, and q = (q + 1) ( i.e. we want b = 2aq + r, where -a < r <= a)
	if r.Cmp(bqForm.a) > 0 {
		r.Sub(r, twicea)
		q.Add(q, big1)
	}

	// c = c - 1/2(b+r)q, b = r
	bPlusrQ := new(big.Int).Add(bqForm.b, r)
	bPlusrQ.Mul(bPlusrQ, q)
	halfbPlusrQ := new(big.Int).Rsh(bPlusrQ, 1)
	bqForm.c.Sub(bqForm.c, halfbPlusrQ)
	bqForm.b = r
}

/* Extend the GCD in golang. We permit the inputs x, y which can be negative numbers.
 * For inputs x, y, we can find a, b such that ax + by = gcd( |x|, |y| ).
 * In particular, if y = 0, then we return a = sign(x), b = 0 and gcd = absx.
 */
func exGCD(x, y *big.Int) (*big.Int, *big.Int, *big.Int) {
	absx := new(big.Int).Abs(x)
	absy := new(big.Int).Abs(y)
	if y.Sign() == 0 {
		return new(big.Int).SetInt64(int64(x.Sign())), big.NewInt(0), new(big.Int).Set(absx)
	}
	a, b := big.NewInt(0), big.NewInt(0)
	divisor := new(big.Int).GCD(a, b, absx, absy)
	if x.Sign() == -1 {
		if y.Sign() == -1 {
			return a.Neg(a), b.Neg(b), divisor
		}
		return a.Neg(a), b, divisor

	}
	if y.Sign() == -1 {
		return a, b.Neg(b), divisor
	}
	return a, b, divisor
}

// ref: Chapter 5, Improved Arithmetic in the Ideal Class Group of Imaginary
// Quadratic Number Fields, Maxwell Sayles.
// Code: https://github.com/maxwellsayles/liboptarith/blob/master/mpz_xgcd.c
func partialGCD(R2, R1, C2, C1, bound *big.Int) (*big.Int, *big.Int, *big.Int, *big.Int) {
	var A2, A1, B2, B1, T, T1, rr2, rr1, qq, bb int64
	var q, r *big.Int

	for R1.Sign() != 0 && R1.Cmp(bound) > 0 {
		T = int64(R2.BitLen() - (gmbLimbBits) + 1)
		T1 = int64(R1.BitLen() - (gmbLimbBits) + 1)
		if T < T1 {
			T = T1
		}
		if T < 0 {
			T = 0
		}
		r = new(big.Int).Rsh(R2, uint(T))
		rr2 = r.Int64()
		r = new(big.Int).Rsh(R1, uint(T))
		rr1 = r.Int64()
		r = new(big.Int).Rsh(bound, uint(T))
		bb = r.Int64()

		A2 = 0
		A1 = 1
		B2 = 1
		B1 = 0
		i := 0
		for rr1 != 0 && rr1 > bb {
			qq = rr2 / rr1
			T = rr2 - qq*rr1
			rr2 = rr1
			rr1 = T
			T = A2 - qq*A1
			A2 = A1
			A1 = T
			T = B2 - qq*B1
			B2 = B1
			B1 = T
			if (i & 1) > 0 {
				if (rr1 < -B1) || (rr2-rr1 < A1-A2) {
					break
				}
			} else {
				if (rr1 < -A1) || (rr2-rr1 < B1-B2) {
					break
				}
			}
			i++
		}
		if i == 0 {
			q, r = new(big.Int).DivMod(R2, R1, r)
			R2 = new(big.Int).Set(R1)
			R1 = r
			tempValue := new(big.Int).Set(C1)
			r = new(big.Int).Mul(q, C1)
			C1.Sub(C2, r)
			C2 = tempValue
		} else {
			t1 := new(big.Int).Mul(R2, new(big.Int).SetInt64(B2))
			t2 := new(big.Int).Mul(R1, new(big.Int).SetInt64(A2))
			r.Add(t1, t2)
			t1.Mul(R2, new(big.Int).SetInt64(B1))
			t2.Mul(R1, new(big.Int).SetInt64(A1))
			R1.Add(t1, t2)
			R2 = new(big.Int).Set(r)
			t1.Mul(C2, new(big.Int).SetInt64(B2))
			t2.Mul(C1, new(big.Int).SetInt64(A2))
			r.Add(t1, t2)
			t1.Mul(C2, new(big.Int).SetInt64(B1))
			t2.Mul(C1, new(big.Int).SetInt64(A1))
			C1.Add(t1, t2)
			C2 = new(big.Int).Set(r)
			if R1.Sign() < 0 {
				R1.Neg(R1)
				C1.Neg(C1)
			}
			if R2.Sign() < 0 {
				R2.Neg(R2)
				C2.Neg(C2)
			}
		}
	}
	if R2.Sign() < 0 {
		R2.Neg(R2)
		C2.Neg(C2)
		C1.Neg(C1)
	}
	return R2, R1, C2, C1
}

// Compute (|value/4|)^(1/4). Note that: If the value is large enough, then this function always outputs the floor of (|value/4|)^(1/4).
func computeroot4thOver4(value *big.Int) *big.Int {
	absValue := new(big.Int).Abs(value)
	pqVer4 := new(big.Int).Rsh(absValue, 2)
	pqVer4 = new(big.Int).Sqrt(pqVer4)
	pqRoot4 := new(big.Int).Sqrt(pqVer4)
	return pqRoot4
}
