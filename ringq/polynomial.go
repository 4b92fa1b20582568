package ringq

import (
	"fmt"
	"math/big"
	"strings"
)

// Poly is a dense univariate polynomial over Z_q, indexed by degree.
// Coeffs[i] is the coefficient of X^i; coefficients beyond len(Coeffs)-1 are
// implicitly zero. Poly values are not reduced modulo any cyclotomic
// modulus — that reduction is RingElt's job.
type Poly struct {
	q      *big.Int
	Coeffs []FieldElt
}

// NewPoly builds a polynomial over Z_q from the given coefficients, lowest
// degree first. The slice is copied.
func NewPoly(q *big.Int, coeffs []FieldElt) Poly {
	cp := make([]FieldElt, len(coeffs))
	copy(cp, coeffs)
	return Poly{q: new(big.Int).Set(q), Coeffs: cp}
}

// ZeroPoly returns the zero polynomial of modulus q with a single zero
// coefficient.
func ZeroPoly(q *big.Int) Poly {
	return Poly{q: new(big.Int).Set(q), Coeffs: []FieldElt{Zero(q)}}
}

// IdentityPoly returns the constant polynomial 1.
func IdentityPoly(q *big.Int) Poly {
	return Poly{q: new(big.Int).Set(q), Coeffs: []FieldElt{One(q)}}
}

// Modulus returns the field modulus q this polynomial's coefficients live in.
func (p Poly) Modulus() *big.Int { return new(big.Int).Set(p.q) }

// IsZero reports whether every coefficient of p is zero.
func (p Poly) IsZero() bool {
	for _, c := range p.Coeffs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Degree returns the index of the highest nonzero coefficient, or 0 for the
// zero polynomial.
func (p Poly) Degree() int {
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		if !p.Coeffs[i].IsZero() {
			return i
		}
	}
	return 0
}

// Coeff returns the coefficient of X^i, or zero if i is out of range.
func (p Poly) Coeff(i int) FieldElt {
	if i < 0 || i >= len(p.Coeffs) {
		return Zero(p.q)
	}
	return p.Coeffs[i]
}

func maxLen(a, b Poly) int {
	if len(a.Coeffs) > len(b.Coeffs) {
		return len(a.Coeffs)
	}
	return len(b.Coeffs)
}

// Add returns p + other, zero-padding the shorter operand.
func (p Poly) Add(other Poly) Poly {
	n := maxLen(p, other)
	out := make([]FieldElt, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coeff(i).Add(other.Coeff(i))
	}
	return Poly{q: p.q, Coeffs: out}
}

// Sub returns p - other, zero-padding the shorter operand.
func (p Poly) Sub(other Poly) Poly {
	n := maxLen(p, other)
	out := make([]FieldElt, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coeff(i).Sub(other.Coeff(i))
	}
	return Poly{q: p.q, Coeffs: out}
}

// Neg returns -p.
func (p Poly) Neg() Poly {
	out := make([]FieldElt, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = c.Neg()
	}
	return Poly{q: p.q, Coeffs: out}
}

// ScalarMul returns p with every coefficient multiplied by s.
func (p Poly) ScalarMul(s FieldElt) Poly {
	out := make([]FieldElt, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = c.Mul(s)
	}
	return Poly{q: p.q, Coeffs: out}
}

// Mul returns the schoolbook product p * other, O(deg(p)*deg(other)).
func (p Poly) Mul(other Poly) Poly {
	out := make([]FieldElt, len(p.Coeffs)+len(other.Coeffs))
	for i := range out {
		out[i] = Zero(p.q)
	}
	for i, a := range p.Coeffs {
		if a.IsZero() {
			continue
		}
		for j, b := range other.Coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return Poly{q: p.q, Coeffs: out}
}

// Term adds coef*X^exp in place, growing the coefficient slice if needed.
func (p *Poly) Term(coef FieldElt, exp int) {
	if len(p.Coeffs) < exp+1 {
		grown := make([]FieldElt, exp+1)
		copy(grown, p.Coeffs)
		for i := len(p.Coeffs); i < exp+1; i++ {
			grown[i] = Zero(p.q)
		}
		p.Coeffs = grown
	}
	p.Coeffs[exp] = p.Coeffs[exp].Add(coef)
}

// popTerm removes and returns the highest-degree nonzero term, mutating a
// clone of p; used internally by DivMod.
func (p Poly) popTerm() (FieldElt, int, Poly) {
	clone := NewPoly(p.q, p.Coeffs)
	for i := len(clone.Coeffs) - 1; i >= 0; i-- {
		if !clone.Coeffs[i].IsZero() {
			v := clone.Coeffs[i]
			clone.Coeffs[i] = Zero(p.q)
			return v, i, clone
		}
	}
	return Zero(p.q), 0, clone
}

// shiftAndClone multiplies p by X^degree (a fast path for the single-term
// shift used by Euclidean division).
func (p Poly) shiftAndClone(degree int) Poly {
	out := make([]FieldElt, degree+len(p.Coeffs))
	for i := 0; i < degree; i++ {
		out[i] = Zero(p.q)
	}
	copy(out[degree:], p.Coeffs)
	return Poly{q: p.q, Coeffs: out}
}

// ErrDivideByZero is returned by DivMod when the divisor is the zero
// polynomial.
var ErrDivideByZero = fmt.Errorf("ringq: divide by zero polynomial")

// DivMod performs Euclidean division: returns (quotient, remainder) such
// that p == quotient*divisor + remainder. Fails with ErrDivideByZero if
// divisor is the zero polynomial.
func (p Poly) DivMod(divisor Poly) (Poly, Poly, error) {
	if divisor.IsZero() {
		return Poly{}, Poly{}, ErrDivideByZero
	}
	_, divisorExp, dclone := divisor.popTerm()
	divisorTerm := divisor.Coeff(divisorExp)
	divisorTermInv, err := divisorTerm.Inverse()
	if err != nil {
		return Poly{}, Poly{}, fmt.Errorf("ringq: divmod: %w", err)
	}
	_ = dclone

	quotient := Poly{q: p.q, Coeffs: []FieldElt{Zero(p.q)}}
	remainder := NewPoly(p.q, p.Coeffs)
	for remainder.Degree() >= divisor.Degree() && !remainder.IsZero() {
		largestExp := remainder.Degree()
		largestTerm := remainder.Coeff(largestExp)
		newCoef := largestTerm.Mul(divisorTermInv)
		newExp := largestExp - divisorExp
		if newExp < 0 {
			break
		}
		quotient.Term(newCoef, newExp)
		shifted := divisor.shiftAndClone(newExp).ScalarMul(newCoef)
		remainder = remainder.Sub(shifted)
	}
	return quotient, remainder, nil
}

// symmetricCoeffs lifts every coefficient to its centered integer
// representative, used by the three norms below.
func (p Poly) symmetricCoeffs() []*big.Int {
	out := make([]*big.Int, len(p.Coeffs))
	for i, c := range p.Coeffs {
		out[i] = c.Symmetric()
	}
	return out
}

// NormL1 returns sum(|c_i|) over the symmetric integer lift of the
// coefficients.
func (p Poly) NormL1() *big.Int {
	sum := big.NewInt(0)
	for _, c := range p.symmetricCoeffs() {
		sum.Add(sum, new(big.Int).Abs(c))
	}
	return sum
}

// NormL2Squared returns sum(c_i^2) over the symmetric integer lift. Callers
// compare this against B^2 rather than taking a (slow, imprecise) integer
// square root, per spec: "comparisons against bounds MUST be performed on
// squared L2 values".
func (p Poly) NormL2Squared() *big.Int {
	sum := big.NewInt(0)
	for _, c := range p.symmetricCoeffs() {
		sq := new(big.Int).Mul(c, c)
		sum.Add(sum, sq)
	}
	return sum
}

// NormL2 returns the integer square root of NormL2Squared, floor(sqrt(sum
// c_i^2)). Provided for parity with the specification's norm vocabulary;
// prefer NormL2Squared for bound comparisons.
func (p Poly) NormL2() *big.Int {
	return new(big.Int).Sqrt(p.NormL2Squared())
}

// NormMax returns max(|c_i|) over the symmetric integer lift.
func (p Poly) NormMax() *big.Int {
	max := big.NewInt(0)
	for _, c := range p.symmetricCoeffs() {
		abs := new(big.Int).Abs(c)
		if abs.Cmp(max) > 0 {
			max = abs
		}
	}
	return max
}

// String renders p as a sum of terms, highest degree first; used for debug
// printing only.
func (p Poly) String() string {
	var b strings.Builder
	first := true
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		if p.Coeffs[i].IsZero() {
			continue
		}
		if !first {
			b.WriteString(" + ")
		}
		first = false
		fmt.Fprintf(&b, "%s*X^%d", p.Coeffs[i].ToBigUint(), i)
	}
	if first {
		return "0"
	}
	return b.String()
}
