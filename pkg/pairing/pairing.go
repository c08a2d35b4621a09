// Copyright 2026 Mercredential Authors
//
// Package pairing implements the PairingCheck accumulator: a batch of
// G1×G2 pairs verified with a single multi-Miller-loop and one final
// exponentiation, instead of one final exponentiation per pair. Every
// batch-verification routine in this module (Signature, AggregatePresentation,
// LinkedCredentialPresentation) folds its pairing equations through this
// type rather than calling curve.Pair per equation.
package pairing

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/mercredential/abc/pkg/curve"
)

// Check accumulates pairs (A_k, B_k) and a running target in GT. Verify
// accepts iff Π e(A_k, B_k) = target.
type Check struct {
	a      []curve.G1
	b      []curve.G2
	target curve.GT
}

// New starts an empty accumulator. If target is nil the identity of GT is
// used, matching the contract's "running GT scalar (default 1)".
func New(target *curve.GT) *Check {
	c := &Check{}
	if target != nil {
		c.target = *target
	} else {
		c.target.SetOne()
	}
	return c
}

// Add appends a single pair to the accumulator.
func (c *Check) Add(a curve.G1, b curve.G2) {
	c.a = append(c.a, a)
	c.b = append(c.b, b)
}

// AddNegated appends (-a, b), the common idiom for moving a pairing factor
// to the left-hand side of an equality: e(x,y) = e(p,q) becomes
// e(x,y)·e(-p,q) = 1.
func (c *Check) AddNegated(a curve.G1, b curve.G2) {
	c.Add(curve.NegG1(a), b)
}

// Merge folds other into c: pair lists concatenate, targets multiply.
func (c *Check) Merge(other *Check) {
	c.a = append(c.a, other.a...)
	c.b = append(c.b, other.b...)
	c.target.Mul(&c.target, &other.target)
}

// Verify runs the accumulated pairs through a single multi-Miller-loop and
// one final exponentiation, then compares against the target.
func (c *Check) Verify() (bool, error) {
	if len(c.a) == 0 {
		var one curve.GT
		one.SetOne()
		return one.Equal(&c.target), nil
	}
	ml, err := bls12381.MillerLoop(c.a, c.b)
	if err != nil {
		return false, fmt.Errorf("pairing: miller loop: %w", err)
	}
	result := bls12381.FinalExponentiation(&ml)
	return result.Equal(&c.target), nil
}

// Len reports how many pairs are currently queued.
func (c *Check) Len() int {
	return len(c.a)
}
