// Copyright 2026 Mercredential Authors
//
// Package curve wraps the bls12-381 bilinear group exposed by gnark-crypto
// and provides the scalar-sampling and multi-scalar-multiplication helpers
// every other package in this module builds on. Outside curve, only params
// (Jacobian batch normalization) and pairing (Miller loop and final
// exponentiation) import gnark-crypto directly.
package curve

import (
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Scalar is an element of the bls12-381 scalar field Fr.
type Scalar = fr.Element

// G1 and G2 are the source groups of the pairing; GT is the target group.
type G1 = bls12381.G1Affine
type G2 = bls12381.G2Affine
type GT = bls12381.GT

var (
	bootstrapOnce sync.Once
	baseG1        G1
	baseG2        G2
)

// bootstrap initializes the fixed base points used to derive random group
// elements. Safe to call repeatedly; runs once per process.
func bootstrap() {
	bootstrapOnce.Do(func() {
		_, _, baseG1, baseG2 = bls12381.Generators()
	})
}

// scalarFieldBytes is the byte length read from the random source per
// sampled scalar. Oversampling relative to the 32-byte field element before
// reducing modulo the field order keeps sampling bias negligible.
const scalarFieldBytes = 64

// RandomScalar draws a uniform element of Fr from rng.
func RandomScalar(rng io.Reader) (Scalar, error) {
	var buf [scalarFieldBytes]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return Scalar{}, fmt.Errorf("curve: read random scalar: %w", err)
	}
	var s Scalar
	s.SetBytes(buf[:])
	return s, nil
}

// RandomG1 draws a fresh, independent point of G1 by scalar-multiplying the
// fixed generator by a freshly sampled scalar.
func RandomG1(rng io.Reader) (G1, error) {
	bootstrap()
	s, err := RandomScalar(rng)
	if err != nil {
		return G1{}, err
	}
	return ScalarMulG1(baseG1, s), nil
}

// RandomG2 is the G2 counterpart of RandomG1.
func RandomG2(rng io.Reader) (G2, error) {
	bootstrap()
	s, err := RandomScalar(rng)
	if err != nil {
		return G2{}, err
	}
	return ScalarMulG2(baseG2, s), nil
}

// Generators returns the fixed base points bls12-381 publishes for G1, G2.
func Generators() (G1, G2) {
	bootstrap()
	return baseG1, baseG2
}

// ScalarMulG1 returns s*p.
func ScalarMulG1(p G1, s Scalar) G1 {
	var sBig big.Int
	s.BigInt(&sBig)
	var out G1
	out.ScalarMultiplication(&p, &sBig)
	return out
}

// ScalarMulG2 returns s*p.
func ScalarMulG2(p G2, s Scalar) G2 {
	var sBig big.Int
	s.BigInt(&sBig)
	var out G2
	out.ScalarMultiplication(&p, &sBig)
	return out
}

// AddG1 returns a+b.
func AddG1(a, b G1) G1 {
	var out G1
	out.Add(&a, &b)
	return out
}

// AddG2 returns a+b.
func AddG2(a, b G2) G2 {
	var out G2
	out.Add(&a, &b)
	return out
}

// NegG1 returns -p.
func NegG1(p G1) G1 {
	var out G1
	out.Neg(&p)
	return out
}

// NegG2 returns -p.
func NegG2(p G2) G2 {
	var out G2
	out.Neg(&p)
	return out
}

// MSMG1 computes the multi-scalar multiplication Σ scalars[i]*bases[i] in G1.
func MSMG1(bases []G1, scalars []Scalar) (G1, error) {
	if len(bases) != len(scalars) {
		return G1{}, fmt.Errorf("curve: msm g1: %d bases vs %d scalars", len(bases), len(scalars))
	}
	var out G1
	if len(bases) == 0 {
		out.X.SetZero()
		out.Y.SetZero()
		return out, nil
	}
	if _, err := out.MultiExp(bases, scalars, ecc.MultiExpConfig{}); err != nil {
		return G1{}, fmt.Errorf("curve: msm g1: %w", err)
	}
	return out, nil
}

// MSMG2 is the G2 counterpart of MSMG1.
func MSMG2(bases []G2, scalars []Scalar) (G2, error) {
	if len(bases) != len(scalars) {
		return G2{}, fmt.Errorf("curve: msm g2: %d bases vs %d scalars", len(bases), len(scalars))
	}
	var out G2
	if len(bases) == 0 {
		out.X.SetZero()
		out.Y.SetZero()
		return out, nil
	}
	if _, err := out.MultiExp(bases, scalars, ecc.MultiExpConfig{}); err != nil {
		return G2{}, fmt.Errorf("curve: msm g2: %w", err)
	}
	return out, nil
}

// NormalizeG1 batch-converts Jacobian G1 points to affine form.
func NormalizeG1(points []bls12381.G1Jac) []G1 {
	return bls12381.BatchJacobianToAffineG1(points)
}

// NormalizeG2 is the G2 counterpart of NormalizeG1.
func NormalizeG2(points []bls12381.G2Jac) []G2 {
	return bls12381.BatchJacobianToAffineG2(points)
}

// Pair computes a single bilinear pairing e(a, b).
func Pair(a G1, b G2) (GT, error) {
	result, err := bls12381.Pair([]G1{a}, []G2{b})
	if err != nil {
		return GT{}, fmt.Errorf("curve: pair: %w", err)
	}
	return result, nil
}
