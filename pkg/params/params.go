// Copyright 2026 Mercredential Authors
//
// Package params generates and holds the public bases every other package
// in this module signs, commits, and proves against.
package params

import (
	"fmt"
	"io"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/mercredential/abc/pkg/curve"
)

// PublicParams is the public reference string for a single issuer: a width
// n, a pair of generators (g, g̃), and n derived base pairs (ck_i, ck̃_i)
// sharing discrete logs y_i. y is retained only so the issuer can later
// produce a VerKeyProof; nothing else reads it.
type PublicParams struct {
	N       int
	G       curve.G1
	GTilde  curve.G2
	CK      []curve.G1
	CKTilde []curve.G2
	y       []curve.Scalar
}

// New samples a fresh public-parameter set of width n.
func New(n int, rng io.Reader) (*PublicParams, error) {
	if n < 1 {
		return nil, fmt.Errorf("params: width must be >= 1, got %d", n)
	}

	g, err := curve.RandomG1(rng)
	if err != nil {
		return nil, fmt.Errorf("params: sample g: %w", err)
	}
	gTilde, err := curve.RandomG2(rng)
	if err != nil {
		return nil, fmt.Errorf("params: sample g~: %w", err)
	}

	y := make([]curve.Scalar, n)
	ckJac := make([]bls12381.G1Jac, n)
	ckTildeJac := make([]bls12381.G2Jac, n)
	for i := 0; i < n; i++ {
		yi, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("params: sample y[%d]: %w", i, err)
		}
		y[i] = yi

		ckAffine := curve.ScalarMulG1(g, yi)
		ckJac[i].FromAffine(&ckAffine)

		ckTildeAffine := curve.ScalarMulG2(gTilde, yi)
		ckTildeJac[i].FromAffine(&ckTildeAffine)
	}

	return &PublicParams{
		N:       n,
		G:       g,
		GTilde:  gTilde,
		CK:      curve.NormalizeG1(ckJac),
		CKTilde: curve.NormalizeG2(ckTildeJac),
		y:       y,
	}, nil
}

// G1Bases returns (ck_1,...,ck_n, g) — the trailing base is the contractual
// slot for the blinding scalar r in every Schnorr proof over a commitment.
func (pp *PublicParams) G1Bases() []curve.G1 {
	bases := make([]curve.G1, 0, pp.N+1)
	bases = append(bases, pp.CK...)
	bases = append(bases, pp.G)
	return bases
}

// G2Bases is the symmetric G2 counterpart of G1Bases.
func (pp *PublicParams) G2Bases() []curve.G2 {
	bases := make([]curve.G2, 0, pp.N+1)
	bases = append(bases, pp.CKTilde...)
	bases = append(bases, pp.GTilde)
	return bases
}

// YValues returns the secret exponents shared by ck and ck̃. Only the
// issuer that generated these params should call this — it feeds
// verkey.Prove, nothing else.
func (pp *PublicParams) YValues() []curve.Scalar {
	out := make([]curve.Scalar, len(pp.y))
	copy(out, pp.y)
	return out
}
