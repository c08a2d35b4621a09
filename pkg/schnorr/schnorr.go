// Copyright 2026 Mercredential Authors
//
// Package schnorr implements a generic multi-base Schnorr proof of knowledge
// over G1: given bases B and a claimed opening Y = Σ x_i·b_i, prove
// knowledge of x without revealing it. Every higher-level proof in this
// module (CommitmentProof, IdentityBindingProof, VerKeyProof) is built on
// this primitive rather than reimplementing the sigma protocol.
package schnorr

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/curve"
)

// State is the prover's half of a Schnorr commitment: the bases it was
// taken over, the random blinding vector ρ, and the resulting commitment T.
type State struct {
	Bases []curve.G1
	Rho   []curve.Scalar
	T     curve.G1
}

// Commit samples a fresh blinding vector ρ ∈ F^k and returns T = Σ ρ_i·b_i.
func Commit(bases []curve.G1, rng io.Reader) (State, error) {
	rho := make([]curve.Scalar, len(bases))
	for i := range rho {
		r, err := curve.RandomScalar(rng)
		if err != nil {
			return State{}, fmt.Errorf("schnorr: sample blinding %d: %w", i, err)
		}
		rho[i] = r
	}
	return CommitWithPreparedBlindings(bases, rho)
}

// CommitWithPreparedBlindings builds a Schnorr commitment from a
// caller-supplied blinding vector. IdentityBindingProof uses this to share
// one blinding across several otherwise-independent commitments.
func CommitWithPreparedBlindings(bases []curve.G1, rho []curve.Scalar) (State, error) {
	if len(bases) != len(rho) {
		return State{}, fmt.Errorf("schnorr: %d bases vs %d blindings", len(bases), len(rho))
	}
	t, err := curve.MSMG1(bases, rho)
	if err != nil {
		return State{}, fmt.Errorf("schnorr: commit msm: %w", err)
	}

	rhoCopy := make([]curve.Scalar, len(rho))
	copy(rhoCopy, rho)
	basesCopy := make([]curve.G1, len(bases))
	copy(basesCopy, bases)

	return State{Bases: basesCopy, Rho: rhoCopy, T: t}, nil
}

// Prove computes the response vector s_i = ρ_i + c·x_i for the exponents x
// the prover claims to know, under challenge c.
func (st State) Prove(x []curve.Scalar, c curve.Scalar) ([]curve.Scalar, error) {
	if len(x) != len(st.Rho) {
		return nil, fmt.Errorf("schnorr: %d exponents vs %d blindings", len(x), len(st.Rho))
	}
	s := make([]curve.Scalar, len(x))
	for i := range x {
		var cx curve.Scalar
		cx.Mul(&c, &x[i])
		s[i].Add(&st.Rho[i], &cx)
	}
	return s, nil
}

// Verify accepts iff Σ s_i·b_i = T + c·Y.
func Verify(bases []curve.G1, y curve.G1, t curve.G1, s []curve.Scalar, c curve.Scalar) (bool, error) {
	if len(bases) != len(s) {
		return false, fmt.Errorf("schnorr: %d bases vs %d responses", len(bases), len(s))
	}
	lhs, err := curve.MSMG1(bases, s)
	if err != nil {
		return false, fmt.Errorf("schnorr: verify msm: %w", err)
	}
	rhs := curve.AddG1(t, curve.ScalarMulG1(y, c))
	return lhs.Equal(&rhs), nil
}
