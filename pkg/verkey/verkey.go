// Copyright 2026 Mercredential Authors
//
// Package verkey implements VerKeyProof: a zero-knowledge proof that an
// issuer's verification key and commitment bases are well-formed — that
// vk̃ = x·g̃ and each (ck_i, ck̃_i) share the declared exponent y_i — without
// revealing x or the y_i. Every check returns a plain bool; a failing
// check never panics.
package verkey

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/pairing"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/signature"
)

// Proof is the transcript of a VerKeyProof: one Schnorr pair bound to x,
// and one Schnorr pair per commitment base bound to its y_i.
type Proof struct {
	Challenge curve.Scalar

	Tx      curve.G1
	TxTilde curve.G2
	Sx      curve.Scalar

	T1 []curve.G1
	T2 []curve.G2
	S  []curve.Scalar
}

// Prove builds a VerKeyProof for secret key exponent x and base exponents
// y (one per commitment base in pp).
func Prove(pp *params.PublicParams, x curve.Scalar, y []curve.Scalar, rng io.Reader) (Proof, error) {
	if len(y) != pp.N {
		return Proof{}, fmt.Errorf("verkey: expected %d exponents, got %d", pp.N, len(y))
	}

	c, err := curve.RandomScalar(rng)
	if err != nil {
		return Proof{}, fmt.Errorf("verkey: sample challenge: %w", err)
	}

	rhoX, err := curve.RandomScalar(rng)
	if err != nil {
		return Proof{}, fmt.Errorf("verkey: sample rho_x: %w", err)
	}
	tx := curve.ScalarMulG1(pp.G, rhoX)
	txTilde := curve.ScalarMulG2(pp.GTilde, rhoX)
	var sx curve.Scalar
	sx.Mul(&c, &x)
	sx.Add(&sx, &rhoX)

	t1 := make([]curve.G1, pp.N)
	t2 := make([]curve.G2, pp.N)
	s := make([]curve.Scalar, pp.N)
	for i := 0; i < pp.N; i++ {
		rhoI, err := curve.RandomScalar(rng)
		if err != nil {
			return Proof{}, fmt.Errorf("verkey: sample rho_%d: %w", i, err)
		}
		t1[i] = curve.ScalarMulG1(pp.G, rhoI)
		t2[i] = curve.ScalarMulG2(pp.GTilde, rhoI)

		var si curve.Scalar
		si.Mul(&c, &y[i])
		si.Add(&si, &rhoI)
		s[i] = si
	}

	return Proof{
		Challenge: c,
		Tx:        tx,
		TxTilde:   txTilde,
		Sx:        sx,
		T1:        t1,
		T2:        t2,
		S:         s,
	}, nil
}

// Verify checks every Schnorr and pairing-binding equation against vk and
// pp's published bases. Any single failure rejects the whole proof.
func (p Proof) Verify(pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	if len(p.T1) != pp.N || len(p.T2) != pp.N || len(p.S) != pp.N {
		return false, fmt.Errorf("verkey: proof shape does not match pp width %d", pp.N)
	}

	// 1. c*vk~ + T~_x = s_x*g~
	var lhs curve.G2
	lhs = curve.AddG2(curve.ScalarMulG2(vk.VKTilde, p.Challenge), p.TxTilde)
	rhs := curve.ScalarMulG2(pp.GTilde, p.Sx)
	if !lhs.Equal(&rhs) {
		return false, nil
	}

	// 2. e(g, T~_x) = e(T_x, g~)
	check := pairing.New(nil)
	check.Add(pp.G, p.TxTilde)
	check.AddNegated(p.Tx, pp.GTilde)
	ok, err := check.Verify()
	if err != nil {
		return false, fmt.Errorf("verkey: x binding pairing: %w", err)
	}
	if !ok {
		return false, nil
	}

	for i := 0; i < pp.N; i++ {
		// 3a. s_i*g~ = T2_i + c*ck~_i
		siG := curve.ScalarMulG2(pp.GTilde, p.S[i])
		want := curve.AddG2(p.T2[i], curve.ScalarMulG2(pp.CKTilde[i], p.Challenge))
		if !siG.Equal(&want) {
			return false, nil
		}

		// 3b. e(T1_i, g~) = e(g, T2_i)
		pairCheck := pairing.New(nil)
		pairCheck.Add(p.T1[i], pp.GTilde)
		pairCheck.AddNegated(pp.G, p.T2[i])
		ok, err := pairCheck.Verify()
		if err != nil {
			return false, fmt.Errorf("verkey: base %d binding pairing: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}
