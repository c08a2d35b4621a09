// Copyright 2026 Mercredential Authors
//
// Package commitment implements the dual-group Pedersen-style commitment
// used to bind an attribute vector before it is signed.
package commitment

import (
	"fmt"

	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/params"
)

// Commitment is the pair (cm, cm̃) ∈ G1×G2 committing to the same attribute
// vector and blinding scalar under g1_bases and g_tilde_bases respectively.
// A verifier can always check e(cm, g̃) = e(g, cm̃) without knowing the
// opening; callers do not carry r alongside a Commitment — track blinding
// separately.
type Commitment struct {
	CM      curve.G1
	CMTilde curve.G2
}

// Randomize returns a fresh commitment to the same opening shifted by delta
// in the blinding slot: cm + δ·g, cm̃ + δ·g̃.
func (c Commitment) Randomize(pp *params.PublicParams, delta curve.Scalar) Commitment {
	return Commitment{
		CM:      curve.AddG1(c.CM, curve.ScalarMulG1(pp.G, delta)),
		CMTilde: curve.AddG2(c.CMTilde, curve.ScalarMulG2(pp.GTilde, delta)),
	}
}

// Scale returns w·cm, w·cm̃ — used by randomized batch verification to
// weight a credential's pairing equations by an independent random
// scalar before folding them into a shared accumulator.
func (c Commitment) Scale(w curve.Scalar) Commitment {
	return Commitment{
		CM:      curve.ScalarMulG1(c.CM, w),
		CMTilde: curve.ScalarMulG2(c.CMTilde, w),
	}
}

// Key is a view of (ck, ck̃) detached from PublicParams — it carries no
// secret exponents and is safe to share with the party computing a
// commitment before a PublicParams reference is otherwise needed.
type Key struct {
	CK      []curve.G1
	CKTilde []curve.G2
}

// KeyFromParams extracts the commitment key embedded in pp.
func KeyFromParams(pp *params.PublicParams) Key {
	ck := make([]curve.G1, len(pp.CK))
	copy(ck, pp.CK)
	ckTilde := make([]curve.G2, len(pp.CKTilde))
	copy(ckTilde, pp.CKTilde)
	return Key{CK: ck, CKTilde: ckTilde}
}

// Commit computes cm = Σ m_i·ck_i + r·g and the symmetric cm̃.
func (k Key) Commit(pp *params.PublicParams, messages []curve.Scalar, r curve.Scalar) (Commitment, error) {
	if len(messages) != len(k.CK) {
		return Commitment{}, fmt.Errorf("commitment: expected %d messages, got %d", len(k.CK), len(messages))
	}

	msm, err := curve.MSMG1(k.CK, messages)
	if err != nil {
		return Commitment{}, fmt.Errorf("commitment: msm g1: %w", err)
	}
	cm := curve.AddG1(msm, curve.ScalarMulG1(pp.G, r))

	msmTilde, err := curve.MSMG2(k.CKTilde, messages)
	if err != nil {
		return Commitment{}, fmt.Errorf("commitment: msm g2: %w", err)
	}
	cmTilde := curve.AddG2(msmTilde, curve.ScalarMulG2(pp.GTilde, r))

	return Commitment{CM: cm, CMTilde: cmTilde}, nil
}

// Consistent checks the pairing invariant e(cm, g̃) = e(g, cm̃) that holds
// for every well-formed commitment regardless of its opening.
func Consistent(c Commitment, pp *params.PublicParams) (bool, error) {
	lhs, err := curve.Pair(c.CM, pp.GTilde)
	if err != nil {
		return false, fmt.Errorf("commitment: pair lhs: %w", err)
	}
	rhs, err := curve.Pair(pp.G, c.CMTilde)
	if err != nil {
		return false, fmt.Errorf("commitment: pair rhs: %w", err)
	}
	return lhs.Equal(&rhs), nil
}
