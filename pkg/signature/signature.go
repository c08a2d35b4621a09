// Copyright 2026 Mercredential Authors
//
// Package signature implements the mercurial signature scheme: an issuer
// blind-signs a commitment, and the resulting signature can later be
// re-randomized in lockstep with a re-randomized commitment, so a shown
// credential is unlinkable to its issuance transcript while remaining
// verifiable under the same verification key.
package signature

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/pairing"
	"github.com/mercredential/abc/pkg/params"
)

// SecretKey is the issuer's signing key: x·g in G1, plus the retained
// exponent x used only to produce a VerKeyProof.
type SecretKey struct {
	SK curve.G1
	x  curve.Scalar
}

// VerificationKey is the public counterpart x·g̃ published alongside pp.
type VerificationKey struct {
	VKTilde curve.G2
}

// Signature is a mercurial signature (σ1, σ2) ∈ G1×G1 over a commitment.
type Signature struct {
	Sigma1 curve.G1
	Sigma2 curve.G1
}

// GenerateKeys samples x ← F and derives the matching key pair.
func GenerateKeys(pp *params.PublicParams, rng io.Reader) (SecretKey, VerificationKey, error) {
	x, err := curve.RandomScalar(rng)
	if err != nil {
		return SecretKey{}, VerificationKey{}, fmt.Errorf("signature: sample x: %w", err)
	}
	sk := SecretKey{SK: curve.ScalarMulG1(pp.G, x), x: x}
	vk := VerificationKey{VKTilde: curve.ScalarMulG2(pp.GTilde, x)}
	return sk, vk, nil
}

// XValue returns the retained secret exponent. Only an issuer producing a
// VerKeyProof over its own key should call this.
func (sk SecretKey) XValue() curve.Scalar {
	return sk.x
}

// Sign blind-signs cm: sample u ← F, σ1 = u·g, σ2 = u·(cm + sk).
func (sk SecretKey) Sign(cm commitment.Commitment, pp *params.PublicParams, rng io.Reader) (Signature, error) {
	u, err := curve.RandomScalar(rng)
	if err != nil {
		return Signature{}, fmt.Errorf("signature: sample u: %w", err)
	}
	sigma1 := curve.ScalarMulG1(pp.G, u)
	cmPlusSK := curve.AddG1(cm.CM, sk.SK)
	sigma2 := curve.ScalarMulG1(cmPlusSK, u)
	return Signature{Sigma1: sigma1, Sigma2: sigma2}, nil
}

// Verify checks both pairing equations in a fresh accumulator of its own,
// with one final exponentiation. VerifyWithPairingChecker is the
// batch-friendly variant that folds them into a shared accumulator.
func (vk VerificationKey) Verify(sig Signature, cm commitment.Commitment, pp *params.PublicParams) (bool, error) {
	check := pairing.New(nil)
	vkTildePlusCMTilde := curve.AddG2(vk.VKTilde, cm.CMTilde)
	check.Add(sig.Sigma2, pp.GTilde)
	check.AddNegated(sig.Sigma1, vkTildePlusCMTilde)
	check.Add(cm.CM, pp.GTilde)
	check.AddNegated(pp.G, cm.CMTilde)
	return check.Verify()
}

// VerifyWithPairingChecker folds the same two equations into a
// caller-supplied accumulator instead of performing its own final
// exponentiation, for use in batch verification. It never panics: a
// malformed signature simply fails to satisfy the accumulated equations.
func (vk VerificationKey) VerifyWithPairingChecker(check *pairing.Check, sig Signature, cm commitment.Commitment, pp *params.PublicParams) {
	vkTildePlusCMTilde := curve.AddG2(vk.VKTilde, cm.CMTilde)
	check.Add(sig.Sigma2, pp.GTilde)
	check.AddNegated(sig.Sigma1, vkTildePlusCMTilde)
	check.Add(cm.CM, pp.GTilde)
	check.AddNegated(pp.G, cm.CMTilde)
}

// Randomize re-keys the signature to track a commitment re-randomized by
// δr under a fresh blinding δu: u → u·δu, cm → cm + δr·g.
func (sig Signature) Randomize(deltaR, deltaU curve.Scalar) Signature {
	sigma1 := curve.ScalarMulG1(sig.Sigma1, deltaU)

	var deltaRU curve.Scalar
	deltaRU.Mul(&deltaR, &deltaU)
	term1 := curve.ScalarMulG1(sig.Sigma1, deltaRU)
	term2 := curve.ScalarMulG1(sig.Sigma2, deltaU)
	sigma2 := curve.AddG1(term1, term2)

	return Signature{Sigma1: sigma1, Sigma2: sigma2}
}
