// Copyright 2026 Mercredential Authors
//
// Package aggregate implements batch verification of many credentials
// issued by a single issuer, in two flavors: AggregatePresentation over
// already-shown (randomized, unlinkable) credentials, and
// PlaintextAggregation over the original un-randomized credentials. Both
// fold their pairing equations into a single pairing.Check rather than
// performing one final exponentiation per credential.
package aggregate

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/abcerr"
	"github.com/mercredential/abc/pkg/credential"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/pairing"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/signature"
)

// AggregatePresentation batches already-shown credentials under a single
// issuer's (pp, vk).
type AggregatePresentation struct {
	Presentations []*credential.ShowCredential
}

// New wraps a slice of show outputs for batch verification.
func New(presentations []*credential.ShowCredential) *AggregatePresentation {
	return &AggregatePresentation{Presentations: presentations}
}

// VerifyAll checks every presentation independently; equivalent in result
// to BatchVerify, just without sharing a final exponentiation.
func (a *AggregatePresentation) VerifyAll(pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	for i, p := range a.Presentations {
		ok, err := p.Verify(pp, vk)
		if err != nil {
			return false, fmt.Errorf("aggregate: verify all: presentation %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// BatchVerify verifies each CommitmentProof individually — Schnorr is
// cheap — then folds every signature and commitment-consistency pairing
// into one PairingCheck. This is the deterministic batch: a forged
// equation can in principle be masked by a linear combination with
// another forged equation. BatchVerifyRandomized closes that gap.
func (a *AggregatePresentation) BatchVerify(pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	check := pairing.New(nil)
	for i, p := range a.Presentations {
		ok, err := p.Proof.Verify(pp, p.Commitment)
		if err != nil {
			return false, fmt.Errorf("aggregate: batch verify: proof %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
		vk.VerifyWithPairingChecker(check, p.Signature, p.Commitment, pp)
	}
	return check.Verify()
}

// BatchVerifyRandomized is the stronger batch variant spec.md calls for:
// each credential's pair of pairing equations is weighted by an
// independent random scalar w_k before folding, so a forged equation
// cannot be masked by cancellation against another credential's equations
// in the same batch — the gap the deterministic BatchVerify leaves open.
// Both equations of one credential share the same w_k.
//
// The signature equation e(σ2,g̃) = e(σ1,vk̃+cm̃) and the commitment
// consistency equation e(cm,g̃) = e(g,cm̃) are weighted in separate steps:
// weighting (σ1,σ2) by w leaves both sides of the signature equation
// raised to the same power w, so vk̃+cm̃ must use the credential's
// unscaled cm̃. The consistency equation is weighted separately by
// scaling cm and cm̃ together by w, which is only valid there — reusing
// one w-scaled commitment for both equations would mix a w-scaled cm̃
// into vk̃+cm̃ and break the signature equation for honest credentials.
func (a *AggregatePresentation) BatchVerifyRandomized(pp *params.PublicParams, vk signature.VerificationKey, rng io.Reader) (bool, error) {
	check := pairing.New(nil)
	for i, p := range a.Presentations {
		ok, err := p.Proof.Verify(pp, p.Commitment)
		if err != nil {
			return false, fmt.Errorf("aggregate: batch verify randomized: proof %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}

		w, err := curve.RandomScalar(rng)
		if err != nil {
			return false, fmt.Errorf("aggregate: batch verify randomized: sample weight %d: %w", i, err)
		}

		weightedSigma1 := curve.ScalarMulG1(p.Signature.Sigma1, w)
		weightedSigma2 := curve.ScalarMulG1(p.Signature.Sigma2, w)
		vkTildePlusCMTilde := curve.AddG2(vk.VKTilde, p.Commitment.CMTilde)
		check.Add(weightedSigma2, pp.GTilde)
		check.AddNegated(weightedSigma1, vkTildePlusCMTilde)

		weightedCM := p.Commitment.Scale(w)
		check.Add(weightedCM.CM, pp.GTilde)
		check.AddNegated(pp.G, weightedCM.CMTilde)
	}
	return check.Verify()
}

// AggregateCredentials shows each credential with independent random
// coins and wraps the results in an AggregatePresentation.
func AggregateCredentials(credentials []*credential.Credential, pp *params.PublicParams, rng io.Reader) (*AggregatePresentation, error) {
	presentations := make([]*credential.ShowCredential, 0, len(credentials))
	for i, c := range credentials {
		deltaR, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("aggregate: aggregate credentials: sample deltaR %d: %w", i, err)
		}
		deltaU, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("aggregate: aggregate credentials: sample deltaU %d: %w", i, err)
		}
		shown, err := c.Show(pp, deltaR, deltaU, rng)
		if err != nil {
			return nil, fmt.Errorf("aggregate: aggregate credentials: show %d: %w", i, err)
		}
		presentations = append(presentations, shown)
	}
	return New(presentations), nil
}

// PlaintextAggregation batches the original, un-randomized credentials of
// one issuer — the "non-private" path, useful for internal audits where
// linkability is not a concern.
type PlaintextAggregation struct {
	Credentials []*credential.Credential
}

// NewPlaintext wraps a slice of credentials for batch verification.
func NewPlaintext(credentials []*credential.Credential) *PlaintextAggregation {
	return &PlaintextAggregation{Credentials: credentials}
}

// VerifyAll checks each credential independently.
func (p *PlaintextAggregation) VerifyAll(pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	for i, c := range p.Credentials {
		if !c.IsSigned() {
			return false, fmt.Errorf("plaintext aggregate: verify all: credential %d: %w", i, abcerr.ErrMissingSignature)
		}
		ok, err := c.Verify(pp, vk)
		if err != nil {
			return false, fmt.Errorf("plaintext aggregate: verify all: credential %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// BatchVerify folds all signature and commitment-consistency pairings
// into one PairingCheck. Returns an error if any credential lacks a
// signature.
func (p *PlaintextAggregation) BatchVerify(pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	check := pairing.New(nil)
	for i, c := range p.Credentials {
		if !c.IsSigned() {
			return false, fmt.Errorf("plaintext aggregate: batch verify: credential %d: %w", i, abcerr.ErrMissingSignature)
		}
		ok, err := c.VerifyWithPairingChecker(check, pp, vk)
		if err != nil {
			return false, fmt.Errorf("plaintext aggregate: batch verify: credential %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}
	return check.Verify()
}
