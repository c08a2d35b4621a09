// Copyright 2026 Mercredential Authors
//
// Package protocol provides the end-to-end facade over the credential
// stack: setup, obtain, issue, show, verify, and the issuer key-proof
// pair. It threads an optional metrics.Collectors through each step.
package protocol

import (
	"fmt"
	"io"
	"time"

	"github.com/mercredential/abc/pkg/abcerr"
	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/credential"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/metrics"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/proof"
	"github.com/mercredential/abc/pkg/signature"
	"github.com/mercredential/abc/pkg/verkey"
)

// Protocol bundles the public parameters and commitment key width n that
// every call in this package operates over.
type Protocol struct {
	PP      *params.PublicParams
	Key     commitment.Key
	Metrics *metrics.Collectors
}

// Setup samples fresh public parameters of width n and an issuer key pair.
func Setup(n int, rng io.Reader) (*Protocol, signature.SecretKey, signature.VerificationKey, error) {
	pp, err := params.New(n, rng)
	if err != nil {
		return nil, signature.SecretKey{}, signature.VerificationKey{}, fmt.Errorf("protocol: setup: %w", err)
	}
	sk, vk, err := signature.GenerateKeys(pp, rng)
	if err != nil {
		return nil, signature.SecretKey{}, signature.VerificationKey{}, fmt.Errorf("protocol: setup: %w", err)
	}
	return &Protocol{PP: pp, Key: commitment.KeyFromParams(pp)}, sk, vk, nil
}

// WithMetrics attaches a collectors instance; returns the receiver for
// chaining.
func (p *Protocol) WithMetrics(m *metrics.Collectors) *Protocol {
	p.Metrics = m
	return p
}

// Obtain commits a user's messages under a fresh blinding and returns the
// Committed credential plus an opening proof ready to send to an issuer.
func (p *Protocol) Obtain(messages []curve.Scalar, rng io.Reader) (*credential.Credential, proof.CommitmentProof, error) {
	r, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, proof.CommitmentProof{}, fmt.Errorf("protocol: obtain: sample r: %w", err)
	}
	cred, err := credential.New(p.Key, p.PP, messages, r)
	if err != nil {
		return nil, proof.CommitmentProof{}, fmt.Errorf("protocol: obtain: %w", err)
	}
	pi, err := cred.ProveCommitment(p.PP, rng)
	if err != nil {
		return nil, proof.CommitmentProof{}, fmt.Errorf("protocol: obtain: %w", err)
	}
	return cred, pi, nil
}

// Issue verifies the opening proof and, if it holds, signs the
// credential's commitment and attaches the signature. Rejects with
// abcerr.ErrInvalidProof when the proof fails.
func (p *Protocol) Issue(sk signature.SecretKey, cred *credential.Credential, pi proof.CommitmentProof, rng io.Reader) error {
	ok, err := pi.Verify(p.PP, cred.Commitment())
	if err != nil {
		return fmt.Errorf("protocol: issue: %w", err)
	}
	if !ok {
		return fmt.Errorf("protocol: issue: %w", abcerr.ErrInvalidProof)
	}

	sig, err := sk.Sign(cred.Commitment(), p.PP, rng)
	if err != nil {
		return fmt.Errorf("protocol: issue: sign: %w", err)
	}
	cred.AddSignature(sig)

	if p.Metrics != nil {
		p.Metrics.CredentialsIssued.Inc()
	}
	return nil
}

// Show re-randomizes cred for presentation.
func (p *Protocol) Show(cred *credential.Credential, rng io.Reader) (*credential.ShowCredential, error) {
	deltaR, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("protocol: show: sample deltaR: %w", err)
	}
	deltaU, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("protocol: show: sample deltaU: %w", err)
	}

	shown, err := cred.Show(p.PP, deltaR, deltaU, rng)
	if err != nil {
		return nil, fmt.Errorf("protocol: show: %w", err)
	}

	if p.Metrics != nil {
		p.Metrics.CredentialsShown.Inc()
	}
	return shown, nil
}

// Verify checks a presented ShowCredential against vk, timing the call
// and counting the pairing check it performs when metrics are attached.
func (p *Protocol) Verify(shown *credential.ShowCredential, vk signature.VerificationKey) (bool, error) {
	start := time.Now()
	ok, err := shown.Verify(p.PP, vk)
	if p.Metrics != nil {
		p.Metrics.VerifyDuration.Observe(time.Since(start).Seconds())
		p.Metrics.PairingChecksPerformed.Inc()
	}
	if err != nil {
		return false, fmt.Errorf("protocol: verify: %w", err)
	}
	return ok, nil
}

// ProveKeyCorrectness builds a VerKeyProof that this protocol's issuer key
// and bases are well-formed with respect to a shared x and the y_i.
func (p *Protocol) ProveKeyCorrectness(sk signature.SecretKey, rng io.Reader) (verkey.Proof, error) {
	return verkey.Prove(p.PP, sk.XValue(), p.PP.YValues(), rng)
}

// VerifyKeyCorrectness checks a VerKeyProof against vk, counting the
// pairing checks it performs when metrics are attached.
func (p *Protocol) VerifyKeyCorrectness(pi verkey.Proof, vk signature.VerificationKey) (bool, error) {
	ok, err := pi.Verify(p.PP, vk)
	if p.Metrics != nil {
		p.Metrics.PairingChecksPerformed.Add(float64(1 + len(pi.T1)))
	}
	return ok, err
}
