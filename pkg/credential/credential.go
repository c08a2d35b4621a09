// Copyright 2026 Mercredential Authors
//
// Package credential implements the credential lifecycle: an attribute
// vector bound into a commitment, optionally signed by an issuer, and
// re-randomizable into an unlinkable ShowCredential for presentation.
//
// Only two states are observable from outside the package: Committed (has
// a commitment, no signature) and Signed (has both). Operations that
// require Signed return an error instead of panicking when called on a
// Committed credential: Show returns abcerr.ErrInvalidCredentialState and
// VerifyWithPairingChecker returns abcerr.ErrMissingSignature.
package credential

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/abcerr"
	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/pairing"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/proof"
	"github.com/mercredential/abc/pkg/signature"
)

// Credential carries a user's hidden attribute vector, the blinding that
// opens its commitment, and an optional issuer signature.
type Credential struct {
	messages   []curve.Scalar
	r          curve.Scalar
	commitment commitment.Commitment
	sig        *signature.Signature
}

// New commits to messages under the blinding r and returns a Committed
// credential.
func New(key commitment.Key, pp *params.PublicParams, messages []curve.Scalar, r curve.Scalar) (*Credential, error) {
	cm, err := key.Commit(pp, messages, r)
	if err != nil {
		return nil, fmt.Errorf("credential: commit: %w", err)
	}
	msgCopy := make([]curve.Scalar, len(messages))
	copy(msgCopy, messages)
	return &Credential{messages: msgCopy, r: r, commitment: cm}, nil
}

// IsSigned reports whether the credential has moved to the Signed state.
func (c *Credential) IsSigned() bool {
	return c.sig != nil
}

// Commitment returns the credential's current commitment.
func (c *Credential) Commitment() commitment.Commitment {
	return c.commitment
}

// GetMessages returns the hidden attribute vector.
func (c *Credential) GetMessages() []curve.Scalar {
	out := make([]curve.Scalar, len(c.messages))
	copy(out, c.messages)
	return out
}

// GetUserID returns the first attribute slot, the conventional identity
// anchor used by IdentityBindingProof.
func (c *Credential) GetUserID() (curve.Scalar, error) {
	if len(c.messages) == 0 {
		return curve.Scalar{}, fmt.Errorf("credential: no messages to read a user id from")
	}
	return c.messages[0], nil
}

// ProveCommitment emits a CommitmentProof bound to the current commitment.
// Pure; callable in any state.
func (c *Credential) ProveCommitment(pp *params.PublicParams, rng io.Reader) (proof.CommitmentProof, error) {
	return proof.Prove(pp, c.messages, c.r, rng)
}

// AddSignature moves the credential Committed → Signed. The caller is
// expected to have already verified sig against the credential's
// commitment; AddSignature performs no validity check of its own.
func (c *Credential) AddSignature(sig signature.Signature) {
	s := sig
	c.sig = &s
}

// Verify returns false if the credential is unsigned; otherwise runs the
// two-pairing signature check.
func (c *Credential) Verify(pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	if c.sig == nil {
		return false, nil
	}
	return vk.Verify(*c.sig, c.commitment, pp)
}

// VerifyWithPairingChecker folds this credential's signature and
// commitment-consistency pairings into a shared accumulator, for use by
// PlaintextAggregation. The caller must have already confirmed the
// credential is signed.
func (c *Credential) VerifyWithPairingChecker(check *pairing.Check, pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	if c.sig == nil {
		return false, fmt.Errorf("credential: verify with pairing checker: %w", abcerr.ErrMissingSignature)
	}
	vk.VerifyWithPairingChecker(check, *c.sig, c.commitment, pp)
	return true, nil
}

// Show produces a fresh, unlinkable ShowCredential. It fails with
// abcerr.ErrInvalidCredentialState if the credential has not yet been
// signed, per the state machine's observable-states contract.
func (c *Credential) Show(pp *params.PublicParams, deltaR, deltaU curve.Scalar, rng io.Reader) (*ShowCredential, error) {
	if c.sig == nil {
		return nil, fmt.Errorf("credential: show: %w", abcerr.ErrInvalidCredentialState)
	}

	var newR curve.Scalar
	newR.Add(&c.r, &deltaR)

	randomizedCM := c.commitment.Randomize(pp, deltaR)
	randomizedSig := c.sig.Randomize(deltaR, deltaU)

	pi, err := proof.Prove(pp, c.messages, newR, rng)
	if err != nil {
		return nil, fmt.Errorf("credential: show: prove: %w", err)
	}

	return &ShowCredential{
		Commitment: randomizedCM,
		Signature:  randomizedSig,
		Proof:      pi,
		RNew:       newR,
	}, nil
}

// ShowCredential is the output of Show: a re-randomized commitment, its
// matching re-randomized signature, and an opening proof — everything a
// verifier needs, none of it linkable to the issuance transcript. RNew is
// the blinding r+δr that opens Commitment; packages composing several
// shows into a joint proof (identitybinding, linked) need it alongside
// the credential's own messages.
type ShowCredential struct {
	Commitment commitment.Commitment
	Signature  signature.Signature
	Proof      proof.CommitmentProof
	RNew       curve.Scalar
}

// Verify checks the opening proof and the signature together.
func (s *ShowCredential) Verify(pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	proofOK, err := s.Proof.Verify(pp, s.Commitment)
	if err != nil {
		return false, fmt.Errorf("show credential: proof: %w", err)
	}
	if !proofOK {
		return false, nil
	}
	return vk.Verify(s.Signature, s.Commitment, pp)
}

// VerifyWithPairingChecker folds the signature and commitment-consistency
// pairings into a shared accumulator and verifies the opening proof
// directly (Schnorr is cheap — only pairings are batched).
func (s *ShowCredential) VerifyWithPairingChecker(check *pairing.Check, pp *params.PublicParams, vk signature.VerificationKey) (bool, error) {
	proofOK, err := s.Proof.Verify(pp, s.Commitment)
	if err != nil {
		return false, fmt.Errorf("show credential: proof: %w", err)
	}
	if !proofOK {
		return false, nil
	}
	vk.VerifyWithPairingChecker(check, s.Signature, s.Commitment, pp)
	return true, nil
}
