// Copyright 2026 Mercredential Authors
//
// Package linked composes per-credential shows with an IdentityBindingProof:
// several credentials, possibly from different issuers with different
// PublicParams, are presented together along with a proof that they all
// carry the same hidden user identifier.
package linked

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/credential"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/identitybinding"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/signature"
)

// Presentation bundles one ShowCredential per input credential with a
// single IdentityBindingProof linking them.
type Presentation struct {
	CredentialPresentations []*credential.ShowCredential
	IdentityProof           identitybinding.Proof
}

// Create shows each credential with independent random coins, then proves
// they share the same attribute-0 value. Fails before producing anything
// if the credentials' user identifiers differ.
func Create(credentials []*credential.Credential, ppList []*params.PublicParams, rng io.Reader) (*Presentation, error) {
	if len(credentials) == 0 {
		return nil, fmt.Errorf("linked: no credentials provided")
	}
	if len(credentials) != len(ppList) {
		return nil, fmt.Errorf("linked: %d credentials but %d public params", len(credentials), len(ppList))
	}

	shows := make([]*credential.ShowCredential, len(credentials))
	messages := make([][]curve.Scalar, len(credentials))
	randomness := make([]curve.Scalar, len(credentials))

	for i, cred := range credentials {
		deltaR, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("linked: sample deltaR %d: %w", i, err)
		}
		deltaU, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("linked: sample deltaU %d: %w", i, err)
		}

		shown, err := cred.Show(ppList[i], deltaR, deltaU, rng)
		if err != nil {
			return nil, fmt.Errorf("linked: show %d: %w", i, err)
		}

		shows[i] = shown
		messages[i] = cred.GetMessages()
		randomness[i] = shown.RNew
	}

	identityProof, err := identitybinding.Prove(ppList, messages, randomness, rng)
	if err != nil {
		return nil, fmt.Errorf("linked: identity binding: %w", err)
	}

	return &Presentation{CredentialPresentations: shows, IdentityProof: identityProof}, nil
}

// Verify accepts iff the identity proof verifies and every per-credential
// ShowCredential verifies against its own (pp, vk).
func (p *Presentation) Verify(ppList []*params.PublicParams, vkList []signature.VerificationKey) (bool, error) {
	if len(p.CredentialPresentations) != len(ppList) || len(ppList) != len(vkList) {
		return false, fmt.Errorf("linked: verify: mismatched lengths (presentations=%d, pp=%d, vk=%d)", len(p.CredentialPresentations), len(ppList), len(vkList))
	}

	commitments := make([]commitment.Commitment, len(p.CredentialPresentations))
	for i, shown := range p.CredentialPresentations {
		commitments[i] = shown.Commitment
	}

	identityOK, err := p.IdentityProof.Verify(ppList, commitments)
	if err != nil {
		return false, fmt.Errorf("linked: verify: identity proof: %w", err)
	}
	if !identityOK {
		return false, nil
	}

	for i, shown := range p.CredentialPresentations {
		ok, err := shown.Verify(ppList[i], vkList[i])
		if err != nil {
			return false, fmt.Errorf("linked: verify: presentation %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}
