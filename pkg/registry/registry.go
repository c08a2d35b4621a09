// Copyright 2026 Mercredential Authors
//
// Package registry provides the thin bookkeeping collaborators around the
// credential core: a MultiIssuerSystem managing several issuers' protocol
// instances, and a User tracking credentials obtained from them, keyed by
// (issuer ID, credential ID). Neither type touches the network or a
// filesystem; both are in-memory collaborators over pkg/protocol.
package registry

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/credential"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/linked"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/protocol"
	"github.com/mercredential/abc/pkg/signature"
)

// Issuer bundles a protocol instance with its signing key pair.
type Issuer struct {
	ID   int
	P    *protocol.Protocol
	SK   signature.SecretKey
	VK   signature.VerificationKey
}

// NewIssuer sets up a fresh protocol of width numAttributes for issuer id.
func NewIssuer(id, numAttributes int, rng io.Reader) (*Issuer, error) {
	p, sk, vk, err := protocol.Setup(numAttributes, rng)
	if err != nil {
		return nil, fmt.Errorf("registry: new issuer %d: %w", id, err)
	}
	return &Issuer{ID: id, P: p, SK: sk, VK: vk}, nil
}

// MultiIssuerSystem manages a collection of issuers keyed by ID.
type MultiIssuerSystem struct {
	issuers map[int]*Issuer
}

// NewMultiIssuerSystem returns an empty registry.
func NewMultiIssuerSystem() *MultiIssuerSystem {
	return &MultiIssuerSystem{issuers: make(map[int]*Issuer)}
}

// AddIssuer registers an issuer, keyed by its own ID.
func (m *MultiIssuerSystem) AddIssuer(issuer *Issuer) {
	m.issuers[issuer.ID] = issuer
}

// SetupIssuers generates issuerCount fresh issuers, one per entry of
// attributesPerIssuer (the last entry is reused once the list is
// exhausted, falling back to 10 if the list is empty).
func (m *MultiIssuerSystem) SetupIssuers(issuerCount int, attributesPerIssuer []int, rng io.Reader) error {
	for i := 0; i < issuerCount; i++ {
		attrCount := 10
		switch {
		case i < len(attributesPerIssuer):
			attrCount = attributesPerIssuer[i]
		case len(attributesPerIssuer) > 0:
			attrCount = attributesPerIssuer[len(attributesPerIssuer)-1]
		}

		issuer, err := NewIssuer(i, attrCount, rng)
		if err != nil {
			return fmt.Errorf("registry: setup issuers: %w", err)
		}
		m.AddIssuer(issuer)
	}
	return nil
}

// GetIssuer looks up an issuer by ID.
func (m *MultiIssuerSystem) GetIssuer(id int) (*Issuer, bool) {
	issuer, ok := m.issuers[id]
	return issuer, ok
}

// CredentialKey identifies one of a user's credentials by the issuer that
// signed it and a caller-chosen credential ID. It is a lookup key only —
// no ordering between keys is implied.
type CredentialKey struct {
	IssuerID     int
	CredentialID int
}

// User tracks a hidden identifier and the credentials obtained under it
// from potentially many issuers.
type User struct {
	ID          curve.Scalar
	credentials map[CredentialKey]*credential.Credential
}

// NewUser samples a fresh random identifier.
func NewUser(rng io.Reader) (*User, error) {
	id, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("registry: new user: %w", err)
	}
	return &User{ID: id, credentials: make(map[CredentialKey]*credential.Credential)}, nil
}

// ObtainCredential requests a credential from issuerID, prepending the
// user's ID to attributes, and stores the resulting signed credential
// under (issuerID, credentialID).
func (u *User) ObtainCredential(issuerID, credentialID int, system *MultiIssuerSystem, attributes []curve.Scalar, rng io.Reader) error {
	issuer, ok := system.GetIssuer(issuerID)
	if !ok {
		return fmt.Errorf("registry: obtain credential: issuer %d not found", issuerID)
	}

	all := make([]curve.Scalar, 0, len(attributes)+1)
	all = append(all, u.ID)
	all = append(all, attributes...)

	if len(all) != issuer.P.PP.N {
		return fmt.Errorf("registry: obtain credential: attribute count mismatch: expected %d, got %d", issuer.P.PP.N, len(all))
	}

	cred, pi, err := issuer.P.Obtain(all, rng)
	if err != nil {
		return fmt.Errorf("registry: obtain credential: %w", err)
	}
	if err := issuer.P.Issue(issuer.SK, cred, pi, rng); err != nil {
		return fmt.Errorf("registry: obtain credential: %w", err)
	}

	u.credentials[CredentialKey{IssuerID: issuerID, CredentialID: credentialID}] = cred
	return nil
}

// ShowCredentials presents the credentials named by keys, one
// ShowCredential per key, in the same order.
func (u *User) ShowCredentials(keys []CredentialKey, system *MultiIssuerSystem, rng io.Reader) ([]*credential.ShowCredential, error) {
	presentations := make([]*credential.ShowCredential, 0, len(keys))
	for _, key := range keys {
		cred, ok := u.credentials[key]
		if !ok {
			return nil, fmt.Errorf("registry: show credentials: credential (%d, %d) not found", key.IssuerID, key.CredentialID)
		}
		issuer, ok := system.GetIssuer(key.IssuerID)
		if !ok {
			return nil, fmt.Errorf("registry: show credentials: issuer %d not found", key.IssuerID)
		}
		shown, err := issuer.P.Show(cred, rng)
		if err != nil {
			return nil, fmt.Errorf("registry: show credentials: %w", err)
		}
		presentations = append(presentations, shown)
	}
	return presentations, nil
}

// ShowLinkedCredentials builds a linked.Presentation across the
// credentials named by keys, proving they all share the user's identity.
func (u *User) ShowLinkedCredentials(keys []CredentialKey, system *MultiIssuerSystem, rng io.Reader) (*linked.Presentation, error) {
	creds, ppList, err := u.resolveCredentials(keys, system)
	if err != nil {
		return nil, fmt.Errorf("registry: show linked credentials: %w", err)
	}
	return linked.Create(creds, ppList, rng)
}

func (u *User) resolveCredentials(keys []CredentialKey, system *MultiIssuerSystem) ([]*credential.Credential, []*params.PublicParams, error) {
	creds := make([]*credential.Credential, 0, len(keys))
	ppList := make([]*params.PublicParams, 0, len(keys))
	for _, key := range keys {
		cred, ok := u.credentials[key]
		if !ok {
			return nil, nil, fmt.Errorf("credential (%d, %d) not found", key.IssuerID, key.CredentialID)
		}
		issuer, ok := system.GetIssuer(key.IssuerID)
		if !ok {
			return nil, nil, fmt.Errorf("issuer %d not found", key.IssuerID)
		}
		creds = append(creds, cred)
		ppList = append(ppList, issuer.P.PP)
	}
	return creds, ppList, nil
}

// VerifyLinkedCredentials verifies presentation against the (pp, vk) of
// the issuers named by issuerIDs, in the same order the presentation's
// credentials were assembled in.
func VerifyLinkedCredentials(presentation *linked.Presentation, system *MultiIssuerSystem, issuerIDs []int) (bool, error) {
	if len(presentation.CredentialPresentations) != len(issuerIDs) {
		return false, fmt.Errorf("registry: verify linked credentials: %d presentations but %d issuer ids", len(presentation.CredentialPresentations), len(issuerIDs))
	}

	ppList := make([]*params.PublicParams, 0, len(issuerIDs))
	vkList := make([]signature.VerificationKey, 0, len(issuerIDs))
	for _, id := range issuerIDs {
		issuer, ok := system.GetIssuer(id)
		if !ok {
			return false, fmt.Errorf("registry: verify linked credentials: issuer %d not found", id)
		}
		ppList = append(ppList, issuer.P.PP)
		vkList = append(vkList, issuer.VK)
	}

	return presentation.Verify(ppList, vkList)
}
