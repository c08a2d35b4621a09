// Copyright 2026 Mercredential Authors
//
// Package identitybinding implements IdentityBindingProof: a joint proof
// that several commitments, possibly under different PublicParams, share
// the same value at attribute index 0 — the hidden user identifier — with
// that value never revealed. The linkage comes from sharing one Schnorr
// blinding at index 0 across every per-commitment Schnorr commitment.
package identitybinding

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/schnorr"
)

// Proof is an ordered list of per-commitment Schnorr proofs sharing one
// challenge and one blinding at index 0.
type Proof struct {
	Challenge curve.Scalar
	Ts        []curve.G1
	Responses [][]curve.Scalar
}

// Prove builds an IdentityBindingProof over k commitments. messages[j]
// and r[j] are the opening of commitments[j] under pp[j]; messages[j][0]
// must be identical across every j, or Prove fails before producing
// anything.
func Prove(ppList []*params.PublicParams, messages [][]curve.Scalar, r []curve.Scalar, rng io.Reader) (Proof, error) {
	k := len(ppList)
	if len(messages) != k || len(r) != k {
		return Proof{}, fmt.Errorf("identitybinding: %d params, %d message vectors, %d blindings must all match", k, len(messages), len(r))
	}
	if k == 0 {
		return Proof{}, fmt.Errorf("identitybinding: at least one commitment is required")
	}

	var sharedID curve.Scalar
	for j := 0; j < k; j++ {
		if len(messages[j]) == 0 {
			return Proof{}, fmt.Errorf("identitybinding: message vector %d is empty", j)
		}
		if len(messages[j]) != ppList[j].N {
			return Proof{}, fmt.Errorf("identitybinding: message vector %d has length %d, want %d", j, len(messages[j]), ppList[j].N)
		}
		if j == 0 {
			sharedID = messages[j][0]
			continue
		}
		if !messages[j][0].Equal(&sharedID) {
			return Proof{}, fmt.Errorf("identitybinding: user identifiers must be identical")
		}
	}

	rho0, err := curve.RandomScalar(rng)
	if err != nil {
		return Proof{}, fmt.Errorf("identitybinding: sample shared blinding: %w", err)
	}

	states := make([]schnorr.State, k)
	for j := 0; j < k; j++ {
		n := ppList[j].N
		rho := make([]curve.Scalar, n+1)
		rho[0] = rho0
		for i := 1; i <= n; i++ {
			ri, err := curve.RandomScalar(rng)
			if err != nil {
				return Proof{}, fmt.Errorf("identitybinding: sample blinding %d/%d: %w", j, i, err)
			}
			rho[i] = ri
		}
		st, err := schnorr.CommitWithPreparedBlindings(ppList[j].G1Bases(), rho)
		if err != nil {
			return Proof{}, fmt.Errorf("identitybinding: commit %d: %w", j, err)
		}
		states[j] = st
	}

	c, err := curve.RandomScalar(rng)
	if err != nil {
		return Proof{}, fmt.Errorf("identitybinding: sample challenge: %w", err)
	}

	ts := make([]curve.G1, k)
	responses := make([][]curve.Scalar, k)
	for j := 0; j < k; j++ {
		exponents := make([]curve.Scalar, 0, len(messages[j])+1)
		exponents = append(exponents, messages[j]...)
		exponents = append(exponents, r[j])

		s, err := states[j].Prove(exponents, c)
		if err != nil {
			return Proof{}, fmt.Errorf("identitybinding: prove %d: %w", j, err)
		}
		ts[j] = states[j].T
		responses[j] = s
	}

	return Proof{Challenge: c, Ts: ts, Responses: responses}, nil
}

// Verify checks each per-commitment Schnorr equation and confirms that
// the response at index 0 is identical across every credential.
func (p Proof) Verify(ppList []*params.PublicParams, commitments []commitment.Commitment) (bool, error) {
	k := len(ppList)
	if len(commitments) != k || len(p.Ts) != k || len(p.Responses) != k {
		return false, fmt.Errorf("identitybinding: verify: mismatched lengths (pp=%d, commitments=%d, Ts=%d, responses=%d)", k, len(commitments), len(p.Ts), len(p.Responses))
	}
	if k == 0 {
		return false, fmt.Errorf("identitybinding: verify: at least one commitment is required")
	}

	for j := 0; j < k; j++ {
		ok, err := schnorr.Verify(ppList[j].G1Bases(), commitments[j].CM, p.Ts[j], p.Responses[j], p.Challenge)
		if err != nil {
			return false, fmt.Errorf("identitybinding: verify: credential %d: %w", j, err)
		}
		if !ok {
			return false, nil
		}
		if len(p.Responses[j]) == 0 {
			return false, nil
		}
	}

	shared := p.Responses[0][0]
	for j := 1; j < k; j++ {
		if !p.Responses[j][0].Equal(&shared) {
			return false, nil
		}
	}

	return true, nil
}
