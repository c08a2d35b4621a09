// Copyright 2026 Mercredential Authors
//
// Package proof implements CommitmentProof: a Schnorr proof of knowledge of
// a commitment's opening (the message vector and the blinding scalar),
// taken over pp.G1Bases(). Issuance rejects any credential whose opening
// proof fails this verification.
package proof

import (
	"fmt"
	"io"

	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/schnorr"
)

// CommitmentProof binds a commitment to a Schnorr proof of its opening.
type CommitmentProof struct {
	T         curve.G1
	Challenge curve.Scalar
	Responses []curve.Scalar
}

// Prove builds a CommitmentProof for a commitment opened by messages ∥ r,
// sampling its own blinding vector and challenge.
func Prove(pp *params.PublicParams, messages []curve.Scalar, r curve.Scalar, rng io.Reader) (CommitmentProof, error) {
	bases := pp.G1Bases()
	if len(messages) != pp.N {
		return CommitmentProof{}, fmt.Errorf("proof: expected %d messages, got %d", pp.N, len(messages))
	}

	st, err := schnorr.Commit(bases, rng)
	if err != nil {
		return CommitmentProof{}, fmt.Errorf("proof: commit: %w", err)
	}

	c, err := curve.RandomScalar(rng)
	if err != nil {
		return CommitmentProof{}, fmt.Errorf("proof: sample challenge: %w", err)
	}

	exponents := make([]curve.Scalar, 0, pp.N+1)
	exponents = append(exponents, messages...)
	exponents = append(exponents, r)

	responses, err := st.Prove(exponents, c)
	if err != nil {
		return CommitmentProof{}, fmt.Errorf("proof: prove: %w", err)
	}

	return CommitmentProof{T: st.T, Challenge: c, Responses: responses}, nil
}

// Verify checks the Schnorr equation against cm.CM under pp.G1Bases().
// Bad proofs return false, never an error for a malformed opening — an
// error return is reserved for shape mismatches that indicate programmer
// error rather than an adversarial proof.
func (p CommitmentProof) Verify(pp *params.PublicParams, cm commitment.Commitment) (bool, error) {
	bases := pp.G1Bases()
	return schnorr.Verify(bases, cm.CM, p.T, p.Responses, p.Challenge)
}
