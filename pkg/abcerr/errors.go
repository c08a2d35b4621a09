// Copyright 2026 Mercredential Authors
//
// Package abcerr centralizes the sentinel errors used across the credential
// stack, mirroring the single error taxonomy the original crate kept in one
// file. Callers should compare with errors.Is against these sentinels; wrap
// with fmt.Errorf("...: %w", ...) when adding call-site context.
package abcerr

import "errors"

var (
	// ErrInvalidCommitment is reserved for future commitment-shape checks.
	ErrInvalidCommitment = errors.New("abcerr: invalid commitment")
	// ErrMismatchedCommitmentLengths is reserved for future API widening.
	ErrMismatchedCommitmentLengths = errors.New("abcerr: mismatched commitment lengths")

	// ErrInvalidProof is returned when a CommitmentProof fails verification
	// at issuance time.
	ErrInvalidProof = errors.New("abcerr: invalid proof")
	// ErrProofVerificationFailed is the verification-time analogue of
	// ErrInvalidProof.
	ErrProofVerificationFailed = errors.New("abcerr: proof verification failed")

	// ErrInvalidSignature marks a signature that fails its pairing checks.
	ErrInvalidSignature = errors.New("abcerr: invalid signature")
	// ErrSignatureVerificationFailed is the verification-time analogue of
	// ErrInvalidSignature.
	ErrSignatureVerificationFailed = errors.New("abcerr: signature verification failed")

	// ErrInvalidCredentialState is returned when an operation requires a
	// Signed credential but the credential is still Committed.
	ErrInvalidCredentialState = errors.New("abcerr: invalid credential state")
	// ErrMissingSignature marks an aggregate or plaintext batch that
	// encountered an unsigned credential.
	ErrMissingSignature = errors.New("abcerr: missing signature")

	// ErrProtocolAborted is reserved for future abort paths.
	ErrProtocolAborted = errors.New("abcerr: protocol aborted")

	// ErrSerialization wraps a lower-level serialization fault.
	ErrSerialization = errors.New("abcerr: serialization error")
)
