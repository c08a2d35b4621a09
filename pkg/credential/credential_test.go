// Copyright 2026 Mercredential Authors

package credential

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/mercredential/abc/pkg/abcerr"
	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/params"
	"github.com/mercredential/abc/pkg/signature"
)

func setup(t *testing.T, n int) (*params.PublicParams, commitment.Key, signature.SecretKey, signature.VerificationKey) {
	t.Helper()
	pp, err := params.New(n, rand.Reader)
	if err != nil {
		t.Fatalf("params.New: %v", err)
	}
	key := commitment.KeyFromParams(pp)
	sk, vk, err := signature.GenerateKeys(pp, rand.Reader)
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	return pp, key, sk, vk
}

func randomMessages(t *testing.T, n int) []curve.Scalar {
	t.Helper()
	out := make([]curve.Scalar, n)
	for i := range out {
		s, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("random scalar: %v", err)
		}
		out[i] = s
	}
	return out
}

func TestShowFailsWhenUnsigned(t *testing.T) {
	pp, key, _, _ := setup(t, 4)
	messages := randomMessages(t, 4)
	r, _ := curve.RandomScalar(rand.Reader)

	cred, err := New(key, pp, messages, r)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	deltaR, _ := curve.RandomScalar(rand.Reader)
	deltaU, _ := curve.RandomScalar(rand.Reader)

	_, err = cred.Show(pp, deltaR, deltaU, rand.Reader)
	if err == nil {
		t.Fatal("expected error showing an unsigned credential")
	}
	if !errors.Is(err, abcerr.ErrInvalidCredentialState) {
		t.Errorf("expected ErrInvalidCredentialState, got %v", err)
	}
}

func TestVerifyFalseWhenUnsigned(t *testing.T) {
	pp, key, _, vk := setup(t, 4)
	messages := randomMessages(t, 4)
	r, _ := curve.RandomScalar(rand.Reader)

	cred, err := New(key, pp, messages, r)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ok, err := cred.Verify(pp, vk)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("an unsigned credential must not verify")
	}
}

func TestFullLifecycle(t *testing.T) {
	pp, key, sk, vk := setup(t, 4)
	messages := randomMessages(t, 4)
	r, _ := curve.RandomScalar(rand.Reader)

	cred, err := New(key, pp, messages, r)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	pi, err := cred.ProveCommitment(pp, rand.Reader)
	if err != nil {
		t.Fatalf("prove commitment: %v", err)
	}
	ok, err := pi.Verify(pp, cred.Commitment())
	if err != nil {
		t.Fatalf("verify proof: %v", err)
	}
	if !ok {
		t.Fatal("opening proof should verify before signing")
	}

	sig, err := sk.Sign(cred.Commitment(), pp, rand.Reader)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	cred.AddSignature(sig)

	if !cred.IsSigned() {
		t.Fatal("credential should report signed after AddSignature")
	}

	ok, err = cred.Verify(pp, vk)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("signed credential should verify")
	}

	deltaR, _ := curve.RandomScalar(rand.Reader)
	deltaU, _ := curve.RandomScalar(rand.Reader)
	shown, err := cred.Show(pp, deltaR, deltaU, rand.Reader)
	if err != nil {
		t.Fatalf("show: %v", err)
	}

	ok, err = shown.Verify(pp, vk)
	if err != nil {
		t.Fatalf("verify shown: %v", err)
	}
	if !ok {
		t.Fatal("shown credential should verify")
	}

	if shown.Commitment.CM.Equal(&cred.Commitment().CM) {
		t.Error("a shown credential should not reuse the original commitment")
	}
}

func TestVerifyRejectsForgedSignature(t *testing.T) {
	pp, key, _, vk := setup(t, 4)
	messages := randomMessages(t, 4)
	r, _ := curve.RandomScalar(rand.Reader)

	cred, err := New(key, pp, messages, r)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	forged := signature.Signature{Sigma1: cred.Commitment().CM, Sigma2: cred.Commitment().CM}
	cred.AddSignature(forged)

	ok, err := cred.Verify(pp, vk)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("a forged signature must not verify")
	}
}
