// Copyright 2026 Mercredential Authors

package signature

import (
	"crypto/rand"
	"testing"

	"github.com/mercredential/abc/pkg/commitment"
	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/pairing"
	"github.com/mercredential/abc/pkg/params"
)

func setup(t *testing.T, n int) (*params.PublicParams, SecretKey, VerificationKey, commitment.Commitment, []curve.Scalar, curve.Scalar) {
	t.Helper()
	pp, err := params.New(n, rand.Reader)
	if err != nil {
		t.Fatalf("params.New: %v", err)
	}
	sk, vk, err := GenerateKeys(pp, rand.Reader)
	if err != nil {
		t.Fatalf("generate keys: %v", err)
	}
	messages := make([]curve.Scalar, n)
	for i := range messages {
		s, _ := curve.RandomScalar(rand.Reader)
		messages[i] = s
	}
	r, _ := curve.RandomScalar(rand.Reader)
	key := commitment.KeyFromParams(pp)
	cm, err := key.Commit(pp, messages, r)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return pp, sk, vk, cm, messages, r
}

func TestSignAndVerify(t *testing.T) {
	pp, sk, vk, cm, _, _ := setup(t, 4)

	sig, err := sk.Sign(cm, pp, rand.Reader)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	ok, err := vk.Verify(sig, cm, pp)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("honest signature should verify")
	}
}

func TestVerifyRejectsForgedSignature(t *testing.T) {
	pp, _, vk, cm, _, _ := setup(t, 4)
	forged := Signature{Sigma1: cm.CM, Sigma2: cm.CM}

	ok, err := vk.Verify(forged, cm, pp)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("forged signature must not verify")
	}
}

func TestVerifyWithPairingCheckerMatchesDirectVerify(t *testing.T) {
	pp, sk, vk, cm, _, _ := setup(t, 4)
	sig, err := sk.Sign(cm, pp, rand.Reader)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	check := pairing.New(nil)
	vk.VerifyWithPairingChecker(check, sig, cm, pp)
	ok, err := check.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("accumulator verification should agree with direct verification")
	}
}

func TestRandomizeTracksRandomizedCommitment(t *testing.T) {
	pp, sk, vk, cm, messages, r := setup(t, 4)
	sig, err := sk.Sign(cm, pp, rand.Reader)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	deltaR, _ := curve.RandomScalar(rand.Reader)
	deltaU, _ := curve.RandomScalar(rand.Reader)

	randomizedCM := cm.Randomize(pp, deltaR)
	randomizedSig := sig.Randomize(deltaR, deltaU)

	ok, err := vk.Verify(randomizedSig, randomizedCM, pp)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("randomized signature should verify against the randomized commitment")
	}

	// sanity: the randomized commitment still opens to the same messages
	// under blinding r+deltaR.
	var newR curve.Scalar
	newR.Add(&r, &deltaR)
	key := commitment.KeyFromParams(pp)
	expected, err := key.Commit(pp, messages, newR)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !expected.CM.Equal(&randomizedCM.CM) {
		t.Error("randomized commitment should equal committing under r+deltaR")
	}
}

func TestRandomizeDoesNotVerifyAgainstOriginalCommitment(t *testing.T) {
	pp, sk, vk, cm, _, _ := setup(t, 4)
	sig, err := sk.Sign(cm, pp, rand.Reader)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	deltaR, _ := curve.RandomScalar(rand.Reader)
	deltaU, _ := curve.RandomScalar(rand.Reader)
	randomizedSig := sig.Randomize(deltaR, deltaU)

	ok, err := vk.Verify(randomizedSig, cm, pp)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("randomized signature must not verify against the stale commitment")
	}
}
