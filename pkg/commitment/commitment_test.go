// Copyright 2026 Mercredential Authors

package commitment

import (
	"crypto/rand"
	"testing"

	"github.com/mercredential/abc/pkg/curve"
	"github.com/mercredential/abc/pkg/params"
)

func setupParams(t *testing.T, n int) *params.PublicParams {
	t.Helper()
	pp, err := params.New(n, rand.Reader)
	if err != nil {
		t.Fatalf("params.New: %v", err)
	}
	return pp
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

func TestCommitIsPairingConsistent(t *testing.T) {
	pp := setupParams(t, 4)
	key := KeyFromParams(pp)
	messages := randomMessages(t, 4)
	r, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("random scalar: %v", err)
	}

	cm, err := key.Commit(pp, messages, r)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	ok, err := Consistent(cm, pp)
	if err != nil {
		t.Fatalf("consistent: %v", err)
	}
	if !ok {
		t.Error("commitment should satisfy e(cm, g~) = e(g, cm~)")
	}
}

func TestCommitRejectsWrongArity(t *testing.T) {
	pp := setupParams(t, 4)
	key := KeyFromParams(pp)
	messages := randomMessages(t, 3)
	r, _ := curve.RandomScalar(rand.Reader)

	if _, err := key.Commit(pp, messages, r); err == nil {
		t.Error("expected an error when message count does not match commitment key width")
	}
}

func TestRandomizePreservesConsistency(t *testing.T) {
	pp := setupParams(t, 4)
	key := KeyFromParams(pp)
	messages := randomMessages(t, 4)
	r, _ := curve.RandomScalar(rand.Reader)

	cm, err := key.Commit(pp, messages, r)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	delta, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("random scalar: %v", err)
	}
	randomized := cm.Randomize(pp, delta)

	if randomized.CM.Equal(&cm.CM) {
		t.Error("randomize should change cm")
	}

	ok, err := Consistent(randomized, pp)
	if err != nil {
		t.Fatalf("consistent: %v", err)
	}
	if !ok {
		t.Error("randomized commitment should remain pairing consistent")
	}

	want, err := key.Commit(pp, messages, *new(curve.Scalar).Add(&r, &delta))
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if !randomized.CM.Equal(&want.CM) {
		t.Error("randomize(delta) should equal committing with blinding r+delta")
	}
}
