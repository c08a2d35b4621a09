// Copyright 2026 Mercredential Authors

package pairing

import (
	"crypto/rand"
	"testing"

	"github.com/mercredential/abc/pkg/curve"
)

func TestEmptyCheckVerifiesAgainstIdentity(t *testing.T) {
	ok, err := New(nil).Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("empty accumulator should verify against the default identity target")
	}
}

func TestSingleEquation(t *testing.T) {
	g1, g2 := curve.Generators()
	a, _ := curve.RandomScalar(rand.Reader)
	b, _ := curve.RandomScalar(rand.Reader)

	// e(a*g1, b*g2) . e(-(ab)*g1, g2) = 1
	ab := new(curve.Scalar).Mul(&a, &b)
	check := New(nil)
	check.Add(curve.ScalarMulG1(g1, a), curve.ScalarMulG2(g2, b))
	check.AddNegated(curve.ScalarMulG1(g1, *ab), g2)

	ok, err := check.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("balanced equation should verify")
	}
}

func TestTamperedEquationFails(t *testing.T) {
	g1, g2 := curve.Generators()
	a, _ := curve.RandomScalar(rand.Reader)
	b, _ := curve.RandomScalar(rand.Reader)

	ab := new(curve.Scalar).Mul(&a, &b)
	one := new(curve.Scalar).SetOne()
	wrong := new(curve.Scalar).Add(ab, one)

	check := New(nil)
	check.Add(curve.ScalarMulG1(g1, a), curve.ScalarMulG2(g2, b))
	check.AddNegated(curve.ScalarMulG1(g1, *wrong), g2)

	ok, err := check.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Error("tampered equation must not verify")
	}
}

func TestMergeCombinesTwoBalancedChecks(t *testing.T) {
	g1, g2 := curve.Generators()

	mkBalanced := func() *Check {
		a, _ := curve.RandomScalar(rand.Reader)
		b, _ := curve.RandomScalar(rand.Reader)
		ab := new(curve.Scalar).Mul(&a, &b)
		c := New(nil)
		c.Add(curve.ScalarMulG1(g1, a), curve.ScalarMulG2(g2, b))
		c.AddNegated(curve.ScalarMulG1(g1, *ab), g2)
		return c
	}

	first := mkBalanced()
	second := mkBalanced()
	first.Merge(second)

	ok, err := first.Verify()
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Error("merge of two balanced checks should still verify")
	}
	if first.Len() != 4 {
		t.Errorf("expected 4 accumulated pairs after merge, got %d", first.Len())
	}
}
