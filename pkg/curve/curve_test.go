// Copyright 2026 Mercredential Authors

package curve

import (
	"crypto/rand"
	"testing"
)

func TestRandomScalarDiffers(t *testing.T) {
	a, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("random scalar: %v", err)
	}
	b, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("random scalar: %v", err)
	}
	if a.Equal(&b) {
		t.Error("two independent random scalars should not collide")
	}
}

func TestScalarMulAndAddG1(t *testing.T) {
	g1, _ := Generators()
	one, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("random scalar: %v", err)
	}
	two := new(Scalar).Add(&one, &one)

	sum := AddG1(ScalarMulG1(g1, one), ScalarMulG1(g1, one))
	doubled := ScalarMulG1(g1, *two)

	if !sum.Equal(&doubled) {
		t.Error("g1*(x+x) should equal g1*x + g1*x")
	}
}

func TestMSMG1MatchesScalarSum(t *testing.T) {
	g1, _ := Generators()
	bases := []G1{g1, ScalarMulG1(g1, mustScalar(t, 7))}
	scalars := []Scalar{mustScalar(t, 3), mustScalar(t, 5)}

	got, err := MSMG1(bases, scalars)
	if err != nil {
		t.Fatalf("msm g1: %v", err)
	}

	want := AddG1(ScalarMulG1(bases[0], scalars[0]), ScalarMulG1(bases[1], scalars[1]))
	if !got.Equal(&want) {
		t.Error("MSM result should match explicit scalar-mul-and-add")
	}
}

func TestPairBilinearity(t *testing.T) {
	g1, g2 := Generators()
	a := mustScalar(t, 3)
	b := mustScalar(t, 5)

	lhs, err := Pair(ScalarMulG1(g1, a), ScalarMulG2(g2, b))
	if err != nil {
		t.Fatalf("pair: %v", err)
	}

	ab := new(Scalar).Mul(&a, &b)
	rhs, err := Pair(g1, ScalarMulG2(g2, *ab))
	if err != nil {
		t.Fatalf("pair: %v", err)
	}

	if !lhs.Equal(&rhs) {
		t.Error("e(a*g1, b*g2) should equal e(g1, (a*b)*g2)")
	}
}

func mustScalar(t *testing.T, v uint64) Scalar {
	t.Helper()
	var s Scalar
	s.SetUint64(v)
	return s
}
