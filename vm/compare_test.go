package vm

import "testing"

func TestCompareScalarEqualityLaw(t *testing.T) {
	pairs := [][2]Value{
		{NewInteger(5), NewInteger(5)},
		{NewFloat(1.5), NewFloat(1.5)},
		{NewSymbol(2), NewSymbol(2)},
		{NilValue, NilValue},
		{TrueValue, TrueValue},
	}
	for _, p := range pairs {
		if compare(p[0], p[1]) != 0 {
			t.Errorf("compare(%v, %v) != 0 but values are ===", p[0], p[1])
		}
	}
}

func TestCompareAntisymmetry(t *testing.T) {
	a, b := NewInteger(3), NewInteger(9)
	if compare(a, b) != -compare(b, a) {
		t.Fatalf("compare(a,b) = %d, -compare(b,a) = %d, want equal", compare(a, b), -compare(b, a))
	}
}

func TestCompareIntegerFloatPromotion(t *testing.T) {
	if compare(NewInteger(2), NewFloat(2.0)) != 0 {
		t.Fatalf("expected Integer(2) to compare equal to Float(2.0)")
	}
	if compare(NewInteger(1), NewFloat(2.5)) != -1 {
		t.Fatalf("expected Integer(1) < Float(2.5)")
	}
}

func TestCompareUnorderedForMismatchedTags(t *testing.T) {
	if got := compare(NewInteger(1), NilValue); got != CompareUnordered {
		t.Fatalf("compare(Integer, Nil) = %d, want CompareUnordered", got)
	}
}

func TestCompareArraysStructural(t *testing.T) {
	vmEnv := New(4096)
	a := vmEnv.NewArray([]Value{NewInteger(1), NewInteger(2)})
	b := vmEnv.NewArray([]Value{NewInteger(1), NewInteger(2)})
	c := vmEnv.NewArray([]Value{NewInteger(1), NewInteger(3)})

	if compare(a, b) != 0 {
		t.Fatalf("expected structurally equal arrays to compare equal")
	}
	if compare(a, c) == 0 {
		t.Fatalf("expected structurally different arrays to compare unequal")
	}
}
