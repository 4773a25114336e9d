package vm

import "testing"

func TestImmediateValuesNeedNoRefcounting(t *testing.T) {
	vals := []Value{NilValue, TrueValue, FalseValue, NewInteger(7), NewFloat(1.5), NewSymbol(3)}
	for _, v := range vals {
		if h := v.refHeaderOf(); h != nil {
			t.Fatalf("%v: expected nil refHeader for an immediate, got %+v", v.tag, h)
		}
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	v := NewInteger(-42)
	if !v.IsInteger() {
		t.Fatalf("expected IsInteger")
	}
	if got := v.Integer_(); got != -42 {
		t.Fatalf("Integer_() = %d, want -42", got)
	}
}

func TestFloatRoundTrip(t *testing.T) {
	v := NewFloat(3.25)
	if !v.IsFloat() {
		t.Fatalf("expected IsFloat")
	}
	if got := v.Float_(); got != 3.25 {
		t.Fatalf("Float_() = %v, want 3.25", got)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NilValue, false},
		{FalseValue, false},
		{TrueValue, true},
		{NewInteger(0), true},
		{NewInteger(1), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.v.tag, got, c.want)
		}
	}
}

func TestIntegerAccessorPanicsOnWrongTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected Integer_() on a non-integer to panic")
		}
	}()
	NilValue.Integer_()
}
