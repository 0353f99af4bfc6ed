package value

import "testing"

func TestEqualsReflexiveAndSymmetric(t *testing.T) {
	vs := []Value{
		NumVal{Value: 5},
		NumVal{Value: -5},
		BoolVal{Value: true},
		BoolVal{Value: false},
	}
	for _, v := range vs {
		if !Equals(v, v) {
			t.Errorf("Equals(%v, %v) = false, want true (reflexivity)", v, v)
		}
	}
	for _, a := range vs {
		for _, b := range vs {
			if Equals(a, b) != Equals(b, a) {
				t.Errorf("Equals(%v, %v) != Equals(%v, %v) (symmetry)", a, b, b, a)
			}
		}
	}
}

func TestEqualsAcrossKindsIsFalse(t *testing.T) {
	if Equals(NumVal{Value: 1}, BoolVal{Value: true}) {
		t.Fatalf("NumVal and BoolVal compared equal")
	}
}

func TestAddToRequiresNumbers(t *testing.T) {
	if _, err := AddTo(NumVal{Value: 1}, BoolVal{Value: true}); err == nil {
		t.Fatalf("AddTo(num, bool) did not fail")
	}
	got, err := AddTo(NumVal{Value: 2}, NumVal{Value: 3})
	if err != nil {
		t.Fatalf("AddTo(2, 3) failed: %v", err)
	}
	if got.(NumVal).Value != 5 {
		t.Fatalf("AddTo(2, 3) = %v, want 5", got)
	}
}

func TestAddToWrapsOnOverflow(t *testing.T) {
	// Documented choice (spec.md §9): overflow wraps two's-complement
	// rather than failing with a checked-arithmetic error.
	got, err := AddTo(NumVal{Value: 2147483647}, NumVal{Value: 1})
	if err != nil {
		t.Fatalf("AddTo overflow failed: %v", err)
	}
	if got.(NumVal).Value != -2147483648 {
		t.Fatalf("AddTo(MaxInt32, 1) = %d, want wraparound to MinInt32", got.(NumVal).Value)
	}
}

func TestMultWithRequiresNumbers(t *testing.T) {
	if _, err := MultWith(BoolVal{Value: false}, NumVal{Value: 1}); err == nil {
		t.Fatalf("MultWith(bool, num) did not fail")
	}
	got, err := MultWith(NumVal{Value: 4}, NumVal{Value: 5})
	if err != nil {
		t.Fatalf("MultWith(4, 5) failed: %v", err)
	}
	if got.(NumVal).Value != 20 {
		t.Fatalf("MultWith(4, 5) = %v, want 20", got)
	}
}

func TestIsTrueRequiresBoolean(t *testing.T) {
	if _, err := IsTrue(NumVal{Value: 1}); err == nil {
		t.Fatalf("IsTrue(num) did not fail")
	}
	b, err := IsTrue(BoolVal{Value: true})
	if err != nil || !b {
		t.Fatalf("IsTrue(true) = (%v, %v), want (true, nil)", b, err)
	}
}

func TestToString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{NumVal{Value: -5}, "-5"},
		{BoolVal{Value: true}, "_true"},
		{BoolVal{Value: false}, "_false"},
		{&FunVal{Formal: "x"}, "[FUNCTION]"},
	}
	for _, c := range cases {
		if got := ToString(c.v); got != c.want {
			t.Errorf("ToString(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
