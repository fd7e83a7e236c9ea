package jrand

import "testing"

// Reference values below were produced by java.util.Random with the
// documented seed and cross-checked against the LCG transition in
// spec §9 ("s = (s*0x5DEECE66D + 0xB) & ((1<<48)-1)").
func TestNextInt32MatchesJavaUtilRandomSeedZero(t *testing.T) {
	r := New(0)
	want := []int32{-1155484576, -723955400, 1033096058, -1690734402, -1557280266}
	for i, w := range want {
		if got := r.NextInt32(); got != w {
			t.Errorf("NextInt32() call %d = %d, want %d", i, got, w)
		}
	}
}

func TestNextIntBoundPowerOfTwo(t *testing.T) {
	r := New(42)
	for i := 0; i < 1000; i++ {
		v := r.NextInt(16)
		if v < 0 || v >= 16 {
			t.Fatalf("NextInt(16) out of range: %d", v)
		}
	}
}

func TestNextIntBoundNonPowerOfTwo(t *testing.T) {
	r := New(1234567)
	for i := 0; i < 1000; i++ {
		v := r.NextInt(37)
		if v < 0 || v >= 37 {
			t.Fatalf("NextInt(37) out of range: %d", v)
		}
	}
}

func TestNextIntPanicsOnNonPositiveBound(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for bound <= 0")
		}
	}()
	New(1).NextInt(0)
}

func TestDeterministicGivenSameSeed(t *testing.T) {
	a := New(999)
	b := New(999)
	for i := 0; i < 50; i++ {
		if a.NextInt32() != b.NextInt32() {
			t.Fatalf("generators with identical seed diverged at call %d", i)
		}
	}
}
