package engine

import "testing"

func TestRNG_Deterministic(t *testing.T) {
	rng1 := NewRNG(42)
	rng2 := NewRNG(42)

	for i := 0; i < 20; i++ {
		a := rng1.Range(-2, 2)
		b := rng2.Range(-2, 2)
		if a != b {
			t.Fatalf("call %d: got %d and %d from same seed", i, a, b)
		}
	}
}

func TestRNG_Range_Bounds(t *testing.T) {
	rng := NewRNG(99)

	for i := 0; i < 1000; i++ {
		v := rng.Range(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("value out of range [-2,2]: got %d", v)
		}
	}
}

func TestRNG_Range_SingleValue(t *testing.T) {
	rng := NewRNG(1)

	for i := 0; i < 10; i++ {
		if v := rng.Range(3, 3); v != 3 {
			t.Fatalf("degenerate range should always be 3, got %d", v)
		}
	}
}

func TestRNG_Chance_Extremes(t *testing.T) {
	rng := NewRNG(7)

	for i := 0; i < 100; i++ {
		if rng.Chance(0) {
			t.Fatal("Chance(0) should never be true")
		}
		if !rng.Chance(1) {
			t.Fatal("Chance(1) should always be true")
		}
	}
}

func TestRNG_Chance_Distribution(t *testing.T) {
	rng := NewRNG(12345)

	const trials = 10000
	hits := 0
	for i := 0; i < trials; i++ {
		if rng.Chance(0.5) {
			hits++
		}
	}

	// With 10k trials, expect roughly 50% ± some margin.
	if hits < 4500 || hits > 5500 {
		t.Errorf("expected ~5000 hits for p=0.5, got %d", hits)
	}
}

func TestRNG_Pick_Bounds(t *testing.T) {
	rng := NewRNG(3)

	for i := 0; i < 100; i++ {
		idx := rng.Pick(3)
		if idx < 0 || idx > 2 {
			t.Fatalf("index out of range: %d", idx)
		}
	}
}

func TestRNG_Position_Tracks(t *testing.T) {
	rng := NewRNG(42)

	if rng.Position() != 0 {
		t.Fatalf("expected position 0, got %d", rng.Position())
	}

	rng.Range(-2, 2)
	if rng.Position() != 1 {
		t.Fatalf("expected position 1, got %d", rng.Position())
	}

	rng.Chance(0.5)
	if rng.Position() != 2 {
		t.Fatalf("expected position 2, got %d", rng.Position())
	}

	rng.Pick(4)
	rng.Pick(4)
	if rng.Position() != 4 {
		t.Fatalf("expected position 4, got %d", rng.Position())
	}
}

func TestRNG_Restore_MatchesPosition(t *testing.T) {
	// Advance an RNG to position 10 and record the next 5 values.
	rng := NewRNG(42)
	for i := 0; i < 10; i++ {
		rng.Range(1, 6)
	}

	var expected [5]int
	for i := range expected {
		expected[i] = rng.Range(1, 6)
	}

	// Restore to position 10 and verify the same values come out.
	restored := RestoreRNG(42, 10)
	if restored.Position() != 10 {
		t.Fatalf("expected position 10, got %d", restored.Position())
	}

	for i, want := range expected {
		got := restored.Range(1, 6)
		if got != want {
			t.Fatalf("value %d: expected %d, got %d", i, want, got)
		}
	}
}

func TestRNG_DifferentSeeds_DifferentResults(t *testing.T) {
	rng1 := NewRNG(1)
	rng2 := NewRNG(2)

	differs := false
	for i := 0; i < 20; i++ {
		if rng1.Range(1, 100) != rng2.Range(1, 100) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("expected different seeds to produce different results")
	}
}
