package core

import (
	"slices"
	"testing"
)

func TestFillDensitySaturates(t *testing.T) {
	buf := make([]uint8, 64)
	FillDensity(NewRNG(1).Source(), buf, 0)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("density 0 set cell %d", i)
		}
	}
	FillDensity(NewRNG(1).Source(), buf, 1.5)
	for i, v := range buf {
		if v != 1 {
			t.Fatalf("density above 1 left cell %d dead", i)
		}
	}
}

func TestFillDensityDeterministic(t *testing.T) {
	a := make([]uint8, 256)
	b := make([]uint8, 256)
	FillDensity(NewRNG(7).Source(), a, 0.4)
	FillDensity(NewRNG(7).Source(), b, 0.4)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed produced different fills")
	}
	c := make([]uint8, 256)
	FillDensity(NewRNG(8).Source(), c, 0.4)
	if slices.Equal(a, c) {
		t.Fatalf("different seeds produced identical fills")
	}
}
