package life

import (
	"errors"
	"slices"
	"testing"
)

func TestParseRule(t *testing.T) {
	cases := []struct {
		in      string
		survive []int
		birth   []int
		name    string
	}{
		{"23/3", []int{2, 3}, []int{3}, "23/3"},
		{"B36/S23", []int{2, 3}, []int{3, 6}, "23/36"},
		{"s23/b3", []int{2, 3}, []int{3}, "23/3"},
		{"/2", nil, []int{2}, "/2"},
		{"012345678/3", []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, []int{3}, "012345678/3"},
	}
	for _, c := range cases {
		r, err := ParseRule(c.in)
		if err != nil {
			t.Fatalf("ParseRule(%q): %v", c.in, err)
		}
		if !slices.Equal(r.Survive.Counts(), c.survive) || !slices.Equal(r.Birth.Counts(), c.birth) {
			t.Fatalf("ParseRule(%q) survive=%v birth=%v", c.in, r.Survive.Counts(), r.Birth.Counts())
		}
		if r.Name != c.name {
			t.Fatalf("ParseRule(%q) name=%q, expected %q", c.in, r.Name, c.name)
		}
	}
	if r, _ := ParseRule("23/3"); r != Conway {
		t.Fatalf("23/3 should equal Conway, got %+v", r)
	}
}

func TestParseRuleErrors(t *testing.T) {
	for _, in := range []string{"239/3", "23", "2/3/4", "2a/3", "23/-3"} {
		if _, err := ParseRule(in); !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("ParseRule(%q) err=%v, expected ErrInvalidRule", in, err)
		}
	}
}

func TestNewRuleValidatesRange(t *testing.T) {
	if _, err := NewRule("x", []int{9}, nil); !errors.Is(err, ErrInvalidRule) {
		t.Fatalf("survive 9 err=%v", err)
	}
	if _, err := NewRule("x", nil, []int{-1}); !errors.Is(err, ErrInvalidRule) {
		t.Fatalf("birth -1 err=%v", err)
	}
	r, err := NewRule("", nil, nil)
	if err != nil {
		t.Fatalf("empty rule should be legal: %v", err)
	}
	if r.Name != "/" {
		t.Fatalf("empty rule name=%q", r.Name)
	}
}

func TestRuleNext(t *testing.T) {
	for n := 0; n <= MaxNeighbors; n++ {
		wantAlive := n == 2 || n == 3
		wantBorn := n == 3
		if got := Conway.Next(true, n); got != wantAlive {
			t.Fatalf("live cell with %d neighbours -> %v", n, got)
		}
		if got := Conway.Next(false, n); got != wantBorn {
			t.Fatalf("dead cell with %d neighbours -> %v", n, got)
		}
	}
	if Conway.Next(false, 9) || Conway.Next(true, -1) {
		t.Fatal("out-of-range counts must never match")
	}
}

func TestRuleSummary(t *testing.T) {
	want := "Survival: 2 or 3 neighbors. Birth: 3 neighbors."
	if got := Conway.Summary(); got != want {
		t.Fatalf("Summary()=%q", got)
	}
	seeds, _ := ParseRule("/2")
	if got := seeds.Summary(); got != "Survival: no neighbors. Birth: 2 neighbors." {
		t.Fatalf("seeds Summary()=%q", got)
	}
}
