package life

import (
	"errors"
	"fmt"
	"strings"
)

// MaxNeighbors is the largest possible Moore-neighbourhood count.
const MaxNeighbors = 8

// ErrInvalidRule is returned for malformed rules or counts outside [0,8].
var ErrInvalidRule = errors.New("invalid rule")

// NeighborSet is a bitmask of neighbour counts; bit n is set when count n is
// included.
type NeighborSet uint16

const fullSet NeighborSet = 1<<(MaxNeighbors+1) - 1

// NewNeighborSet builds a set from counts, rejecting anything outside [0,8].
func NewNeighborSet(counts ...int) (NeighborSet, error) {
	var s NeighborSet
	for _, n := range counts {
		if n < 0 || n > MaxNeighbors {
			return 0, fmt.Errorf("%w: neighbour count %d outside [0,%d]", ErrInvalidRule, n, MaxNeighbors)
		}
		s |= 1 << n
	}
	return s, nil
}

// Has reports whether n is in the set.
func (s NeighborSet) Has(n int) bool {
	if n < 0 || n > MaxNeighbors {
		return false
	}
	return s&(1<<n) != 0
}

// Counts lists the members in ascending order.
func (s NeighborSet) Counts() []int {
	var out []int
	for n := 0; n <= MaxNeighbors; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Digits renders the set in rule-string notation, e.g. "23".
func (s NeighborSet) Digits() string {
	var b strings.Builder
	for _, n := range s.Counts() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

// Rule is a Life-like transition rule: a live cell survives when its
// neighbour count is in Survive, a dead cell is born when it is in Birth.
type Rule struct {
	Name    string
	Survive NeighborSet
	Birth   NeighborSet
}

// Conway is the standard Game of Life rule.
var Conway = Rule{Name: "23/3", Survive: 1<<2 | 1<<3, Birth: 1 << 3}

// NewRule validates the counts and builds a Rule. An empty name is replaced
// by the survive/birth notation.
func NewRule(name string, survive, birth []int) (Rule, error) {
	s, err := NewNeighborSet(survive...)
	if err != nil {
		return Rule{}, fmt.Errorf("survive: %w", err)
	}
	b, err := NewNeighborSet(birth...)
	if err != nil {
		return Rule{}, fmt.Errorf("birth: %w", err)
	}
	r := Rule{Name: name, Survive: s, Birth: b}
	if r.Name == "" {
		r.Name = r.Notation()
	}
	return r, nil
}

// ParseRule accepts "S/B" digit notation ("23/3", "/2") as well as the
// "B3/S23" form.
func ParseRule(text string) (Rule, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("%w: %q needs exactly one '/'", ErrInvalidRule, text)
	}
	var survive, birth string
	switch {
	case strings.HasPrefix(parts[0], "B") && strings.HasPrefix(parts[1], "S"):
		birth, survive = parts[0][1:], parts[1][1:]
	case strings.HasPrefix(parts[0], "S") && strings.HasPrefix(parts[1], "B"):
		survive, birth = parts[0][1:], parts[1][1:]
	default:
		survive, birth = parts[0], parts[1]
	}
	sc, err := parseDigits(survive)
	if err != nil {
		return Rule{}, fmt.Errorf("%w in %q", err, text)
	}
	bc, err := parseDigits(birth)
	if err != nil {
		return Rule{}, fmt.Errorf("%w in %q", err, text)
	}
	return NewRule("", sc, bc)
}

func parseDigits(s string) ([]int, error) {
	counts := make([]int, 0, len(s))
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidRule, ch)
		}
		counts = append(counts, int(ch-'0'))
	}
	return counts, nil
}

// Validate checks that both sets only contain counts in [0,8].
func (r Rule) Validate() error {
	if r.Survive&^fullSet != 0 || r.Birth&^fullSet != 0 {
		return fmt.Errorf("%w: %s has counts above %d", ErrInvalidRule, r.Name, MaxNeighbors)
	}
	return nil
}

// Next returns the state of a cell in the next generation.
func (r Rule) Next(alive bool, neighbors int) bool {
	if alive {
		return r.Survive.Has(neighbors)
	}
	return r.Birth.Has(neighbors)
}

// Notation renders the rule as "survive/birth" digits.
func (r Rule) Notation() string {
	return r.Survive.Digits() + "/" + r.Birth.Digits()
}

// Summary describes the rule the way the rule picker shows it.
func (r Rule) Summary() string {
	return fmt.Sprintf("Survival: %s neighbors. Birth: %s neighbors.", joinCounts(r.Survive), joinCounts(r.Birth))
}

func joinCounts(s NeighborSet) string {
	counts := s.Counts()
	if len(counts) == 0 {
		return "no"
	}
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " or ")
}

// String returns the rule name.
func (r Rule) String() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Notation()
}
