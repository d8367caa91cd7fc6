package roman

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// Generator draws uniform integers from a non-cryptographic source.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator wraps src. Pass a seeded source (rand.NewPCG) for
// reproducible sequences.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// InRange returns a uniform integer in [min, max].
//
// min <= max is a precondition. When it is violated the result is undefined;
// the current implementation returns min rather than panicking.
func (g *Generator) InRange(min, max int) int {
	if max < min {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return drawInRange(min, max, g.rng.Uint64N, g.rng.Uint64)
}

// RandomInRange returns a uniform integer in [min, max] from the global
// source. See Generator.InRange for the min > max case.
func RandomInRange(min, max int) int {
	if max < min {
		return min
	}
	return drawInRange(min, max, rand.Uint64N, rand.Uint64)
}

// drawInRange works in uint64 so spans up to the whole int range do not
// overflow. A span of 0 means every int is allowed.
func drawInRange(min, max int, uint64n func(uint64) uint64, uint64v func() uint64) int {
	span := uint64(max) - uint64(min) + 1
	if span == 0 {
		return int(uint64v())
	}
	return int(uint64(min) + uint64n(span))
}

// Difficulty names a quiz range preset.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
	Master Difficulty = "master"
)

// Range is a closed interval of quiz numbers.
type Range struct {
	Min int
	Max int
}

var difficultyRanges = map[Difficulty]Range{
	Easy:   {1, 10},
	Medium: {1, 100},
	Hard:   {1, 1000},
	Expert: {1, MaxPlain},
	Master: {1, MaxValue},
}

var difficultyLabels = map[Difficulty]string{
	Easy:   "Easy (1-10)",
	Medium: "Medium (1-100)",
	Hard:   "Hard (1-1000)",
	Expert: "Expert (1-3999)",
	Master: "Master (1-3,999,999)",
}

var difficultyOrder = []Difficulty{Easy, Medium, Hard, Expert, Master}

// Difficulties returns every preset from easiest to hardest.
func Difficulties() []Difficulty {
	out := make([]Difficulty, len(difficultyOrder))
	copy(out, difficultyOrder)
	return out
}

// ParseDifficulty resolves a preset name, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficultyRanges[d]; !ok {
		return "", fmt.Errorf("unknown difficulty %q (valid: %v)", s, difficultyOrder)
	}
	return d, nil
}

// Range returns the interval for d. Unknown presets fall back to Medium.
func (d Difficulty) Range() Range {
	if r, ok := difficultyRanges[d]; ok {
		return r
	}
	return difficultyRanges[Medium]
}

// Label is the human-readable name, e.g. "Hard (1-1000)". Unknown presets
// fall back to Medium.
func (d Difficulty) Label() string {
	if l, ok := difficultyLabels[d]; ok {
		return l
	}
	return difficultyLabels[Medium]
}

// Next returns the preset after d, wrapping to Easy after Master.
func (d Difficulty) Next() Difficulty {
	for i, cand := range difficultyOrder {
		if cand == d {
			return difficultyOrder[(i+1)%len(difficultyOrder)]
		}
	}
	return Easy
}
