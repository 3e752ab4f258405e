// Package puzzle generates the arithmetic questions that silence an alarm.
package puzzle

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Operator is the arithmetic operation of a puzzle
type Operator string

const (
	Add      Operator = "+"
	Multiply Operator = "*"
)

// Operand ranges, inclusive
const (
	MaxAddend = 20
	MaxFactor = 10
)

// Puzzle is one question with its operands
type Puzzle struct {
	Op Operator
	A  int
	B  int
}

// Answer returns the exact integer result
func (p Puzzle) Answer() int {
	if p.Op == Multiply {
		return p.A * p.B
	}
	return p.A + p.B
}

// Text returns the question shown to the user
func (p Puzzle) Text() string {
	return fmt.Sprintf("What is %d %s %d?", p.A, p.Op, p.B)
}

// Check reports whether input is the correct answer. Anything that does not
// parse as an integer is simply wrong.
func (p Puzzle) Check(input string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	return n == p.Answer()
}

// Generator draws random puzzles
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded from the runtime's random source
func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededGenerator creates a deterministic generator
func NewSeededGenerator(seed1, seed2 uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Next returns a new puzzle. The operator is chosen uniformly; addends are
// drawn from [1,20] and factors from [1,10].
func (g *Generator) Next() Puzzle {
	if g.rng.IntN(2) == 0 {
		return Puzzle{Op: Add, A: g.between(1, MaxAddend), B: g.between(1, MaxAddend)}
	}
	return Puzzle{Op: Multiply, A: g.between(1, MaxFactor), B: g.between(1, MaxFactor)}
}

func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
