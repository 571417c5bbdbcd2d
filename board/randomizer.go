package board

import (
	"math/rand/v2"

	"github.com/plus3/netris/piece"
)

// Source hands out the kinds the board spawns.
type Source interface {
	Next() piece.Kind
}

// Randomizer picks kinds uniformly and rerolls an immediate repeat of the kind
// it returned last.
type Randomizer struct {
	intN    func(int) int
	last    piece.Kind
	hasLast bool
}

// NewRandomizer draws from r, or from the process-wide generator when r is nil.
func NewRandomizer(r *rand.Rand) *Randomizer {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	return &Randomizer{intN: intN}
}

func (r *Randomizer) Next() piece.Kind {
	k := piece.Kind(r.intN(piece.Count))
	for r.hasLast && k == r.last {
		k = piece.Kind(r.intN(piece.Count))
	}
	r.last, r.hasLast = k, true
	return k
}

// Last returns the previously drawn kind, if any.
func (r *Randomizer) Last() (piece.Kind, bool) {
	return r.last, r.hasLast
}
