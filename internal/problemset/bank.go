// Package problemset loads the circuit parameters of every problem set and
// the optional instructor answer table.
//
// problems.json maps a set number to [V1, V2, R1, R2, R3] in volts and ohms.
// answers.json, when present, maps a set number to [I1, I2, I3] in mA and
// overrides the closed-form solution for that set.
package problemset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/phy132/kirchhoff/internal/circuit"
)

// ErrUnknownSet is returned when a set number is not in the bank.
var ErrUnknownSet = errors.New("problemset: unknown set")

// Bank is an immutable collection of problem sets. It is safe for
// concurrent use.
type Bank struct {
	params  map[int]circuit.Params
	answers map[int][3]float64
}

// New builds a Bank from already-parsed data. Every parameter set is
// validated; answers may be nil.
func New(params map[int]circuit.Params, answers map[int][3]float64) (*Bank, error) {
	b := &Bank{
		params:  make(map[int]circuit.Params, len(params)),
		answers: make(map[int][3]float64, len(answers)),
	}
	for id, p := range params {
		if id <= 0 {
			return nil, fmt.Errorf("set %d: set numbers must be positive", id)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("set %d: %w", id, err)
		}
		b.params[id] = p
	}
	for id, a := range answers {
		b.answers[id] = a
	}
	return b, nil
}

// Params returns the circuit parameters of set id.
func (b *Bank) Params(id int) (circuit.Params, error) {
	p, ok := b.params[id]
	if !ok {
		return circuit.Params{}, fmt.Errorf("%w: %d", ErrUnknownSet, id)
	}
	return p, nil
}

// ReferenceCurrents returns the answer-table currents (mA) for set id.
func (b *Bank) ReferenceCurrents(id int) ([3]float64, bool) {
	a, ok := b.answers[id]
	return a, ok
}

// IDs returns every set number in ascending order.
func (b *Bank) IDs() []int {
	ids := make([]int, 0, len(b.params))
	for id := range b.params {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Len returns the number of problem sets.
func (b *Bank) Len() int { return len(b.params) }
