package reinforcement

import (
	"sapientino/atomic_float"
)

// QTable holds the action-value estimates over the encoded observation
// space. Cells are lock-free floats so live views can read while the
// estimator writes; there is exactly one writer by construction.
type QTable struct {
	states  int
	actions int
	values  []*atomic_float.AtomicFloat64
}

// NewQTable returns a table of states x actions cells initialized to val.
func NewQTable(states, actions int, val float64) *QTable {
	q := &QTable{
		states:  states,
		actions: actions,
		values:  make([]*atomic_float.AtomicFloat64, states*actions),
	}
	for i := range q.values {
		q.values[i] = atomic_float.NewAtomicFloat64(val)
	}
	return q
}

// States returns the number of encoded states.
func (q *QTable) States() int { return q.states }

// Actions returns the action count.
func (q *QTable) Actions() int { return q.actions }

// At returns the cell for (state, action).
func (q *QTable) At(state, action int) *atomic_float.AtomicFloat64 {
	return q.values[state*q.actions+action]
}

// BestAction returns the greedy action for the state and its value.
func (q *QTable) BestAction(state int) (action int, val float64) {
	action = 0
	val = q.At(state, 0).AtomicRead()
	for a := 1; a < q.actions; a++ {
		if v := q.At(state, a).AtomicRead(); v > val {
			action, val = a, v
		}
	}
	return
}

// MaxValue returns the value of the greedy action for the state.
func (q *QTable) MaxValue(state int) float64 {
	_, val := q.BestAction(state)
	return val
}
