package report

import (
	"slices"

	"github.com/shopspring/decimal"
)

// tally accumulates a decimal per key and remembers the order keys were first seen.
type tally[K comparable] struct {
	keys []K
	sums map[K]decimal.Decimal
}

func newTally[K comparable]() *tally[K] {
	return &tally[K]{sums: make(map[K]decimal.Decimal)}
}

func (t *tally[K]) add(k K, v decimal.Decimal) {
	cur, ok := t.sums[k]
	if !ok {
		t.keys = append(t.keys, k)
	}
	t.sums[k] = cur.Add(v)
}

type ranked[K comparable] struct {
	key   K
	value decimal.Decimal
}

// top returns up to n keys ordered by accumulated value descending.
// The sort is stable, so equal values keep first-seen order.
func (t *tally[K]) top(n int) []ranked[K] {
	out := make([]ranked[K], len(t.keys))
	for i, k := range t.keys {
		out[i] = ranked[K]{key: k, value: t.sums[k]}
	}
	slices.SortStableFunc(out, func(a, b ranked[K]) int {
		return b.value.Cmp(a.value)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func topKeys[K comparable](t *tally[K], n int) []K {
	r := t.top(n)
	keys := make([]K, len(r))
	for i := range r {
		keys[i] = r[i].key
	}
	return keys
}
