package analyzer

import "sort"

// Tally accumulates values per key and remembers the order keys were first
// seen, so sorted output is deterministic on ties.
type Tally struct {
	keys []string
	vals map[string]float64
}

// Entry is one key and its accumulated value.
type Entry struct {
	Key   string
	Value float64
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{vals: make(map[string]float64)}
}

// Add accumulates v under key.
func (t *Tally) Add(key string, v float64) {
	if _, ok := t.vals[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.vals[key] += v
}

// Get returns the value for key, or 0.
func (t *Tally) Get(key string) float64 {
	return t.vals[key]
}

// Len returns the number of distinct keys.
func (t *Tally) Len() int {
	return len(t.keys)
}

// Keys returns keys in first-seen order.
func (t *Tally) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Total returns the sum of all values.
func (t *Tally) Total() float64 {
	var sum float64
	for _, k := range t.keys {
		sum += t.vals[k]
	}
	return sum
}

// Sorted returns entries by value descending; ties keep first-seen order.
func (t *Tally) Sorted() []Entry {
	entries := make([]Entry, len(t.keys))
	for i, k := range t.keys {
		entries[i] = Entry{Key: k, Value: t.vals[k]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return entries
}

// Top returns at most n entries from Sorted.
func (t *Tally) Top(n int) []Entry {
	entries := t.Sorted()
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
