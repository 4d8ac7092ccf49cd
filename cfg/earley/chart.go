package earley

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// stateSet is the set of items at one input position. Items keep their
// insertion order and are never removed; the set may grow while it is
// being iterated over.
type stateSet struct {
	items    *arraylist.List
	index    map[itemKey]*Item
	changes  int  // counts insertions and new backpointers
	nullable bool // set if an item completed at its own origin
}

func newStateSet() *stateSet {
	return &stateSet{
		items: arraylist.New(),
		index: make(map[itemKey]*Item),
	}
}

// add inserts an item unless an identical one is present. It returns the
// item resident in the set and a flag telling if item has been inserted.
func (S *stateSet) add(item *Item) (*Item, bool) {
	key := item.key()
	if resident, ok := S.index[key]; ok {
		return resident, false
	}
	S.index[key] = item
	S.items.Add(item)
	S.changes++
	return item, true
}

func (S *stateSet) at(i int) *Item {
	x, _ := S.items.Get(i)
	return x.(*Item)
}

func (S *stateSet) size() int {
	return S.items.Size()
}

func (S *stateSet) values() []*Item {
	r := make([]*Item, 0, S.items.Size())
	S.items.Each(func(_ int, x interface{}) {
		r = append(r, x.(*Item))
	})
	return r
}

// --- Chart -----------------------------------------------------------------

// Chart is the table of item sets for input positions 0…n. A chart is
// append-only: items are never removed, and items change only by receiving
// additional backpointers.
type Chart struct {
	sets []*stateSet
}

func newChart(n int) *Chart {
	c := &Chart{sets: make([]*stateSet, n+1)}
	for i := range c.sets {
		c.sets[i] = newStateSet()
	}
	return c
}

func (c *Chart) set(k uint64) *stateSet {
	return c.sets[k]
}

// Len returns the number of positions of the chart, i.e. n+1 for n input tokens.
func (c *Chart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sets)
}

// Size returns the total number of items in the chart.
func (c *Chart) Size() int {
	cnt := 0
	for _, S := range c.sets {
		cnt += S.size()
	}
	return cnt
}

// Items returns the items at position k, in insertion order.
func (c *Chart) Items(k int) []*Item {
	if c == nil || k < 0 || k >= len(c.sets) {
		return nil
	}
	return c.sets[k].values()
}

// Find returns the item at position k, described by symbol names for left and
// right hand side, dot and origin. If no such item exists, nil is returned.
func (c *Chart) Find(k uint64, lhs string, rhs []string, dot int, origin uint64) *Item {
	if c == nil || k >= uint64(len(c.sets)) {
		return nil
	}
	for _, item := range c.sets[k].values() {
		if item.Is(lhs, rhs, dot, origin, k) {
			return item
		}
	}
	return nil
}

// Contains is a predicate on the existence of an item. See Find.
func (c *Chart) Contains(k uint64, lhs string, rhs []string, dot int, origin uint64) bool {
	return c.Find(k, lhs, rhs, dot, origin) != nil
}
