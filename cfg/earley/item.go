package earley

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg"
)

// Item is an Earley item (sometimes called a state): a grammar rule with a dot
// marking the progress of recognition, an origin and a current position.
//
// Two items are identical if rule, dot, origin and position are equal.
// Backpointers do not contribute to identity.
type Item struct {
	rule        *cfg.Rule
	dot         int
	Origin      uint64  // input position where recognition of the rule started
	Pos         uint64  // input position the item belongs to
	completedBy []*Item // completed items which justified advancing this item
	links       []link  // derivation steps leading to this item
}

// A link records one way an item has been reached: by advancing pred over
// either a completed item (child) or a scanned terminal (child == nil).
type link struct {
	pred  *Item
	child *Item
}

// itemKey is the identity of an item.
type itemKey struct {
	rule   *cfg.Rule
	dot    int
	origin uint64
	pos    uint64
}

// newItem allocates an item with empty backpointer collections.
func newItem(r *cfg.Rule, dot int, origin, pos uint64) *Item {
	return &Item{
		rule:   r,
		dot:    dot,
		Origin: origin,
		Pos:    pos,
	}
}

func (item *Item) key() itemKey {
	return itemKey{rule: item.rule, dot: item.dot, origin: item.Origin, pos: item.Pos}
}

// advance creates a fresh item with the dot moved one symbol to the right.
func (item *Item) advance(pos uint64) *Item {
	return newItem(item.rule, item.dot+1, item.Origin, pos)
}

// Rule returns the grammar rule of an item.
func (item *Item) Rule() *cfg.Rule {
	return item.rule
}

// LHS returns the left hand side symbol of the item's rule.
func (item *Item) LHS() *cfg.Symbol {
	return item.rule.LHS
}

// Dot returns the dot position, 0 ≤ dot ≤ |RHS|.
func (item *Item) Dot() int {
	return item.dot
}

// PeekSymbol returns the symbol after the dot, or nil for completed items.
func (item *Item) PeekSymbol() *cfg.Symbol {
	return item.rule.At(item.dot)
}

// IsComplete is true if the dot is at the end of the RHS.
func (item *Item) IsComplete() bool {
	return item.dot >= item.rule.Len()
}

// Span returns the input span covered by the item.
func (item *Item) Span() chartparse.Span {
	return chartparse.Span{item.Origin, item.Pos}
}

// CompletedBy returns the completed items which have been recorded as
// backpointers for this item.
func (item *Item) CompletedBy() []*Item {
	return append([]*Item(nil), item.completedBy...)
}

// addBackpointer records a completed child item, unless already present.
func (item *Item) addBackpointer(child *Item) bool {
	for _, c := range item.completedBy {
		if c == child {
			return false
		}
	}
	item.completedBy = append(item.completedBy, child)
	return true
}

func (item *Item) addLink(l link) bool {
	for _, m := range item.links {
		if m == l {
			return false
		}
	}
	item.links = append(item.links, l)
	return true
}

// Is checks if an item matches a description of left hand side, right hand
// side, dot, origin and position, given by symbol names.
func (item *Item) Is(lhs string, rhs []string, dot int, origin, pos uint64) bool {
	if item.rule.LHS.Name != lhs || item.dot != dot || item.Origin != origin || item.Pos != pos {
		return false
	}
	if item.rule.Len() != len(rhs) {
		return false
	}
	for i, A := range item.rule.RHS() {
		if A.Name != rhs[i] {
			return false
		}
	}
	return true
}

func (item *Item) String() string {
	var b bytes.Buffer
	b.WriteString("(")
	b.WriteString(item.rule.LHS.Name)
	b.WriteString(" →")
	for i, A := range item.rule.RHS() {
		if i == item.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if item.IsComplete() {
		b.WriteString(" •")
	}
	b.WriteString(fmt.Sprintf(", [%d, %d])", item.Origin, item.Pos))
	return b.String()
}
