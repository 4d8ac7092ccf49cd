package earley

// itemset is a set of items, compared by identity.
type itemset map[itemKey]struct{}

var exists = struct{}{}

func (set itemset) add(item *Item) itemset {
	if set == nil {
		set = itemset{}
	}
	set[item.key()] = exists
	return set
}

func (set itemset) contains(item *Item) bool {
	if set == nil || item == nil {
		return false
	}
	_, ok := set[item.key()]
	return ok
}
