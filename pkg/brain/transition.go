package brain

// direction selects which end of a sentence, and which neighbor list, an
// operation works on. Backward and forward handling are structurally
// identical, so every walk routine is parameterized by one of these instead
// of being written twice.
type direction uint8

const (
	backward direction = iota
	forward
)

// Neighbor is one weighted entry of a transition's prev or next list: an
// element observed adjacent to the owning state, with its occurrence count.
type Neighbor struct {
	Element StateElement
	Count   int
}

// Transition records the weighted neighbors of exactly one state. Prev holds
// elements observed immediately before the state, Next immediately after.
// Each element appears at most once per list with a count >= 1, in
// first-observed order. Placeholder markers are never present; slices rather
// than maps keep sampling order deterministic under a fixed seed.
type Transition struct {
	Prev []Neighbor
	Next []Neighbor
}

// side returns the neighbor list for the given direction.
func (t *Transition) side(dir direction) []Neighbor {
	if dir == backward {
		return t.Prev
	}
	return t.Next
}

// observe increments the count for elem in the directed neighbor list,
// inserting it with count 1 on first sight. Placeholder neighbors are
// silently ignored so padding never leaks into the model.
func (t *Transition) observe(dir direction, elem StateElement) {
	if elem.Kind == KindPlaceholder {
		return
	}

	list := &t.Next
	if dir == backward {
		list = &t.Prev
	}

	for i := range *list {
		if (*list)[i].Element == elem {
			(*list)[i].Count++
			return
		}
	}
	*list = append(*list, Neighbor{Element: elem, Count: 1})
}

// pickWeighted selects one element from a neighbor list with probability
// proportional to its occurrence count, by a linear cumulative scan. It
// reports false for an empty list.
func pickWeighted(rng Rand, list []Neighbor) (StateElement, bool) {
	total := 0
	for _, n := range list {
		total += n.Count
	}
	if total == 0 {
		return StateElement{}, false
	}

	r := rng.IntN(total)
	for _, n := range list {
		r -= n.Count
		if r < 0 {
			return n.Element, true
		}
	}
	// Unreachable: counts sum to total and r < total.
	return list[len(list)-1].Element, true
}
