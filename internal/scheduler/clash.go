package scheduler

// MarkedClass pairs a class with whether it clashes with any other class that day.
type MarkedClass struct {
	Class   ClassItem
	IsClash bool
}

// ClashPair names two classes of different sections whose times overlap.
// A is always the class that starts first in day order.
type ClashPair struct {
	A ClassItem `json:"a"`
	B ClassItem `json:"b"`
}

// Overlaps reports whether two half-open intervals intersect. Touching
// boundaries do not overlap.
func Overlaps(a, b ClassItem) bool {
	return a.Start < b.End && b.Start < a.End
}

// Clashes reports whether two classes clash: same day, different sections and
// overlapping times.
func Clashes(a, b ClassItem) bool {
	return a.Day == b.Day && a.SectionKey() != b.SectionKey() && Overlaps(a, b)
}

// MarkClashes flags every class in a single day that overlaps a class from another
// section. The input may be in any order; output follows day order.
func MarkClashes(day []ClassItem) []MarkedClass {
	ordered := sortedCopy(day)
	marked := make([]MarkedClass, len(ordered))
	for i := range ordered {
		marked[i].Class = ordered[i]
	}
	sweep(ordered, func(i, j int) {
		marked[i].IsClash = true
		marked[j].IsClash = true
	})
	return marked
}

// DetectClashes lists every clashing pair in a single day.
func DetectClashes(day []ClassItem) []ClashPair {
	ordered := sortedCopy(day)
	var pairs []ClashPair
	sweep(ordered, func(i, j int) {
		pairs = append(pairs, ClashPair{A: ordered[i], B: ordered[j]})
	})
	return pairs
}

// sweep walks start-ordered classes keeping a window of those still running and
// calls onClash(i, j) with i < j for every clashing pair.
func sweep(ordered []ClassItem, onClash func(i, j int)) {
	active := make([]int, 0, len(ordered))
	for j, current := range ordered {
		kept := active[:0]
		for _, i := range active {
			if ordered[i].End > current.Start {
				kept = append(kept, i)
			}
		}
		active = kept
		for _, i := range active {
			if Clashes(ordered[i], current) {
				onClash(i, j)
			}
		}
		active = append(active, j)
	}
}

func sortedCopy(day []ClassItem) []ClassItem {
	ordered := make([]ClassItem, len(day))
	copy(ordered, day)
	SortDay(ordered)
	return ordered
}
