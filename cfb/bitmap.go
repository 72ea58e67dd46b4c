package cfb

const bitsPerWord = 64

// bitmap tracks visited directory entry IDs during sibling-tree walks.
type bitmap struct {
	bits []uint64
}

func newBitmap(n int) *bitmap {
	return &bitmap{bits: make([]uint64, (n+bitsPerWord-1)/bitsPerWord)}
}

// testAndSet marks id and reports whether it was already marked. IDs past
// the end count as marked so callers stop on them.
func (b *bitmap) testAndSet(id uint32) bool {
	w := int(id / bitsPerWord)
	if w >= len(b.bits) {
		return true
	}
	mask := uint64(1) << (id % bitsPerWord)
	seen := b.bits[w]&mask != 0
	b.bits[w] |= mask
	return seen
}
