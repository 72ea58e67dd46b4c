package builder

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"github.com/ClicksEnStock/FileInfos/internal/format"
)

const (
	sectorSize     = 1 << format.SectorShiftV3
	miniSectorSize = format.MiniSectorSize
	entriesPerFAT  = sectorSize / 4
	dirPerSector   = sectorSize / format.DirEntrySize
)

// flat is a node with its assigned directory ID and sibling links.
type flat struct {
	n           *node
	entry       format.DirEntry
	sortedChild []*flat
}

// Bytes lays out the tree and returns the complete compound file.
func (b *Builder) Bytes() ([]byte, error) {
	entries := b.flatten()

	// Small streams share the mini stream; large ones get their own sectors.
	var mini []byte
	var miniFAT []uint32
	var large []*flat
	for _, f := range entries {
		if f.n.storage {
			continue
		}
		size := len(f.n.data)
		f.entry.Size = uint64(size)
		switch {
		case size == 0:
			f.entry.StartSector = format.EndOfChain
		case size < format.MiniStreamCutoff:
			start := len(miniFAT)
			count := ceilDiv(size, miniSectorSize)
			for i := range count {
				next := uint32(start + i + 1)
				if i == count-1 {
					next = format.EndOfChain
				}
				miniFAT = append(miniFAT, next)
			}
			s, err := safecast.Conv[uint32](start)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrTooLarge, err)
			}
			f.entry.StartSector = s
			mini = append(mini, f.n.data...)
			mini = append(mini, make([]byte, count*miniSectorSize-size)...)
		default:
			large = append(large, f)
		}
	}

	dirSecs := ceilDiv(len(entries), dirPerSector)
	miniFATSecs := ceilDiv(len(miniFAT)*4, sectorSize)
	miniSecs := ceilDiv(len(mini), sectorSize)
	content := dirSecs + miniFATSecs + miniSecs
	for _, f := range large {
		content += ceilDiv(len(f.n.data), sectorSize)
	}
	fatSecs := 1
	for (content + fatSecs) > fatSecs*entriesPerFAT {
		fatSecs++
	}
	if fatSecs > format.HeaderDIFATEntries {
		return nil, fmt.Errorf("%w: needs %d FAT sectors", ErrTooLarge, fatSecs)
	}
	total := fatSecs + content

	fat := make([]uint32, fatSecs*entriesPerFAT)
	for i := range fat {
		fat[i] = format.FreeSect
	}
	for i := range fatSecs {
		fat[i] = format.FATSect
	}
	next := fatSecs
	// chain allocates n consecutive sectors and returns the first.
	chain := func(n int) uint32 {
		if n == 0 {
			return format.EndOfChain
		}
		start := next
		for i := range n - 1 {
			fat[start+i] = uint32(start + i + 1)
		}
		fat[start+n-1] = format.EndOfChain
		next += n
		return uint32(start)
	}

	h := format.Header{
		MinorVersion:     format.MinorVersion,
		MajorVersion:     format.MajorVersion3,
		SectorShift:      format.SectorShiftV3,
		MiniSectorShift:  format.MiniSectorShift,
		NumFATSectors:    uint32(fatSecs),
		MiniStreamCutoff: format.MiniStreamCutoff,
		FirstDIFATSector: format.EndOfChain,
	}
	for i := range h.DIFAT {
		h.DIFAT[i] = format.FreeSect
		if i < fatSecs {
			h.DIFAT[i] = uint32(i)
		}
	}
	h.FirstDirSector = chain(dirSecs)
	h.FirstMiniFATSector = chain(miniFATSecs)
	h.NumMiniFATSectors = uint32(miniFATSecs)

	root := entries[0]
	root.entry.Size = uint64(len(mini))
	root.entry.StartSector = chain(miniSecs)
	for _, f := range large {
		f.entry.StartSector = chain(ceilDiv(len(f.n.data), sectorSize))
	}

	out := make([]byte, format.HeaderSize+total*sectorSize)
	format.PutHeader(out, h)
	sec := func(id uint32) []byte {
		off := format.HeaderSize + int(id)*sectorSize
		return out[off:]
	}

	for i, v := range fat {
		format.PutU32(out, format.HeaderSize+i*4, v)
	}

	dir := sec(h.FirstDirSector)
	for i := range dirSecs * dirPerSector {
		e := format.DirEntry{Left: format.NoStream, Right: format.NoStream, Child: format.NoStream}
		if i < len(entries) {
			e = entries[i].entry
		}
		if err := format.PutDirEntry(dir[i*format.DirEntrySize:], e); err != nil {
			return nil, fmt.Errorf("builder: %w", err)
		}
	}

	if miniFATSecs > 0 {
		mf := sec(h.FirstMiniFATSector)
		for i := range miniFATSecs * entriesPerFAT {
			v := uint32(format.FreeSect)
			if i < len(miniFAT) {
				v = miniFAT[i]
			}
			format.PutU32(mf, i*4, v)
		}
	}
	if miniSecs > 0 {
		copy(sec(root.entry.StartSector), mini)
	}
	for _, f := range large {
		copy(sec(f.entry.StartSector), f.n.data)
	}
	return out, nil
}

// flatten assigns directory IDs breadth-first and links every storage's
// children into a balanced binary tree.
func (b *Builder) flatten() []*flat {
	var stamp uint64
	if !b.opts.Timestamp.IsZero() {
		stamp = format.TimeToFiletime(b.opts.Timestamp)
	}
	newFlat := func(n *node) *flat {
		e := format.DirEntry{
			Name:  n.name,
			Type:  format.ObjStream,
			Color: format.ColorBlack,
			Left:  format.NoStream,
			Right: format.NoStream,
			Child: format.NoStream,
		}
		if n.storage {
			e.Type = format.ObjStorage
			e.CLSID = n.clsid
			e.Created = stamp
			e.Modified = stamp
		}
		return &flat{n: n, entry: e}
	}

	root := newFlat(b.root)
	root.entry.Type = format.ObjRoot
	root.entry.Created = 0
	entries := []*flat{root}
	for i := 0; i < len(entries); i++ {
		parent := entries[i]
		kids := slices.Clone(parent.n.children)
		slices.SortFunc(kids, func(a, b *node) int { return format.CompareNames(a.name, b.name) })
		for _, k := range kids {
			f := newFlat(k)
			parent.sortedChild = append(parent.sortedChild, f)
			entries = append(entries, f)
		}
	}
	ids := make(map[*flat]uint32, len(entries))
	for i, f := range entries {
		ids[f] = uint32(i)
	}
	for _, f := range entries {
		f.entry.Child = link(f.sortedChild, ids)
	}
	return entries
}

// link builds a balanced tree over sorted siblings and returns its root ID.
func link(sorted []*flat, ids map[*flat]uint32) uint32 {
	if len(sorted) == 0 {
		return format.NoStream
	}
	mid := len(sorted) / 2
	n := sorted[mid]
	n.entry.Left = link(sorted[:mid], ids)
	n.entry.Right = link(sorted[mid+1:], ids)
	return ids[n]
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
