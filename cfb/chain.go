package cfb

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

func streamSize(size uint64) (int, error) {
	n, err := safecast.Conv[int](size)
	if err != nil {
		return 0, fmt.Errorf("%w: stream size %d: %w", types.ErrCorrupt, size, err)
	}
	return n, nil
}

// readChain concatenates the regular sectors of the chain starting at start.
// With size >= 0 the result is truncated to size bytes and a chain that is
// too short is corrupt; with size < 0 the whole chain is returned.
func (f *File) readChain(start uint32, size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	var out []byte
	if size > 0 {
		out = make([]byte, 0, size)
	}
	limit := len(f.fat)
	for s, n := start, 0; s != format.EndOfChain; n++ {
		if n >= limit || int(s) >= limit {
			return nil, fmt.Errorf("%w: sector chain from %#x is cyclic or out of range", types.ErrCorrupt, start)
		}
		b, err := f.sector(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
		if size > 0 && len(out) >= size {
			return out[:size], nil
		}
		s = f.fat[s]
	}
	if size > 0 {
		return nil, fmt.Errorf("%w: chain from %#x holds %d of %d bytes", types.ErrCorrupt, start, len(out), size)
	}
	return out, nil
}

// readMiniChain reads size bytes from the mini stream chain starting at start.
func (f *File) readMiniChain(start uint32, size int) ([]byte, error) {
	ms := f.header.MiniSectorSize()
	out := make([]byte, 0, size)
	limit := len(f.miniFAT)
	for s, n := start, 0; len(out) < size; n++ {
		if s == format.EndOfChain || n >= limit || int(s) >= limit {
			return nil, fmt.Errorf("%w: mini chain from %#x is cyclic, short or out of range", types.ErrCorrupt, start)
		}
		off := int(s) * ms
		if off+ms > len(f.mini) {
			return nil, fmt.Errorf("%w: mini sector %#x beyond mini stream", types.ErrCorrupt, s)
		}
		out = append(out, f.mini[off:off+ms]...)
		s = f.miniFAT[s]
	}
	return out[:size], nil
}

// readStream returns the contents of a stream entry.
func (f *File) readStream(e format.DirEntry) ([]byte, error) {
	size, err := streamSize(e.Size)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return []byte{}, nil
	}
	if e.Size < uint64(f.header.MiniStreamCutoff) {
		return f.readMiniChain(e.StartSector, size)
	}
	return f.readChain(e.StartSector, size)
}
