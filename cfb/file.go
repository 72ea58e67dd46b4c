package cfb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/internal/mmfile"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

// File is an opened compound file. It is safe for concurrent reads.
type File struct {
	data    []byte
	cleanup func() error
	once    sync.Once
	closed  bool
	mu      sync.RWMutex

	header  format.Header
	ss      int // sector size
	fat     []uint32
	miniFAT []uint32
	dir     []format.DirEntry
	mini    []byte // mini stream (root entry's stream)
}

// Open maps path read-only with deny-write sharing and parses it.
func Open(path string) (*File, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		if errors.Is(err, mmfile.ErrShareViolation) {
			return nil, fmt.Errorf("cfb: open %s: %w", path, types.ErrShareViolation)
		}
		return nil, fmt.Errorf("cfb: open %s: %w", path, err)
	}
	f, err := New(data)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("cfb: %s: %w", path, err)
	}
	f.cleanup = cleanup
	return f, nil
}

// New parses an in-memory compound file. data must not be modified while
// the File is in use.
func New(data []byte) (*File, error) {
	h, err := format.ParseHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrNotCompound, err)
	}
	f := &File{data: data, header: h, ss: h.SectorSize()}

	if err := f.loadFAT(); err != nil {
		return nil, err
	}
	if err := f.loadDirectory(); err != nil {
		return nil, err
	}
	if err := f.loadMini(); err != nil {
		return nil, err
	}
	return f, nil
}

// Close releases the mapping. Storages and stream slices obtained from the
// file must not be used afterwards.
func (f *File) Close() error {
	var err error
	f.once.Do(func() {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		if f.cleanup != nil {
			err = f.cleanup()
		}
	})
	return err
}

// Header returns the parsed file header.
func (f *File) Header() format.Header { return f.header }

// Root returns the root storage.
func (f *File) Root() *Storage {
	return &Storage{f: f, id: 0, entry: f.dir[0]}
}

func (f *File) checkOpen() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return types.ErrClosed
	}
	return nil
}

// numSectors is the number of whole sectors after the header.
func (f *File) numSectors() int {
	return (len(f.data) - f.ss) / f.ss
}

func (f *File) sector(id uint32) ([]byte, error) {
	if id > format.MaxRegSect || int(id) >= f.numSectors() {
		return nil, fmt.Errorf("%w: sector %#x out of range", types.ErrCorrupt, id)
	}
	off := (int(id) + 1) * f.ss
	return f.data[off : off+f.ss], nil
}

func (f *File) loadFAT() error {
	h := f.header
	perSector := f.ss / 4
	want := int(h.NumFATSectors)
	if want > f.numSectors() {
		return fmt.Errorf("%w: %d FAT sectors in a file of %d sectors", types.ErrCorrupt, want, f.numSectors())
	}

	fatSectors := make([]uint32, 0, want)
	for _, s := range h.DIFAT {
		if len(fatSectors) == want {
			break
		}
		if s == format.FreeSect {
			continue
		}
		fatSectors = append(fatSectors, s)
	}

	next := h.FirstDIFATSector
	for walked := 0; len(fatSectors) < want; walked++ {
		if next == format.EndOfChain || next == format.FreeSect || walked > int(h.NumDIFATSectors) {
			return fmt.Errorf("%w: DIFAT lists %d of %d FAT sectors", types.ErrCorrupt, len(fatSectors), want)
		}
		b, err := f.sector(next)
		if err != nil {
			return fmt.Errorf("DIFAT: %w", err)
		}
		for i := 0; i < perSector-1 && len(fatSectors) < want; i++ {
			if s := format.ReadU32(b, i*4); s != format.FreeSect {
				fatSectors = append(fatSectors, s)
			}
		}
		next = format.ReadU32(b, (perSector-1)*4)
	}

	f.fat = make([]uint32, 0, want*perSector)
	for _, s := range fatSectors {
		b, err := f.sector(s)
		if err != nil {
			return fmt.Errorf("FAT: %w", err)
		}
		for i := range perSector {
			f.fat = append(f.fat, format.ReadU32(b, i*4))
		}
	}
	return nil
}

func (f *File) loadDirectory() error {
	raw, err := f.readChain(f.header.FirstDirSector, -1)
	if err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	n := len(raw) / format.DirEntrySize
	if n == 0 {
		return fmt.Errorf("%w: empty directory", types.ErrCorrupt)
	}
	f.dir = make([]format.DirEntry, 0, n)
	for i := range n {
		e, err := format.ParseDirEntry(raw[i*format.DirEntrySize:])
		if err != nil {
			// An unreadable entry is treated as unused so its siblings survive.
			e = format.DirEntry{Type: format.ObjUnknown, Left: format.NoStream, Right: format.NoStream, Child: format.NoStream}
		}
		if f.header.MajorVersion == format.MajorVersion3 {
			e.Size &= 0xFFFFFFFF
		}
		f.dir = append(f.dir, e)
	}
	if f.dir[0].Type != format.ObjRoot {
		return fmt.Errorf("%w: first directory entry is not the root", types.ErrCorrupt)
	}
	return nil
}

func (f *File) loadMini() error {
	if f.header.NumMiniFATSectors > 0 && f.header.FirstMiniFATSector != format.EndOfChain {
		raw, err := f.readChain(f.header.FirstMiniFATSector, -1)
		if err != nil {
			return fmt.Errorf("mini FAT: %w", err)
		}
		f.miniFAT = make([]uint32, len(raw)/4)
		for i := range f.miniFAT {
			f.miniFAT[i] = format.ReadU32(raw, i*4)
		}
	}
	root := f.dir[0]
	if root.Size == 0 || root.StartSector == format.EndOfChain {
		return nil
	}
	size, err := streamSize(root.Size)
	if err != nil {
		return err
	}
	mini, err := f.readChain(root.StartSector, size)
	if err != nil {
		return fmt.Errorf("mini stream: %w", err)
	}
	f.mini = mini
	return nil
}
