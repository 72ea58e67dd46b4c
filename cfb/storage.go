package cfb

import (
	"fmt"
	"slices"
	"strings"
	"time"

	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

// EntryType distinguishes storages from streams.
type EntryType uint8

const (
	TypeStorage EntryType = iota + 1
	TypeStream
	TypeRoot
)

func (t EntryType) String() string {
	switch t {
	case TypeStorage:
		return "storage"
	case TypeStream:
		return "stream"
	case TypeRoot:
		return "root"
	default:
		return "unknown"
	}
}

// Entry describes a child of a storage.
type Entry struct {
	Name     string
	Type     EntryType
	CLSID    ole.GUID
	Size     uint64
	Created  time.Time
	Modified time.Time

	id uint32
}

// IsStorage reports whether the entry can be opened as a storage.
func (e Entry) IsStorage() bool { return e.Type == TypeStorage || e.Type == TypeRoot }

// ID returns the directory entry index, unique within a file.
func (e Entry) ID() uint32 { return e.id }

// IsStream reports whether the entry holds stream data.
func (e Entry) IsStream() bool { return e.Type == TypeStream }

// Storage is a directory node of a compound file.
type Storage struct {
	f         *File
	id        uint32
	entry     format.DirEntry
	ancestors []uint32
}

// Name returns the storage name; the root is named "Root Entry".
func (s *Storage) Name() string { return s.entry.Name }

// Entry returns the storage's own directory information.
func (s *Storage) Entry() Entry { return newEntry(s.id, s.entry) }

func newEntry(id uint32, e format.DirEntry) Entry {
	out := Entry{Name: e.Name, CLSID: e.CLSID, Size: e.Size, id: id}
	switch e.Type {
	case format.ObjStorage:
		out.Type = TypeStorage
		out.Size = 0
	case format.ObjRoot:
		out.Type = TypeRoot
	case format.ObjStream:
		out.Type = TypeStream
	}
	if e.Created != 0 {
		out.Created = format.FiletimeToTime(e.Created)
	}
	if e.Modified != 0 {
		out.Modified = format.FiletimeToTime(e.Modified)
	}
	return out
}

// Entries returns the storage's children in sibling-tree order, which is
// CFB name order (length first, then upper-cased code units).
func (s *Storage) Entries() ([]Entry, error) {
	if err := s.f.checkOpen(); err != nil {
		return nil, err
	}
	dir := s.f.dir
	visited := newBitmap(len(dir))
	var out []Entry

	// In-order traversal with an explicit stack.
	var stack []uint32
	cur := s.entry.Child
	for cur != format.NoStream || len(stack) > 0 {
		for cur != format.NoStream {
			if int(cur) >= len(dir) || visited.testAndSet(cur) {
				return nil, fmt.Errorf("%w: sibling tree of %q revisits or overruns entry %#x",
					types.ErrCorrupt, s.entry.Name, cur)
			}
			stack = append(stack, cur)
			cur = dir[cur].Left
		}
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e := dir[id]; e.Type == format.ObjStorage || e.Type == format.ObjStream {
			out = append(out, newEntry(id, e))
		}
		cur = dir[id].Right
	}
	return out, nil
}

// Lookup finds a direct child by name, case-insensitively.
func (s *Storage) Lookup(name string) (Entry, error) {
	entries, err := s.Entries()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%q in %q: %w", name, s.entry.Name, types.ErrNotFound)
}

// Storage opens a child storage.
func (s *Storage) Storage(name string) (*Storage, error) {
	e, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !e.IsStorage() {
		return nil, fmt.Errorf("%q is a %s: %w", name, e.Type, types.ErrNotFound)
	}
	return s.OpenEntry(e)
}

// OpenEntry opens a storage entry returned by Entries.
func (s *Storage) OpenEntry(e Entry) (*Storage, error) {
	if err := s.f.checkOpen(); err != nil {
		return nil, err
	}
	if !e.IsStorage() || int(e.id) >= len(s.f.dir) {
		return nil, fmt.Errorf("%q: %w", e.Name, types.ErrNotFound)
	}
	// A child pointer back into the open chain would make the tree infinite.
	chain := append(slices.Clip(s.ancestors), s.id)
	if slices.Contains(chain, e.id) {
		return nil, fmt.Errorf("%w: storage %q is its own ancestor", types.ErrCorrupt, e.Name)
	}
	return &Storage{f: s.f, id: e.id, entry: s.f.dir[e.id], ancestors: chain}, nil
}

// Stream returns a copy of a child stream's contents.
func (s *Storage) Stream(name string) ([]byte, error) {
	e, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	return s.ReadEntry(e)
}

// ReadEntry returns the contents of a stream entry returned by Entries.
func (s *Storage) ReadEntry(e Entry) ([]byte, error) {
	if err := s.f.checkOpen(); err != nil {
		return nil, err
	}
	if !e.IsStream() || int(e.id) >= len(s.f.dir) {
		return nil, fmt.Errorf("%q: not a stream: %w", e.Name, types.ErrNotFound)
	}
	data, err := s.f.readStream(s.f.dir[e.id])
	if err != nil {
		return nil, fmt.Errorf("stream %q: %w", e.Name, err)
	}
	return data, nil
}
