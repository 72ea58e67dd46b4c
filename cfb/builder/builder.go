package builder

import (
	"errors"
	"fmt"
	"os"
	"strings"

	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/propset"
)

var (
	// ErrInvalidName is returned for empty names, names longer than 31
	// characters and names containing '/', '\', ':' or '!'.
	ErrInvalidName = errors.New("builder: invalid entry name")
	// ErrExists is returned when a name is already used by a sibling of a
	// different kind, or a stream is added twice.
	ErrExists = errors.New("builder: entry already exists")
	// ErrTooLarge is returned when the file would need DIFAT sectors.
	ErrTooLarge = errors.New("builder: file too large")
)

// Builder accumulates a storage tree in memory. Builder instances are NOT
// thread-safe.
type Builder struct {
	root *node
	opts *Options
}

type node struct {
	name     string
	storage  bool
	clsid    ole.GUID
	data     []byte
	children []*node
}

// New returns an empty builder. nil opts uses DefaultOptions().
func New(opts *Options) *Builder {
	if opts == nil {
		opts = DefaultOptions()
	}
	root := &node{name: "Root Entry", storage: true}
	root.clsid = format.ReadGUID(opts.RootCLSID[:], 0)
	return &Builder{root: root, opts: opts}
}

// AddStorage ensures the storage at path exists, creating parents as needed.
func (b *Builder) AddStorage(path []string) error {
	_, err := b.ensure(path)
	return err
}

// SetCLSID sets the class identifier of the storage at path.
func (b *Builder) SetCLSID(path []string, clsid ole.GUID) error {
	n, err := b.ensure(path)
	if err != nil {
		return err
	}
	n.clsid = clsid
	return nil
}

// AddStream creates a stream named name in the storage at path.
func (b *Builder) AddStream(path []string, name string, data []byte) error {
	parent, err := b.ensure(path)
	if err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return err
	}
	if existing := parent.child(name); existing != nil {
		return fmt.Errorf("%q: %w", name, ErrExists)
	}
	parent.children = append(parent.children, &node{name: name, data: append([]byte(nil), data...)})
	return nil
}

// SetPropertySet stores set as a simple property set: a stream named after
// the first section's FMTID with the \x05 prefix.
func (b *Builder) SetPropertySet(path []string, set *propset.Set) error {
	name, data, err := encodeSet(set)
	if err != nil {
		return err
	}
	return b.AddStream(path, name, data)
}

// SetPropertySetStorage stores set as a non-simple property set: a \x05
// storage holding the serialized set in its CONTENTS stream.
func (b *Builder) SetPropertySetStorage(path []string, set *propset.Set) error {
	name, data, err := encodeSet(set)
	if err != nil {
		return err
	}
	sub := append(append([]string(nil), path...), name)
	return b.AddStream(sub, format.ContentsStream, data)
}

func encodeSet(set *propset.Set) (string, []byte, error) {
	if set == nil || len(set.Sections) == 0 {
		return "", nil, errors.New("builder: property set without sections")
	}
	data, err := propset.Encode(set)
	if err != nil {
		return "", nil, fmt.Errorf("builder: encode property set: %w", err)
	}
	return string(rune(format.PropSetNamePrefix)) + format.PropSetName(set.Sections[0].FMTID), data, nil
}

func (b *Builder) ensure(path []string) (*node, error) {
	cur := b.root
	for _, name := range path {
		if err := validName(name); err != nil {
			return nil, err
		}
		next := cur.child(name)
		switch {
		case next == nil:
			next = &node{name: name, storage: true}
			cur.children = append(cur.children, next)
		case !next.storage:
			return nil, fmt.Errorf("%q is a stream: %w", name, ErrExists)
		}
		cur = next
	}
	return cur, nil
}

func (n *node) child(name string) *node {
	for _, c := range n.children {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	return nil
}

func validName(name string) error {
	if name == "" || len([]rune(name)) > format.MaxNameChars || strings.ContainsAny(name, `/\:!`) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}

// WriteFile writes the compound file to path.
func (b *Builder) WriteFile(path string) error {
	data, err := b.Bytes()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("builder: write %s: %w", path, err)
	}
	return nil
}
