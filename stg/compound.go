package stg

import (
	"errors"
	"fmt"
	"strings"

	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/cfb"
	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/propset"
)

// Compound is the Provider backed by compound files on disk.
type Compound struct{}

// OpenRoot implements Provider.
func (Compound) OpenRoot(path string) (Storage, error) { return OpenFile(path) }

// OpenFile opens a compound file read-only with deny-write sharing and
// returns its root storage. Closing the root closes the file.
func OpenFile(path string) (Storage, error) {
	f, err := cfb.Open(path)
	if err != nil {
		return nil, err
	}
	return &compoundStorage{st: f.Root(), file: f}, nil
}

// NewCompound returns the root storage of an already opened file. Closing
// it leaves the file open.
func NewCompound(f *cfb.File) Storage {
	return &compoundStorage{st: f.Root()}
}

type compoundStorage struct {
	st     *cfb.Storage
	file   *cfb.File // set on the root when the storage owns the file
	closed bool
}

func (s *compoundStorage) Name() string { return s.st.Name() }

func (s *compoundStorage) PropertySetStorage() (PropertySetStorage, error) {
	if s.closed {
		return nil, types.ErrClosed
	}
	return &compoundSets{st: s.st}, nil
}

func (s *compoundStorage) EnumElements() (Enumerator[Element], error) {
	if s.closed {
		return nil, types.ErrClosed
	}
	entries, err := s.st.Entries()
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(entries))
	for _, e := range entries {
		el := Element{Name: e.Name, Type: ElementStream, Size: e.Size}
		if e.IsStorage() {
			el.Type = ElementStorage
		}
		out = append(out, el)
	}
	return NewSliceEnumerator(out), nil
}

func (s *compoundStorage) OpenStorage(name string) (Storage, error) {
	if s.closed {
		return nil, types.ErrClosed
	}
	child, err := s.st.Storage(name)
	if err != nil {
		return nil, err
	}
	return &compoundStorage{st: child}, nil
}

func (s *compoundStorage) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

type compoundSets struct {
	st *cfb.Storage
}

// setEntry is a \x05 element holding a property set.
type setEntry struct {
	entry cfb.Entry
	fmtid ole.GUID
}

func (c *compoundSets) list() ([]setEntry, error) {
	entries, err := c.st.Entries()
	if err != nil {
		return nil, err
	}
	var out []setEntry
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, string(rune(format.PropSetNamePrefix))) {
			continue
		}
		fmtid, err := format.PropSetFMTID(e.Name[1:])
		if err != nil {
			// Not a standard name: identify the set by its first section.
			set, perr := c.parse(e)
			if perr != nil || len(set.Sections) == 0 {
				continue
			}
			fmtid = set.Sections[0].FMTID
		}
		out = append(out, setEntry{entry: e, fmtid: fmtid})
	}
	return out, nil
}

func (c *compoundSets) parse(e cfb.Entry) (*propset.Set, error) {
	var (
		data []byte
		err  error
	)
	if e.IsStorage() {
		var sub *cfb.Storage
		if sub, err = c.st.OpenEntry(e); err == nil {
			data, err = sub.Stream(format.ContentsStream)
		}
	} else {
		data, err = c.st.ReadEntry(e)
	}
	if err != nil {
		return nil, err
	}
	return propset.Parse(data)
}

func (c *compoundSets) Enum() (Enumerator[SetStat], error) {
	sets, err := c.list()
	if err != nil {
		return nil, err
	}
	stats := make([]SetStat, 0, len(sets))
	for _, s := range sets {
		stats = append(stats, SetStat{FMTID: s.fmtid})
	}
	return NewSliceEnumerator(stats), nil
}

func (c *compoundSets) Open(fmtid types.FMTID) (PropertyStorage, error) {
	// The user-defined set is the second section of DocumentSummaryInformation.
	container := fmtid
	if fmtid == types.FMTIDUserDefinedProperties {
		container = types.FMTIDDocSummaryInformation
	}
	sets, err := c.list()
	if err != nil {
		return nil, err
	}
	for _, s := range sets {
		if s.fmtid != container {
			continue
		}
		set, err := c.parse(s.entry)
		if err != nil {
			return nil, fmt.Errorf("property set %s: %w", types.FormatFMTID(fmtid), err)
		}
		sec, ok := set.Section(fmtid)
		if !ok {
			if fmtid == types.FMTIDUserDefinedProperties {
				break
			}
			sec = set.Sections[0]
		}
		return &compoundProps{fmtid: fmtid, sec: sec}, nil
	}
	return nil, fmt.Errorf("property set %s: %w", types.FormatFMTID(fmtid), types.ErrNotFound)
}

type compoundProps struct {
	fmtid  types.FMTID
	sec    *propset.Section
	closed bool
}

func (p *compoundProps) FMTID() types.FMTID { return p.fmtid }

func (p *compoundProps) Enum() (Enumerator[PropStat], error) {
	if p.closed {
		return nil, types.ErrClosed
	}
	stats := make([]PropStat, 0, len(p.sec.Properties))
	for _, prop := range p.sec.Properties {
		if types.IsReservedPID(prop.ID) {
			continue
		}
		name, _ := p.sec.Name(prop.ID)
		stats = append(stats, PropStat{Name: name, ID: prop.ID, VT: prop.Type})
	}
	return NewSliceEnumerator(stats), nil
}

func (p *compoundProps) Read(pid uint32) (types.Value, error) {
	if p.closed {
		return nil, types.ErrClosed
	}
	prop, ok := p.sec.Property(pid)
	if !ok {
		return nil, fmt.Errorf("property %d: %w", pid, types.ErrNotFound)
	}
	if prop.Err != nil {
		if !errors.Is(prop.Err, types.ErrCorrupt) {
			return nil, fmt.Errorf("property %d: %w: %w", pid, types.ErrCorrupt, prop.Err)
		}
		return nil, fmt.Errorf("property %d: %w", pid, prop.Err)
	}
	return prop.Value, nil
}

func (p *compoundProps) ReadPropertyName(pid uint32) (string, error) {
	if p.closed {
		return "", types.ErrClosed
	}
	name, ok := p.sec.Name(pid)
	if !ok {
		return "", fmt.Errorf("name of property %d: %w", pid, types.ErrNotFound)
	}
	return name, nil
}

func (p *compoundProps) Close() error {
	p.closed = true
	return nil
}
