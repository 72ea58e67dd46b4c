// Package testutil provides fixtures shared by package tests: an in-memory
// storage tree with failure injection and compound-file document builders.
package testutil

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/stg"
)

// ErrInjected is the default failure returned by injection points.
var ErrInjected = &types.Error{Kind: types.ErrKindCorrupt, Code: types.E_FAIL, Msg: "injected failure"}

// Node is an in-memory storage. Zero-valued failure fields mean "succeed".
type Node struct {
	Name     string
	Sets     []*Set // listed by enumeration
	Hidden   []*Set // openable by FMTID but never enumerated (e.g. user-defined)
	Children []*Node
	Streams  []string

	FailPropertySetStorage error
	FailEnumSets           error
	FailSetsNextAt         int // 1-based; 0 disables
	FailEnumElements       error
	FailElementsNextAt     int // 1-based; 0 disables
	FailOpen               error
}

// Set is an in-memory property set.
type Set struct {
	FMTID    types.FMTID
	Friendly string
	Props    []Prop

	FailOpen   error
	FailEnum   error
	FailNextAt int // 1-based; 0 disables
}

// Prop is an in-memory property.
type Prop struct {
	ID       uint32
	Name     string
	Value    types.Value
	FailRead error
}

// Tracker counts acquisitions and releases across a tree.
type Tracker struct {
	Opened int
	Closed int
}

// Open returns n as a root storage tracked by t (t may be nil).
func (n *Node) Open(t *Tracker) stg.Storage {
	if t == nil {
		t = &Tracker{}
	}
	t.Opened++
	return &memStorage{n: n, t: t}
}

// Provider serves roots by path from a map.
type Provider struct {
	Roots   map[string]*Node
	Tracker *Tracker
}

func (p *Provider) OpenRoot(path string) (stg.Storage, error) {
	n, ok := p.Roots[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, types.ErrNotFound)
	}
	if n.FailOpen != nil {
		return nil, n.FailOpen
	}
	if p.Tracker == nil {
		p.Tracker = &Tracker{}
	}
	return n.Open(p.Tracker), nil
}

type memStorage struct {
	n      *Node
	t      *Tracker
	closed bool
}

func (s *memStorage) Name() string { return s.n.Name }

func (s *memStorage) PropertySetStorage() (stg.PropertySetStorage, error) {
	if s.n.FailPropertySetStorage != nil {
		return nil, s.n.FailPropertySetStorage
	}
	return &memSets{n: s.n, t: s.t}, nil
}

func (s *memStorage) EnumElements() (stg.Enumerator[stg.Element], error) {
	if s.n.FailEnumElements != nil {
		return nil, s.n.FailEnumElements
	}
	var els []stg.Element
	for _, c := range s.n.Children {
		els = append(els, stg.Element{Name: c.Name, Type: stg.ElementStorage})
	}
	for _, name := range s.n.Streams {
		els = append(els, stg.Element{Name: name, Type: stg.ElementStream})
	}
	return enumerate(s.t, els, s.n.FailElementsNextAt), nil
}

func (s *memStorage) OpenStorage(name string) (stg.Storage, error) {
	for _, c := range s.n.Children {
		if strings.EqualFold(c.Name, name) {
			if c.FailOpen != nil {
				return nil, c.FailOpen
			}
			return c.Open(s.t), nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, types.ErrNotFound)
}

func (s *memStorage) Close() error {
	if s.closed {
		return errors.New("storage closed twice")
	}
	s.closed = true
	s.t.Closed++
	return nil
}

type memSets struct {
	n *Node
	t *Tracker
}

func (m *memSets) Enum() (stg.Enumerator[stg.SetStat], error) {
	if m.n.FailEnumSets != nil {
		return nil, m.n.FailEnumSets
	}
	stats := make([]stg.SetStat, 0, len(m.n.Sets))
	for _, s := range m.n.Sets {
		stats = append(stats, stg.SetStat{FMTID: s.FMTID})
	}
	return enumerate(m.t, stats, m.n.FailSetsNextAt), nil
}

func (m *memSets) Open(fmtid types.FMTID) (stg.PropertyStorage, error) {
	for _, list := range [][]*Set{m.n.Sets, m.n.Hidden} {
		for _, s := range list {
			if s.FMTID != fmtid {
				continue
			}
			if s.FailOpen != nil {
				return nil, s.FailOpen
			}
			m.t.Opened++
			return &memProps{s: s, t: m.t}, nil
		}
	}
	return nil, fmt.Errorf("property set %s: %w", types.FormatFMTID(fmtid), types.ErrNotFound)
}

type memProps struct {
	s      *Set
	t      *Tracker
	closed bool
}

func (p *memProps) FMTID() types.FMTID { return p.s.FMTID }

func (p *memProps) Enum() (stg.Enumerator[stg.PropStat], error) {
	if p.s.FailEnum != nil {
		return nil, p.s.FailEnum
	}
	stats := make([]stg.PropStat, 0, len(p.s.Props))
	for _, pr := range p.s.Props {
		var vt types.VT
		if pr.Value != nil {
			vt = pr.Value.VT()
		}
		stats = append(stats, stg.PropStat{Name: pr.Name, ID: pr.ID, VT: vt})
	}
	return enumerate(p.t, stats, p.s.FailNextAt), nil
}

func (p *memProps) Read(pid uint32) (types.Value, error) {
	for _, pr := range p.s.Props {
		if pr.ID == pid {
			if pr.FailRead != nil {
				return nil, pr.FailRead
			}
			return pr.Value, nil
		}
	}
	return nil, fmt.Errorf("property %d: %w", pid, types.ErrNotFound)
}

func (p *memProps) ReadPropertyName(pid uint32) (string, error) {
	if pid == types.PIDDictionary && p.s.Friendly != "" {
		return p.s.Friendly, nil
	}
	for _, pr := range p.s.Props {
		if pr.ID == pid && pr.Name != "" {
			return pr.Name, nil
		}
	}
	return "", fmt.Errorf("name of property %d: %w", pid, types.ErrNotFound)
}

func (p *memProps) Close() error {
	if p.closed {
		return errors.New("property storage closed twice")
	}
	p.closed = true
	p.t.Closed++
	return nil
}

// memEnum fails on the failAt-th call to Next when failAt > 0.
type memEnum[T any] struct {
	items  []T
	next   int
	calls  int
	failAt int
	t      *Tracker
	closed bool
}

func enumerate[T any](t *Tracker, items []T, failAt int) *memEnum[T] {
	t.Opened++
	return &memEnum[T]{items: items, failAt: failAt, t: t}
}

func (e *memEnum[T]) Next() (T, bool, error) {
	var zero T
	e.calls++
	if e.failAt > 0 && e.calls == e.failAt {
		return zero, false, ErrInjected
	}
	if e.next >= len(e.items) {
		return zero, false, nil
	}
	item := e.items[e.next]
	e.next++
	return item, true, nil
}

func (e *memEnum[T]) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.t.Closed++
	return nil
}
