package report

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/stg"
)

// initialStackCapacity covers the storage depth of ordinary documents.
const initialStackCapacity = 16

// Stats counts what a walk produced.
type Stats struct {
	Levels     int // storages whose property sets were rendered
	Sets       int // property-set render passes
	Properties int // properties written
}

// Walker renders storage trees to a Sink. A Walker is not safe for
// concurrent use; diagnostics and stats accumulate across calls.
type Walker struct {
	sink  Sink
	opts  Options
	log   *slog.Logger
	diags []types.Diagnostic
	stats Stats
}

// NewWalker returns a walker writing to sink. nil opts uses DefaultOptions().
func NewWalker(sink Sink, opts *Options) *Walker {
	o := opts.withDefaults()
	return &Walker{sink: sink, opts: o, log: o.Logger}
}

// Diagnostics returns the failures recorded so far.
func (w *Walker) Diagnostics() []types.Diagnostic { return w.diags }

// Stats returns the counters accumulated so far.
func (w *Walker) Stats() Stats { return w.stats }

func (w *Walker) fail(path, op string, err error) {
	d := types.NewDiagnostic(path, op, err)
	w.diags = append(w.diags, d)
	w.log.Warn("report: "+op+" failed",
		"path", path,
		"code", d.Code.Hex(),
		"error", err)
}

// RenderPropertySet writes every property of ps under path. The set's
// friendly name is best effort. A property that cannot be read is skipped;
// an enumeration failure ends the set with what was already written.
func (w *Walker) RenderPropertySet(path string, ps stg.PropertyStorage) {
	w.stats.Sets++
	friendly, err := ps.ReadPropertyName(types.PIDDictionary)
	if err != nil {
		friendly = ""
	}
	w.sink.BeginSet(SetInfo{Path: path, FMTID: ps.FMTID(), FriendlyName: friendly})

	e, err := ps.Enum()
	if err != nil {
		w.fail(path, "enumerate properties", err)
		return
	}
	defer e.Close()

	for {
		stat, ok, err := e.Next()
		if err != nil {
			w.fail(path, "enumerate properties", err)
			return
		}
		if !ok {
			return
		}
		v, err := ps.Read(stat.ID)
		if err != nil {
			w.fail(path, fmt.Sprintf("read property %d", stat.ID), err)
			continue
		}
		name := stat.Name
		if name == "" && w.opts.NameFallback {
			name = strconv.FormatUint(uint64(stat.ID), 10)
		}
		w.sink.Property(PropertyLine{
			Name:  name,
			ID:    stat.ID,
			VT:    v.VT(),
			Value: v,
			Text:  RenderValue(v, w.opts.ValueWidth),
		})
		w.stats.Properties++
	}
}

// RenderLevel renders every property set directly inside one storage, then
// opens the user-defined properties set explicitly and renders it if it
// exists. A set that fails to open, like an enumeration failure, ends the
// enumerated sets of the level but not the user-defined lookup.
func (w *Walker) RenderLevel(path string, sets stg.PropertySetStorage) {
	w.stats.Levels++
	w.renderEnumerated(path, sets)

	ps, err := sets.Open(types.FMTIDUserDefinedProperties)
	switch {
	case err == nil:
		w.RenderPropertySet(path, ps)
		_ = ps.Close()
	case errors.Is(err, types.ErrNotFound):
		w.log.Debug("report: no user-defined properties", "path", path)
	default:
		w.fail(path, "open user-defined properties", err)
	}
}

func (w *Walker) renderEnumerated(path string, sets stg.PropertySetStorage) {
	e, err := sets.Enum()
	if err != nil {
		w.fail(path, "enumerate property sets", err)
		return
	}
	defer e.Close()

	for {
		stat, ok, err := e.Next()
		if err != nil {
			w.fail(path, "enumerate property sets", err)
			return
		}
		if !ok {
			return
		}
		ps, err := sets.Open(stat.FMTID)
		if err != nil {
			w.fail(path, "open property set "+types.FormatFMTID(stat.FMTID), err)
			return
		}
		w.RenderPropertySet(path, ps)
		_ = ps.Close()
	}
}

// frame is one storage on the walk stack. The frame owns its storage (except
// the caller's root) and its child enumerator, and releases both on pop.
type frame struct {
	st       stg.Storage
	path     string
	children stg.Enumerator[stg.Element]
	owned    bool
	visited  bool
}

func (f *frame) release() {
	if f.children != nil {
		_ = f.children.Close()
	}
	if f.owned {
		_ = f.st.Close()
	}
}

// Walk renders root and, depth-first, every child storage whose name does
// not start with the property-set marker. Child paths are the parent path,
// the separator and the child name. root is not closed.
//
// A storage without property-set access is abandoned together with its
// children. A child that cannot be opened is skipped. A failing child
// enumeration ends that storage's remaining children. None of these affect
// siblings or ancestors.
func (w *Walker) Walk(root stg.Storage, path string) {
	stack := make([]frame, 0, initialStackCapacity)
	stack = append(stack, frame{st: root, path: path})

	pop := func() {
		stack[len(stack)-1].release()
		stack = stack[:len(stack)-1]
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if !top.visited {
			top.visited = true
			w.log.Debug("report: visit storage", "path", top.path, "depth", len(stack)-1)
			sets, err := top.st.PropertySetStorage()
			if err != nil {
				w.fail(top.path, "query property set storage", err)
				pop()
				continue
			}
			w.RenderLevel(top.path, sets)

			children, err := top.st.EnumElements()
			if err != nil {
				w.fail(top.path, "enumerate elements", err)
				pop()
				continue
			}
			top.children = children
		}

		el, ok, err := top.children.Next()
		if err != nil {
			w.fail(top.path, "enumerate elements", err)
			pop()
			continue
		}
		if !ok {
			pop()
			continue
		}
		if el.Type != stg.ElementStorage || strings.HasPrefix(el.Name, string(rune(format.PropSetNamePrefix))) {
			continue
		}
		childPath := top.path + w.opts.PathSeparator + el.Name
		child, err := top.st.OpenStorage(el.Name)
		if err != nil {
			w.fail(childPath, "open storage", err)
			continue
		}
		stack = append(stack, frame{st: child, path: childPath, owned: true})
	}
}

// Run opens path through p, walks it into sink and closes it. The returned
// walker holds diagnostics and stats. When the root cannot be opened the
// error is returned and nothing is written.
func Run(p stg.Provider, path string, sink Sink, opts *Options) (*Walker, error) {
	w := NewWalker(sink, opts)
	root, err := p.OpenRoot(path)
	if err != nil {
		w.fail(path, "open root storage", err)
		return w, fmt.Errorf("report: open %s: %w", path, err)
	}
	defer root.Close()
	w.Walk(root, path)
	return w, nil
}

// Accumulate runs the walk and returns the accumulated report text.
func Accumulate(p stg.Provider, path string, opts *Options) (string, []types.Diagnostic, error) {
	var text Text
	w, err := Run(p, path, &text, opts)
	return text.String(), w.Diagnostics(), err
}
