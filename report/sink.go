package report

import (
	"strings"

	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

// SetInfo starts a property set in the event stream.
type SetInfo struct {
	Path         string
	FMTID        types.FMTID
	FriendlyName string
}

// PropertyLine is one rendered property of the current set.
type PropertyLine struct {
	Name  string
	ID    uint32
	VT    types.VT
	Value types.Value
	Text  string
}

// Sink consumes report events in depth-first visitation order.
type Sink interface {
	BeginSet(SetInfo)
	Property(PropertyLine)
}

// Text is the accumulated report: one header line per property set followed
// by one line per property. The zero value is ready to use.
//
//	Budget.xls {F29F85E0-4FF9-1068-AB91-08002B27B3D9}
//	  Title"Report"
//	  Pages12
type Text struct {
	b strings.Builder
}

func (t *Text) BeginSet(s SetInfo) {
	t.b.WriteString(s.Path)
	t.b.WriteByte(' ')
	t.b.WriteString(types.FormatFMTID(s.FMTID))
	if s.FriendlyName != "" {
		t.b.WriteString(" (")
		t.b.WriteString(s.FriendlyName)
		t.b.WriteByte(')')
	}
	t.b.WriteByte('\n')
}

func (t *Text) Property(p PropertyLine) {
	t.b.WriteString("  ")
	t.b.WriteString(p.Name)
	t.b.WriteString(p.Text)
	t.b.WriteByte('\n')
}

// String returns the report accumulated so far.
func (t *Text) String() string { return t.b.String() }

// Len returns the report length in bytes.
func (t *Text) Len() int { return t.b.Len() }

// CollectedSet is a property set with its rendered properties.
type CollectedSet struct {
	SetInfo
	Properties []PropertyLine
}

// Collector keeps a structured copy of the event stream.
type Collector struct {
	Sets []CollectedSet
}

func (c *Collector) BeginSet(s SetInfo) {
	c.Sets = append(c.Sets, CollectedSet{SetInfo: s})
}

func (c *Collector) Property(p PropertyLine) {
	if len(c.Sets) == 0 {
		return
	}
	last := &c.Sets[len(c.Sets)-1]
	last.Properties = append(last.Properties, p)
}

// Tee forwards every event to each sink in order.
type Tee []Sink

func (t Tee) BeginSet(s SetInfo) {
	for _, sink := range t {
		sink.BeginSet(s)
	}
}

func (t Tee) Property(p PropertyLine) {
	for _, sink := range t {
		sink.Property(p)
	}
}
