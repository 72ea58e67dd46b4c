package printer

import (
	"encoding/json"
	"fmt"
	"time"

	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/report"
)

// jsonReport represents one file's report in JSON and YAML output.
type jsonReport struct {
	File        string             `json:"file" yaml:"file"`
	Sets        []jsonSet          `json:"sets" yaml:"sets"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// jsonSet represents one property set.
type jsonSet struct {
	Path       string         `json:"path" yaml:"path"`
	FMTID      string         `json:"fmtid" yaml:"fmtid"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Properties []jsonProperty `json:"properties" yaml:"properties"`
}

// jsonProperty represents one property. Data carries the native value;
// Text is the rendering used in the plain report.
type jsonProperty struct {
	ID   uint32 `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Data any    `json:"data" yaml:"data"`
	Text string `json:"text" yaml:"text"`
}

// jsonEntry represents a compound file directory entry.
type jsonEntry struct {
	Path     string `json:"path" yaml:"path"`
	Type     string `json:"type" yaml:"type"`
	Size     uint64 `json:"size,omitempty" yaml:"size,omitempty"`
	CLSID    string `json:"clsid,omitempty" yaml:"clsid,omitempty"`
	Modified string `json:"modified,omitempty" yaml:"modified,omitempty"`
}

type jsonTree struct {
	File    string      `json:"file" yaml:"file"`
	Entries []jsonEntry `json:"entries" yaml:"entries"`
}

func (p *Printer) reportDocument(r Report) jsonReport {
	doc := jsonReport{File: r.File, Sets: make([]jsonSet, 0, len(r.Sets))}
	for _, set := range r.Sets {
		doc.Sets = append(doc.Sets, p.convertSet(set))
	}
	if p.opts.ShowDiagnostics {
		doc.Diagnostics = r.Diagnostics
	}
	return doc
}

func (p *Printer) convertSet(set report.CollectedSet) jsonSet {
	out := jsonSet{
		Path:       set.Path,
		FMTID:      types.FormatFMTID(set.FMTID),
		Name:       set.FriendlyName,
		Properties: make([]jsonProperty, 0, len(set.Properties)),
	}
	for _, prop := range set.Properties {
		jp := jsonProperty{
			ID:   prop.ID,
			Name: prop.Name,
			Data: nativeValue(prop.Value),
			Text: prop.Text,
		}
		if p.opts.ShowValueTypes {
			jp.Type = prop.VT.String()
		}
		out.Properties = append(out.Properties, jp)
	}
	return out
}

func (p *Printer) treeDocument(file string, entries []TreeEntry) jsonTree {
	doc := jsonTree{File: file, Entries: make([]jsonEntry, 0, len(entries))}
	for _, e := range entries {
		je := jsonEntry{Path: e.Path, Type: e.Type.String()}
		if e.IsStream() {
			je.Size = e.Size
		}
		if !isZeroGUID(e.CLSID) {
			je.CLSID = types.CLSID(e.CLSID).String()
		}
		if p.opts.ShowTimestamps && !e.Modified.IsZero() {
			je.Modified = e.Modified.Format(time.RFC3339)
		}
		doc.Entries = append(doc.Entries, je)
	}
	return doc
}

// printReportJSON prints a report in JSON format.
func (p *Printer) printReportJSON(r Report) error {
	return p.writeJSON(p.reportDocument(r))
}

// printTreeJSON prints a directory listing in JSON format.
func (p *Printer) printTreeJSON(file string, entries []TreeEntry) error {
	return p.writeJSON(p.treeDocument(file, entries))
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// nativeValue maps a decoded value to the closest JSON/YAML scalar.
func nativeValue(v types.Value) any {
	switch v := v.(type) {
	case types.Int:
		return v.V
	case types.Uint:
		return v.V
	case types.Float:
		return v.V
	case types.String:
		return v.V
	case types.Bool:
		return bool(v)
	case types.SCode:
		return fmt.Sprintf("%08x", uint32(v))
	case types.FileTime:
		return v.Time().Format(time.RFC3339Nano)
	case types.CLSID:
		return v.String()
	default:
		return nil
	}
}

func isZeroGUID(g ole.GUID) bool {
	return g == ole.GUID{}
}
