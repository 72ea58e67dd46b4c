package printer

import (
	"fmt"
	"strings"

	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/report"
)

func (p *Printer) indent(depth int) string {
	return strings.Repeat(" ", depth*p.opts.IndentSize)
}

// printReportText prints each set as a header line followed by its
// properties, one per line.
func (p *Printer) printReportText(r Report) error {
	if len(r.Sets) == 0 {
		if _, err := fmt.Fprintf(p.writer, "%s: no property sets\n", r.File); err != nil {
			return err
		}
	}

	for _, set := range r.Sets {
		if err := p.printSetText(set); err != nil {
			return err
		}
	}

	if p.opts.ShowDiagnostics && len(r.Diagnostics) > 0 {
		if _, err := fmt.Fprintf(p.writer, "%d diagnostic(s):\n", len(r.Diagnostics)); err != nil {
			return err
		}
		for _, d := range r.Diagnostics {
			if _, err := fmt.Fprintf(p.writer, "%s%s\n", p.indent(1), d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Printer) printSetText(set report.CollectedSet) error {
	header := "[" + set.Path + "] " + types.FormatFMTID(set.FMTID)
	if set.FriendlyName != "" {
		header += " " + fmt.Sprintf("%q", set.FriendlyName)
	}
	if _, err := fmt.Fprintln(p.writer, header); err != nil {
		return err
	}

	indent := p.indent(1)
	for _, prop := range set.Properties {
		// Format: "  Name (VT_TYPE) = value"
		var line string
		if p.opts.ShowValueTypes {
			line = fmt.Sprintf("%s%s (%s) = %s", indent, propertyName(prop), prop.VT, prop.Text)
		} else {
			line = fmt.Sprintf("%s%s = %s", indent, propertyName(prop), prop.Text)
		}
		if _, err := fmt.Fprintln(p.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// propertyName falls back to the identifier for unnamed properties.
func propertyName(prop report.PropertyLine) string {
	if prop.Name != "" {
		return prop.Name
	}
	return fmt.Sprintf("#%d", prop.ID)
}

func (p *Printer) printTreeText(file string, entries []TreeEntry) error {
	if _, err := fmt.Fprintf(p.writer, "%s\n", file); err != nil {
		return err
	}

	for _, e := range entries {
		indent := p.indent(e.Depth + 1)

		var meta string
		if e.IsStream() {
			meta = fmt.Sprintf("stream, %d bytes", e.Size)
		} else {
			meta = e.Type.String()
			if !isZeroGUID(e.CLSID) {
				meta += ", " + types.CLSID(e.CLSID).String()
			}
		}
		if p.opts.ShowTimestamps && !e.Modified.IsZero() {
			meta += ", modified " + e.Modified.Format("2006-01-02 15:04:05")
		}

		if _, err := fmt.Fprintf(p.writer, "%s%s (%s)\n", indent, printableName(e.Name), meta); err != nil {
			return err
		}
	}
	return nil
}

// printableName escapes the control characters that prefix property-set
// and other reserved stream names.
func printableName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r < 0x20 {
			fmt.Fprintf(&b, "\\x%02X", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
