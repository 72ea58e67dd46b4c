package printer

import "gopkg.in/yaml.v3"

// printReportYAML prints a report as a YAML document.
func (p *Printer) printReportYAML(r Report) error {
	return p.writeYAML(p.reportDocument(r))
}

// printTreeYAML prints a directory listing as a YAML document.
func (p *Printer) printTreeYAML(file string, entries []TreeEntry) error {
	return p.writeYAML(p.treeDocument(file, entries))
}

func (p *Printer) writeYAML(v any) error {
	enc := yaml.NewEncoder(p.writer)
	enc.SetIndent(p.opts.IndentSize)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
