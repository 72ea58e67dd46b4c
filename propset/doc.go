// Package propset decodes and encodes serialized property sets, the
// PropertySetStream format stored in "\x05"-prefixed compound file streams.
//
// A stream holds one or two sections. Each section is identified by an FMTID
// and carries a code page (PID 1), an optional dictionary mapping property
// identifiers to names (PID 0) and a list of typed values. Values are decoded
// into the sealed types.Value model; types the reporter does not render
// (currency, dates, blobs, vectors, arrays, clipboard data, nested streams)
// decode to types.Unsupported so they never fail a read.
//
// Typical usage:
//
//	set, err := propset.Parse(data)
//	if err != nil {
//	    return err
//	}
//	sec := set.Sections[0]
//	for _, p := range sec.Properties {
//	    name, _ := sec.Name(p.ID)
//	    fmt.Println(name, p.Value)
//	}
package propset
