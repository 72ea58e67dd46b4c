// Package builder writes compound files from scratch.
//
// It is the write-side counterpart of package cfb and exists mainly to build
// documents for tests, examples and tooling. Storages are addressed by path,
// intermediate storages are created on demand, and the whole file is laid
// out in memory when Bytes or WriteFile is called:
//
//	b := builder.New(nil)
//	set := propset.NewSet(types.FMTIDSummaryInformation)
//	set.Sections[0].Add(2, "Title", types.String{Type: ole.VT_LPWSTR, V: "Report"})
//	if err := b.SetPropertySet(nil, set); err != nil {
//	    return err
//	}
//	if err := b.AddStream([]string{"ObjectPool"}, "Contents", data); err != nil {
//	    return err
//	}
//	return b.WriteFile("report.doc")
//
// Output is always version 3 (512-byte sectors). Streams shorter than 4096
// bytes go to the mini stream. Sibling trees are balanced binary trees in
// compound file name order with every node black, which is a valid red-black
// colouring. The FAT is addressed from the header only, so files that would
// need more than 109 FAT sectors (about 7 MB) are rejected.
package builder
