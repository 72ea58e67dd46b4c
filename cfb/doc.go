// Package cfb reads Compound File Binary (structured storage) files.
//
// A compound file is a small file system inside a file: a tree of storages
// (directories) and streams (files) laid out in fixed-size sectors, chained
// through a file allocation table. Streams shorter than the mini stream
// cutoff live in 64-byte mini sectors carved out of the root entry's stream.
//
// Files are opened read-only with deny-write sharing and memory-mapped where
// the platform allows it:
//
//	f, err := cfb.Open("report.doc")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	entries, err := f.Root().Entries()
//	for _, e := range entries {
//	    fmt.Println(e.Name, e.IsStorage())
//	}
//
// All chain walks are bounded by the sector count and all sibling-tree walks
// are cycle-checked, so a malformed file yields ErrCorrupt rather than a hang.
package cfb
