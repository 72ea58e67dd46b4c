package testutil

import (
	"os"
	"path/filepath"
	"testing"

	ole "github.com/go-ole/go-ole"
	"github.com/stretchr/testify/require"

	"github.com/ClicksEnStock/FileInfos/cfb/builder"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/propset"
)

// WriteDocument builds a compound file and writes it to t.TempDir()/name.
//
// Example:
//
//	path := testutil.WriteDocument(t, "doc.cfb", func(b *builder.Builder) error {
//	    return b.AddStorage([]string{"Sub"})
//	})
func WriteDocument(t testing.TB, name string, build func(b *builder.Builder) error) string {
	t.Helper()
	b := builder.New(nil)
	require.NoError(t, build(b))
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, b.WriteFile(path))
	return path
}

// SummarySet returns a SummaryInformation set with Title = "Report".
func SummarySet() *propset.Set {
	set := propset.NewSet(types.FMTIDSummaryInformation)
	set.Sections[0].Add(2, "Title", types.String{Type: ole.VT_LPWSTR, V: "Report"})
	return set
}

// SummaryDocument writes a document whose only property set is SummarySet.
func SummaryDocument(t testing.TB) string {
	t.Helper()
	return WriteDocument(t, "summary.doc", func(b *builder.Builder) error {
		return b.SetPropertySet(nil, SummarySet())
	})
}

// NestedDocument writes a document with property sets at three levels:
//
//	Root Entry            SummaryInformation, DocumentSummaryInformation
//	                      (with user-defined section)
//	  ObjectPool
//	    _1                SummaryInformation, non-simple set
//	  Empty
func NestedDocument(t testing.TB) string {
	t.Helper()
	return WriteDocument(t, "nested.doc", func(b *builder.Builder) error {
		root := SummarySet()
		root.Sections[0].SetName(types.PIDDictionary, "Summary")
		root.Sections[0].Add(14, "Pages", types.Int{Type: ole.VT_I4, V: 12})
		if err := b.SetPropertySet(nil, root); err != nil {
			return err
		}

		doc := propset.NewSet(types.FMTIDDocSummaryInformation)
		doc.Sections[0].Add(2, "", types.String{Type: ole.VT_LPSTR, V: "Sales"})
		user := &propset.Section{FMTID: types.FMTIDUserDefinedProperties, CodePage: 1200}
		user.Add(2, "Client", types.String{Type: ole.VT_LPWSTR, V: "ACME"})
		doc.Sections = append(doc.Sections, user)
		if err := b.SetPropertySet(nil, doc); err != nil {
			return err
		}

		inner := propset.NewSet(types.FMTIDSummaryInformation)
		inner.Sections[0].Add(2, "Title", types.String{Type: ole.VT_LPWSTR, V: "Chart"})
		pool := []string{"ObjectPool", "_1"}
		if err := b.SetPropertySet(pool, inner); err != nil {
			return err
		}
		image := propset.NewSet(types.FMTIDImageInfo)
		image.Sections[0].Add(2, "Width", types.Uint{Type: ole.VT_UI4, V: 640})
		if err := b.SetPropertySetStorage(pool, image); err != nil {
			return err
		}
		if err := b.AddStream(pool, "Contents", []byte("chart data")); err != nil {
			return err
		}
		return b.AddStorage([]string{"Empty"})
	})
}

// WriteText writes a plain file to t.TempDir()/name.
func WriteText(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
