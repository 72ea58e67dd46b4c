package builder

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ole "github.com/go-ole/go-ole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClicksEnStock/FileInfos/cfb"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
	"github.com/ClicksEnStock/FileInfos/propset"
)

func TestNameValidation(t *testing.T) {
	b := New(nil)
	for _, name := range []string{"", "a/b", `a\b`, "a:b", "a!b", strings.Repeat("x", 32)} {
		assert.ErrorIs(t, b.AddStream(nil, name, nil), ErrInvalidName, "%q", name)
	}
	assert.NoError(t, b.AddStream(nil, strings.Repeat("x", 31), nil))
}

func TestDuplicateEntries(t *testing.T) {
	b := New(nil)
	require.NoError(t, b.AddStream(nil, "Data", []byte("1")))
	assert.ErrorIs(t, b.AddStream(nil, "DATA", []byte("2")), ErrExists)
	assert.ErrorIs(t, b.AddStorage([]string{"data"}), ErrExists)

	require.NoError(t, b.AddStorage([]string{"Sub"}))
	assert.NoError(t, b.AddStorage([]string{"sub", "Child"}), "existing storages are reused")
}

func TestPropertySetStreams(t *testing.T) {
	b := New(nil)
	set := propset.NewSet(types.FMTIDSummaryInformation)
	set.Sections[0].Add(2, "Title", types.String{Type: ole.VT_LPWSTR, V: "Report"})
	require.NoError(t, b.SetPropertySet(nil, set))
	require.NoError(t, b.SetPropertySetStorage([]string{"Embedded"}, set))

	data, err := b.Bytes()
	require.NoError(t, err)
	f, err := cfb.New(data)
	require.NoError(t, err)

	raw, err := f.Root().Stream("\x05SummaryInformation")
	require.NoError(t, err)
	got, err := propset.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Title", got.Sections[0].Names[2])

	emb, err := f.Root().Storage("Embedded")
	require.NoError(t, err)
	nonSimple, err := emb.Storage("\x05SummaryInformation")
	require.NoError(t, err)
	contents, err := nonSimple.Stream("CONTENTS")
	require.NoError(t, err)
	assert.Equal(t, raw, contents)
}

func TestDeterministicOutput(t *testing.T) {
	build := func() []byte {
		b := New(nil)
		require.NoError(t, b.AddStream([]string{"Z", "Y"}, "s", []byte("x")))
		require.NoError(t, b.AddStream(nil, "Big", bytes.Repeat([]byte("0123456789"), 900)))
		data, err := b.Bytes()
		require.NoError(t, err)
		return data
	}
	assert.Equal(t, build(), build())
}

func TestTimestampsAndCLSID(t *testing.T) {
	when := time.Date(2023, 5, 17, 9, 0, 0, 0, time.UTC)
	b := New(&Options{Timestamp: when})
	require.NoError(t, b.SetCLSID([]string{"Obj"}, types.FMTIDImageInfo))

	path := filepath.Join(t.TempDir(), "ts.cfb")
	require.NoError(t, b.WriteFile(path))

	f, err := cfb.Open(path)
	require.NoError(t, err)
	defer f.Close()
	entries, err := f.Root().Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Created.Equal(when))
	assert.True(t, entries[0].Modified.Equal(when))
	assert.Equal(t, types.FMTIDImageInfo, entries[0].CLSID)
}

func TestManyEntriesSpanSectors(t *testing.T) {
	b := New(nil)
	for i := range 40 {
		name := "s" + strings.Repeat("x", i%7) + string(rune('a'+i%26)) + string(rune('A'+i/26))
		require.NoError(t, b.AddStream([]string{"Bulk"}, name, bytes.Repeat([]byte{byte(i)}, 100+i*100)))
	}
	data, err := b.Bytes()
	require.NoError(t, err)

	f, err := cfb.New(data)
	require.NoError(t, err)
	bulk, err := f.Root().Storage("Bulk")
	require.NoError(t, err)
	entries, err := bulk.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 40)
	for _, e := range entries {
		got, err := bulk.ReadEntry(e)
		require.NoError(t, err)
		assert.Len(t, got, int(e.Size))
	}
}

func TestTooLarge(t *testing.T) {
	b := New(nil)
	require.NoError(t, b.AddStream(nil, "huge", make([]byte, 8<<20)))
	_, err := b.Bytes()
	assert.ErrorIs(t, err, ErrTooLarge)
}
