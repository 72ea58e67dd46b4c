package cfb

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClicksEnStock/FileInfos/cfb/builder"
	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

func sampleFile(t *testing.T) []byte {
	t.Helper()
	b := builder.New(nil)
	require.NoError(t, b.AddStream(nil, "b", []byte("bee")))
	require.NoError(t, b.AddStream(nil, "ccc", bytes.Repeat([]byte{0xAB}, 5000)))
	require.NoError(t, b.AddStream(nil, "ab", nil))
	require.NoError(t, b.AddStream([]string{"A"}, "Inner", []byte("inside")))
	require.NoError(t, b.AddStorage([]string{"A", "Deep", "Deeper"}))
	data, err := b.Bytes()
	require.NoError(t, err)
	return data
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReadBuiltFile(t *testing.T) {
	f, err := New(sampleFile(t))
	require.NoError(t, err)
	defer f.Close()

	root := f.Root()
	assert.Equal(t, "Root Entry", root.Name())
	assert.Equal(t, TypeRoot, root.Entry().Type)

	entries, err := root.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "b", "ab", "ccc"}, names(entries))
	assert.True(t, entries[0].IsStorage())
	assert.True(t, entries[1].IsStream())
	assert.Equal(t, uint64(5000), entries[3].Size)

	small, err := root.Stream("B")
	require.NoError(t, err)
	assert.Equal(t, []byte("bee"), small)

	big, err := root.Stream("ccc")
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 5000), big)

	empty, err := root.Stream("ab")
	require.NoError(t, err)
	assert.Empty(t, empty)

	a, err := root.Storage("a")
	require.NoError(t, err)
	inner, err := a.Stream("Inner")
	require.NoError(t, err)
	assert.Equal(t, []byte("inside"), inner)

	deep, err := a.Storage("Deep")
	require.NoError(t, err)
	deeper, err := deep.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{"Deeper"}, names(deeper))
}

func TestLookupErrors(t *testing.T) {
	f, err := New(sampleFile(t))
	require.NoError(t, err)
	root := f.Root()

	_, err = root.Storage("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = root.Storage("b")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = root.Stream("A")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, types.STG_E_FILENOTFOUND, types.StatusCode(err))
}

func TestNewRejectsNonCompound(t *testing.T) {
	_, err := New([]byte("definitely not a compound file"))
	assert.ErrorIs(t, err, types.ErrNotCompound)

	data := make([]byte, 1024)
	_, err = New(data)
	assert.ErrorIs(t, err, types.ErrNotCompound)
	assert.Equal(t, types.STG_E_INVALIDHEADER, types.StatusCode(err))
}

func dirEntryOffset(data []byte, id int) int {
	first := int(format.ReadU32(data, format.HeaderFirstDirOffset))
	return format.HeaderSize + first*512 + id*format.DirEntrySize
}

func TestCyclicDirectoryChain(t *testing.T) {
	data := sampleFile(t)
	dir := format.ReadU32(data, format.HeaderFirstDirOffset)
	format.PutU32(data, format.HeaderSize+int(dir)*4, dir)

	_, err := New(data)
	assert.ErrorIs(t, err, types.ErrCorrupt)
}

func TestBrokenStreamChain(t *testing.T) {
	data := sampleFile(t)
	f, err := New(data)
	require.NoError(t, err)
	entries, err := f.Root().Entries()
	require.NoError(t, err)
	big := entries[3]

	start := format.ReadU32(data, dirEntryOffset(data, int(big.id))+format.DirStartOffset)
	format.PutU32(data, format.HeaderSize+int(start)*4, 0x00FFFFFF)

	f, err = New(data)
	require.NoError(t, err)
	_, err = f.Root().Stream("ccc")
	assert.ErrorIs(t, err, types.ErrCorrupt)

	// Other streams are unaffected.
	_, err = f.Root().Stream("b")
	assert.NoError(t, err)
}

func TestSiblingCycle(t *testing.T) {
	data := sampleFile(t)
	child := format.ReadU32(data, dirEntryOffset(data, 0)+format.DirChildOffset)
	off := dirEntryOffset(data, int(child))
	format.PutU32(data, off+format.DirLeftOffset, child)

	f, err := New(data)
	require.NoError(t, err)
	_, err = f.Root().Entries()
	assert.ErrorIs(t, err, types.ErrCorrupt)
}

func TestStorageCycle(t *testing.T) {
	data := sampleFile(t)
	f, err := New(data)
	require.NoError(t, err)
	a, err := f.Root().Storage("A")
	require.NoError(t, err)
	deep, err := a.Storage("Deep")
	require.NoError(t, err)
	deeper, err := deep.Storage("Deeper")
	require.NoError(t, err)

	// Point Deeper's child at Deep.
	format.PutU32(data, dirEntryOffset(data, int(deeper.id))+format.DirChildOffset, deep.id)
	format.PutU32(data, dirEntryOffset(data, int(deep.id))+format.DirLeftOffset, format.NoStream)
	format.PutU32(data, dirEntryOffset(data, int(deep.id))+format.DirRightOffset, format.NoStream)

	f, err = New(data)
	require.NoError(t, err)
	a, err = f.Root().Storage("A")
	require.NoError(t, err)
	deep, err = a.Storage("Deep")
	require.NoError(t, err)
	deeper, err = deep.Storage("Deeper")
	require.NoError(t, err)

	entries, err := deeper.Entries()
	require.NoError(t, err)
	require.Equal(t, []string{"Deep"}, names(entries))
	_, err = deeper.OpenEntry(entries[0])
	assert.ErrorIs(t, err, types.ErrCorrupt)
}

func TestOpenAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.cfb")
	require.NoError(t, os.WriteFile(path, sampleFile(t), 0o600))

	f, err := Open(path)
	require.NoError(t, err)
	entries, err := f.Root().Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
	_, err = f.Root().Entries()
	assert.ErrorIs(t, err, types.ErrClosed)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.doc"))
	require.Error(t, err)
	assert.Equal(t, types.STG_E_FILENOTFOUND, types.StatusCode(err))
}

func TestBitmap(t *testing.T) {
	b := newBitmap(70)
	assert.False(t, b.testAndSet(3))
	assert.True(t, b.testAndSet(3))
	assert.False(t, b.testAndSet(69))
	assert.True(t, b.testAndSet(1000))
}
