// Package stg defines the structured-storage object model the reporter walks:
// storages with child elements, property-set storages and property storages,
// each handing out enumerators that distinguish "no more items" from failure.
//
// The compound implementation serves these interfaces from a compound file;
// tests substitute in-memory implementations with injected failures.
package stg

import (
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

// Enumerator yields items one at a time. Next returns (item, true, nil) for
// an item, (zero, false, nil) once exhausted, and (zero, false, err) on
// failure. Close releases the enumerator and is safe to call more than once.
type Enumerator[T any] interface {
	Next() (T, bool, error)
	Close() error
}

// ElementType classifies a storage child.
type ElementType int

const (
	ElementStream ElementType = iota + 1
	ElementStorage
)

func (t ElementType) String() string {
	switch t {
	case ElementStream:
		return "stream"
	case ElementStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Element describes one child of a storage.
type Element struct {
	Name string
	Type ElementType
	Size uint64
}

// SetStat describes one property set found by enumeration.
type SetStat struct {
	FMTID types.FMTID
}

// PropStat describes one property found by enumeration. Name is empty when
// the set's dictionary does not name the property.
type PropStat struct {
	Name string
	ID   uint32
	VT   types.VT
}

// Storage is a node of the storage tree.
type Storage interface {
	// Name returns the element name the storage was opened under.
	Name() string
	// PropertySetStorage queries the storage for its property sets. A
	// storage without the capability returns an error wrapping
	// types.ErrNoInterface.
	PropertySetStorage() (PropertySetStorage, error)
	// EnumElements enumerates direct children.
	EnumElements() (Enumerator[Element], error)
	// OpenStorage opens a direct child storage.
	OpenStorage(name string) (Storage, error)
	Close() error
}

// PropertySetStorage gives access to the property sets of one storage.
type PropertySetStorage interface {
	// Enum lists the storage's property sets. The user-defined properties
	// set is never listed.
	Enum() (Enumerator[SetStat], error)
	// Open opens a property set by FMTID, including the user-defined set.
	// A missing set returns an error wrapping types.ErrNotFound.
	Open(fmtid types.FMTID) (PropertyStorage, error)
}

// PropertyStorage is one opened property set.
type PropertyStorage interface {
	FMTID() types.FMTID
	// Enum lists properties, skipping the dictionary, the code page and
	// other reserved identifiers.
	Enum() (Enumerator[PropStat], error)
	Read(pid uint32) (types.Value, error)
	// ReadPropertyName returns the dictionary name of pid. PID 0 names
	// the set itself.
	ReadPropertyName(pid uint32) (string, error)
	Close() error
}

// Provider opens root storages from file paths.
type Provider interface {
	OpenRoot(path string) (Storage, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(path string) (Storage, error)

func (f ProviderFunc) OpenRoot(path string) (Storage, error) { return f(path) }
