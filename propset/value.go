package propset

import (
	"fmt"
	"math"

	"fortio.org/safecast"
	ole "github.com/go-ole/go-ole"

	"github.com/ClicksEnStock/FileInfos/internal/buf"
	"github.com/ClicksEnStock/FileInfos/internal/codepage"
	"github.com/ClicksEnStock/FileInfos/internal/format"
	"github.com/ClicksEnStock/FileInfos/pkg/types"
)

func safeOffset(v uint32) (int, error) {
	off, err := safecast.Conv[int](v)
	if err != nil {
		return 0, fmt.Errorf("%w: offset %#x: %w", types.ErrCorrupt, v, err)
	}
	return off, nil
}

func safecastLen(v uint32) (int, error) {
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 0, fmt.Errorf("%w: length %d: %w", types.ErrCorrupt, v, err)
	}
	return n, nil
}

// decodeValue decodes the TypedPropertyValue at off in a section.
func decodeValue(b []byte, off int, cp uint16) (types.Value, ole.VT, error) {
	c := buf.NewCursor(b, off)
	vt := ole.VT(c.U16())
	c.Skip(2) // padding
	if err := c.Err(); err != nil {
		return nil, vt, fmt.Errorf("%w: value header at %#x: %w", types.ErrCorrupt, off, err)
	}

	var (
		v   types.Value
		err error
	)
	switch vt {
	case ole.VT_EMPTY, ole.VT_NULL:
		v = types.Empty{Type: vt}
	case ole.VT_I1:
		v = types.Int{Type: vt, V: int64(int8(c.U8()))}
	case ole.VT_I2:
		v = types.Int{Type: vt, V: int64(int16(c.U16()))}
	case ole.VT_I4, ole.VT_INT:
		v = types.Int{Type: vt, V: int64(int32(c.U32()))}
	case ole.VT_I8:
		v = types.Int{Type: vt, V: int64(c.U64())}
	case ole.VT_UI1:
		v = types.Uint{Type: vt, V: uint64(c.U8())}
	case ole.VT_UI2:
		v = types.Uint{Type: vt, V: uint64(c.U16())}
	case ole.VT_UI4, ole.VT_UINT:
		v = types.Uint{Type: vt, V: uint64(c.U32())}
	case ole.VT_UI8:
		v = types.Uint{Type: vt, V: c.U64()}
	case ole.VT_R4:
		v = types.Float{Type: vt, V: float64(math.Float32frombits(c.U32()))}
	case ole.VT_R8:
		v = types.Float{Type: vt, V: math.Float64frombits(c.U64())}
	case ole.VT_LPSTR, ole.VT_BSTR:
		var n int
		if n, err = safecastLen(c.U32()); err == nil {
			raw := c.Bytes(n)
			var s string
			if s, err = codepage.Decode(cp, raw); err == nil {
				v = types.String{Type: vt, V: s}
			}
		}
	case ole.VT_LPWSTR:
		var n int
		if n, err = safecastLen(c.U32()); err == nil {
			raw := c.Bytes(n * 2)
			var s string
			if s, err = codepage.Decode(codepage.UTF16, raw); err == nil {
				v = types.String{Type: vt, V: s}
			}
		}
	case ole.VT_BOOL:
		v = types.Bool(c.U16() != 0)
	case ole.VT_ERROR:
		v = types.SCode(c.U32())
	case ole.VT_FILETIME:
		low := c.U32()
		high := c.U32()
		v = types.FileTime{High: high, Low: low}
	case ole.VT_CLSID:
		if raw := c.Bytes(format.GUIDSize); raw != nil {
			v = types.CLSID(format.ReadGUID(raw, 0))
		}
	default:
		v = types.Unsupported{Type: vt}
	}
	if err != nil {
		return nil, vt, fmt.Errorf("%s value at %#x: %w", vt, off, err)
	}
	if cerr := c.Err(); cerr != nil {
		return nil, vt, fmt.Errorf("%w: %s value at %#x: %w", types.ErrCorrupt, vt, off, cerr)
	}
	return v, vt, nil
}

// appendValue appends the TypedPropertyValue encoding of v, padded to 4 bytes.
func appendValue(out []byte, v types.Value, cp uint16) ([]byte, error) {
	vt := v.VT()
	out = le.AppendUint16(out, uint16(vt))
	out = le.AppendUint16(out, 0)

	switch x := v.(type) {
	case types.Empty:
	case types.Int:
		var err error
		switch vt {
		case ole.VT_I1:
			var n int8
			if n, err = safecast.Conv[int8](x.V); err == nil {
				out = append(out, byte(n))
			}
		case ole.VT_I2:
			var n int16
			if n, err = safecast.Conv[int16](x.V); err == nil {
				out = le.AppendUint16(out, uint16(n))
			}
		case ole.VT_I4, ole.VT_INT:
			var n int32
			if n, err = safecast.Conv[int32](x.V); err == nil {
				out = le.AppendUint32(out, uint32(n))
			}
		case ole.VT_I8:
			out = le.AppendUint64(out, uint64(x.V))
		default:
			err = fmt.Errorf("%w: integer with type %s", types.ErrUnsupported, vt)
		}
		if err != nil {
			return nil, err
		}
	case types.Uint:
		var err error
		switch vt {
		case ole.VT_UI1:
			var n uint8
			if n, err = safecast.Conv[uint8](x.V); err == nil {
				out = append(out, n)
			}
		case ole.VT_UI2:
			var n uint16
			if n, err = safecast.Conv[uint16](x.V); err == nil {
				out = le.AppendUint16(out, n)
			}
		case ole.VT_UI4, ole.VT_UINT:
			var n uint32
			if n, err = safecast.Conv[uint32](x.V); err == nil {
				out = le.AppendUint32(out, n)
			}
		case ole.VT_UI8:
			out = le.AppendUint64(out, x.V)
		default:
			err = fmt.Errorf("%w: unsigned integer with type %s", types.ErrUnsupported, vt)
		}
		if err != nil {
			return nil, err
		}
	case types.Float:
		switch vt {
		case ole.VT_R4:
			out = le.AppendUint32(out, math.Float32bits(float32(x.V)))
		case ole.VT_R8:
			out = le.AppendUint64(out, math.Float64bits(x.V))
		default:
			return nil, fmt.Errorf("%w: float with type %s", types.ErrUnsupported, vt)
		}
	case types.String:
		var err error
		switch vt {
		case ole.VT_LPWSTR:
			out, err = appendString(out, codepage.UTF16, x.V, true)
		case ole.VT_LPSTR, ole.VT_BSTR:
			out, err = appendString(out, cp, x.V, false)
		default:
			err = fmt.Errorf("%w: string with type %s", types.ErrUnsupported, vt)
		}
		if err != nil {
			return nil, err
		}
	case types.Bool:
		if x {
			out = le.AppendUint16(out, 0xFFFF)
		} else {
			out = le.AppendUint16(out, 0)
		}
	case types.SCode:
		out = le.AppendUint32(out, uint32(x))
	case types.FileTime:
		out = le.AppendUint32(out, x.Low)
		out = le.AppendUint32(out, x.High)
	case types.CLSID:
		raw := format.GUIDBytes(ole.GUID(x))
		out = append(out, raw[:]...)
	default:
		return nil, fmt.Errorf("%w: cannot encode %s", types.ErrUnsupported, vt)
	}
	return pad4(out), nil
}

// appendString writes a length-prefixed, NUL-terminated string. Wide strings
// count UTF-16 code units, code page strings count bytes.
func appendString(out []byte, cp uint16, s string, wide bool) ([]byte, error) {
	raw, err := codepage.Encode(cp, s+"\x00")
	if err != nil {
		return nil, err
	}
	n := len(raw)
	if wide {
		n /= 2
	}
	size, err := safecast.Conv[uint32](n)
	if err != nil {
		return nil, err
	}
	out = le.AppendUint32(out, size)
	return append(out, raw...), nil
}

func pad4(out []byte) []byte {
	for len(out)%4 != 0 {
		out = append(out, 0)
	}
	return out
}
