package memory

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/errors"
)

// Reader implements heapinspect.MemoryReader over a Source.
// It holds no mutable state and is safe for concurrent use when the
// Source is.
type Reader struct {
	src    Source
	order  binary.ByteOrder
	layout Layout
}

var _ heapinspect.MemoryReader = (*Reader)(nil)

// NewReader creates a reader for src using the given layout.
func NewReader(src Source, layout Layout) *Reader {
	return &Reader{
		src:    src,
		layout: layout,
		order:  layout.Order(),
	}
}

// Layout returns the layout the reader decodes with.
func (r *Reader) Layout() Layout {
	return r.layout
}

// PointerSize returns the target pointer width in bytes.
func (r *Reader) PointerSize() int {
	return r.layout.PointerSize
}

func (r *Reader) read(addr heapinspect.Address, n int) ([]byte, error) {
	data, err := r.src.ReadAt(uint64(addr), n)
	if err != nil {
		Logger().Debug("target read failed",
			zap.Uint64("addr", uint64(addr)),
			zap.Int("size", n),
			zap.Error(err))
		return nil, errors.MemoryRead(errors.PhaseRead, uint64(addr), err)
	}
	return data, nil
}

// ReadPointer reads a pointer-sized value at addr.
func (r *Reader) ReadPointer(addr heapinspect.Address) (heapinspect.Address, error) {
	data, err := r.read(addr, r.layout.PointerSize)
	if err != nil {
		return 0, err
	}
	if r.layout.PointerSize == 4 {
		return heapinspect.Address(r.order.Uint32(data)), nil
	}
	return heapinspect.Address(r.order.Uint64(data)), nil
}

// ReadInt32 reads a 32-bit signed integer at addr.
func (r *Reader) ReadInt32(addr heapinspect.Address) (int32, error) {
	data, err := r.read(addr, 4)
	if err != nil {
		return 0, err
	}
	return int32(r.order.Uint32(data)), nil
}

// ReadString decodes the string object at addr.
func (r *Reader) ReadString(addr heapinspect.Address) (string, error) {
	sl := r.layout.String
	n, err := r.ReadInt32(addr + heapinspect.Address(sl.LengthOffset))
	if err != nil {
		return "", err
	}
	if n < 0 || n > sl.MaxLength {
		return "", errors.New(errors.PhaseDecode, errors.KindMemoryRead).
			Addr(uint64(addr)).
			Detail("string length %d outside [0, %d]", n, sl.MaxLength).
			Build()
	}
	if n == 0 {
		return "", nil
	}

	dataAddr := addr + heapinspect.Address(sl.DataOffset)
	if sl.Encoding == EncodingUTF8 {
		data, err := r.read(dataAddr, int(n))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(data) {
			return "", errors.New(errors.PhaseDecode, errors.KindMemoryRead).
				Addr(uint64(addr)).
				Detail("invalid UTF-8 sequence").
				Build()
		}
		return string(data), nil
	}

	data, err := r.read(dataAddr, int(n)*2)
	if err != nil {
		return "", err
	}
	endian := unicode.LittleEndian
	if r.layout.ByteOrder == "big" {
		endian = unicode.BigEndian
	}
	out, err := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.New(errors.PhaseDecode, errors.KindMemoryRead).
			Addr(uint64(addr)).
			Cause(err).
			Detail("invalid UTF-16 data").
			Build()
	}
	return string(out), nil
}

// DecodeValue decodes the value of the given kind at addr. Integers and
// floats decode to the Go type of the same width, char to uint16, and
// pointer, string and object kinds to heapinspect.Address.
func (r *Reader) DecodeValue(addr heapinspect.Address, kind heapinspect.ElementKind) (any, error) {
	switch kind {
	case heapinspect.KindPointer, heapinspect.KindString, heapinspect.KindObject:
		return r.ReadPointer(addr)
	}

	size := kind.Size(r.layout.PointerSize)
	if size == 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Addr(uint64(addr)).
			Detail("cannot decode kind %s as a value", kind).
			Build()
	}
	data, err := r.read(addr, size)
	if err != nil {
		return nil, err
	}

	switch kind {
	case heapinspect.KindBool:
		return data[0] != 0, nil
	case heapinspect.KindInt8:
		return int8(data[0]), nil
	case heapinspect.KindUint8:
		return data[0], nil
	case heapinspect.KindChar, heapinspect.KindUint16:
		return r.order.Uint16(data), nil
	case heapinspect.KindInt16:
		return int16(r.order.Uint16(data)), nil
	case heapinspect.KindInt32:
		return int32(r.order.Uint32(data)), nil
	case heapinspect.KindUint32:
		return r.order.Uint32(data), nil
	case heapinspect.KindInt64:
		return int64(r.order.Uint64(data)), nil
	case heapinspect.KindUint64:
		return r.order.Uint64(data), nil
	case heapinspect.KindFloat32:
		return math.Float32frombits(r.order.Uint32(data)), nil
	case heapinspect.KindFloat64:
		return math.Float64frombits(r.order.Uint64(data)), nil
	default:
		return nil, errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
			Addr(uint64(addr)).
			Detail("cannot decode kind %s as a value", kind).
			Build()
	}
}
