package memory

import (
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// Linear adapts the linear memory of a running wazero module instance to Source.
// Target address Base maps to linear memory offset 0.
type Linear struct {
	Mem  api.Memory
	Base uint64
}

var _ Source = (*Linear)(nil)

// WrapLinear wraps a wazero api.Memory. Returns nil if mem is nil.
func WrapLinear(mem api.Memory, base uint64) *Linear {
	if mem == nil {
		return nil
	}
	return &Linear{Mem: mem, Base: base}
}

// ReadAt reads bytes from linear memory. The returned slice is a copy, since
// the guest may keep running and mutate or grow its memory.
func (l *Linear) ReadAt(addr uint64, n int) ([]byte, error) {
	if addr < l.Base || n < 0 {
		return nil, ErrAddressNotMapped
	}
	off := addr - l.Base
	if off > math.MaxUint32 || uint64(n) > math.MaxUint32 {
		return nil, ErrAddressNotMapped
	}
	data, ok := l.Mem.Read(uint32(off), uint32(n))
	if !ok {
		Logger().Debug("linear memory read out of bounds",
			zap.Uint64("offset", off),
			zap.Int("size", n),
			zap.Uint32("memory_size", l.Mem.Size()))
		return nil, ErrAddressNotMapped
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
