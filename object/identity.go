package object

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/zeebo/xxh3"

	"github.com/wippyai/heapinspect"
)

// Equal reports whether h and o refer to the same address.
func (h Handle) Equal(o Handle) bool { return h.addr == o.addr }

// Key returns the identity of h for use as a map key.
func (h Handle) Key() heapinspect.Address { return h.addr }

// Hash returns a hash of the handle's address.
func (h Handle) Hash() uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(h.addr))
	return xxh3.Hash(b[:])
}

func (h Handle) String() string {
	return fmt.Sprintf("%s 0x%x", h.Type().Name(), uint64(h.addr))
}

// Set is a collection of handles deduplicated by address. The first handle
// added for an address is kept. Set is not safe for concurrent use.
type Set struct {
	m map[heapinspect.Address]Handle
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{m: make(map[heapinspect.Address]Handle)}
}

// Add inserts h and reports whether its address was not yet present.
func (s *Set) Add(h Handle) bool {
	if _, ok := s.m[h.addr]; ok {
		return false
	}
	s.m[h.addr] = h
	return true
}

// Contains reports whether a handle with h's address is present.
func (s *Set) Contains(h Handle) bool {
	_, ok := s.m[h.addr]
	return ok
}

func (s *Set) Len() int { return len(s.m) }

// Handles returns the members ordered by address.
func (s *Set) Handles() []Handle {
	out := make([]Handle, 0, len(s.m))
	for _, h := range s.m {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].addr < out[j].addr })
	return out
}
