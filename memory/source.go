package memory

import goerrors "errors"

// Source is raw byte access to a target address space.
type Source interface {
	// ReadAt returns n bytes starting at addr. It fails if any byte of the
	// range is unavailable; partial reads are not returned.
	ReadAt(addr uint64, n int) ([]byte, error)
}

// ErrAddressNotMapped is returned by sources when a requested range is not
// backed by target memory.
var ErrAddressNotMapped = goerrors.New("address not mapped")
