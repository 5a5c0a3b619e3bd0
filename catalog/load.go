package catalog

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/errors"
)

// DefaultPointerSize is used when the reader does not report its pointer width.
const DefaultPointerSize = 8

type pointerSizer interface {
	PointerSize() int
}

type document struct {
	Types []TypeSpec `toml:"type"`
}

// Parse builds a catalog from the [[type]] tables of a TOML document.
// The pointer size is taken from reader when it exposes PointerSize.
func Parse(data []byte, reader heapinspect.MemoryReader) (*Catalog, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "parse catalog")
	}

	ptrSize := DefaultPointerSize
	if ps, ok := reader.(pointerSizer); ok {
		ptrSize = ps.PointerSize()
	}

	c := New(reader, ptrSize)
	for _, spec := range doc.Types {
		if _, err := c.Register(spec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadFile builds a catalog from the TOML file at path.
func LoadFile(path string, reader heapinspect.MemoryReader) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	c, err := Parse(data, reader)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return c, nil
}
