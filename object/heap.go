package object

import (
	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/errors"
)

// Heap binds the catalog and reader that handles consult.
type Heap struct {
	catalog heapinspect.TypeCatalog
	reader  heapinspect.MemoryReader
}

// NewHeap creates a heap over the given collaborators.
func NewHeap(catalog heapinspect.TypeCatalog, reader heapinspect.MemoryReader) *Heap {
	return &Heap{catalog: catalog, reader: reader}
}

// Catalog returns the heap's type catalog.
func (hp *Heap) Catalog() heapinspect.TypeCatalog { return hp.catalog }

// Reader returns the heap's memory reader.
func (hp *Heap) Reader() heapinspect.MemoryReader { return hp.reader }

// Create returns a handle for addr with a known type. It does not touch the
// reader or the catalog.
func (hp *Heap) Create(addr heapinspect.Address, typ heapinspect.TypeDescriptor) Handle {
	if typ == nil {
		typ = heapinspect.UnknownType
	}
	return Handle{addr: addr, typ: typ, heap: hp}
}

// New is Create with a consistency check against the catalog when built
// with the heapassert tag. A mismatch panics with a precondition error.
func (hp *Heap) New(addr heapinspect.Address, typ heapinspect.TypeDescriptor) Handle {
	if assertionsEnabled && addr != 0 {
		if got := hp.classify(addr); got != typ {
			panic(errors.New(errors.PhaseConstruct, errors.KindPrecondition).
				Type(typeName(typ)).
				Addr(uint64(addr)).
				Detail("catalog classifies address as %s", got.Name()).
				Build())
		}
	}
	return hp.Create(addr, typ)
}

// Object classifies addr and returns a handle of the resulting type.
func (hp *Heap) Object(addr heapinspect.Address) Handle {
	return hp.Create(addr, hp.classify(addr))
}

func (hp *Heap) classify(addr heapinspect.Address) heapinspect.TypeDescriptor {
	t := hp.catalog.Classify(addr)
	if t == nil {
		return heapinspect.UnknownType
	}
	return t
}

func typeName(t heapinspect.TypeDescriptor) string {
	if t == nil {
		return heapinspect.UnknownType.Name()
	}
	return t.Name()
}
