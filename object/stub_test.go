package object

import (
	goerrors "errors"
	"testing"

	"github.com/wippyai/heapinspect"
)

var errUnreadable = goerrors.New("unreadable")

type stubField struct {
	name   string
	kind   heapinspect.ElementKind
	offset uint64
}

func (f stubField) Name() string                  { return f.name }
func (f stubField) Kind() heapinspect.ElementKind { return f.kind }
func (f stubField) Address(obj heapinspect.Address) heapinspect.Address {
	return obj + heapinspect.Address(f.offset)
}

type stubType struct {
	lengthErr error
	fields    map[string]stubField
	name      string
	size      uint64
	length    int32
	boxed     bool
	array     bool
}

func newStubType(name string, fields ...stubField) *stubType {
	t := &stubType{name: name, size: 24, fields: make(map[string]stubField)}
	for _, f := range fields {
		t.fields[f.name] = f
	}
	return t
}

func (t *stubType) Name() string                              { return t.name }
func (t *stubType) SizeOfInstance(heapinspect.Address) uint64 { return t.size }
func (t *stubType) IsObjectReference() bool                   { return !t.boxed }
func (t *stubType) IsArray() bool                             { return t.array }
func (t *stubType) ArrayLength(heapinspect.Address) (int32, error) {
	return t.length, t.lengthErr
}

func (t *stubType) FieldByName(name string) (heapinspect.FieldDescriptor, bool) {
	f, ok := t.fields[name]
	if !ok {
		return nil, false
	}
	return f, true
}

type stubCatalog struct {
	types map[heapinspect.Address]heapinspect.TypeDescriptor
	calls int
}

func (c *stubCatalog) Classify(addr heapinspect.Address) heapinspect.TypeDescriptor {
	c.calls++
	if addr == 0 {
		return heapinspect.UnknownType
	}
	if t, ok := c.types[addr]; ok {
		return t
	}
	return heapinspect.UnknownType
}

// stubReader serves canned values and records every call.
type stubReader struct {
	t        *testing.T
	pointers map[heapinspect.Address]heapinspect.Address
	strings  map[heapinspect.Address]string
	values   map[heapinspect.Address]any
	fail     map[heapinspect.Address]error
	calls    []heapinspect.Address
	forbid   bool
}

func newStubReader(t *testing.T) *stubReader {
	return &stubReader{
		t:        t,
		pointers: make(map[heapinspect.Address]heapinspect.Address),
		strings:  make(map[heapinspect.Address]string),
		values:   make(map[heapinspect.Address]any),
		fail:     make(map[heapinspect.Address]error),
	}
}

func (r *stubReader) record(addr heapinspect.Address) error {
	if r.forbid {
		r.t.Errorf("unexpected memory read at %#x", addr)
	}
	r.calls = append(r.calls, addr)
	return r.fail[addr]
}

func (r *stubReader) ReadPointer(addr heapinspect.Address) (heapinspect.Address, error) {
	if err := r.record(addr); err != nil {
		return 0, err
	}
	p, ok := r.pointers[addr]
	if !ok {
		return 0, errUnreadable
	}
	return p, nil
}

func (r *stubReader) ReadString(addr heapinspect.Address) (string, error) {
	if err := r.record(addr); err != nil {
		return "", err
	}
	s, ok := r.strings[addr]
	if !ok {
		return "", errUnreadable
	}
	return s, nil
}

func (r *stubReader) DecodeValue(addr heapinspect.Address, _ heapinspect.ElementKind) (any, error) {
	if err := r.record(addr); err != nil {
		return nil, err
	}
	v, ok := r.values[addr]
	if !ok {
		return nil, errUnreadable
	}
	return v, nil
}

// personFixture is the Person object at 0x1000 used throughout the tests:
//
//	+8  Name  string -> 0x2000 "Alice"
//	+16 Age   int32  = 42
//	+24 Owner object -> 0x4000 (Company)
//	+32 Boss  object -> null
type personFixture struct {
	heap    *Heap
	catalog *stubCatalog
	reader  *stubReader
	person  *stubType
	company *stubType
}

func newPersonFixture(t *testing.T) *personFixture {
	person := newStubType("Person",
		stubField{"Name", heapinspect.KindString, 8},
		stubField{"Age", heapinspect.KindInt32, 16},
		stubField{"Owner", heapinspect.KindObject, 24},
		stubField{"Boss", heapinspect.KindObject, 32},
		stubField{"Nick", heapinspect.KindString, 40},
	)
	company := newStubType("Company", stubField{"Title", heapinspect.KindString, 8})
	company.size = 48

	cat := &stubCatalog{types: map[heapinspect.Address]heapinspect.TypeDescriptor{
		0x1000: person,
		0x4000: company,
	}}

	r := newStubReader(t)
	r.pointers[0x1008] = 0x2000
	r.values[0x1008] = heapinspect.Address(0x2000)
	r.strings[0x2000] = "Alice"
	r.values[0x1010] = int32(42)
	r.pointers[0x1018] = 0x4000
	r.pointers[0x1020] = 0
	r.pointers[0x1028] = 0

	return &personFixture{
		heap:    NewHeap(cat, r),
		catalog: cat,
		reader:  r,
		person:  person,
		company: company,
	}
}

func (f *personFixture) personHandle() Handle {
	return f.heap.Create(0x1000, f.person)
}
