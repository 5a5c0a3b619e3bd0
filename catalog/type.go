package catalog

import (
	"sort"

	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/errors"
)

// Field is a named slot at a fixed offset inside an object.
type Field struct {
	name   string
	kind   heapinspect.ElementKind
	offset uint64
}

var _ heapinspect.FieldDescriptor = (*Field)(nil)

func (f *Field) Name() string                  { return f.name }
func (f *Field) Kind() heapinspect.ElementKind { return f.kind }
func (f *Field) Offset() uint64                { return f.offset }

// Address returns obj + offset.
func (f *Field) Address(obj heapinspect.Address) heapinspect.Address {
	return obj + heapinspect.Address(f.offset)
}

// Type is a registered target type.
type Type struct {
	cat       *Catalog
	byName    map[string]*Field
	name      string
	fields    []*Field
	handle    uint64
	baseSize  uint64
	elemSize  uint64
	elemKind  heapinspect.ElementKind
	valueType bool
	array     bool
}

var _ heapinspect.TypeDescriptor = (*Type)(nil)

func (t *Type) Name() string { return t.name }

// Handle returns the type-handle value that identifies instances of t.
func (t *Type) Handle() uint64 { return t.handle }

// BaseSize returns the instance size excluding array elements.
func (t *Type) BaseSize() uint64 { return t.baseSize }

// ElementKind returns the element kind of an array type.
func (t *Type) ElementKind() heapinspect.ElementKind { return t.elemKind }

// ElementSize returns the per-element size of an array type.
func (t *Type) ElementSize() uint64 { return t.elemSize }

func (t *Type) IsObjectReference() bool { return !t.valueType }

func (t *Type) IsArray() bool { return t.array }

// SizeOfInstance returns the base size, plus length*element-size for arrays.
// An array whose length cannot be read reports its base size.
func (t *Type) SizeOfInstance(addr heapinspect.Address) uint64 {
	if !t.array {
		return t.baseSize
	}
	n, err := t.ArrayLength(addr)
	if err != nil || n < 0 {
		return t.baseSize
	}
	return t.baseSize + uint64(n)*t.elemSize
}

// ArrayLength reads the int32 element count stored after the type handle.
func (t *Type) ArrayLength(addr heapinspect.Address) (int32, error) {
	if !t.array {
		return 0, errors.Precondition(t.name, "type is not an array")
	}
	lenAddr := addr + heapinspect.Address(t.cat.pointerSize)
	v, err := t.cat.reader.DecodeValue(lenAddr, heapinspect.KindInt32)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int32)
	if !ok {
		return 0, errors.InvalidCast(t.name, "length", "non-int32", "int32")
	}
	return n, nil
}

// FieldByName returns the field with the given name.
func (t *Type) FieldByName(name string) (heapinspect.FieldDescriptor, bool) {
	f, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return f, true
}

// Fields returns the fields of t ordered by offset.
func (t *Type) Fields() []*Field {
	out := make([]*Field, len(t.fields))
	copy(out, t.fields)
	return out
}

func sortFields(fields []*Field) {
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].offset < fields[j].offset
	})
}
