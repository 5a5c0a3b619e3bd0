package heapinspect

// Address is a location in the target's address space. Zero is the null sentinel.
type Address uint64

// MemoryReader turns target addresses into pointers, strings and primitive values.
// Implementations must be safe for concurrent reads.
type MemoryReader interface {
	// ReadPointer reads a pointer-sized value at addr.
	ReadPointer(addr Address) (Address, error)
	// ReadString decodes the runtime string object located at addr.
	ReadString(addr Address) (string, error)
	// DecodeValue decodes the value of the given kind stored at addr into
	// its natural Go representation.
	DecodeValue(addr Address, kind ElementKind) (any, error)
}

// TypeCatalog classifies target addresses by type.
type TypeCatalog interface {
	// Classify returns the type of the object at addr. It never returns nil
	// for a well-behaved catalog; address 0 maps to a sentinel type.
	Classify(addr Address) TypeDescriptor
}

// TypeDescriptor is the catalog's metadata for one target type.
type TypeDescriptor interface {
	Name() string
	SizeOfInstance(addr Address) uint64
	IsObjectReference() bool
	IsArray() bool
	ArrayLength(addr Address) (int32, error)
	FieldByName(name string) (FieldDescriptor, bool)
}

// FieldDescriptor describes one field of a TypeDescriptor.
type FieldDescriptor interface {
	Name() string
	Kind() ElementKind
	// Address returns the absolute address of the field inside the object at obj.
	Address(obj Address) Address
}

// UnknownType is the sentinel descriptor for addresses the catalog cannot classify.
var UnknownType TypeDescriptor = unknownType{}

type unknownType struct{}

func (unknownType) Name() string                               { return "<unknown>" }
func (unknownType) SizeOfInstance(Address) uint64              { return 0 }
func (unknownType) IsObjectReference() bool                    { return true }
func (unknownType) IsArray() bool                              { return false }
func (unknownType) ArrayLength(Address) (int32, error)         { return 0, nil }
func (unknownType) FieldByName(string) (FieldDescriptor, bool) { return nil, false }
