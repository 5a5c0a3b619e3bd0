package heapinspect

// ElementKind classifies a field's storage as declared by the catalog.
type ElementKind uint8

const (
	KindUnknown ElementKind = iota
	KindBool
	KindChar
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindPointer
	KindString
	KindObject
	KindStruct
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindBool:    "bool",
	KindChar:    "char",
	KindInt8:    "int8",
	KindUint8:   "uint8",
	KindInt16:   "int16",
	KindUint16:  "uint16",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
	KindPointer: "pointer",
	KindString:  "string",
	KindObject:  "object",
	KindStruct:  "struct",
}

func (k ElementKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind maps a kind name back to its ElementKind.
func ParseKind(name string) (ElementKind, bool) {
	for i, n := range kindNames {
		if n == name && ElementKind(i) != KindUnknown {
			return ElementKind(i), true
		}
	}
	return KindUnknown, false
}

// IsPrimitive reports whether values of this kind are stored inline and
// decode to a Go scalar.
func (k ElementKind) IsPrimitive() bool {
	return k >= KindBool && k <= KindPointer
}

// IsReference reports whether the field stores a pointer to another object.
func (k ElementKind) IsReference() bool {
	return k == KindString || k == KindObject
}

// Size returns the inline storage size in bytes, given the target pointer size.
// Struct and unknown kinds have no fixed size and return 0.
func (k ElementKind) Size(pointerSize int) int {
	switch k {
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindChar, KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	case KindPointer, KindString, KindObject:
		return pointerSize
	default:
		return 0
	}
}
