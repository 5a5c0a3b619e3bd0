// Package object provides Handle, a typed reference to an object in a
// foreign address space.
//
// A Handle pairs an address with the catalog's type descriptor for that
// address. It is a small immutable value: create one per access and drop it
// when done. Field reads go through the Heap the handle was created from,
// which binds a heapinspect.TypeCatalog and a heapinspect.MemoryReader.
//
//	heap := object.NewHeap(cat, reader)
//	p := heap.Object(0x1000)
//	name, err := p.GetStringField("Name")
//	age, err := object.GetField[int32](p, "Age")
//	owner, err := p.GetObjectField("Owner")
//
// # Access Order
//
// Every field access checks, in order: the handle is not null, the field
// exists on the type, the field kind fits the access, and only then reads
// target memory. A malformed request therefore fails the same way no matter
// what the target's memory contains, and never touches the reader.
//
// # Identity
//
// Handles are equal when their addresses are equal; the type is ignored.
// Use Equal, Hash or Key rather than ==, which also compares the type.
//
// # Assertions
//
// Building with the heapassert tag makes Heap.New verify that the catalog
// classifies the address as the given type.
package object
