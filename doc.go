// Package heapinspect provides typed access to objects living in the address
// space of another process, or in a captured memory snapshot of one.
//
// The library never executes code in the target. It pairs an address with a
// type descriptor and resolves fields through two narrow collaborators: a
// TypeCatalog that knows type layouts, and a MemoryReader that knows how to
// fetch bytes, pointers and strings from the target.
//
// # Architecture Overview
//
//	heapinspect/         Root package with Address, ElementKind and the
//	│                    TypeCatalog/TypeDescriptor/FieldDescriptor/MemoryReader contracts
//	├── object/          Handle: address + type, field access, identity
//	├── catalog/         Table-driven TypeCatalog loaded from TOML
//	├── memory/          MemoryReader over snapshot images and wazero linear memory
//	├── errors/          Structured error kinds
//	└── cmd/heapinspect/ CLI and interactive object browser
//
// # Quick Start
//
//	layout, _ := memory.LoadLayout("session.toml")
//	img, _ := memory.LoadImageFile("heap.cbor")
//	reader := memory.NewReader(img, layout)
//
//	cat, _ := catalog.LoadFile("session.toml", reader)
//	heap := object.NewHeap(cat, reader)
//
//	person := heap.Object(0x1000)
//	name, err := person.GetStringField("Name")
//	age, err := object.GetField[int32](person, "Age")
//	owner, err := person.GetObjectField("Owner")
//
// # Failure Model
//
// Every field access either fully succeeds or fails with exactly one
// *errors.Error whose Kind is one of null_target, unknown_field,
// type_mismatch, invalid_cast, memory_read or precondition. Metadata
// errors are always reported before the target's memory is touched.
//
// # Thread Safety
//
// Handles are immutable values. Concurrent use is safe as long as the catalog
// and reader are; the implementations in this module are.
package heapinspect
