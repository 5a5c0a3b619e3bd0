// Package memory provides MemoryReader implementations for inspecting a
// target's address space.
//
// A Reader combines a byte Source with a Layout describing the target
// runtime's conventions: pointer width, byte order and the shape of string
// objects. Two sources are provided:
//
//   - Image: a captured snapshot made of mapped segments, persisted as CBOR.
//   - Linear: the linear memory of a running WebAssembly instance (wazero).
//
// # Reading
//
//	img := memory.NewImage()
//	img.Map(0x1000, personBytes)
//	r := memory.NewReader(img, memory.DefaultLayout())
//	ptr, err := r.ReadPointer(0x1008)
//	s, err := r.ReadString(ptr)
//
// All read failures are reported as *errors.Error of kind memory_read
// carrying the address that could not be read.
package memory
