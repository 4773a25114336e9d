package vm

import (
	"unsafe"

	"github.com/dressupgeekout/mrubyc/alloc"
)

// StringPayload is a byte-safe (not UTF-8-validating) heap string: an
// explicit length plus a NUL terminator at data[len], backed by the VM's
// pool allocator rather than a native Go string.
type StringPayload struct {
	refHeader
	pool *alloc.Pool
	ptr  alloc.Ptr
	len  int
}

// NewString copies s into a freshly pool-allocated buffer and returns it as
// a String value with refcount 1.
func (vm *VM) NewString(s string) Value {
	ptr := vm.pool.Alloc(len(s) + 1)
	if ptr == alloc.NilPtr {
		return NilValue
	}
	buf := vm.pool.Bytes(ptr)
	copy(buf, s)
	buf[len(s)] = 0
	sp := &StringPayload{refHeader: refHeader{refcount: 1}, pool: vm.pool, ptr: ptr, len: len(s)}
	return newHeap(String, unsafe.Pointer(sp))
}

// Bytes returns the string's content without the NUL terminator. The
// slice aliases pool storage and is only valid until the string is freed.
func (sp *StringPayload) Bytes() []byte {
	return sp.pool.Bytes(sp.ptr)[:sp.len]
}

func (sp *StringPayload) String() string { return string(sp.Bytes()) }

func (sp *StringPayload) release() {
	sp.pool.Free(sp.ptr)
}

// Bytes returns v's content, panicking if v is not a String value.
func (v Value) Bytes() []byte { return v.stringPayload().Bytes() }

// StringText is a convenience over Bytes for callers that just want a Go
// string copy.
func (v Value) StringText() string { return v.stringPayload().String() }
