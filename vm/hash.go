package vm

import "unsafe"

// HashPayload is a ref-counted key-value handle with arbitrary value keys,
// sharing kvHandle's ordered, linear-search structure with instance ivar
// tables (§3.4).
type HashPayload struct {
	refHeader
	kv kvHandle
}

// NewHash returns an empty Hash value with refcount 1.
func (vm *VM) NewHash() Value {
	hp := &HashPayload{refHeader: refHeader{refcount: 1}}
	return newHeap(Hash, unsafe.Pointer(hp))
}

func (hp *HashPayload) Get(key Value) (Value, bool)    { return hp.kv.get(key) }
func (hp *HashPayload) Set(vm *VM, key, val Value)      { hp.kv.set(vm, key, val) }
func (hp *HashPayload) Delete(vm *VM, key Value) (Value, bool) { return hp.kv.delete(vm, key) }
func (hp *HashPayload) Len() int                        { return hp.kv.len() }

func (hp *HashPayload) release(vm *VM) { hp.kv.release(vm) }

// HashGet/HashSet are convenience wrappers over v's payload, panicking if v
// is not a Hash.
func (v Value) HashGet(key Value) (Value, bool) { return v.hashPayload().Get(key) }
func (vm *VM) HashSet(v, key, val Value)         { v.hashPayload().Set(vm, key, val) }
