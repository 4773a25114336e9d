package vm

import (
	"unsafe"

	"github.com/dressupgeekout/mrubyc/symtab"
)

// ClassPayload is the heap representation behind a Class-tagged Value: a
// name, an optional parent, and a singly-linked method chain prepended at
// registration time (§3.2). Lookup walks this class's chain, then the
// parent's, stopping at the first match.
//
// Classes carry a refHeader for uniformity with every other non-immediate
// tag, but in practice never reach refcount zero: §5 states classes are
// append-only for the process lifetime, so nothing ever decrefs a Class
// value to nothing referencing it.
type ClassPayload struct {
	refHeader
	NameID       symtab.ID
	Parent       *ClassPayload
	methods      *methodNode // instance methods, found via ClassOf(receiver)
	classMethods *methodNode // class-side methods (e.g. new), found only when
	// the receiver itself is a Class value — kept as its own chain rather
	// than folded into methods, matching the teacher's VTable/ClassVTable
	// split (class.go), since "new" must never be visible to ordinary
	// instance method lookup.
}

// NewClass allocates a class value named by nameID with the given parent
// (nil for a root class such as Object itself).
func (vm *VM) NewClass(nameID symtab.ID, parent *ClassPayload) Value {
	cp := &ClassPayload{refHeader: refHeader{refcount: 1}, NameID: nameID, Parent: parent}
	v := newHeap(Class, unsafe.Pointer(cp))
	vm.classes.register(cp)
	return v
}

// AddMethod prepends m under sym, so later registrations shadow earlier
// ones of the same name on the same class — matching "prepended at
// registration time".
func (cp *ClassPayload) AddMethod(sym symtab.ID, m Method) {
	cp.methods = &methodNode{sym: sym, m: m, next: cp.methods}
}

// AddBuiltin is a convenience over AddMethod for native methods.
func (cp *ClassPayload) AddBuiltin(sym symtab.ID, fn BuiltinFunc) {
	cp.AddMethod(sym, Method{Name: sym, Builtin: fn})
}

// AddClassMethod registers a class-side method (e.g. new) under sym,
// inherited by every descendant the same way AddMethod's instance methods
// are, but visible only through LookupClassMethod — never through ordinary
// instance dispatch.
func (cp *ClassPayload) AddClassMethod(sym symtab.ID, m Method) {
	cp.classMethods = &methodNode{sym: sym, m: m, next: cp.classMethods}
}

// AddClassBuiltin is AddClassMethod's native-function convenience form.
func (cp *ClassPayload) AddClassBuiltin(sym symtab.ID, fn BuiltinFunc) {
	cp.AddClassMethod(sym, Method{Name: sym, Builtin: fn})
}

// LookupClassMethod walks cp's own classMethods chain, then ascends via
// Parent, the class-side counterpart to LookupMethod.
func (cp *ClassPayload) LookupClassMethod(sym symtab.ID) (*Method, *ClassPayload) {
	for c := cp; c != nil; c = c.Parent {
		for n := c.classMethods; n != nil; n = n.next {
			if n.sym == sym {
				return &n.m, c
			}
		}
	}
	return nil, nil
}

// LookupMethod walks cp's own chain, then ascends to Parent, returning the
// first match and the class that defines it, or (nil, nil) if none.
func (cp *ClassPayload) LookupMethod(sym symtab.ID) (*Method, *ClassPayload) {
	for c := cp; c != nil; c = c.Parent {
		for n := c.methods; n != nil; n = n.next {
			if n.sym == sym {
				return &n.m, c
			}
		}
	}
	return nil, nil
}

// IsSubclassOf reports whether cp is other or descends from it by walking
// the parent chain — the primitive is_kind_of walks (§4.4).
func (cp *ClassPayload) IsSubclassOf(other *ClassPayload) bool {
	for c := cp; c != nil; c = c.Parent {
		if c == other {
			return true
		}
	}
	return false
}

// ClassPayload_ returns v's class payload, panicking if v is not a Class.
func (v Value) ClassPayload_() *ClassPayload { return v.classPayload() }

// IsKindOf implements §4.4 is_kind_of: walk v's class's parent chain
// looking for cls. v may itself be a Class value (classes are instances of
// their own metaclass in real Ruby, but that is out of scope here — via
// this path a bare Class value is kind_of? itself and each of its
// ancestors, since ClassOf returns the class's own payload).
func (vm *VM) IsKindOf(v Value, cls *ClassPayload) bool {
	return vm.ClassOf(v).IsSubclassOf(cls)
}

// ClassOf returns the class payload governing v's built-in dispatch:
// the instance's class for Object values, the exception's class for
// Exception values, the class itself for Class values, and a fixed
// built-in class for every other tag (vm.go wires these at bootstrap).
func (vm *VM) ClassOf(v Value) *ClassPayload {
	switch v.tag {
	case Object:
		return v.objectPayload().Class
	case Class:
		return v.classPayload()
	case Nil:
		return vm.nilClass
	case True:
		return vm.trueClass
	case False:
		return vm.falseClass
	case Integer:
		return vm.integerClass
	case Float:
		return vm.floatClass
	case Symbol:
		return vm.symbolClass
	case String:
		return vm.stringClass
	case Array:
		return vm.arrayClass
	case Hash:
		return vm.hashClass
	case Range:
		return vm.rangeClass
	case Proc:
		return vm.procClass
	case Exception:
		return v.exceptionPayload().Class
	default:
		return vm.objectClass
	}
}
