package vm

import "github.com/dressupgeekout/mrubyc/symtab"

// BuiltinFunc is a native method body: the signature the data model calls
// for, "(vm, registers, argc)". regs[0] is the receiver; regs[1..argc] are
// the arguments. The return value is stored back into regs[0] by the
// dispatcher. A builtin that needs to raise calls vm.Raise and returns any
// value — the dispatcher checks vm.exc after the call regardless.
type BuiltinFunc func(vm *VM, regs []Value, argc int) Value

// Method is either a built-in (BuiltinFunc set, Irep nil) or a script
// method (Irep set, BuiltinFunc nil) — the sum type §3.2 describes,
// represented as a struct with one side always zero rather than an
// interface, since there are exactly two variants and nothing else ever
// implements "method".
type Method struct {
	Name    symtab.ID
	Builtin BuiltinFunc
	Irep    *Irep
}

func (m *Method) IsBuiltin() bool { return m.Builtin != nil }

// methodNode is one link of a class's method chain, prepended at
// registration time per §3.2.
type methodNode struct {
	sym  symtab.ID
	m    Method
	next *methodNode
}
