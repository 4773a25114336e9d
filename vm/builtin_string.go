package vm

// installStringBuiltins wires String and Symbol's shims: to_s/inspect,
// size, +, and ==. String#+ is the one shim here that allocates through
// the pool (via NewString) rather than just reading an existing payload,
// since concatenation needs a fresh buffer.
func (vm *VM) installStringBuiltins() {
	vm.stringClass.AddBuiltin(vm.intern("to_s"), func(vm *VM, regs []Value, argc int) Value {
		vm.incref(regs[0])
		return regs[0]
	})
	vm.stringClass.AddBuiltin(vm.intern("inspect"), func(vm *VM, regs []Value, argc int) Value {
		return vm.NewString(inspectString(vm, regs[0]))
	})
	vm.stringClass.AddBuiltin(vm.intern("size"), func(vm *VM, regs []Value, argc int) Value {
		return NewInteger(int64(len(regs[0].Bytes())))
	})
	vm.stringClass.AddBuiltin(vm.intern("length"), func(vm *VM, regs []Value, argc int) Value {
		return NewInteger(int64(len(regs[0].Bytes())))
	})
	vm.stringClass.AddBuiltin(vm.intern("+"), func(vm *VM, regs []Value, argc int) Value {
		if argc < 1 || regs[1].tag != String {
			vm.Raise(vm.typeErrorClass, vm.NewString("String expected"))
			return NilValue
		}
		return vm.NewString(regs[0].StringText() + regs[1].StringText())
	})
	vm.stringClass.AddBuiltin(vm.intern("=="), func(vm *VM, regs []Value, argc int) Value {
		return NewBool(argc >= 1 && compare(regs[0], regs[1]) == 0)
	})
	vm.stringClass.AddBuiltin(vm.intern("empty?"), func(vm *VM, regs []Value, argc int) Value {
		return NewBool(len(regs[0].Bytes()) == 0)
	})

	vm.symbolClass.AddBuiltin(vm.intern("to_s"), func(vm *VM, regs []Value, argc int) Value {
		return vm.NewString(symbolName(vm, regs[0].SymbolID()))
	})
	vm.symbolClass.AddBuiltin(vm.intern("=="), func(vm *VM, regs []Value, argc int) Value {
		return NewBool(argc >= 1 && regs[1].tag == Symbol && regs[0].SymbolID() == regs[1].SymbolID())
	})
}
