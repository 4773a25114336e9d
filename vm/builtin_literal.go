package vm

// installLiteralBuiltins wires the handful of shims NilClass/TrueClass/
// FalseClass carry: to_s, inspect, and the boolean negation operator.
func (vm *VM) installLiteralBuiltins() {
	vm.nilClass.AddBuiltin(vm.intern("to_s"), func(vm *VM, regs []Value, argc int) Value {
		return vm.NewString("")
	})
	vm.nilClass.AddBuiltin(vm.intern("inspect"), func(vm *VM, regs []Value, argc int) Value {
		return vm.NewString("nil")
	})
	vm.nilClass.AddBuiltin(vm.intern("!"), func(vm *VM, regs []Value, argc int) Value {
		return TrueValue
	})

	for _, cls := range []*ClassPayload{vm.trueClass, vm.falseClass} {
		cls.AddBuiltin(vm.intern("to_s"), func(vm *VM, regs []Value, argc int) Value {
			return vm.NewString(toDisplayString(vm, regs[0]))
		})
		cls.AddBuiltin(vm.intern("inspect"), func(vm *VM, regs []Value, argc int) Value {
			return vm.NewString(toDisplayString(vm, regs[0]))
		})
		cls.AddBuiltin(vm.intern("!"), func(vm *VM, regs []Value, argc int) Value {
			return NewBool(!regs[0].Truthy())
		})
	}
}
