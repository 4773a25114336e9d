package vm

// installExceptionBuiltins wires up Exception#message and #to_s (scenario 4
// from §8: rescue => e; e.message must read back the string raise was
// called with), plus class-side Exception.new for scripts that construct
// one without raising it.
func (vm *VM) installExceptionBuiltins() {
	vm.exceptionClass.AddBuiltin(vm.intern("message"), func(vm *VM, regs []Value, argc int) Value {
		msg := regs[0].Message()
		if msg.IsNil() {
			return vm.NewString("")
		}
		vm.incref(msg)
		return msg
	})

	vm.exceptionClass.AddBuiltin(vm.intern("to_s"), func(vm *VM, regs []Value, argc int) Value {
		msg := regs[0].Message()
		if msg.IsNil() {
			return vm.NewString(symbolName(vm, uint32(regs[0].exceptionPayload().Class.NameID)))
		}
		vm.incref(msg)
		return msg
	})

	vm.exceptionClass.AddClassBuiltin(vm.symNew, func(vm *VM, regs []Value, argc int) Value {
		cls := regs[0].classPayload()
		msg := NilValue
		if argc >= 1 {
			msg = regs[1]
		}
		return vm.newException(cls, msg)
	})
}
