package vm

import "github.com/dressupgeekout/mrubyc/symtab"

// StackSwapCall is the general re-entrant VM call from native code (§4.5,
// §9 "Re-entrant VM call"): run irep in its own frame, as self, with args
// already placed in its register window, and return its result. It is
// mechanically the same save/overwrite/run/restore that runFrame already
// performs on vm.frame around every call — named separately here because
// this call crosses the native/script boundary, which is the one place
// the VM must not be entered except through this explicit protocol.
func (vm *VM) StackSwapCall(irep *Irep, self Value, regs []Value) Value {
	return vm.runFrame(&frameState{irep: irep, regs: regs, self: self})
}

// newObjectBuiltin implements Class#new (§4.5): allocate an instance,
// synthesize the one-shot {SEND 0 initialize argc; ABORT} irep grounded on
// the source's c_object_new, stack-swap into it so initialize runs with
// self bound to the new instance, and re-assert the instance's class
// defensively on return before handing it back.
func newObjectBuiltin(vm *VM, regs []Value, argc int) Value {
	cls := regs[0].classPayload()
	instance := vm.InstanceNew(cls, 0)

	synth := &Irep{
		Nlocals: 1,
		Nregs:   argc + 1,
		Code: []byte{
			byte(OpSend), 0, 0, 0, byte(argc),
			byte(OpAbort),
		},
		Syms: []symtab.ID{vm.symInitialize},
	}

	callRegs := make([]Value, argc+1)
	callRegs[0] = instance
	vm.incref(instance)
	for i := 0; i < argc; i++ {
		callRegs[i+1] = regs[i+1]
		vm.incref(callRegs[i+1])
	}

	// runFrame releases every register except the one it returns (here
	// register 0, which by then holds initialize's return value, not the
	// instance — register 0 was overwritten by SEND's result store).
	// registers 1..argc are released internally; only the discarded
	// return value needs releasing here.
	discarded := vm.StackSwapCall(synth, instance, callRegs)
	vm.decref(discarded)

	instance.objectPayload().Class = cls // defensive re-assert, see doc comment
	return instance
}
