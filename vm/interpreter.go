package vm

import "github.com/dressupgeekout/mrubyc/symtab"

// frameState is the explicit snapshot §9 calls for: "save cur_irep, inst,
// cur_regs; overwrite; run; restore." vm.frame always points at whichever
// frameState is currently executing; stack-swap (StackSwapCall) and
// ordinary script-to-script calls both work by swapping vm.frame to a new
// frameState, running it to completion, and restoring the caller's.
type frameState struct {
	irep *Irep
	regs []Value
	self Value
	ip   int
}

// storeFresh assigns a newly-owned value (one nobody else already holds a
// reference to) into a register, releasing whatever was there.
func (vm *VM) storeFresh(fr *frameState, dst byte, v Value) {
	vm.decref(fr.regs[dst])
	fr.regs[dst] = v
}

// storeShared assigns a value some other owner already holds (a pool
// literal, self, or another register's contents) into a register,
// increffing it first since the register is a new, distinct owner.
func (vm *VM) storeShared(fr *frameState, dst byte, v Value) {
	vm.incref(v)
	vm.storeFresh(fr, dst, v)
}

// releaseFrame decrefs every register in fr except keep, which the caller
// is taking ownership of as the frame's result.
func (vm *VM) releaseFrame(fr *frameState, keep byte) {
	for i := range fr.regs {
		if byte(i) == keep {
			continue
		}
		vm.decref(fr.regs[i])
	}
}

// runFrame executes fr from its current ip until OpReturn, OpAbort, or
// falling off the end of the code, handling nested sends (script-to-script
// calls recurse through runFrame directly; native-to-script calls go
// through StackSwapCall instead — see object_new.go) and
// unwinding to fr's own catch handlers when a raise is left pending by a
// call it made.
func (vm *VM) runFrame(fr *frameState) Value {
	saved := vm.frame
	vm.frame = fr
	defer func() { vm.frame = saved }()

	code := fr.irep.Code
	for fr.ip < len(code) {
		pc := fr.ip
		op := Opcode(code[fr.ip])

		switch op {
		case OpNop:
			fr.ip++

		case OpMove:
			dst, src := code[fr.ip+1], code[fr.ip+2]
			vm.storeShared(fr, dst, fr.regs[src])
			fr.ip += 3

		case OpLoadNil:
			vm.storeFresh(fr, code[fr.ip+1], NilValue)
			fr.ip += 2
		case OpLoadTrue:
			vm.storeFresh(fr, code[fr.ip+1], TrueValue)
			fr.ip += 2
		case OpLoadFalse:
			vm.storeFresh(fr, code[fr.ip+1], FalseValue)
			fr.ip += 2
		case OpLoadSelf:
			vm.storeShared(fr, code[fr.ip+1], fr.self)
			fr.ip += 2

		case OpLoadI:
			dst := code[fr.ip+1]
			n := int32(be32(code[fr.ip+2 : fr.ip+6]))
			vm.storeFresh(fr, dst, NewInteger(int64(n)))
			fr.ip += 6

		case OpLoadSym:
			dst := code[fr.ip+1]
			idx := be16(code[fr.ip+2 : fr.ip+4])
			vm.storeFresh(fr, dst, NewSymbol(uint32(fr.irep.Syms[idx])))
			fr.ip += 4

		case OpLoadL:
			dst := code[fr.ip+1]
			idx := be16(code[fr.ip+2 : fr.ip+4])
			vm.storeShared(fr, dst, fr.irep.Pool[idx])
			fr.ip += 4

		case OpGetIV:
			dst := code[fr.ip+1]
			idx := be16(code[fr.ip+2 : fr.ip+4])
			sym := NewSymbol(uint32(fr.irep.Syms[idx]))
			vm.storeShared(fr, dst, fr.self.objectPayload().GetIVar(sym))
			fr.ip += 4

		case OpSetIV:
			idx := be16(code[fr.ip+1 : fr.ip+3])
			src := code[fr.ip+3]
			sym := NewSymbol(uint32(fr.irep.Syms[idx]))
			fr.self.objectPayload().SetIVar(vm, sym, fr.regs[src])
			fr.ip += 4

		case OpGetConst:
			dst := code[fr.ip+1]
			idx := be16(code[fr.ip+2 : fr.ip+4])
			sym := fr.irep.Syms[idx]
			if cls := vm.classes.Lookup(sym); cls != nil {
				vm.storeShared(fr, dst, classValueOf(cls))
			} else {
				vm.storeFresh(fr, dst, NilValue)
			}
			fr.ip += 4

		case OpJmp:
			off := sbe16(code[fr.ip+1 : fr.ip+3])
			fr.ip += 3 + int(off)

		case OpJmpIf:
			cond := code[fr.ip+1]
			off := sbe16(code[fr.ip+2 : fr.ip+4])
			if fr.regs[cond].Truthy() {
				fr.ip += 4 + int(off)
			} else {
				fr.ip += 4
			}

		case OpJmpNot:
			cond := code[fr.ip+1]
			off := sbe16(code[fr.ip+2 : fr.ip+4])
			if !fr.regs[cond].Truthy() {
				fr.ip += 4 + int(off)
			} else {
				fr.ip += 4
			}

		case OpSend, OpSendSuper:
			recv := code[fr.ip+1]
			symIdx := be16(code[fr.ip+2 : fr.ip+4])
			argc := int(code[fr.ip+4])
			sym := fr.irep.Syms[symIdx]
			fr.ip += 5

			result := vm.dispatch(fr, recv, sym, argc, op == OpSendSuper)
			vm.storeFresh(fr, recv, result)

			if vm.PendingException() {
				if !vm.unwindTo(fr, pc) {
					vm.releaseFrame(fr, recv)
					return fr.regs[recv]
				}
			}

		case OpGetExc:
			dst := code[fr.ip+1]
			vm.storeShared(fr, dst, vm.lastExc)
			fr.ip += 2

		case OpReturn:
			src := code[fr.ip+1]
			vm.releaseFrame(fr, src)
			return fr.regs[src]

		case OpAbort:
			vm.releaseFrame(fr, 0)
			if len(fr.regs) == 0 {
				return NilValue
			}
			return fr.regs[0]

		default:
			vm.Raise(vm.bytecodeErrorClass, vm.NewString("unknown opcode"))
			vm.releaseFrame(fr, 0)
			return NilValue
		}
	}
	if len(fr.regs) == 0 {
		return NilValue
	}
	return fr.regs[0]
}

// dispatch resolves recv's method for sym and invokes it, returning the
// result. superSend skips the receiver's own class and starts the lookup
// at its parent, implementing `super`.
func (vm *VM) dispatch(fr *frameState, recv byte, sym symtab.ID, argc int, superSend bool) Value {
	receiver := fr.regs[recv]

	var m *Method
	if receiver.tag == Class {
		// A Class-tagged receiver dispatches through its own class-method
		// chain (new and friends) — never through the instance methods its
		// own ClassPayload happens to also carry. See class.go's
		// classMethods field doc comment.
		start := receiver.classPayload()
		if superSend && start.Parent != nil {
			start = start.Parent
		}
		m, _ = start.LookupClassMethod(sym)
	} else {
		cls := vm.ClassOf(receiver)
		if superSend && cls.Parent != nil {
			cls = cls.Parent
		}
		m, _ = cls.LookupMethod(sym)
	}
	if m == nil {
		vm.Raise(vm.runtimeErrorClass, vm.NewString("undefined method"))
		return NilValue
	}

	args := make([]Value, argc+1)
	args[0] = receiver
	copy(args[1:], fr.regs[int(recv)+1:int(recv)+1+argc])

	if m.IsBuiltin() {
		return m.Builtin(vm, args, argc)
	}
	return vm.invokeScript(m.Irep, receiver, args[1:])
}

// invokeScript runs a script method body in its own register window,
// recursing through runFrame — an ordinary (non-re-entrant) call, since it
// happens inside the same dispatch loop that made it, not from native code
// re-entering the interpreter (that path is StackSwapCall, see
// object_new.go).
func (vm *VM) invokeScript(irep *Irep, self Value, args []Value) Value {
	regs := make([]Value, irep.Nregs)
	for i, a := range args {
		if i >= len(regs) {
			break
		}
		vm.incref(a)
		regs[i] = a
	}
	for i := len(args); i < len(regs); i++ {
		regs[i] = EmptyValue
	}
	return vm.runFrame(&frameState{irep: irep, regs: regs, self: self})
}

// unwindTo looks for a catch handler in fr covering pc that matches the
// VM's pending exception's class (or an ancestor), jumps there and clears
// the exception if found, and reports whether it did so.
func (vm *VM) unwindTo(fr *frameState, pc int) bool {
	excClass := vm.exc.exceptionPayload().Class
	for _, h := range fr.irep.CatchHandlers() {
		if uint32(pc) < h.Begin || uint32(pc) >= h.End {
			continue
		}
		handlerClass := vm.classes.Lookup(h.ExcSymbol)
		if handlerClass == nil || !excClass.IsSubclassOf(handlerClass) {
			continue
		}
		if !vm.lastExc.IsNil() {
			vm.decref(vm.lastExc)
		}
		vm.lastExc = vm.exc
		vm.incref(vm.lastExc)
		vm.ClearException()
		fr.ip = int(h.Target)
		return true
	}
	return false
}
