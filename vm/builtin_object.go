package vm

// installBuiltins registers every built-in method shim named in §4 and the
// testable scenarios in §8: the thin host-side adapters around primitives
// this package already implements (InstanceNew, Raise, IsKindOf, compare,
// the p/puts sink) rather than fresh behavior of their own. Split across
// builtin_object.go (Object/Kernel), builtin_numeric.go (Integer/Float),
// builtin_string.go (String/Symbol), builtin_literal.go (Nil/True/False)
// and builtin_exception.go (Exception).
func (vm *VM) installBuiltins() {
	vm.installObjectBuiltins()
	vm.installNumericBuiltins()
	vm.installStringBuiltins()
	vm.installLiteralBuiltins()
	vm.installExceptionBuiltins()
}

func (vm *VM) installObjectBuiltins() {
	vm.objectClass.AddClassBuiltin(vm.symNew, newObjectBuiltin)

	vm.objectClass.AddBuiltin(vm.intern("initialize"), func(vm *VM, regs []Value, argc int) Value {
		vm.incref(regs[0])
		return regs[0]
	})

	vm.objectClass.AddBuiltin(vm.intern("raise"), kernelRaiseBuiltin)

	vm.objectClass.AddBuiltin(vm.intern("kind_of?"), kernelKindOfBuiltin)
	vm.objectClass.AddBuiltin(vm.intern("is_a?"), kernelKindOfBuiltin)

	vm.objectClass.AddBuiltin(vm.intern("class"), func(vm *VM, regs []Value, argc int) Value {
		// The dispatcher stores a builtin's result with storeFresh, which
		// decrefs the receiver register it replaces, so every returned
		// heap value must carry a reference of its own: this one is
		// increfed here, just as builtins returning regs[0] incref it.
		cls := classValueOf(vm.ClassOf(regs[0]))
		vm.incref(cls)
		return cls
	})

	vm.objectClass.AddBuiltin(vm.intern("dup"), kernelDupBuiltin)

	vm.objectClass.AddBuiltin(vm.intern("p"), kernelPBuiltin)
	vm.objectClass.AddBuiltin(vm.intern("puts"), kernelPutsBuiltin)

	vm.objectClass.AddBuiltin(vm.intern("=="), func(vm *VM, regs []Value, argc int) Value {
		if argc < 1 {
			return FalseValue
		}
		return NewBool(compare(regs[0], regs[1]) == 0)
	})

	vm.objectClass.AddBuiltin(vm.intern("nil?"), func(vm *VM, regs []Value, argc int) Value {
		return NewBool(regs[0].IsNil())
	})
}

// kernelRaiseBuiltin implements §4.6's four call forms: raise with no
// arguments (re-raises RuntimeError with no message, since this core keeps
// no "current exception" slot to re-raise from — see DESIGN.md), raise
// "msg" (RuntimeError with that message), raise SomeClass (that class, nil
// message), and raise SomeClass, "msg". Anything else is a TypeError.
func kernelRaiseBuiltin(vm *VM, regs []Value, argc int) Value {
	switch argc {
	case 0:
		vm.Raise(vm.runtimeErrorClass, NilValue)
	case 1:
		arg := regs[1]
		switch arg.tag {
		case String:
			vm.Raise(vm.runtimeErrorClass, arg)
		case Class:
			vm.Raise(arg.classPayload(), NilValue)
		default:
			vm.Raise(vm.typeErrorClass, vm.NewString("exception class/object expected"))
		}
	default:
		arg := regs[1]
		if arg.tag != Class {
			vm.Raise(vm.typeErrorClass, vm.NewString("exception class/object expected"))
			return NilValue
		}
		vm.Raise(arg.classPayload(), regs[2])
	}
	return NilValue
}

func kernelKindOfBuiltin(vm *VM, regs []Value, argc int) Value {
	if argc < 1 || regs[1].tag != Class {
		return FalseValue
	}
	return NewBool(vm.IsKindOf(regs[0], regs[1].classPayload()))
}

// kernelDupBuiltin implements Kernel#dup restricted to Object-tagged
// receivers (§9's Open Question on dup: this core resolves it by refusing
// to silently broaden dup to Proc or Range, which have no defined copy
// semantics here). Dup shallow-copies the ivar table; a new instance is
// returned with refcount 1, its own ivar handle, and increffed ivar
// values.
func kernelDupBuiltin(vm *VM, regs []Value, argc int) Value {
	recv := regs[0]
	if recv.tag != Object {
		vm.Raise(vm.typeErrorClass, vm.NewString("dup is only defined for Object instances"))
		return NilValue
	}
	src := recv.objectPayload()
	dup := vm.InstanceNew(src.Class, 0)
	dst := dup.objectPayload()
	for _, p := range src.ivar.pairs {
		vm.incref(p.key)
		vm.incref(p.val)
		dst.ivar.pairs = append(dst.ivar.pairs, kvPair{key: p.key, val: p.val})
	}
	return dup
}

func kernelPBuiltin(vm *VM, regs []Value, argc int) Value {
	for i := 1; i <= argc; i++ {
		vm.out.Write(inspectString(vm, regs[i]) + "\n")
	}
	if argc == 0 {
		return NilValue
	}
	if argc == 1 {
		vm.incref(regs[1])
		return regs[1]
	}
	elems := make([]Value, argc)
	for i := 0; i < argc; i++ {
		vm.incref(regs[1+i])
		elems[i] = regs[1+i]
	}
	return vm.NewArray(elems)
}

// kernelPutsBuiltin implements §8 scenario 6's puts semantics: each
// argument on its own line, a bare newline for puts() with no arguments,
// and no doubled newline when an argument's string already ends in one.
func kernelPutsBuiltin(vm *VM, regs []Value, argc int) Value {
	if argc == 0 {
		vm.out.Write("\n")
		return NilValue
	}
	for i := 1; i <= argc; i++ {
		s := toDisplayString(vm, regs[i])
		if len(s) == 0 || s[len(s)-1] != '\n' {
			s += "\n"
		}
		vm.out.Write(s)
	}
	return NilValue
}
