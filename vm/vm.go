package vm

import (
	"fmt"

	"github.com/dressupgeekout/mrubyc/alloc"
	"github.com/dressupgeekout/mrubyc/symtab"
)

// VM is the process-wide environment threaded through every operation:
// the pool allocator, the symbol interner, the class registry, and the
// current pending-exception state. §9 models this explicitly as a handle
// rather than true package-level globals, so tests can instantiate
// independent VMs.
type VM struct {
	pool    *alloc.Pool
	syms    *symtab.Table
	classes *ClassTable

	exc        Value
	excMessage Value
	lastExc    Value // the exception a rescue handler's GETEXC reads (§4.6)

	frame *frameState // current stack-swap/call frame; nil outside Run

	out Sink // p/puts destination (§8 scenario 6); defaults to an os.Stdout sink

	objectClass, classClass                          *ClassPayload
	nilClass, trueClass, falseClass                   *ClassPayload
	integerClass, floatClass, symbolClass             *ClassPayload
	stringClass, arrayClass, hashClass, rangeClass    *ClassPayload
	procClass, exceptionClass                         *ClassPayload
	standardErrorClass, runtimeErrorClass             *ClassPayload
	typeErrorClass, argumentErrorClass                *ClassPayload
	indexErrorClass, rangeErrorClass                  *ClassPayload
	noMemoryErrorClass, bytecodeErrorClass            *ClassPayload

	symInitialize, symNew symtab.ID
}

// Sink receives script-level print output (§8 scenario 6's p/puts sinks).
type Sink interface {
	Write(s string)
}

// New constructs a VM backed by a pool of poolSize bytes and bootstraps
// the built-in classes (Object, Proc, Nil, True, False, String, Symbol,
// and the standard exception classes). This is the Go-level equivalent of
// §6.2's init(pool_ptr, pool_size); see cmd/mrubyc for the host wrapper.
func New(poolSize int) *VM {
	pool := alloc.New(make([]byte, poolSize))
	vm := &VM{
		pool:       pool,
		syms:       symtab.New(pool, symtab.BST, symtab.DefaultMaxSymbols),
		classes:    newClassTable(),
		exc:        NilValue,
		excMessage: NilValue,
		lastExc:    NilValue,
		out:        stdoutSink{},
	}
	vm.bootstrap()
	return vm
}

// Pool exposes the VM's allocator, mainly for tests asserting on
// Statistics().
func (vm *VM) Pool() *alloc.Pool { return vm.pool }

// Symbols exposes the VM's symbol interner.
func (vm *VM) Symbols() *symtab.Table { return vm.syms }

// Classes exposes the VM's class registry.
func (vm *VM) Classes() *ClassTable { return vm.classes }

// SetSink overrides the p/puts destination, e.g. for tests that capture
// output.
func (vm *VM) SetSink(s Sink) { vm.out = s }

func (vm *VM) intern(name string) symtab.ID { return vm.syms.SymbolNew(name) }

func (vm *VM) defineClass(name string, parent *ClassPayload) *ClassPayload {
	v := vm.NewClass(vm.intern(name), parent)
	return v.classPayload()
}

func (vm *VM) bootstrap() {
	vm.objectClass = vm.defineClass("Object", nil)
	vm.classClass = vm.defineClass("Class", vm.objectClass)
	vm.nilClass = vm.defineClass("NilClass", vm.objectClass)
	vm.trueClass = vm.defineClass("TrueClass", vm.objectClass)
	vm.falseClass = vm.defineClass("FalseClass", vm.objectClass)
	vm.integerClass = vm.defineClass("Integer", vm.objectClass)
	vm.floatClass = vm.defineClass("Float", vm.objectClass)
	vm.symbolClass = vm.defineClass("Symbol", vm.objectClass)
	vm.stringClass = vm.defineClass("String", vm.objectClass)
	vm.arrayClass = vm.defineClass("Array", vm.objectClass)
	vm.hashClass = vm.defineClass("Hash", vm.objectClass)
	vm.rangeClass = vm.defineClass("Range", vm.objectClass)
	vm.procClass = vm.defineClass("Proc", vm.objectClass)

	vm.exceptionClass = vm.defineClass("Exception", vm.objectClass)
	vm.standardErrorClass = vm.defineClass("StandardError", vm.exceptionClass)
	vm.runtimeErrorClass = vm.defineClass("RuntimeError", vm.standardErrorClass)
	vm.typeErrorClass = vm.defineClass("TypeError", vm.standardErrorClass)
	vm.argumentErrorClass = vm.defineClass("ArgumentError", vm.standardErrorClass)
	vm.indexErrorClass = vm.defineClass("IndexError", vm.standardErrorClass)
	vm.rangeErrorClass = vm.defineClass("RangeError", vm.standardErrorClass)
	vm.noMemoryErrorClass = vm.defineClass("NoMemoryError", vm.standardErrorClass)
	vm.bytecodeErrorClass = vm.defineClass("BytecodeError", vm.standardErrorClass)

	vm.symInitialize = vm.intern("initialize")
	vm.symNew = vm.intern("new")

	vm.installBuiltins()
}

// ExcClass exposes a well-known exception class by name, for built-ins
// and tests that need to raise a specific kind.
func (vm *VM) ExcClass(name string) *ClassPayload {
	switch name {
	case "RuntimeError":
		return vm.runtimeErrorClass
	case "TypeError":
		return vm.typeErrorClass
	case "ArgumentError":
		return vm.argumentErrorClass
	case "IndexError":
		return vm.indexErrorClass
	case "RangeError":
		return vm.rangeErrorClass
	case "NoMemoryError":
		return vm.noMemoryErrorClass
	case "BytecodeError":
		return vm.bytecodeErrorClass
	case "StandardError":
		return vm.standardErrorClass
	default:
		return vm.standardErrorClass
	}
}

// ObjectClass exposes the root Object class.
func (vm *VM) ObjectClass() *ClassPayload { return vm.objectClass }

// DefineClass registers a new user class under name with the given
// parent (Object if nil), for hosts and tests building a class graph by
// hand in the absence of a compiler front-end (§1 Non-goals).
func (vm *VM) DefineClass(name string, parent *ClassPayload) *ClassPayload {
	if parent == nil {
		parent = vm.objectClass
	}
	return vm.defineClass(name, parent)
}

// Intern exposes the VM's symbol interner for hosts building method
// tables by hand.
func (vm *VM) Intern(name string) symtab.ID { return vm.intern(name) }

type stdoutSink struct{}

func (stdoutSink) Write(s string) { fmt.Print(s) }

// Task is the coarse scheduling unit §5 mentions above the single-task
// core: a loaded irep; Run allocates the registers it runs in. The core itself is
// sequential; CreateTask/Run just wrap Load + Run for the host entry
// point described in §6.2.
type Task struct {
	irep *Irep
}

// CreateTask loads mrbbuf as a task ready to run. params is accepted for
// parity with §6.2's create_task(mrbbuf, params) signature; this core has
// no per-task parameters to apply, so it is currently unused.
func (vm *VM) CreateTask(mrbbuf []byte, params any) (*Task, error) {
	irep, err := vm.Load(mrbbuf)
	if err != nil {
		return nil, err
	}
	return &Task{irep: irep}, nil
}

// Run executes every created task to completion and returns an exit code:
// 1 signals normal completion, matching §6.2.
func (vm *VM) Run(tasks ...*Task) int {
	for _, t := range tasks {
		if t == nil || t.irep == nil {
			continue
		}
		regs := make([]Value, t.irep.Nregs)
		vm.runFrame(&frameState{irep: t.irep, regs: regs, self: NilValue})
	}
	return 1
}
