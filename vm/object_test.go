package vm

import (
	"testing"

	"github.com/dressupgeekout/mrubyc/symtab"
)

func TestIVarRoundTrip(t *testing.T) {
	e := New(4096)
	cls := e.DefineClass("Point", nil)
	inst := e.InstanceNew(cls, 0)

	sym := NewSymbol(uint32(e.Intern("@x")))
	if got := inst.objectPayload().GetIVar(sym); !got.IsNil() {
		t.Fatalf("expected an unset ivar to read back nil, got %v", got.tag)
	}

	inst.objectPayload().SetIVar(e, sym, NewInteger(7))
	got := inst.objectPayload().GetIVar(sym)
	if !got.IsInteger() || got.Integer_() != 7 {
		t.Fatalf("expected @x == 7, got %v", got)
	}
}

func TestInstanceNewAssignsClass(t *testing.T) {
	e := New(4096)
	cls := e.DefineClass("Widget", nil)
	inst := e.InstanceNew(cls, 0)

	if e.ClassOf(inst) != cls {
		t.Fatalf("expected ClassOf(instance) to be the class it was constructed with")
	}
}

// TestObjectDotNewDispatch is scenario 3 from §8: defining C < Object with
// initialize(x); @x = x; end, evaluating C.new(7), and reading @x back.
func TestObjectDotNewDispatch(t *testing.T) {
	e := New(8192)
	cls := e.DefineClass("C", nil)

	symX := NewSymbol(uint32(e.Intern("@x")))
	cls.AddMethod(e.Intern("initialize"), Method{
		Irep: &Irep{
			Nlocals: 1,
			Nregs:   1,
			Code: []byte{
				byte(OpSetIV), 0, 0, 0, // @x = reg0 (the sole argument)
				byte(OpReturn), 0,
			},
			Syms: []symtab.ID{symtab.ID(symX.SymbolID())},
		},
	})

	classVal := classValueOf(cls)
	regs := []Value{classVal, NewInteger(7)}
	instance := newObjectBuiltin(e, regs, 1)

	if !e.IsKindOf(instance, cls) {
		t.Fatalf("expected the new instance to be kind_of? C")
	}
	if !e.IsKindOf(instance, e.ObjectClass()) {
		t.Fatalf("expected the new instance to be kind_of? Object")
	}

	got := instance.objectPayload().GetIVar(symX)
	if !got.IsInteger() || got.Integer_() != 7 {
		t.Fatalf("expected @x == 7 after C.new(7), got %v", got)
	}
}
