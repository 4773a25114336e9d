package vm

import (
	"strings"
	"testing"

	"github.com/dressupgeekout/mrubyc/symtab"
)

type bufSink struct{ b strings.Builder }

func (s *bufSink) Write(str string) { s.b.WriteString(str) }

// TestPutsAppendsNewlineOnce is scenario 6 from §8: puts "hi" writes a
// single trailing newline, not two.
func TestPutsAppendsNewlineOnce(t *testing.T) {
	e := New(4096)
	sink := &bufSink{}
	e.SetSink(sink)

	symPuts := e.Intern("puts")
	msg := e.NewString("hi")

	code := []byte{
		byte(OpLoadSelf), 0,
		byte(OpLoadL), 1, 0, 0,
		byte(OpSend), 0, 0, 0, 1,
		byte(OpReturn), 0,
	}
	ir := &Irep{
		Nlocals: 2,
		Nregs:   2,
		Code:    code,
		Pool:    []Value{msg},
		Syms:    []symtab.ID{symPuts},
	}

	e.invokeScript(ir, NilValue, nil)

	if got := sink.b.String(); got != "hi\n" {
		t.Fatalf("puts output = %q, want %q", got, "hi\n")
	}
}

// TestJmpIfSkipsWhenFalse exercises JMPIF and JMPNOT together: a false
// condition must fall through JMPIF and take the JMPNOT branch.
func TestJmpIfSkipsWhenFalse(t *testing.T) {
	e := New(4096)

	code := []byte{
		byte(OpLoadFalse), 0, // r0 = false
		byte(OpJmpIf), 0, 0, 6, // if r0: jump 6 bytes past this JMPIF, to pc=12 (not taken)
		byte(OpJmpNot), 0, 0, 6, // if !r0: skip over the false-branch LOADI below
		byte(OpLoadI), 1, 0, 0, 0, 99, // r1 = 99 (skipped)
		byte(OpLoadI), 1, 0, 0, 0, 7, // r1 = 7 (taken)
		byte(OpReturn), 1,
	}
	ir := &Irep{Nlocals: 2, Nregs: 2, Code: code}

	result := e.invokeScript(ir, NilValue, nil)
	if !result.IsInteger() || result.Integer_() != 7 {
		t.Fatalf("expected r1 == 7, got %v", result)
	}
}

// TestSendReturnsBuiltinResult exercises LOADI and an arithmetic SEND
// end to end: (3 + 4) via Integer#+.
func TestSendReturnsBuiltinResult(t *testing.T) {
	e := New(4096)
	symPlus := e.Intern("+")

	code := []byte{
		byte(OpLoadI), 0, 0, 0, 0, 3, // r0 = 3
		byte(OpLoadI), 1, 0, 0, 0, 4, // r1 = 4
		byte(OpSend), 0, 0, 0, 1, // r0 = r0 + r1
		byte(OpReturn), 0,
	}
	ir := &Irep{
		Nlocals: 2,
		Nregs:   2,
		Code:    code,
		Syms:    []symtab.ID{symPlus},
	}

	result := e.invokeScript(ir, NilValue, nil)
	if !result.IsInteger() || result.Integer_() != 7 {
		t.Fatalf("expected 3 + 4 == 7, got %v", result)
	}
}
