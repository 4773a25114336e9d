package vm

import (
	"github.com/dressupgeekout/mrubyc/alloc"
	"github.com/dressupgeekout/mrubyc/symtab"
)

// Irep is an immutable instruction record produced by the loader (§3.3):
// a register window, borrowed instruction bytes, a literal pool, a
// per-irep symbol id table, and owned child ireps.
//
// Code and Catch are borrowed zero-copy slices into the caller's bytecode
// buffer (§9 "pointer-into-buffer borrowing"); the buffer must outlive
// every Irep built from it. Pool string literals are copied into
// pool-allocated String values and do not borrow from the buffer.
type Irep struct {
	Nlocals int
	Nregs   int
	Code    []byte // borrowed
	Catch   []byte // borrowed, 13 bytes per entry

	Pool     []Value     // materialized literal pool, addressed by OpLoadL
	Syms     []symtab.ID // this irep's local symbol table, addressed by index
	Children []*Irep     // owned

	pool *alloc.Pool
	ptr  alloc.Ptr // accounting allocation, see accountIrepLoad in loader.go
}

// Release frees the irep tree's accounting allocation and recurses into
// every child, and decrefs every pool literal it materialized —
// Children are owned (§3.3 "releasing a parent releases all descendants").
func (ir *Irep) Release(vm *VM) {
	if ir == nil {
		return
	}
	for _, c := range ir.Children {
		c.Release(vm)
	}
	for _, v := range ir.Pool {
		vm.decref(v)
	}
	if ir.pool != nil && ir.ptr != alloc.NilPtr {
		ir.pool.Free(ir.ptr)
	}
}

// CatchHandler is one decoded entry of an irep's catch table — decoded
// lazily by the exception unwinder rather than at load time, since the
// opcode dispatcher only needs handler offsets when a raise is actually in
// flight (§4.3 SUPPLEMENT).
type CatchHandler struct {
	Type      byte
	Begin     uint32
	End       uint32
	ExcSymbol symtab.ID
	Target    uint16
}

const catchEntrySize = 13

// CatchHandlers decodes ir.Catch into structured entries.
func (ir *Irep) CatchHandlers() []CatchHandler {
	n := len(ir.Catch) / catchEntrySize
	out := make([]CatchHandler, n)
	for i := 0; i < n; i++ {
		b := ir.Catch[i*catchEntrySize:]
		out[i] = CatchHandler{
			Type:      b[0],
			Begin:     be32(b[1:5]),
			End:       be32(b[5:9]),
			ExcSymbol: symtab.ID(be16(b[9:11])),
			Target:    be16(b[11:13]),
		}
	}
	return out
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
