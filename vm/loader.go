package vm

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/dressupgeekout/mrubyc/alloc"
	"github.com/dressupgeekout/mrubyc/symtab"
)

// Errors surfaced by the RITE02 loader (§4.3, §7 BytecodeError).
var (
	ErrBadMagic      = errors.New("vm: bad RITE02 magic/version")
	ErrTruncated     = errors.New("vm: bytecode truncated")
	ErrUnknownPool   = errors.New("vm: unknown pool entry type")
	ErrAllocator     = errors.New("vm: pool allocator exhausted during load")
)

// poolTag values from §6.1.
const (
	poolStr   = 0
	poolInt32 = 1
	poolSStr  = 2
	poolInt64 = 3
	poolFloat = 5
)

// Load parses a RITE02 container and returns its root irep. On any
// failure the partially-built irep tree is released and a nil irep is
// returned alongside the error (§4.3 Failure, §7 "Loader OOM frees the
// partial irep tree before returning").
func (vm *VM) Load(bin []byte) (*Irep, error) {
	if len(bin) < 20 {
		return nil, ErrTruncated
	}
	if string(bin[0:4]) != "RITE" || string(bin[4:6]) != "02" {
		return nil, ErrBadMagic
	}
	pos := 20
	var root *Irep
	for pos+8 <= len(bin) {
		tag := string(bin[pos : pos+4])
		length := int(binary.BigEndian.Uint32(bin[pos+4 : pos+8]))
		if length < 8 || pos+length > len(bin) {
			root.Release(vm)
			return nil, ErrTruncated
		}
		body := bin[pos+8 : pos+length]
		switch tag {
		case "IREP":
			if len(body) < 4 {
				root.Release(vm)
				return nil, ErrTruncated
			}
			ir, _, err := vm.loadIrep(body[4:])
			if err != nil {
				root.Release(vm)
				ir.Release(vm)
				return nil, err
			}
			root = ir
		case "END\x00":
			return root, nil
		}
		pos += length
	}
	return root, nil
}

// loadIrep parses one irep record from buf starting at offset 0, returning
// the parsed Irep and the offset of the byte following the record.
func (vm *VM) loadIrep(buf []byte) (*Irep, int, error) {
	if len(buf) < 4+2+2+2+2+2 {
		return nil, 0, ErrTruncated
	}
	recordSize := int(binary.BigEndian.Uint32(buf[0:4]))
	if recordSize > len(buf) {
		return nil, 0, ErrTruncated
	}
	pos := 4
	nlocals := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += 2
	nregs := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += 2
	rlen := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += 2
	clen := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += 2
	ilen := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += 2

	if pos+ilen > len(buf) {
		return nil, 0, ErrTruncated
	}
	code := buf[pos : pos+ilen] // borrowed, zero-copy
	pos += ilen

	catchLen := clen * catchEntrySize
	if pos+catchLen > len(buf) {
		return nil, 0, ErrTruncated
	}
	catch := buf[pos : pos+catchLen] // borrowed
	pos += catchLen

	ir := &Irep{Nlocals: nlocals, Nregs: nregs, Code: code, Catch: catch}

	if pos+2 > len(buf) {
		return nil, 0, ErrTruncated
	}
	plen := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += 2
	ir.Pool = make([]Value, plen)
	for i := 0; i < plen; i++ {
		v, next, err := vm.loadPoolEntry(buf, pos)
		if err != nil {
			return ir, 0, err
		}
		ir.Pool[i] = v
		pos = next
	}

	if pos+2 > len(buf) {
		return ir, 0, ErrTruncated
	}
	slen := int(binary.BigEndian.Uint16(buf[pos:]))
	pos += 2
	ir.Syms = make([]symtab.ID, slen)
	for i := 0; i < slen; i++ {
		if pos+2 > len(buf) {
			return ir, 0, ErrTruncated
		}
		l := int(binary.BigEndian.Uint16(buf[pos:]))
		pos += 2
		if pos+l+1 > len(buf) {
			return ir, 0, ErrTruncated
		}
		name := string(buf[pos : pos+l])
		pos += l + 1 // skip NUL
		ir.Syms[i] = vm.syms.SymbolNew(name)
	}

	ir.Children = make([]*Irep, rlen)
	for i := 0; i < rlen; i++ {
		if pos >= len(buf) {
			return ir, 0, ErrTruncated
		}
		child, childEnd, err := vm.loadIrep(buf[pos:])
		ir.Children[i] = child
		if err != nil {
			return ir, 0, err
		}
		pos += childEnd
	}

	if err := vm.accountIrepLoad(ir); err != nil {
		return ir, 0, err
	}

	if recordSize > 0 {
		return ir, recordSize, nil
	}
	return ir, pos, nil
}

func (vm *VM) loadPoolEntry(buf []byte, pos int) (Value, int, error) {
	if pos >= len(buf) {
		return Value{}, 0, ErrTruncated
	}
	tag := buf[pos]
	pos++
	switch tag {
	case poolStr, poolSStr:
		if pos+2 > len(buf) {
			return Value{}, 0, ErrTruncated
		}
		l := int(binary.BigEndian.Uint16(buf[pos:]))
		pos += 2
		if pos+l+1 > len(buf) {
			return Value{}, 0, ErrTruncated
		}
		s := string(buf[pos : pos+l])
		pos += l + 1
		return vm.NewString(s), pos, nil
	case poolInt32:
		if pos+4 > len(buf) {
			return Value{}, 0, ErrTruncated
		}
		n := int32(binary.BigEndian.Uint32(buf[pos:]))
		pos += 4
		return NewInteger(int64(n)), pos, nil
	case poolInt64:
		if pos+8 > len(buf) {
			return Value{}, 0, ErrTruncated
		}
		n := int64(binary.BigEndian.Uint64(buf[pos:]))
		pos += 8
		return NewInteger(n), pos, nil
	case poolFloat:
		if pos+8 > len(buf) {
			return Value{}, 0, ErrTruncated
		}
		bits := binary.BigEndian.Uint64(buf[pos:])
		pos += 8
		return NewFloat(math.Float64frombits(bits)), pos, nil
	default:
		return Value{}, 0, ErrUnknownPool
	}
}

// accountIrepLoad takes out a pool allocation sized to approximate the
// header/symbol-table/pool-offset-table/child-table block the source
// allocates as one contiguous block per irep (§4.3 "Allocation for each
// irep is a single block..."). The Go Irep itself is an ordinary struct
// with slice fields for ergonomic field access; this call exists purely so
// that Pool.Statistics() and the "loader round-trip nets to zero" property
// (§8 invariant 5) are concretely verifiable against the same allocator
// every other VM allocation uses. See DESIGN.md.
func (vm *VM) accountIrepLoad(ir *Irep) error {
	n := irepAccountingSize(ir)
	ptr := vm.pool.Alloc(n)
	if ptr == alloc.NilPtr {
		return ErrAllocator
	}
	ir.pool = vm.pool
	ir.ptr = ptr
	return nil
}

func irepAccountingSize(ir *Irep) int {
	return 16 + len(ir.Syms)*4 + len(ir.Pool)*4 + len(ir.Children)*8
}
