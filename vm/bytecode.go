package vm

import "fmt"

// Opcode is one instruction tag in this runtime's reduced register-machine
// ISA. The container format (§6.1) and the loader (§4.3) are specified
// down to the byte; per-instruction operand encoding is not — the source
// material leaves bytecode generation to an external compiler that is out
// of scope here (§1 Non-goals). This ISA is this module's own, chosen to
// be just expressive enough to carry the behaviors §4.5/§4.6 and the
// testable scenarios describe: register loads/stores, ivar and constant
// access, sends, branches, and return/abort. See DESIGN.md.
type Opcode byte

const (
	OpNop Opcode = iota
	OpMove
	OpLoadNil
	OpLoadTrue
	OpLoadFalse
	OpLoadSelf
	OpLoadI
	OpLoadSym
	OpLoadL
	OpGetIV
	OpSetIV
	OpGetConst
	OpJmp
	OpJmpIf
	OpJmpNot
	OpSend
	OpSendSuper
	OpGetExc
	OpReturn
	OpAbort
)

// operandLen is the number of operand bytes following the opcode byte for
// each instruction, used by Disassemble. The dispatcher (runFrame) does not
// read this table; it advances ip by the same widths inline.
var operandLen = map[Opcode]int{
	OpNop:       0,
	OpMove:      2,
	OpLoadNil:   1,
	OpLoadTrue:  1,
	OpLoadFalse: 1,
	OpLoadSelf:  1,
	OpLoadI:     5,
	OpLoadSym:   3,
	OpLoadL:     3,
	OpGetIV:     3,
	OpSetIV:     3,
	OpGetConst:  3,
	OpJmp:       2,
	OpJmpIf:     3,
	OpJmpNot:    3,
	OpSend:      4,
	OpSendSuper: 4,
	OpGetExc:    1,
	OpReturn:    1,
	OpAbort:     0,
}

func (op Opcode) String() string {
	switch op {
	case OpNop:
		return "NOP"
	case OpMove:
		return "MOVE"
	case OpLoadNil:
		return "LOADNIL"
	case OpLoadTrue:
		return "LOADTRUE"
	case OpLoadFalse:
		return "LOADFALSE"
	case OpLoadSelf:
		return "LOADSELF"
	case OpLoadI:
		return "LOADI"
	case OpLoadSym:
		return "LOADSYM"
	case OpLoadL:
		return "LOADL"
	case OpGetIV:
		return "GETIV"
	case OpSetIV:
		return "SETIV"
	case OpGetConst:
		return "GETCONST"
	case OpJmp:
		return "JMP"
	case OpJmpIf:
		return "JMPIF"
	case OpJmpNot:
		return "JMPNOT"
	case OpSend:
		return "SEND"
	case OpSendSuper:
		return "SENDSUPER"
	case OpGetExc:
		return "GETEXC"
	case OpReturn:
		return "RETURN"
	case OpAbort:
		return "ABORT"
	default:
		return fmt.Sprintf("OP(%d)", byte(op))
	}
}

// Disassemble renders code as one line per instruction, for debugging and
// tests — mirroring the teacher's bytecode.go Disassemble helper.
func Disassemble(code []byte) string {
	var out string
	ip := 0
	for ip < len(code) {
		op := Opcode(code[ip])
		n := operandLen[op]
		end := ip + 1 + n
		if end > len(code) {
			out += fmt.Sprintf("%04d  %s <truncated>\n", ip, op)
			break
		}
		out += fmt.Sprintf("%04d  %-10s % X\n", ip, op, code[ip+1:end])
		ip = end
	}
	return out
}

// sbe16 decodes a big-endian signed 16-bit jump offset.
func sbe16(b []byte) int16 { return int16(be16(b)) }
