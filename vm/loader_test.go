package vm

import (
	"encoding/binary"
	"testing"
)

// minimalRiteFile builds the smallest RITE02 buffer the loader accepts:
// one top-level irep whose entire body is a single zero-operand ABORT
// instruction (ilen=1, no pool entries, no symbols, no children), followed
// by an END section — scenario 5 from §8, adapted to this module's own
// opcode set (ABORT is the zero-operand instruction available here, where
// the source material's illustrative OP_RETURN is not).
func minimalRiteFile() []byte {
	irepRecord := []byte{
		0, 0, 0, 0, // record_size = 0 (unused by the top-level caller)
		0, 1, // nlocals = 1
		0, 1, // nregs = 1
		0, 0, // rlen = 0
		0, 0, // clen = 0
		0, 1, // ilen = 1
		byte(OpAbort),
		0, 0, // plen = 0
		0, 0, // slen = 0
	}

	body := append([]byte{0, 0, 0, 0}, irepRecord...) // 4 dummy leading bytes loadIrep's caller skips

	var irepSection []byte
	irepSection = append(irepSection, "IREP"...)
	irepSection = binary.BigEndian.AppendUint32(irepSection, 0) // placeholder, fixed below
	binary.BigEndian.PutUint32(irepSection[4:8], uint32(8+len(body)))
	irepSection = append(irepSection, body...)

	var endSection []byte
	endSection = append(endSection, "END\x00"...)
	endSection = binary.BigEndian.AppendUint32(endSection, 8)

	header := make([]byte, 20)
	copy(header, "RITE02")

	buf := append([]byte{}, header...)
	buf = append(buf, irepSection...)
	buf = append(buf, endSection...)
	return buf
}

func TestLoadRejectsBadMagic(t *testing.T) {
	e := New(4096)
	_, err := e.Load([]byte("not a rite file at all....."))
	if err != ErrBadMagic {
		t.Fatalf("Load() err = %v, want ErrBadMagic", err)
	}
}

func TestLoadRejectsTruncated(t *testing.T) {
	e := New(4096)
	_, err := e.Load([]byte("RITE"))
	if err != ErrTruncated {
		t.Fatalf("Load() err = %v, want ErrTruncated", err)
	}
}

// TestLoadMinimalIrepRoundTrip is scenario 5 from §8: loading a minimal
// one-instruction irep succeeds, has no children, and releasing it
// returns the pool to its prior used-byte count.
func TestLoadMinimalIrepRoundTrip(t *testing.T) {
	e := New(64 * 1024)
	before := e.Pool().Statistics().Used

	ir, err := e.Load(minimalRiteFile())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ir == nil {
		t.Fatalf("expected a non-nil root irep")
	}
	if len(ir.Children) != 0 {
		t.Fatalf("expected no children, got %d", len(ir.Children))
	}
	if len(ir.Code) != 1 || Opcode(ir.Code[0]) != OpAbort {
		t.Fatalf("expected a single ABORT instruction, got %v", ir.Code)
	}

	ir.Release(e)

	after := e.Pool().Statistics().Used
	if after != before {
		t.Fatalf("pool used bytes after release = %d, want %d (pre-load)", after, before)
	}
}
