package alloc

import "testing"

// tileInvariant walks the whole region and fails the test if the blocks
// don't exactly tile it, or if two adjacent blocks are both free.
func tileInvariant(t *testing.T, p *Pool) {
	t.Helper()
	off := Ptr(0)
	prevFree := false
	for int(off) < len(p.buf) {
		size := p.blockSize(off)
		if size == 0 {
			t.Fatalf("zero-size block at %d", off)
		}
		used := p.blockUsed(off)
		if !used && prevFree {
			t.Fatalf("two adjacent free blocks ending at %d", off)
		}
		prevFree = !used
		off += Ptr(size)
	}
	if int(off) != len(p.buf) {
		t.Fatalf("blocks do not tile region: ended at %d, want %d", off, len(p.buf))
	}
}

func TestFirstFitAndCoalesce(t *testing.T) {
	buf := make([]byte, 1024)
	p := New(buf)
	tileInvariant(t, p)

	a := p.Alloc(100)
	b := p.Alloc(100)
	c := p.Alloc(100)
	if a == NilPtr || b == NilPtr || c == NilPtr {
		t.Fatalf("expected three allocations to succeed")
	}
	tileInvariant(t, p)

	p.Free(b)
	tileInvariant(t, p)

	d := p.Alloc(90)
	if d == NilPtr {
		t.Fatalf("expected 90-byte alloc to reuse freed middle block")
	}
	// d should land in the hole vacated by b, i.e. between a and c.
	if !(d > a && d < c) {
		t.Fatalf("expected d to be carved from b's hole, got a=%d d=%d c=%d", a, d, c)
	}
	tileInvariant(t, p)

	p.Free(a)
	p.Free(c)
	tileInvariant(t, p)

	p.Free(d)
	tileInvariant(t, p)

	stats := p.Statistics()
	if stats.Fragmentation != 1 {
		t.Fatalf("expected a single coalesced free block, got %d fragments", stats.Fragmentation)
	}
	if stats.Free != stats.Total {
		t.Fatalf("expected the whole region free after releasing everything, got %d/%d", stats.Free, stats.Total)
	}
}

func TestAllocOutOfMemory(t *testing.T) {
	buf := make([]byte, 64)
	p := New(buf)

	first := p.Alloc(40)
	if first == NilPtr {
		t.Fatalf("expected small alloc to succeed in a 64-byte pool")
	}
	if got := p.Alloc(40); got != NilPtr {
		t.Fatalf("expected second 40-byte alloc to fail, got %d", got)
	}
}

func TestReallocGrowInPlace(t *testing.T) {
	buf := make([]byte, 256)
	p := New(buf)

	a := p.Alloc(16)
	copy(p.Bytes(a), []byte("hello world!!!!!"))

	grown := p.Realloc(a, 64)
	if grown == NilPtr {
		t.Fatalf("expected realloc to succeed")
	}
	if grown != a {
		t.Fatalf("expected realloc to grow in place, got %d, want %d", grown, a)
	}
	if string(p.Bytes(grown)[:16]) != "hello world!!!!!" {
		t.Fatalf("realloc did not preserve contents: %q", p.Bytes(grown)[:16])
	}
	tileInvariant(t, p)
}

func TestReallocFallsBackToFreshBlock(t *testing.T) {
	buf := make([]byte, 256)
	p := New(buf)

	a := p.Alloc(16)
	copy(p.Bytes(a), []byte("0123456789abcdef"))
	// Allocate a neighbor so a's trailing block is used and can't extend in place.
	_ = p.Alloc(16)

	moved := p.Realloc(a, 128)
	if moved == NilPtr {
		t.Fatalf("expected realloc to find a fresh block")
	}
	if moved == a {
		t.Fatalf("expected realloc to move to a fresh block, got the original %d", a)
	}
	if string(p.Bytes(moved)[:16]) != "0123456789abcdef" {
		t.Fatalf("realloc did not copy contents: %q", p.Bytes(moved)[:16])
	}
	tileInvariant(t, p)
}

func TestReallocFromNilActsAsAlloc(t *testing.T) {
	p := New(make([]byte, 128))
	got := p.Realloc(NilPtr, 8)
	if got == NilPtr {
		t.Fatalf("expected realloc(NilPtr, n) to behave as alloc")
	}
}

func TestStatisticsAccounting(t *testing.T) {
	p := New(make([]byte, 512))
	a := p.Alloc(50)
	stats := p.Statistics()
	if stats.Total != 512 {
		t.Fatalf("total = %d, want 512", stats.Total)
	}
	if stats.Used+stats.Free != stats.Total {
		t.Fatalf("used+free = %d, want %d", stats.Used+stats.Free, stats.Total)
	}
	p.Free(a)
	stats = p.Statistics()
	if stats.Used != 0 {
		t.Fatalf("expected 0 used bytes after freeing the only allocation, got %d", stats.Used)
	}
}

func TestAllocNoFreeSharesArena(t *testing.T) {
	p := New(make([]byte, 128))
	ptr := p.AllocNoFree(8)
	if ptr == NilPtr {
		t.Fatalf("expected AllocNoFree to succeed")
	}
	before := p.Statistics().Used
	if before == 0 {
		t.Fatalf("expected AllocNoFree to account as used")
	}
}
