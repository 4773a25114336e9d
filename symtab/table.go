// Package symtab implements the process-wide symbol interner: a
// content-addressed mapping from NUL-terminated strings to small,
// stable integer ids.
//
// Because methods and symbols share a single id space in this runtime
// (a method selector *is* a symbol), Table also plays the role the
// teacher's runtime splits into a separate SelectorTable — see
// DESIGN.md.
package symtab

import "github.com/dressupgeekout/mrubyc/alloc"

// ID is a dense, stable, non-negative symbol id. Ids are assigned in
// interning order and are never reused.
type ID uint32

// InvalidID is returned by lookups that fail to find a registered
// symbol. It is never assigned to a real symbol, since symbol 0 always
// exists once anything has been interned (it is the BST root).
const InvalidID ID = 1<<32 - 1

// SearchMode selects the index strategy used by Table, mirroring the
// build-time choice between MRBC_SYMBOL_SEARCH_LINER and
// MRBC_SYMBOL_SEARCH_BTREE in the original C runtime.
type SearchMode int

const (
	// Linear scans entries in id order comparing hash then string.
	Linear SearchMode = iota
	// BST keeps a binary search tree keyed by hash, rooted at id 0.
	BST
)

// DefaultMaxSymbols is the table capacity used when none is given.
const DefaultMaxSymbols = 1024

type entry struct {
	hash        uint16
	str         string
	left, right ID // BST children; InvalidID-free: 0 is the null-child sentinel
}

// Table is an append-only symbol table. Entries, once added, are stable
// for the process lifetime and safe to share by reference: an entry's
// hash and string never change, and in BST mode only its left/right child
// links are filled in as later entries are inserted beneath it.
type Table struct {
	pool    *alloc.Pool
	mode    SearchMode
	max     int
	entries []entry
}

// New creates an empty table with the given search mode and capacity,
// backed by pool for the copies SymbolNew makes. A nil pool is
// permitted when the caller only ever uses Intern with strings it
// guarantees will outlive the table.
func New(pool *alloc.Pool, mode SearchMode, maxSymbols int) *Table {
	if maxSymbols <= 0 {
		maxSymbols = DefaultMaxSymbols
	}
	return &Table{
		pool:    pool,
		mode:    mode,
		max:     maxSymbols,
		entries: make([]entry, 0, 64),
	}
}

// calcHash reproduces the original runtime's multiplicative hash:
// h = h*17 + c over each byte of the NUL-terminated string.
func calcHash(s string) uint16 {
	var h uint16
	for i := 0; i < len(s); i++ {
		h = h*17 + uint16(s[i])
	}
	return h
}

// searchIndex returns the id of the entry matching (hash, s), or
// InvalidID if none is registered yet.
func (t *Table) searchIndex(hash uint16, s string) ID {
	switch t.mode {
	case Linear:
		for i := range t.entries {
			if t.entries[i].hash == hash && t.entries[i].str == s {
				return ID(i)
			}
		}
		return InvalidID

	default: // BST
		if len(t.entries) == 0 {
			return InvalidID
		}
		// Do-while over the root at id 0, following the child that
		// calc_hash comparison selects; 0 doubles as the null-child
		// sentinel since the root itself has no parent.
		i := ID(0)
		for {
			e := &t.entries[i]
			if e.hash == hash && e.str == s {
				return i
			}
			var next ID
			if hash < e.hash {
				next = e.left
			} else {
				next = e.right
			}
			if next == 0 {
				return InvalidID
			}
			i = next
		}
	}
}

// addIndex appends a new entry and, in BST mode, links it into the
// tree by walking from the root exactly as add_index does: ties on
// hash route right.
func (t *Table) addIndex(hash uint16, s string) ID {
	if len(t.entries) >= t.max {
		return InvalidID
	}
	id := ID(len(t.entries))
	t.entries = append(t.entries, entry{hash: hash, str: s})

	if t.mode == BST && id != 0 {
		i := ID(0)
		for {
			e := &t.entries[i]
			if hash < e.hash {
				if e.left == 0 {
					e.left = id
					return id
				}
				i = e.left
			} else {
				if e.right == 0 {
					e.right = id
					return id
				}
				i = e.right
			}
		}
	}
	return id
}

// Intern returns the id for s, appending a new entry if s has not been
// seen before. The table does not copy s; the caller must guarantee s
// outlives the table (use SymbolNew when that cannot be guaranteed).
func (t *Table) Intern(s string) ID {
	h := calcHash(s)
	if id := t.searchIndex(h, s); id != InvalidID {
		return id
	}
	return t.addIndex(h, s)
}

// SymbolNew is like Intern but, for strings not already registered,
// copies s into the backing pool via AllocNoFree before interning the
// copy. Use this whenever s's lifetime is not otherwise guaranteed to
// outlive the table.
func (t *Table) SymbolNew(s string) ID {
	h := calcHash(s)
	if id := t.searchIndex(h, s); id != InvalidID {
		return id
	}
	if t.pool == nil {
		return t.addIndex(h, s)
	}
	n := len(s) + 1 // NUL terminator, matching the C string contract
	ptr := t.pool.AllocNoFree(n)
	if ptr == alloc.NilPtr {
		return InvalidID
	}
	buf := t.pool.Bytes(ptr)
	copy(buf, s)
	buf[len(s)] = 0
	return t.addIndex(h, string(buf[:len(s)]))
}

// Lookup searches for s without interning it, matching
// mrbc_search_symid.
func (t *Table) Lookup(s string) (ID, bool) {
	id := t.searchIndex(calcHash(s), s)
	return id, id != InvalidID
}

// Name returns the string registered under id, or "" with ok=false for
// an out-of-range id.
func (t *Table) Name(id ID) (string, bool) {
	if int(id) >= len(t.entries) {
		return "", false
	}
	return t.entries[id].str, true
}

// Len returns the number of interned symbols.
func (t *Table) Len() int { return len(t.entries) }

// All returns every interned name in id order. Allocates; for
// diagnostics only.
func (t *Table) All() []string {
	out := make([]string, len(t.entries))
	for i := range t.entries {
		out[i] = t.entries[i].str
	}
	return out
}
