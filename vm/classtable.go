package vm

import "github.com/dressupgeekout/mrubyc/symtab"

// ClassTable is the VM's append-only class registry, keyed by the class's
// name symbol. §5 states the deployment is single-threaded cooperative, so
// unlike the teacher's mutex-guarded registries this carries a plain map —
// a sync.RWMutex here would guard a race that cannot occur, contradicting
// rather than honoring the ambient concurrency model (see DESIGN.md).
type ClassTable struct {
	byName map[symtab.ID]*ClassPayload
}

func newClassTable() *ClassTable {
	return &ClassTable{byName: make(map[symtab.ID]*ClassPayload)}
}

func (ct *ClassTable) register(cp *ClassPayload) {
	ct.byName[cp.NameID] = cp
}

// Lookup finds a registered class by its name symbol.
func (ct *ClassTable) Lookup(nameID symtab.ID) *ClassPayload {
	return ct.byName[nameID]
}

// Len returns the number of registered classes.
func (ct *ClassTable) Len() int { return len(ct.byName) }
