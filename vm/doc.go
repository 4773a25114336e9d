// Package vm implements the mrubyc-style virtual machine core: the tagged
// value representation, class/method registry, object and hash storage, the
// RITE02 bytecode loader, the opcode dispatcher, and the thin built-in
// method shims layered on top of them.
//
// The package deliberately does not depend on the Go garbage collector for
// VM-level memory discipline: heap payloads carry an explicit reference
// count that incref/decref maintain by hand, mirroring the fixed-pool
// embedded runtime this is modeled on. Go's own GC still reclaims the
// backing structs once nothing holds a Go pointer to them; the refcount is
// the VM's own accounting, not a substitute for it.
package vm
