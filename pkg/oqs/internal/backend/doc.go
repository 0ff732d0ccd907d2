// Package backend hosts the Native Algorithm Registry the rest of the module
// talks to. Two implementations live behind build tags:
//
//   - cgo && liboqs: the thin cgo layer linking liboqs (found through
//     pkg-config). This is the only file in the module that imports "C".
//   - everything else: a pure-Go registry mapping liboqs identifiers onto
//     circl (and, when cgo is available, hpqc) schemes.
//
// Both expose the same ABI: opaque KEM/Sig instances obtained by identifier,
// read-only details, and operations that write into caller-supplied buffers
// and return a tri-state Status.
package backend
