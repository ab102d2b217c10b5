// Package scull implements a sparse segmented byte store.
//
// The store is a randomly addressable, dynamically growing byte array. Data
// lives in fixed-size buffers (quanta) of QuantumSize bytes. Quanta are
// referenced from quantum sets, index blocks of QuantaPerSet slots each, and
// the sets form an ordered sequence owned by the Store. Sets, their slot
// arrays and quanta are allocated lazily on the first write that reaches
// them, so a store with holes costs only what was written.
//
// A single call never crosses a quantum boundary: Read and Write transfer at
// most up to the end of the quantum containing the offset and report the
// number of bytes moved, callers loop advancing their own cursor.
//
// Every operation runs under one exclusive guard per Store. Waiting for the
// guard is cancelled through the operation context, in which case the
// operation fails with ErrInterrupted and leaves the Store untouched.
package scull
