// Package crdt is the boundary to the conflict-free merge engine. The relay
// treats documents as opaque: it feeds them binary deltas and asks for binary
// snapshots, and it is the engine's contract that applying the same set of
// deltas in any order and any multiplicity converges to the same state.
package crdt

// Engine produces documents. One engine serves the whole process; rooms each
// own one Document.
type Engine interface {
	NewDocument() Document
}

// Document is a single shared document's merge state.
//
// Implementations need not be safe for concurrent use; the relay serializes
// all access to a document under its room's lock.
type Document interface {
	// Apply merges one delta into the document. A rejected delta returns a
	// *MergeError and leaves the document unchanged.
	Apply(update []byte) error

	// Snapshot encodes the entire current document state. A fresh document
	// snapshots to an empty payload.
	Snapshot() []byte
}

// MergeError reports a delta the engine refused to merge.
type MergeError struct {
	Reason string
}

func (e *MergeError) Error() string {
	return "merge rejected: " + e.Reason
}
