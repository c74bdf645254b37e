package crdt

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// DeltaSet is the built-in engine: each document is a grow-only set of the
// deltas it has accepted. Duplicate deltas are absorbed and the snapshot is
// serialized in content order, so state after any interleaving of the same
// deltas is byte-identical (a G-Set over opaque payloads).
type DeltaSet struct{}

// NewDeltaSet returns the built-in engine.
func NewDeltaSet() *DeltaSet {
	return &DeltaSet{}
}

func (*DeltaSet) NewDocument() Document {
	return &deltaSetDoc{seen: make(map[string]struct{})}
}

type deltaSetDoc struct {
	seen   map[string]struct{}
	deltas [][]byte
}

func (d *deltaSetDoc) Apply(update []byte) error {
	if len(update) == 0 {
		return &MergeError{Reason: "empty update"}
	}
	key := string(update)
	if _, dup := d.seen[key]; dup {
		return nil
	}
	d.seen[key] = struct{}{}
	d.deltas = append(d.deltas, []byte(key))
	return nil
}

// Snapshot frames each delta with a uvarint length prefix, ordered by
// content so the result does not depend on arrival order.
func (d *deltaSetDoc) Snapshot() []byte {
	if len(d.deltas) == 0 {
		return nil
	}

	ordered := make([][]byte, len(d.deltas))
	copy(ordered, d.deltas)
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i], ordered[j]) < 0
	})

	var buf []byte
	for _, delta := range ordered {
		buf = binary.AppendUvarint(buf, uint64(len(delta)))
		buf = append(buf, delta...)
	}
	return buf
}
