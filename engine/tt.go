package engine

import gm "github.com/goosecorp/laserchess/goosemg"

// TTEntry is a single transposition table slot. Immutable once written; a
// slot is replaced wholesale under the policy in TransTable.Store.
type TTEntry struct {
	Fingerprint uint64
	Depth       int8
	Score       int16
	BestMove    gm.Move
	NodeType    int8
	Age         uint8
}

// TransTable is a fixed-size, power-of-two open-addressing transposition
// table keyed by Zobrist fingerprint, sized to roughly the requested number of megabytes.
type TransTable struct {
	entries []TTEntry
	mask    uint64
}

const defaultTTSizeMB = 16

// NewTransTable allocates a table of the given size in megabytes, rounded
// down to the nearest power of two number of entries.
func NewTransTable(sizeMB int) *TransTable {
	if sizeMB <= 0 {
		sizeMB = defaultTTSizeMB
	}
	entrySize := uint64(24) // approx sizeof(TTEntry) after alignment
	total := uint64(sizeMB) * 1024 * 1024 / entrySize
	n := uint64(1)
	for n*2 <= total {
		n *= 2
	}
	if n == 0 {
		n = 1
	}
	return &TransTable{
		entries: make([]TTEntry, n),
		mask:    n - 1,
	}
}

// Clear empties every slot.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
}

func (tt *TransTable) slot(fingerprint uint64) *TTEntry {
	return &tt.entries[fingerprint&tt.mask]
}

// Probe returns the entry stored for fingerprint, if any.
func (tt *TransTable) Probe(fingerprint uint64) (*TTEntry, bool) {
	e := tt.slot(fingerprint)
	if e.Fingerprint != 0 && e.Fingerprint == fingerprint {
		return e, true
	}
	return nil, false
}

// Store inserts an entry, applying core §4.3's replacement policy: fill an
// empty slot; otherwise overwrite an entry from a stale generation; otherwise
// only overwrite when the incoming depth is at least as great as the stored
// depth, so a deeper current-generation entry is never evicted for a
// shallower one of the same generation.
func (tt *TransTable) Store(fingerprint uint64, depth int8, score int16, best gm.Move, nodeType int8, age uint8) {
	e := tt.slot(fingerprint)
	if e.Fingerprint == 0 {
		*e = TTEntry{fingerprint, depth, score, best, nodeType, age}
		return
	}
	if e.Age != age {
		*e = TTEntry{fingerprint, depth, score, best, nodeType, age}
		return
	}
	if depth >= e.Depth {
		*e = TTEntry{fingerprint, depth, score, best, nodeType, age}
	}
}

// UnusableScore is returned by Use when the entry cannot produce a cutoff.
const UnusableScore = -Infty

// Use applies the probe semantics of core §4.3: given an entry, the current
// search depth/ply/window and the excluded move (set during singular-style
// callers, zero otherwise), it reports whether a cutoff value is usable and
// what that value is, applying the mate-score ply adjustment on read.
func Use(e *TTEntry, fingerprint uint64, depth int8, alpha, beta int32, ply int, excluded gm.Move) (usable bool, score int32) {
	if e == nil || e.Fingerprint != fingerprint {
		return false, UnusableScore
	}
	if excluded != 0 && e.BestMove == excluded {
		return false, UnusableScore
	}
	if e.Depth < depth {
		return false, UnusableScore
	}
	norm := int32(e.Score)
	if norm > MateScore-MaxDepth {
		norm -= int32(ply)
	} else if norm < -(MateScore - MaxDepth) {
		norm += int32(ply)
	}
	switch e.NodeType {
	case NodeAll:
		if norm <= alpha {
			return true, alpha
		}
	case NodeCut:
		if norm >= beta {
			return true, beta
		}
	case NodePV:
		// Exact-score cutoff intentionally disabled: see DESIGN.md open question.
	}
	return false, UnusableScore
}

// StoreMate adjusts a mate score for storage (adding the ply offset) and
// writes the entry via Store.
func StoreMate(tt *TransTable, fingerprint uint64, depth int8, score int32, ply int, best gm.Move, nodeType int8, age uint8) {
	adj := score
	if adj > MateScore-MaxDepth {
		adj += int32(ply)
	} else if adj < -(MateScore - MaxDepth) {
		adj -= int32(ply)
	}
	tt.Store(fingerprint, depth, int16(adj), best, nodeType, age)
}
