package engine

import (
	"time"

	gm "github.com/goosecorp/laserchess/goosemg"
)

// SearchPV is a fixed-capacity principal-variation buffer, propagated upward
// from the leaves of the recursion to the root.
type SearchPV struct {
	Moves [MaxDepth + 1]gm.Move
	Len   int
}

// Clear empties the PV.
func (pv *SearchPV) Clear() { pv.Len = 0 }

// Set installs a single move as the entire PV (used at leaves).
func (pv *SearchPV) Set(m gm.Move) {
	pv.Moves[0] = m
	pv.Len = 1
}

// Splice installs `m` as the first move followed by the child PV, matching
// the "best ∥ child_pv" construction described for the PVS main loop.
func (pv *SearchPV) Splice(m gm.Move, child *SearchPV) {
	pv.Moves[0] = m
	n := child.Len
	if n > MaxDepth {
		n = MaxDepth
	}
	copy(pv.Moves[1:1+n], child.Moves[:n])
	pv.Len = n + 1
}

func (pv *SearchPV) String() string {
	s := ""
	for i := 0; i < pv.Len; i++ {
		if i > 0 {
			s += " "
		}
		s += pv.Moves[i].String()
	}
	return s
}

// SearchStatistics accumulates counters for a single root search, surfaced as
// diagnostics (stderr) at the end of the search.
type SearchStatistics struct {
	Nodes uint64

	HashProbes uint64
	HashHits   uint64
	HashCuts   uint64

	HashMoveAttempts uint64
	HashMoveCuts     uint64

	FailHighs      uint64
	FirstMoveFails uint64

	QNodes        uint64
	QStandPatCuts uint64
	QDeltaPrunes  uint64
	QSeePrunes    uint64
}

// Reset zeroes every counter, as required at the start of each root search.
func (s *SearchStatistics) Reset() { *s = SearchStatistics{} }

// FailHighRate returns the fraction of fail-highs that happened on the first
// move searched, a proxy for move-ordering quality.
func (s *SearchStatistics) FailHighRate() float64 {
	if s.FailHighs == 0 {
		return 0
	}
	return float64(s.FirstMoveFails) / float64(s.FailHighs)
}

// SearchParameters is the explicit, per-search context threaded through every
// call of the recursion, per the design note that shared mutable state
// (killers, history, ply, null-move count, statistics) should be packaged
// rather than left as ungrouped package globals.
type SearchParameters struct {
	Ply           int
	NullMoveCount int

	StartTime     time.Time
	TimeBudgetMS  int64
	HardBudgetMS  int64
	Stop          bool

	Killers [MaxDepth + 1][2]gm.Move
	History [2][6][64]int32

	RootMoveNumber uint8

	Stats SearchStatistics
}

// NewSearchParameters resets a SearchParameters for a fresh root search,
// matching the lifecycle rule that parameters and statistics reset at the
// start of every root search while the history table also ages (simple
// aging: a full reset) between root searches.
func NewSearchParameters(rootMoveNumber uint8, timeBudgetMS int64) *SearchParameters {
	sp := &SearchParameters{
		RootMoveNumber: rootMoveNumber,
		TimeBudgetMS:   timeBudgetMS,
		HardBudgetMS:   int64(float64(timeBudgetMS) * MaxTimeFactor),
		StartTime:      time.Now(),
	}
	return sp
}

// ElapsedMS reports milliseconds since the search started.
func (sp *SearchParameters) ElapsedMS() int64 {
	return time.Since(sp.StartTime).Milliseconds()
}

// CheckTime consults the elapsed time against the hard budget and raises the
// cooperative stop flag if it has been exceeded. DEPTH-mode searches pass a
// budget of 0, which this interprets as unbounded.
func (sp *SearchParameters) CheckTime() bool {
	if sp.Stop {
		return true
	}
	if sp.HardBudgetMS > 0 && sp.ElapsedMS() > sp.HardBudgetMS {
		sp.Stop = true
	}
	return sp.Stop
}

// ResetHistory ages the history table between root searches (simple aging:
// the spec's lifecycle calls for a full reset here).
func (sp *SearchParameters) ResetHistory() {
	sp.History = [2][6][64]int32{}
}

// AddKiller records a quiet move that caused a beta cutoff at the given ply,
// shifting the existing killer-0 down to killer-1 if the move is distinct.
func (sp *SearchParameters) AddKiller(ply int, m gm.Move) {
	if sp.Killers[ply][0] == m {
		return
	}
	sp.Killers[ply][1] = sp.Killers[ply][0]
	sp.Killers[ply][0] = m
}

// IsKiller reports whether m is one of the two killer moves at ply.
func (sp *SearchParameters) IsKiller(ply int, m gm.Move) bool {
	return sp.Killers[ply][0] == m || sp.Killers[ply][1] == m
}

// AddHistory adds depth^2 to the history score of (color, piece, to-square),
// clamped so it never overflows relative to the bound implied by
// sum(depth^2) <= MaxDepth^3.
func (sp *SearchParameters) AddHistory(color gm.Color, piece gm.PieceType, to gm.Square, depth int) {
	bonus := int32(depth * depth)
	v := &sp.History[int(color)][PieceIndex(piece)][int(to)]
	*v += bonus
	const historyCap = MaxDepth * MaxDepth * MaxDepth
	if *v > historyCap {
		*v = historyCap
	}
}

// HistoryScore reads the history score of (color, piece, to-square); always non-negative.
func (sp *SearchParameters) HistoryScore(color gm.Color, piece gm.PieceType, to gm.Square) int32 {
	return sp.History[int(color)][PieceIndex(piece)][int(to)]
}
