package engine

import (
	"fmt"
	"os"

	gm "github.com/goosecorp/laserchess/goosemg"
	"github.com/rs/zerolog"
)

// Mode selects how the iterative deepening driver interprets value.
type Mode int

const (
	ModeTime Mode = iota + 1
	ModeDepth
)

// Searcher owns the transposition table and logger that persist across root
// searches; everything else lives in a fresh SearchParameters per call.
type Searcher struct {
	TT  *TransTable
	Log zerolog.Logger

	rootMoveNumber uint8
}

// NewSearcher builds a Searcher with a transposition table of the given size
// in megabytes and a logger writing diagnostics to stderr.
func NewSearcher(ttSizeMB int) *Searcher {
	return &Searcher{
		TT:  NewTransTable(ttSizeMB),
		Log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger(),
	}
}

// Result is what the iterative deepening driver reports once it stops.
type Result struct {
	Best  gm.Move
	Score int32
	Mate  bool
	Depth int
	Nodes uint64
	PV    SearchPV
}

// StartSearch runs the iterative deepening driver of core §4.1: it searches
// depths 1, 2, 3, ... until a mate is found, MaxDepth is exceeded, DEPTH mode
// reaches value, or TIME mode's soft budget (value * TimeFactor ms) elapses.
func (s *Searcher) StartSearch(b Board, mode Mode, value int) Result {
	legal := b.LegalMoves()
	if len(legal) == 0 {
		return Result{}
	}

	s.rootMoveNumber++

	var timeBudgetMS int64
	softBudgetMS := int64(1) << 62 // effectively unbounded in DEPTH mode
	maxIterDepth := MaxDepth
	switch mode {
	case ModeTime:
		timeBudgetMS = int64(value)
		softBudgetMS = int64(float64(value) * TimeFactor)
	case ModeDepth:
		maxIterDepth = value
	}

	sp := NewSearchParameters(s.rootMoveNumber, timeBudgetMS)

	result := Result{Best: legal[0]}
	moves := append([]gm.Move(nil), legal...)

	for depth := 1; depth <= maxIterDepth && depth <= MaxDepth; depth++ {
		sp.Ply = 0
		sp.NullMoveCount = 0

		idx, score, pv, ok := s.rootSearch(b, moves, depth, sp)
		if !ok {
			break
		}

		// Move the best move to index 0 so it is tried first next iteration.
		moves[0], moves[idx] = moves[idx], moves[0]

		result.Best = moves[0]
		result.Score = score
		result.Depth = depth
		result.PV = pv
		result.Mate = score >= MateScore-MaxDepth

		s.emitInfo(depth, score, sp, &pv)

		if result.Mate {
			break
		}
		if sp.ElapsedMS() > softBudgetMS {
			break
		}
	}

	result.Nodes = sp.Stats.Nodes

	sp.ResetHistory()
	sp.Stop = true
	s.dumpStats(&sp.Stats)

	fmt.Printf("bestmove %s\n", result.Best.String())
	return result
}

// rootSearch is getBestMoveAtDepth from core §4.2: root PVS over the
// supplied move list, move 0 always the PV candidate from the prior
// iteration. Returns the index of the best move, its score, the PV, and
// whether any move completed (false if stop fired before any move of this
// iteration finished; a move whose search was cut short by stop is discarded).
func (s *Searcher) rootSearch(b Board, moves []gm.Move, depth int, sp *SearchParameters) (int, int32, SearchPV, bool) {
	alpha := int32(-MateScore)
	beta := int32(MateScore)

	bestIdx := -1
	var bestPV SearchPV
	var childPV SearchPV

	for i, m := range moves {
		if sp.CheckTime() {
			break
		}

		child, ok := b.ApplyMove(m)
		if !ok {
			continue
		}

		var score int32
		if i == 0 {
			score = -s.pvs(child, sp, -beta, -alpha, depth-1, 1, &childPV)
		} else {
			score = -s.pvs(child, sp, -alpha-1, -alpha, depth-1, 1, &childPV)
			if score > alpha && score < beta {
				score = -s.pvs(child, sp, -beta, -alpha, depth-1, 1, &childPV)
			}
		}

		if sp.Stop {
			break
		}

		if score > alpha {
			alpha = score
			bestIdx = i
			bestPV.Splice(m, &childPV)
		}
	}

	return bestIdx, alpha, bestPV, bestIdx != -1
}

// pvs is the principal variation search of core §4.5.
func (s *Searcher) pvs(b Board, sp *SearchParameters, alpha, beta int32, depth, ply int, pv *SearchPV) int32 {
	sp.Ply = ply
	sp.Stats.Nodes++

	if depth <= 0 {
		pv.Clear()
		return quiescence(b, sp, alpha, beta, pv, 0)
	}

	if b.IsDraw() {
		return clampScore(0, alpha, beta)
	}

	color := b.SideToMove()
	isPVNode := beta-alpha > 1
	inCheck := b.InCheck(color)

	fingerprint := b.Hash()
	var hashMove gm.Move
	var bestMove gm.Move
	movesSearched := 0

	sp.Stats.HashProbes++
	if entry, found := s.TT.Probe(fingerprint); found {
		sp.Stats.HashHits++
		if usable, score := Use(entry, fingerprint, int8(depth), alpha, beta, ply, 0); usable {
			sp.Stats.HashCuts++
			return score
		}
		hashMove = entry.BestMove
	}

	if hashMove != 0 {
		sp.Stats.HashMoveAttempts++
		if child, ok := b.ApplyHashMove(hashMove); ok {
			var childPV SearchPV
			score := -s.pvs(child, sp, -beta, -alpha, depth-1, ply+1, &childPV)
			movesSearched = 1
			if score >= beta {
				sp.Stats.HashMoveCuts++
				recordCutoff(sp, ply, color, hashMove, depth)
				s.TT.Store(fingerprint, int8(depth), int16(beta), hashMove, NodeCut, sp.RootMoveNumber)
				return beta
			}
			if score > alpha {
				alpha = score
				bestMove = hashMove
				pv.Splice(hashMove, &childPV)
			}
		} else {
			// Type-1 transposition hash collision: the stored move is illegal here.
			s.Log.Warn().Uint64("fingerprint", fingerprint).Msg("dropping illegal hash move")
			hashMove = 0
		}
	}

	sign := colorSign(color)
	staticEval := sign * b.Evaluate()

	hasNonPawn := b.HasNonPawnMaterial(color)

	// Null-move pruning.
	if depth >= 3 && !isPVNode && sp.NullMoveCount < 2 && staticEval >= beta && !inCheck && hasNonPawn {
		r := nullMoveReduction(depth, staticEval, beta)
		sp.NullMoveCount++
		child := b.ApplyNullMove()
		var nullPV SearchPV
		score := -s.pvs(child, sp, -beta, -beta+1, depth-1-r, ply+1, &nullPV)
		sp.NullMoveCount--
		if score >= beta {
			return beta
		}
	}

	// Reverse futility pruning.
	if depth <= 2 && !isPVNode && !inCheck && hasNonPawn {
		if staticEval-ReverseFutilityMargin[depth] >= beta {
			return beta
		}
	}

	var moves []gm.Move
	if inCheck {
		moves = b.CheckEscapes()
	} else {
		moves = b.AllMoves()
	}
	if len(moves) == 0 {
		return scoreMate(inCheck, ply, alpha, beta)
	}

	if hashMove != 0 {
		moves = removeMove(moves, hashMove)
	}

	highDepthMode := depth >= 3 || isPVNode
	scored := scoreMoves(b, sp, ply, moves, highDepthMode)

	if hashMove == 0 && depth >= 5 {
		iidBest := s.internalIterativeDeepening(b, sp, alpha, beta, depth, ply)
		if iidBest != 0 {
			for i := range scored {
				if scored[i].move == iidBest {
					scored[i].score = Infty
					break
				}
			}
		}
	}

	var childPV SearchPV
	alphaEntry := alpha

	for i := 0; i < len(scored); i++ {
		if sp.CheckTime() {
			return -Infty
		}

		m := nextMove(scored, i)

		if !isPVNode && depth <= 3 && staticEval <= alpha-FutilityMargin[depth] && !inCheck &&
			!isCapture(m) && m.PromotionPiece() == gm.NoPiece && abs32(alpha) < QueenValue && !b.GivesCheck(m) {
			continue
		}

		child, ok := b.ApplyMove(m)
		if !ok {
			continue
		}

		r := 0
		movesGivesCheck := child.InCheck(child.SideToMove())
		if !isPVNode && !inCheck && !isCapture(m) && depth >= 3 && movesSearched > 2 &&
			alpha == alphaEntry && !sp.IsKiller(ply, m) && m.PromotionPiece() == gm.NoPiece && !movesGivesCheck {
			r = lmrReduction(depth, movesSearched)
		}

		var score int32
		if movesSearched == 0 {
			score = -s.pvs(child, sp, -beta, -alpha, depth-1, ply+1, &childPV)
		} else {
			score = -s.pvs(child, sp, -alpha-1, -alpha, depth-1-r, ply+1, &childPV)
			if score > alpha && score < beta {
				score = -s.pvs(child, sp, -beta, -alpha, depth-1, ply+1, &childPV)
			}
		}

		if score >= beta {
			s.TT.Store(fingerprint, int8(depth), int16(beta), m, NodeCut, sp.RootMoveNumber)
			sp.Stats.FailHighs++
			if movesSearched == 0 {
				sp.Stats.FirstMoveFails++
			}
			recordCutoff(sp, ply, color, m, depth)
			return beta
		}

		if score > alpha {
			alpha = score
			bestMove = m
			pv.Splice(m, &childPV)
		}

		movesSearched++
	}

	if movesSearched == 0 && bestMove == 0 && alpha == alphaEntry {
		return scoreMate(inCheck, ply, alpha, beta)
	}

	if alpha > alphaEntry && alpha < beta {
		s.TT.Store(fingerprint, int8(depth), int16(alpha), bestMove, NodePV, sp.RootMoveNumber)
		if bestMove != 0 && !isCapture(bestMove) {
			sp.AddHistory(color, bestMove.MovedPiece().Type(), bestMove.To(), depth)
		}
	} else {
		s.TT.Store(fingerprint, int8(depth), int16(alpha), 0, NodeAll, sp.RootMoveNumber)
	}

	return alpha
}

// recordCutoff updates killers and history on a beta cutoff for a quiet move.
func recordCutoff(sp *SearchParameters, ply int, color gm.Color, m gm.Move, depth int) {
	if isCapture(m) {
		return
	}
	sp.AddKiller(ply, m)
	sp.AddHistory(color, m.MovedPiece().Type(), m.To(), depth)
}

// internalIterativeDeepening runs a reduced-depth search to find a likely
// best move when no hash move is available, per core §4.4.
func (s *Searcher) internalIterativeDeepening(b Board, sp *SearchParameters, alpha, beta int32, depth, ply int) gm.Move {
	reducedDepth := int(IIDDepth(depth))
	if reducedDepth <= 0 {
		return 0
	}
	var pv SearchPV
	s.pvs(b, sp, alpha, beta, reducedDepth, ply, &pv)
	if pv.Len == 0 {
		return 0
	}
	return pv.Moves[0]
}

func removeMove(moves []gm.Move, m gm.Move) []gm.Move {
	for i, cand := range moves {
		if cand == m {
			out := make([]gm.Move, 0, len(moves)-1)
			out = append(out, moves[:i]...)
			out = append(out, moves[i+1:]...)
			return out
		}
	}
	return moves
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// emitInfo writes a UCI-style info line to stdout for the just-finished
// iteration, per core §6.
func (s *Searcher) emitInfo(depth int, score int32, sp *SearchParameters, pv *SearchPV) {
	cp := score * 100 / PawnValueEG
	elapsed := sp.ElapsedMS()
	nps := int64(0)
	if elapsed > 0 {
		nps = int64(sp.Stats.Nodes) * 1000 / elapsed
	}
	fmt.Printf("info depth %d score cp %d time %d nodes %d nps %d pv %s\n",
		depth, cp, elapsed, sp.Stats.Nodes, nps, pv.String())
}

// dumpStats prints diagnostic statistics to stderr at the end of a search;
// format is informational only per core §6.
func (s *Searcher) dumpStats(stats *SearchStatistics) {
	s.Log.Info().
		Uint64("nodes", stats.Nodes).
		Uint64("hash_probes", stats.HashProbes).
		Uint64("hash_hits", stats.HashHits).
		Uint64("hash_cuts", stats.HashCuts).
		Uint64("hash_move_attempts", stats.HashMoveAttempts).
		Uint64("hash_move_cuts", stats.HashMoveCuts).
		Uint64("fail_highs", stats.FailHighs).
		Uint64("first_move_fails", stats.FirstMoveFails).
		Float64("first_move_fail_rate", stats.FailHighRate()).
		Uint64("qnodes", stats.QNodes).
		Uint64("q_stand_pat_cuts", stats.QStandPatCuts).
		Uint64("q_delta_prunes", stats.QDeltaPrunes).
		Uint64("q_see_prunes", stats.QSeePrunes).
		Msg("search statistics")
}
