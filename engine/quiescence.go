package engine

import gm "github.com/goosecorp/laserchess/goosemg"

// colorSign returns +1 for White, -1 for Black, turning a white-positive
// evaluation into one relative to the side to move.
func colorSign(c gm.Color) int32 {
	if c == gm.White {
		return 1
	}
	return -1
}

// quiescence resolves tactical sequences (captures, promotions, and one ply
// of quiet checks) before handing control back to static evaluation, per
// core §4.6. plies counts quiescence recursion depth from the PVS leaf that
// called it; the main search's ply counter (sp.Ply) is not advanced here,
// so the absolute ply of a quiescence node is sp.Ply+plies.
func quiescence(b Board, sp *SearchParameters, alpha, beta int32, pv *SearchPV, plies int) int32 {
	sp.Stats.Nodes++
	sp.Stats.QNodes++
	pv.Clear()

	if b.InCheck(b.SideToMove()) {
		return checkQuiescence(b, sp, alpha, beta, pv, plies)
	}

	sign := colorSign(b.SideToMove())

	cheap := sign * b.EvaluateMaterial()
	if cheap >= beta+MaxPosScore {
		sp.Stats.QStandPatCuts++
		return beta
	}
	if cheap < alpha-2*MaxPosScore-QueenValue {
		return alpha
	}

	standPat := cheap + sign*b.EvaluatePositional()
	if standPat > alpha {
		alpha = standPat
	}
	if standPat >= beta {
		sp.Stats.QStandPatCuts++
		return beta
	}
	if standPat < alpha-MaxPosScore-QueenValue {
		return alpha
	}

	var childPV SearchPV

	captures := scoreMoves(b, sp, 0, b.Captures(), false)
	for i := range captures {
		m := nextMove(captures, i)

		victimValue := b.PieceValue(m.CapturedPiece().Type())
		if standPat+victimValue < alpha-MaxPosScore {
			sp.Stats.QDeltaPrunes++
			continue
		}
		exch := b.SEE(m)
		if exch < 0 && exch < -MaxPosScore {
			sp.Stats.QSeePrunes++
			continue
		}

		child, ok := b.ApplyMove(m)
		if !ok {
			continue
		}
		score := -quiescence(child, sp, -beta, -alpha, &childPV, plies+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
			pv.Splice(m, &childPV)
		}
	}

	promotions := scoreMoves(b, sp, 0, b.Promotions(), false)
	for i := range promotions {
		m := nextMove(promotions, i)
		if b.SEE(m) < 0 {
			continue
		}
		child, ok := b.ApplyMove(m)
		if !ok {
			continue
		}
		score := -quiescence(child, sp, -beta, -alpha, &childPV, plies+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
			pv.Splice(m, &childPV)
		}
	}

	if plies <= 0 {
		checks := b.QuietChecks()
		for _, m := range checks {
			child, ok := b.ApplyMove(m)
			if !ok {
				continue
			}
			score := -checkQuiescence(child, sp, -beta, -alpha, &childPV, plies+1)
			if score >= beta {
				return beta
			}
			if score > alpha {
				alpha = score
				pv.Splice(m, &childPV)
			}
		}
	}

	return alpha
}

// checkQuiescence handles quiescence nodes where the side to move is in
// check: every legal check-escape is searched, with no stand-pat and no
// pruning, per core §4.7.
func checkQuiescence(b Board, sp *SearchParameters, alpha, beta int32, pv *SearchPV, plies int) int32 {
	sp.Stats.Nodes++
	sp.Stats.QNodes++
	pv.Clear()

	escapes := b.CheckEscapes()
	if len(escapes) == 0 {
		return scoreMate(true, sp.Ply+plies, alpha, beta)
	}

	var childPV SearchPV
	for _, m := range escapes {
		child, ok := b.ApplyMove(m)
		if !ok {
			continue
		}
		score := -quiescence(child, sp, -beta, -alpha, &childPV, plies+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
			pv.Splice(m, &childPV)
		}
	}
	return alpha
}
