package engine

import gm "github.com/goosecorp/laserchess/goosemg"

// scoredMove pairs a move with an ordering score assigned by scoreMoves.
type scoredMove struct {
	move  gm.Move
	score int32
}

// isCapture reports whether a move is flagged as a capture by its encoded
// captured piece (en-passant captures encode CapturedPiece as the pawn too).
func isCapture(m gm.Move) bool { return m.CapturedPiece() != gm.NoPiece }

// isQueenPromotion reports whether m promotes to a queen.
func isQueenPromotion(m gm.Move) bool {
	return m.PromotionPiece() != gm.NoPiece && m.PromotionPieceType() == gm.PieceTypeQueen
}

// scoreMoves assigns an ordering score to every move in the list following
// core §4.4. highDepthMode selects between the PV/high-depth scheme
// (captures via SEE, quiets via killer/queen-promo/history) and the shallow
// scheme (captures via MVV/LVA, killer scores tuned relative to minor-piece
// pawn captures and queen promotions).
func scoreMoves(b Board, sp *SearchParameters, ply int, moves []gm.Move, highDepthMode bool) []scoredMove {
	out := make([]scoredMove, len(moves))
	color := b.SideToMove()

	if highDepthMode {
		// Stable partition: captures first, then quiets, preserving relative order
		// within each group so ties retain generation order.
		captures := make([]gm.Move, 0, len(moves))
		quiets := make([]gm.Move, 0, len(moves))
		for _, m := range moves {
			if isCapture(m) {
				captures = append(captures, m)
			} else {
				quiets = append(quiets, m)
			}
		}
		idx := 0
		for _, m := range captures {
			out[idx] = scoredMove{m, b.SEE(m)}
			idx++
		}
		for _, m := range quiets {
			out[idx] = scoredMove{m, quietScore(sp, ply, color, m, false)}
			idx++
		}
		return out
	}

	for i, m := range moves {
		if isCapture(m) {
			out[i] = scoredMove{m, b.MVVLVA(m)}
		} else {
			out[i] = scoredMove{m, quietScore(sp, ply, color, m, true)}
		}
	}
	return out
}

// quietScore scores a non-capture move: killer-0 and killer-1 first, then a
// queen promotion, then history. In shallow mode killer scores are tuned to
// sit above pawn-captures-by-minor pieces and below 8x a rook's value for
// queen promotions, per core §4.4.
func quietScore(sp *SearchParameters, ply int, color gm.Color, m gm.Move, shallow bool) int32 {
	if sp.Killers[ply][0] == m {
		if shallow {
			return PawnValue - KnightValue
		}
		return 0
	}
	if sp.Killers[ply][1] == m {
		if shallow {
			return PawnValue - KnightValue - 1
		}
		return -1
	}
	if isQueenPromotion(m) {
		if shallow {
			return 8 * 500 // 8x rook value
		}
		return MaxPosScore
	}
	return -MateScore + sp.HistoryScore(color, m.MovedPiece().Type(), m.To())
}

// nextMove implements the lazy partial selection sort described in core
// §4.4: each call scans the remaining suffix starting at from, swaps the
// best-scoring entry to that position, and returns it.
func nextMove(list []scoredMove, from int) gm.Move {
	best := from
	for i := from + 1; i < len(list); i++ {
		if list[i].score > list[best].score {
			best = i
		}
	}
	list[from], list[best] = list[best], list[from]
	return list[from].move
}
