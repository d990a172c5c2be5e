package engine

// clampScore forces score into [alpha, beta], implementing the fail-hard
// contract: every value PVS/quiescence return must lie inside the window.
func clampScore(score, alpha, beta int32) int32 {
	if score < alpha {
		return alpha
	}
	if score > beta {
		return beta
	}
	return score
}

// scoreMate scores a node with no legal moves: mated (prefer slower mates,
// i.e. a higher ply count, from the attacker's perspective via the negamax
// sign flip) if in check, stalemate otherwise.
func scoreMate(inCheck bool, ply int, alpha, beta int32) int32 {
	var score int32
	if inCheck {
		score = -MateScore + int32(ply)
	} else {
		score = 0
	}
	return clampScore(score, alpha, beta)
}
