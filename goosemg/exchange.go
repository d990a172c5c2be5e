package goosemg

import "math/bits"

// PieceValues gives the standard centipawn value of each piece type, indexed by PieceType.
// PieceTypeNone is zero. These are the values the search core treats as PAWN_VALUE,
// KNIGHT_VALUE, etc.
var PieceValues = [7]int32{
	PieceTypeNone:   0,
	PieceTypePawn:   100,
	PieceTypeKnight: 320,
	PieceTypeBishop: 330,
	PieceTypeRook:   500,
	PieceTypeQueen:  900,
	PieceTypeKing:   20000,
}

// PieceValue returns the material value of a piece type.
func PieceValue(pt PieceType) int32 { return PieceValues[pt] }

// attackersTo returns, for the given square and occupancy, the bitboards of
// White and Black pieces attacking that square.
func (b *Board) attackersTo(s int, occ uint64) (white, black uint64) {
	sq := Square(s)

	// Pawns: a pawn on square p attacks s if s is in pawnAttacks[pawnColor][p],
	// equivalently p is in pawnAttacks[opposite][s].
	white |= pawnAttacks[Black][s] & b.pawns[White]
	black |= pawnAttacks[White][s] & b.pawns[Black]

	white |= knightMoves[s] & b.knights[White]
	black |= knightMoves[s] & b.knights[Black]

	white |= kingMoves[s] & b.kings[White]
	black |= kingMoves[s] & b.kings[Black]

	rookAtk := rookAttacksMagic(int(sq), occ)
	bishopAtk := bishopAttacksMagic(int(sq), occ)

	white |= rookAtk & (b.rooks[White] | b.queens[White])
	black |= rookAtk & (b.rooks[Black] | b.queens[Black])
	white |= bishopAtk & (b.bishops[White] | b.queens[White])
	black |= bishopAtk & (b.bishops[Black] | b.queens[Black])

	white &= occ
	black &= occ
	return white, black
}

// leastValuableAttacker picks the cheapest attacker for a color from a bitboard of
// candidate attackers, returning its square and piece type. ok is false if none exist.
func (b *Board) leastValuableAttacker(attackers uint64, color Color) (sq int, pt PieceType, ok bool) {
	ci := int(color)
	order := [6]struct {
		bb uint64
		pt PieceType
	}{
		{b.pawns[ci], PieceTypePawn},
		{b.knights[ci], PieceTypeKnight},
		{b.bishops[ci], PieceTypeBishop},
		{b.rooks[ci], PieceTypeRook},
		{b.queens[ci], PieceTypeQueen},
		{b.kings[ci], PieceTypeKing},
	}
	for _, cand := range order {
		set := cand.bb & attackers
		if set != 0 {
			return bits.TrailingZeros64(set), cand.pt, true
		}
	}
	return 0, PieceTypeNone, false
}

// SEE performs a static exchange evaluation of the move's destination square,
// returning the net material gain (in centipawns) for the side making the move,
// assuming both sides capture with their least valuable attacker in turn.
// Grounded on the classic gain-array swap-off algorithm.
func (b *Board) SEE(m Move) int32 {
	toSq := int(m.To())
	occ := b.AllOccupancy()

	var gain [32]int32
	depth := 0

	fromBB := uint64(1) << uint(m.From())
	target := m.MovedPiece().Type()
	captured := m.CapturedPiece().Type()

	if m.Flags() == FlagEnPassant {
		captured = PieceTypePawn
	}

	gain[0] = PieceValue(captured)
	occ &^= fromBB

	side := 1 - m.MovedPiece().Color()
	attackingPiece := target

	for {
		whiteAtk, blackAtk := b.attackersTo(toSq, occ)
		var attackers uint64
		if side == White {
			attackers = whiteAtk
		} else {
			attackers = blackAtk
		}
		sq, pt, ok := b.leastValuableAttacker(attackers, side)
		if !ok {
			break
		}
		depth++
		gain[depth] = PieceValue(attackingPiece) - gain[depth-1]
		if max32(-gain[depth-1], gain[depth]) < 0 {
			break
		}
		occ &^= uint64(1) << uint(sq)
		attackingPiece = pt
		side = 1 - side
	}

	for depth > 0 {
		gain[depth-1] = -max32(-gain[depth-1], gain[depth])
		depth--
	}
	return gain[0]
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// MVVLVA scores a capture by most-valuable-victim, least-valuable-attacker: high
// scores for capturing a valuable piece with a cheap one.
func (b *Board) MVVLVA(m Move) int32 {
	victim := m.CapturedPiece().Type()
	if m.Flags() == FlagEnPassant {
		victim = PieceTypePawn
	}
	attacker := m.MovedPiece().Type()
	return PieceValue(victim)*16 - PieceValue(attacker)
}
