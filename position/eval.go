package position

import (
	"math/bits"

	gm "github.com/goosecorp/laserchess/goosemg"
)

// Static evaluation is explicitly out of the search core's scope; this is a
// compact tapered material + piece-square-table evaluator in the shape of
// the teacher's evaluation.go (separate midgame/endgame scores interpolated
// by remaining non-pawn material), reduced in sophistication since only its
// Evaluate/EvaluateMaterial/EvaluatePositional contract matters to the core.

var phaseWeight = [7]int32{0, 0, 1, 1, 2, 4, 0} // indexed by PieceType; king contributes nothing

const totalPhase = 24 // 4 knights + 4 bishops + 4 rooks*2 + 2 queens*4 = 4+4+8+8

// pst[pieceType][0=mg,1=eg][square] holds White's piece-square bonus; Black
// mirrors the square vertically and negates the sign when summing.
var pst [7][2][64]int32

func init() {
	pawnMG := [64]int32{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightMG := [64]int32{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopMG := [64]int32{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookMG := [64]int32{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	queenMG := [64]int32{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingMG := [64]int32{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	kingEG := [64]int32{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}

	pst[gm.PieceTypePawn][0] = pawnMG
	pst[gm.PieceTypeKnight][0] = knightMG
	pst[gm.PieceTypeBishop][0] = bishopMG
	pst[gm.PieceTypeRook][0] = rookMG
	pst[gm.PieceTypeQueen][0] = queenMG
	pst[gm.PieceTypeKing][0] = kingMG
	// Endgame tables: flat zero for non-king pieces (material dominates there),
	// except the king, which wants centralization.
	pst[gm.PieceTypeKing][1] = kingEG
}

func mirror(sq int) int { return sq ^ 56 }

// phase returns the current phase weight in [0, totalPhase], totalPhase
// being the opening value; it decreases towards 0 as material is traded.
func phase(b *gm.Board) int32 {
	w := b.Bitboards(gm.White)
	bl := b.Bitboards(gm.Black)
	p := phaseWeight[gm.PieceTypeKnight]*int32(bits.OnesCount64(w.Knights|bl.Knights)) +
		phaseWeight[gm.PieceTypeBishop]*int32(bits.OnesCount64(w.Bishops|bl.Bishops)) +
		phaseWeight[gm.PieceTypeRook]*int32(bits.OnesCount64(w.Rooks|bl.Rooks)) +
		phaseWeight[gm.PieceTypeQueen]*int32(bits.OnesCount64(w.Queens|bl.Queens))
	if p > totalPhase {
		p = totalPhase
	}
	return p
}

// materialScore returns White-minus-Black material, identical in both phases
// (piece values themselves do not taper here; only positional terms do).
func materialScore(b *gm.Board) int32 {
	var score int32
	for sq := 0; sq < 64; sq++ {
		p := b.PieceAt(gm.Square(sq))
		if p == gm.NoPiece {
			continue
		}
		v := gm.PieceValue(p.Type())
		if p.Color() == gm.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// positionalScore returns the White-minus-Black piece-square bonus, already
// tapered between midgame and endgame tables by remaining phase.
func positionalScore(b *gm.Board, ph int32) int32 {
	var mg, eg int32
	for sq := 0; sq < 64; sq++ {
		p := b.PieceAt(gm.Square(sq))
		if p == gm.NoPiece {
			continue
		}
		t := p.Type()
		if p.Color() == gm.White {
			mg += pst[t][0][sq]
			eg += pst[t][1][sq]
		} else {
			mg -= pst[t][0][mirror(sq)]
			eg -= pst[t][1][mirror(sq)]
		}
	}
	return (mg*ph + eg*(totalPhase-ph)) / totalPhase
}

// EvaluateMaterial returns the white-positive material balance.
func EvaluateMaterial(b *gm.Board) int32 { return materialScore(b) }

// EvaluatePositional returns the white-positive tapered positional balance.
func EvaluatePositional(b *gm.Board) int32 { return positionalScore(b, phase(b)) }

// Evaluate returns the white-positive static evaluation, the sum of the
// material and positional components.
func Evaluate(b *gm.Board) int32 { return EvaluateMaterial(b) + EvaluatePositional(b) }
