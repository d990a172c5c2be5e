// Package position adapts goosemg's bitboard board representation to the
// engine.Board collaborator contract the search core is written against.
package position

import (
	"github.com/goosecorp/laserchess/engine"
	gm "github.com/goosecorp/laserchess/goosemg"
)

// Board wraps a goosemg.Board value together with the hash-key path since
// the last irreversible move, needed for threefold-repetition detection
// under the core's board-copy-per-descend mechanism: each Apply* call
// returns a fresh copy carrying its own path, so siblings never alias state.
type Board struct {
	b    gm.Board
	path []uint64
}

// New returns the standard starting position.
func New() *Board {
	b := gm.ParseFen(gm.Startpos)
	return &Board{b: b}
}

// FromFEN parses a FEN string into a Board.
func FromFEN(fen string) (*Board, error) {
	b, err := gm.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{b: *b}, nil
}

func (pb *Board) copy() *Board {
	path := make([]uint64, len(pb.path))
	copy(path, pb.path)
	return &Board{b: pb.b, path: path}
}

// FEN returns the current position in Forsyth-Edwards notation.
func (pb *Board) FEN() string { return pb.b.ToFEN() }

func (pb *Board) SideToMove() gm.Color { return pb.b.SideToMove() }

func (pb *Board) Evaluate() int32 { return Evaluate(&pb.b) }

func (pb *Board) EvaluateMaterial() int32 { return EvaluateMaterial(&pb.b) }

func (pb *Board) EvaluatePositional() int32 { return EvaluatePositional(&pb.b) }

func (pb *Board) HasNonPawnMaterial(c gm.Color) bool {
	bb := pb.b.Bitboards(c)
	return bb.Knights|bb.Bishops|bb.Rooks|bb.Queens != 0
}

func (pb *Board) InCheck(c gm.Color) bool { return pb.b.InCheck(c) }

func (pb *Board) IsDraw() bool {
	if pb.b.IsDrawBy50() {
		return true
	}
	if pb.b.IsDrawByRepetition(pb.path) {
		return true
	}
	return insufficientMaterial(&pb.b)
}

func (pb *Board) Hash() uint64 { return pb.b.Hash() }

func (pb *Board) LegalMoves() []gm.Move { return pb.b.GenerateMoves() }

func (pb *Board) AllMoves() []gm.Move { return pb.b.GenerateMoves() }

// CheckEscapes relies on GenerateMoves already returning fully legal moves:
// when the side to move is in check, every legal move is an escape.
func (pb *Board) CheckEscapes() []gm.Move { return pb.b.GenerateMoves() }

// Captures returns legal captures, including capturing promotions.
func (pb *Board) Captures() []gm.Move { return pb.b.GenerateCapturesInto(make([]gm.Move, 0, 32)) }

// Promotions returns legal non-capturing promotions (capturing promotions
// are already covered by Captures).
func (pb *Board) Promotions() []gm.Move {
	quiets := pb.b.GenerateQuietsInto(make([]gm.Move, 0, 32))
	out := quiets[:0]
	for _, m := range quiets {
		if m.PromotionPiece() != gm.NoPiece {
			out = append(out, m)
		}
	}
	return out
}

// QuietChecks returns legal non-capturing checking moves.
func (pb *Board) QuietChecks() []gm.Move {
	all := pb.b.GenerateChecksInto(make([]gm.Move, 0, 32))
	out := all[:0]
	for _, m := range all {
		if m.CapturedPiece() == gm.NoPiece {
			out = append(out, m)
		}
	}
	return out
}

// irreversible reports whether m resets the repetition path (capture or pawn move).
func irreversible(m gm.Move) bool {
	return m.CapturedPiece() != gm.NoPiece || m.MovedPiece().Type() == gm.PieceTypePawn
}

func (pb *Board) ApplyMove(m gm.Move) (engine.Board, bool) {
	child := pb.copy()
	ok, _ := child.b.MakeMove(m)
	if !ok {
		return nil, false
	}
	if irreversible(m) {
		child.path = child.path[:0]
	} else {
		child.path = append(child.path, child.b.Hash())
	}
	return child, true
}

// ApplyHashMove is ApplyMove for a move taken from the transposition table.
// Such a move may be stale or colliding, so it is applied only if it is one
// of the position's generated legal moves; otherwise it is rejected.
func (pb *Board) ApplyHashMove(m gm.Move) (engine.Board, bool) {
	for _, legal := range pb.b.GenerateMoves() {
		if legal == m {
			return pb.ApplyMove(m)
		}
	}
	return nil, false
}

func (pb *Board) ApplyNullMove() engine.Board {
	child := pb.copy()
	child.b.MakeNullMove()
	child.path = child.path[:0]
	return child
}

func (pb *Board) SEE(m gm.Move) int32 { return pb.b.SEE(m) }

func (pb *Board) MVVLVA(m gm.Move) int32 { return pb.b.MVVLVA(m) }

func (pb *Board) GivesCheck(m gm.Move) bool { return pb.b.GivesCheck(m) }

func (pb *Board) PieceOn(sq gm.Square) gm.Piece { return pb.b.PieceAt(sq) }

func (pb *Board) PieceValue(pt gm.PieceType) int32 { return gm.PieceValue(pt) }

// insufficientMaterial reports a dead draw by insufficient material: no
// pawns/rooks/queens and at most a single minor piece per side.
func insufficientMaterial(b *gm.Board) bool {
	w := b.Bitboards(gm.White)
	bl := b.Bitboards(gm.Black)
	if w.Pawns|bl.Pawns|w.Rooks|bl.Rooks|w.Queens|bl.Queens != 0 {
		return false
	}
	popcount := func(x uint64) int {
		n := 0
		for x != 0 {
			x &= x - 1
			n++
		}
		return n
	}
	wMinors := popcount(w.Knights) + popcount(w.Bishops)
	bMinors := popcount(bl.Knights) + popcount(bl.Bishops)
	return wMinors <= 1 && bMinors <= 1
}
