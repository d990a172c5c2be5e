package engine

import gm "github.com/goosecorp/laserchess/goosemg"

// Board is the abstract position collaborator the search core is written against.
// A concrete implementation (see package position) owns board representation,
// move generation and static evaluation; none of that lives in this package.
type Board interface {
	SideToMove() gm.Color

	// Evaluate returns the white-positive static score of the position.
	Evaluate() int32
	// EvaluateMaterial and EvaluatePositional split Evaluate into its two
	// components; EvaluateMaterial()+EvaluatePositional() == Evaluate().
	// Quiescence uses the cheaper material-only figure to stage its stand-pat
	// bound before paying for the full positional term.
	EvaluateMaterial() int32
	EvaluatePositional() int32

	HasNonPawnMaterial(c gm.Color) bool
	InCheck(c gm.Color) bool
	IsDraw() bool
	Hash() uint64

	// LegalMoves is used at the root only.
	LegalMoves() []gm.Move
	// AllMoves and CheckEscapes are the two mutually-exclusive move sets PVS
	// generates depending on whether the side to move is in check.
	AllMoves() []gm.Move
	CheckEscapes() []gm.Move
	Captures() []gm.Move
	Promotions() []gm.Move
	QuietChecks() []gm.Move

	// ApplyMove and ApplyHashMove return a fresh child position and whether the
	// move was legal (did not leave the mover's own king in check). On failure
	// the receiver is left untouched and the returned Board is nil.
	ApplyMove(m gm.Move) (Board, bool)
	ApplyHashMove(m gm.Move) (Board, bool)
	// ApplyNullMove passes the turn without moving a piece.
	ApplyNullMove() Board

	SEE(m gm.Move) int32
	MVVLVA(m gm.Move) int32
	GivesCheck(m gm.Move) bool

	PieceOn(sq gm.Square) gm.Piece
	PieceValue(pt gm.PieceType) int32
}

// Search-wide constants that must agree across the core and its collaborators.
const (
	MaxDepth      = 128
	MateScore     = 32000
	Infty         = 32767
	MaxPosScore   = 1200
	PawnValue     = 100
	KnightValue   = 320
	QueenValue    = 900
	PawnValueEG   = 100
	TimeFactor    = 0.85
	MaxTimeFactor = 4.0
	OneSecond     = 1000
)

// Node types recorded in the transposition table.
const (
	NodePV = iota
	NodeCut
	NodeAll
)

// Piece indices used by the history table, matching core spec §6.
const (
	PieceIndexPawn = iota
	PieceIndexKnight
	PieceIndexBishop
	PieceIndexRook
	PieceIndexQueen
	PieceIndexKing
)

// PieceIndex maps a goosemg piece type onto the 0..5 index the history table uses.
func PieceIndex(pt gm.PieceType) int {
	if pt == gm.PieceTypeNone {
		return 0
	}
	return int(pt) - 1
}
