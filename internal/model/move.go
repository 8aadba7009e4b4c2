package model

type SpecialMove int

const (
	NoSpecial SpecialMove = iota
	Pawn2Step
	CastleKingSide
	CastleQueenSide
)

func (s SpecialMove) String() string {
	switch s {
	case Pawn2Step:
		return "pawn2step"
	case CastleKingSide:
		return "O-O"
	case CastleQueenSide:
		return "O-O-O"
	}
	return ""
}

// Move is a candidate destination for the piece on some square, with the special
// move it triggers, if any.
type Move struct {
	To      Position
	Special SpecialMove
}

// castleRookMove describes where the rook goes when castling.
type castleRookMove struct {
	From Position
	To   Position
}
