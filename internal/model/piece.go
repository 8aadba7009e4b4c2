package model

import "fmt"

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// forward is the rank direction pawns of this colour advance in.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// homeRank is the back rank of this colour.
func (c Color) homeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// promotionRank is the rank a pawn of this colour promotes on.
func (c Color) promotionRank() int {
	return c.Opposite().homeRank()
}

type PieceKind int

const (
	Pawn PieceKind = iota
	Rook
	Knight
	Bishop
	King
	Queen
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case King:
		return "king"
	case Queen:
		return "queen"
	}
	return fmt.Sprintf("PieceKind(%d)", int(k))
}

func (k PieceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Letter is the algebraic letter used in move records.
func (k PieceKind) Letter() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

// promotionKinds maps the trailing letter of a promotion command to its kind.
var promotionKinds = map[byte]PieceKind{
	'Q': Queen,
	'B': Bishop,
	'N': Knight,
	'R': Rook,
}

// Vector is a direction template. Non-pawn templates are mirrored into four
// directions by directions().
type Vector struct {
	X int
	Y int
}

type movement struct {
	templates  []Vector
	continuous bool
}

var catalog = map[PieceKind]movement{
	Pawn:   {templates: []Vector{{0, 1}, {1, 1}}},
	Rook:   {templates: []Vector{{0, 1}}, continuous: true},
	Knight: {templates: []Vector{{1, 2}, {2, 1}}},
	Bishop: {templates: []Vector{{1, 1}}, continuous: true},
	King:   {templates: []Vector{{0, 1}, {1, 1}}},
	Queen:  {templates: []Vector{{0, 1}, {1, 1}}, continuous: true},
}

type Piece struct {
	Color      Color
	Kind       PieceKind
	Movement   []Vector
	Continuous bool
	HasMoved   bool
}

// NewPiece makes an unmoved piece with the catalog movement for kind.
func NewPiece(color Color, kind PieceKind) Piece {
	m := catalog[kind]
	return Piece{
		Color:      color,
		Kind:       kind,
		Movement:   m.templates,
		Continuous: m.continuous,
	}
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Kind.String()
}

// Glyph returns the Unicode chess symbol for the piece.
func (p Piece) Glyph() string {
	if p.Color == White {
		switch p.Kind {
		case Pawn:
			return "♙"
		case Rook:
			return "♖"
		case Knight:
			return "♘"
		case Bishop:
			return "♗"
		case Queen:
			return "♕"
		case King:
			return "♔"
		}
		return ""
	}
	switch p.Kind {
	case Pawn:
		return "♟"
	case Rook:
		return "♜"
	case Knight:
		return "♞"
	case Bishop:
		return "♝"
	case Queen:
		return "♛"
	case King:
		return "♚"
	}
	return ""
}

// directions mirrors a template on both axes. Axis-aligned templates rotate into
// the four orthogonal directions, diagonal ones take every sign combination.
func directions(t Vector) [4]Vector {
	if t.X == 0 || t.Y == 0 {
		return [4]Vector{{t.X, t.Y}, {t.X, -t.Y}, {-t.Y, t.X}, {t.Y, t.X}}
	}
	return [4]Vector{{t.X, t.Y}, {t.X, -t.Y}, {-t.X, t.Y}, {-t.X, -t.Y}}
}
