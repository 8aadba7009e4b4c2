package model

import "testing"

type placement struct {
	square string
	piece  Piece
}

func at(square string, c Color, k PieceKind) placement {
	return placement{square: square, piece: NewPiece(c, k)}
}

// movedAt places a piece that counts as already moved.
func movedAt(square string, c Color, k PieceKind) placement {
	p := NewPiece(c, k)
	p.HasMoved = true
	return placement{square: square, piece: p}
}

func setup(t *testing.T, placements ...placement) *Board {
	t.Helper()
	b := NewBoard()
	for _, pl := range placements {
		if err := b.Place(pl.piece, sq(t, pl.square)); err != nil {
			t.Fatalf("Place(%s, %s): %v", pl.piece, pl.square, err)
		}
	}
	return b
}

func sq(t *testing.T, s string) Position {
	t.Helper()
	pos, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return pos
}

func squares(t *testing.T, names ...string) []Position {
	t.Helper()
	out := make([]Position, 0, len(names))
	for _, n := range names {
		out = append(out, sq(t, n))
	}
	return out
}

func play(t *testing.T, g *Game, commands ...string) string {
	t.Helper()
	var msg string
	for _, c := range commands {
		var err error
		msg, err = g.AttemptMove(c)
		if err != nil {
			t.Fatalf("AttemptMove(%q): %v", c, err)
		}
	}
	return msg
}
