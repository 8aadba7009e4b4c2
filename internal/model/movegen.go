package model

import "slices"

// walk returns the squares reached from from along dir. A single-step walk
// yields at most one square; a continuous walk stops on the first occupied
// square and includes it.
func (b *Board) walk(from Position, dir Vector, continuous bool) []Position {
	var squares []Position
	for pos := from.add(dir); pos.onBoard(); pos = pos.add(dir) {
		squares = append(squares, pos)
		if !continuous || b.PieceAt(pos) != nil {
			break
		}
	}
	return squares
}

// around walks every mirrored direction of template t.
func (b *Board) around(from Position, t Vector, continuous bool) []Position {
	var squares []Position
	for _, dir := range directions(t) {
		squares = append(squares, b.walk(from, dir, continuous)...)
	}
	return squares
}

// RegularMoves returns the squares the piece on pos reaches by its movement
// pattern, sorted and without duplicates. Self-check is not considered.
func (b *Board) RegularMoves(pos Position) []Position {
	p := b.PieceAt(pos)
	if p == nil {
		return nil
	}
	var candidates []Position
	if p.Kind == Pawn {
		candidates = b.pawnMoves(pos, p)
	} else {
		for _, t := range p.Movement {
			for _, sq := range b.around(pos, t, p.Continuous) {
				if q := b.PieceAt(sq); q == nil || q.Color != p.Color {
					candidates = append(candidates, sq)
				}
			}
		}
	}
	slices.SortFunc(candidates, comparePositions)
	return slices.Compact(candidates)
}

func comparePositions(a, b Position) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}

func (b *Board) pawnMoves(pos Position, p *Piece) []Position {
	var moves []Position
	ahead := pos.add(Vector{0, p.Color.forward()})
	if ahead.onBoard() && b.PieceAt(ahead) == nil {
		moves = append(moves, ahead)
	}
	for _, sq := range pawnCaptures(pos, p.Color) {
		if q := b.PieceAt(sq); (q != nil && q.Color != p.Color) || b.enPassantTarget(sq, p.Color) {
			moves = append(moves, sq)
		}
	}
	return moves
}

// pawnCaptures lists the diagonal squares a pawn of colour c on pos attacks.
func pawnCaptures(pos Position, c Color) []Position {
	var squares []Position
	for _, dx := range []int{-1, 1} {
		if sq := pos.add(Vector{dx, c.forward()}); sq.onBoard() {
			squares = append(squares, sq)
		}
	}
	return squares
}

// enPassantTarget reports whether a pawn of colour c may capture en passant onto sq.
func (b *Board) enPassantTarget(sq Position, c Color) bool {
	l := b.enPassant
	if l == nil || l.Capturable != sq {
		return false
	}
	victim := b.PieceAt(l.Pawn)
	return victim != nil && victim.Kind == Pawn && victim.Color != c
}

// SpecialMoves returns the double step and castling moves available to the
// unmoved piece on pos.
func (b *Board) SpecialMoves(pos Position) []Move {
	p := b.PieceAt(pos)
	if p == nil || p.HasMoved {
		return nil
	}
	var moves []Move
	switch p.Kind {
	case Pawn:
		one := pos.add(Vector{0, p.Color.forward()})
		two := one.add(Vector{0, p.Color.forward()})
		if two.onBoard() && b.PieceAt(one) == nil && b.PieceAt(two) == nil {
			moves = append(moves, Move{To: two, Special: Pawn2Step})
		}
	case King:
		if b.IsThreatened(pos, p.Color) {
			return nil
		}
		if b.canCastle(pos, p.Color, 1) {
			moves = append(moves, Move{To: Position{X: pos.X + 2, Y: pos.Y}, Special: CastleKingSide})
		}
		if b.canCastle(pos, p.Color, -1) {
			moves = append(moves, Move{To: Position{X: pos.X - 2, Y: pos.Y}, Special: CastleQueenSide})
		}
	}
	return moves
}

// castlingRook finds the first piece from the king towards dx along the rank.
func (b *Board) castlingRook(king Position, dx int) (Position, []Position) {
	squares := b.walk(king, Vector{dx, 0}, true)
	if len(squares) == 0 {
		return Position{}, nil
	}
	return squares[len(squares)-1], squares[:len(squares)-1]
}

// canCastle checks the rook side of castling. The king itself is known to be
// unmoved and not in check.
func (b *Board) canCastle(king Position, c Color, dx int) bool {
	rookPos, between := b.castlingRook(king, dx)
	if len(between) < 2 {
		return false
	}
	rook := b.PieceAt(rookPos)
	if rook == nil || rook.Kind != Rook || rook.Color != c || rook.HasMoved {
		return false
	}
	for step := 1; step <= 2; step++ {
		if b.IsThreatened(Position{X: king.X + step*dx, Y: king.Y}, c) {
			return false
		}
	}
	return true
}

// LegalMoves returns every move of the piece on pos that does not leave its own
// king in check.
func (b *Board) LegalMoves(pos Position) []Move {
	if b.PieceAt(pos) == nil {
		return nil
	}
	var moves []Move
	for _, to := range b.RegularMoves(pos) {
		mv := Move{To: to}
		if !b.selfCheck(pos, mv) {
			moves = append(moves, mv)
		}
	}
	for _, mv := range b.SpecialMoves(pos) {
		// castling already proved the king's path safe
		if mv.Special == Pawn2Step && b.selfCheck(pos, mv) {
			continue
		}
		moves = append(moves, mv)
	}
	return moves
}

// selfCheck plays mv on a copy of the board and reports whether the mover's
// king is attacked afterwards.
func (b *Board) selfCheck(from Position, mv Move) bool {
	c := b.PieceAt(from).Color
	sim := b.Clone()
	sim.apply(from, mv)
	return sim.IsChecked(c)
}

// IsThreatened reports whether any piece of c's opponent can move onto pos.
// Rays along ranks, files and diagonals find sliders, kings and pawns; the two
// knight templates find knights.
func (b *Board) IsThreatened(pos Position, c Color) bool {
	return b.threatenedBy(pos, c, Vector{0, 1}, true) ||
		b.threatenedBy(pos, c, Vector{1, 1}, true) ||
		b.threatenedBy(pos, c, Vector{1, 2}, false) ||
		b.threatenedBy(pos, c, Vector{2, 1}, false)
}

// threatenedBy looks outward from pos along template t and asks each enemy
// piece it meets whether it reaches pos.
func (b *Board) threatenedBy(pos Position, c Color, t Vector, continuous bool) bool {
	for _, sq := range b.around(pos, t, continuous) {
		if p := b.PieceAt(sq); p != nil && p.Color != c && b.reaches(sq, pos) {
			return true
		}
	}
	return false
}

// reaches reports whether the piece on from attacks target. Pawns attack
// diagonally forward only.
func (b *Board) reaches(from, target Position) bool {
	p := b.PieceAt(from)
	if p.Kind == Pawn {
		return slices.Contains(pawnCaptures(from, p.Color), target)
	}
	for _, t := range p.Movement {
		if slices.Contains(b.around(from, t, p.Continuous), target) {
			return true
		}
	}
	return false
}

// IsChecked reports whether the king of colour c is attacked. A board without
// that king is never in check.
func (b *Board) IsChecked(c Color) bool {
	king, ok := b.KingPosition(c)
	if !ok {
		return false
	}
	return b.IsThreatened(king, c)
}

// IsCheckmate reports whether c is in check with no legal move left.
func (b *Board) IsCheckmate(c Color) bool {
	return b.IsChecked(c) && !b.HasLegalMove(c)
}

// HasLegalMove reports whether any piece of colour c has a legal move. The king
// is tried first since it is the usual escape.
func (b *Board) HasLegalMove(c Color) bool {
	if king, ok := b.KingPosition(c); ok && len(b.LegalMoves(king)) > 0 {
		return true
	}
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			pos := Position{X: x, Y: y}
			if p := b.PieceAt(pos); p != nil && p.Color == c && p.Kind != King && len(b.LegalMoves(pos)) > 0 {
				return true
			}
		}
	}
	return false
}

// applied describes the effects of a move played by apply.
type applied struct {
	piece     Piece
	captured  *Piece
	enPassant bool
	rook      *castleRookMove
}

// apply plays mv for the piece on from, including special move side effects.
// The en passant link of the previous move is always discarded; only a double
// step sets a new one. Callers must pass a move from LegalMoves.
func (b *Board) apply(from Position, mv Move) applied {
	p := b.PieceAt(from)
	if p == nil {
		panic(reject(ErrInvariant, "no piece to move at %s", from))
	}
	res := applied{piece: *p}
	enPassant := p.Kind == Pawn && mv.Special == NoSpecial && b.enPassantTarget(mv.To, p.Color)
	link := b.enPassant
	b.enPassant = nil

	switch mv.Special {
	case Pawn2Step:
		b.mustRelocate(from, mv.To)
		b.enPassant = &EnPassantLink{
			Capturable: from.add(Vector{0, p.Color.forward()}),
			Pawn:       mv.To,
		}
	case CastleKingSide, CastleQueenSide:
		dx := 1
		if mv.Special == CastleQueenSide {
			dx = -1
		}
		rookFrom, _ := b.castlingRook(from, dx)
		rookTo := Position{X: mv.To.X - dx, Y: from.Y}
		b.mustRelocate(from, mv.To)
		b.mustRelocate(rookFrom, rookTo)
		res.rook = &castleRookMove{From: rookFrom, To: rookTo}
	default:
		if enPassant {
			victim := *b.PieceAt(link.Pawn)
			res.captured = &victim
			res.enPassant = true
			b.remove(link.Pawn)
		} else if q := b.PieceAt(mv.To); q != nil {
			captured := *q
			res.captured = &captured
		}
		b.mustRelocate(from, mv.To)
	}
	return res
}
