package model

// Grid is a snapshot of the board, indexed Grid[y][x] with rank 1 at index 0.
// Pieces in a Grid are copies; changing them does not touch the game.
type Grid [boardSize][boardSize]*Piece

// EnPassantLink remembers the last double step: Capturable is the square the pawn
// passed over, Pawn is where it stands.
type EnPassantLink struct {
	Capturable Position `json:"capturable"`
	Pawn       Position `json:"pawn"`
}

type Board struct {
	grid      Grid
	kings     [2]*Position
	enPassant *EnPassantLink
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns a board in the standard starting position.
func NewStandardBoard() *Board {
	b := NewBoard()
	b.standardPieces(White)
	b.standardPieces(Black)
	return b
}

var backRank = [boardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func (b *Board) standardPieces(c Color) {
	pawnRank := c.homeRank() + c.forward()
	for x := 0; x < boardSize; x++ {
		b.MustPlace(NewPiece(c, Pawn), Position{X: x, Y: pawnRank})
		b.MustPlace(NewPiece(c, backRank[x]), Position{X: x, Y: c.homeRank()})
	}
}

// Place puts a piece on an empty square. Placing onto an occupied square or adding
// a second king of one colour fails with ErrInvariant.
func (b *Board) Place(p Piece, pos Position) error {
	if !pos.onBoard() {
		return reject(ErrInvariant, "cannot place %s off the board at (%d, %d)", p, pos.X, pos.Y)
	}
	if b.grid[pos.Y][pos.X] != nil {
		return reject(ErrInvariant, "tried to add piece at non-empty square %s", pos)
	}
	if p.Kind == King {
		if b.kings[p.Color] != nil {
			return reject(ErrInvariant, "%s already has a king at %s", p.Color, *b.kings[p.Color])
		}
		k := pos
		b.kings[p.Color] = &k
	}
	b.grid[pos.Y][pos.X] = &p
	return nil
}

// MustPlace is Place for board construction; it panics on failure.
func (b *Board) MustPlace(p Piece, pos Position) {
	if err := b.Place(p, pos); err != nil {
		panic(err)
	}
}

// PieceAt returns the piece on pos, or nil.
func (b *Board) PieceAt(pos Position) *Piece {
	if !pos.onBoard() {
		return nil
	}
	return b.grid[pos.Y][pos.X]
}

// KingPosition reports where the king of colour c stands.
func (b *Board) KingPosition(c Color) (Position, bool) {
	if b.kings[c] == nil {
		return Position{}, false
	}
	return *b.kings[c], true
}

// EnPassant returns the current en passant link, if any.
func (b *Board) EnPassant() *EnPassantLink {
	if b.enPassant == nil {
		return nil
	}
	l := *b.enPassant
	return &l
}

// Relocate moves the piece on from to to without any legality check, replacing
// whatever stood on to. The piece is marked as moved.
func (b *Board) Relocate(from, to Position) error {
	p := b.PieceAt(from)
	if p == nil {
		return reject(ErrInvariant, "can't force move, no piece at %s", from)
	}
	if !to.onBoard() {
		return reject(ErrInvariant, "can't force move %s off the board", from)
	}
	if target := b.grid[to.Y][to.X]; target != nil && target.Kind == King && target != p {
		b.kings[target.Color] = nil
	}
	b.grid[from.Y][from.X] = nil
	p.HasMoved = true
	b.grid[to.Y][to.X] = p
	if p.Kind == King {
		k := to
		b.kings[p.Color] = &k
	}
	return nil
}

func (b *Board) mustRelocate(from, to Position) {
	if err := b.Relocate(from, to); err != nil {
		panic(err)
	}
}

func (b *Board) remove(pos Position) {
	if p := b.grid[pos.Y][pos.X]; p != nil && p.Kind == King {
		b.kings[p.Color] = nil
	}
	b.grid[pos.Y][pos.X] = nil
}

// Promote replaces a pawn standing on its promotion rank with a fresh piece of
// kind, keeping its colour.
func (b *Board) Promote(pos Position, kind PieceKind) error {
	p := b.PieceAt(pos)
	if p == nil {
		return reject(ErrIllegalPromotion, "tried to promote an empty square %s", pos)
	}
	if p.Kind != Pawn || pos.Y != p.Color.promotionRank() {
		return reject(ErrIllegalPromotion, "tried to promote %s at %s, only a pawn on its last rank can promote", p, pos)
	}
	if kind == King || kind == Pawn {
		return reject(ErrIllegalPromotion, "cannot promote to %s", kind)
	}
	promoted := NewPiece(p.Color, kind)
	b.grid[pos.Y][pos.X] = &promoted
	return nil
}

// Grid returns a copy of the board contents.
func (b *Board) Grid() Grid {
	var g Grid
	for y := range b.grid {
		for x, p := range b.grid[y] {
			if p != nil {
				c := *p
				g[y][x] = &c
			}
		}
	}
	return g
}

// Clone returns an independent copy of the board, used to try moves out.
func (b *Board) Clone() *Board {
	c := &Board{grid: b.Grid()}
	for i, k := range b.kings {
		if k != nil {
			pos := *k
			c.kings[i] = &pos
		}
	}
	c.enPassant = b.EnPassant()
	return c
}
