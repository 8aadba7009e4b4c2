package model

import "encoding/json"

// GameState is the JSON snapshot broadcast to clients. Board rows run from
// rank 8 down to rank 1, the order a board is drawn in.
type GameState struct {
	Board           [][]*Piece `json:"board"`
	ToMove          Color      `json:"toMove"`
	MoveNumber      int        `json:"moveNumber"`
	MoveHistory     []string   `json:"moveHistory"`
	IsCheck         bool       `json:"isCheck"`
	Resolve         *string    `json:"resolve"`
	Winner          *Color     `json:"winner"`
	EnPassantTarget *Position  `json:"enPassantTarget"`
	PromotionSquare *Position  `json:"promotionSquare"`
}

func (g *Game) State() GameState {
	grid := g.board.Grid()
	rows := make([][]*Piece, 0, boardSize)
	for y := boardSize - 1; y >= 0; y-- {
		rows = append(rows, grid[y][:])
	}
	state := GameState{
		Board:       rows,
		ToMove:      g.turn.Color,
		MoveNumber:  g.turn.Number,
		MoveHistory: g.History(),
		IsCheck:     g.isCheck,
	}
	if g.status == Checkmate {
		resolve := g.status.String()
		winner := g.turn.Color.Opposite()
		state.Resolve = &resolve
		state.Winner = &winner
	}
	if l := g.board.EnPassant(); l != nil {
		state.EnPassantTarget = &l.Capturable
	}
	if pos, ok := g.PendingPromotion(); ok {
		state.PromotionSquare = &pos
	}
	return state
}

type wirePiece struct {
	Type     PieceKind `json:"type"`
	Color    Color     `json:"color"`
	HasMoved bool      `json:"hasMoved"`
	Glyph    string    `json:"glyph"`
}

func (p Piece) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePiece{
		Type:     p.Kind,
		Color:    p.Color,
		HasMoved: p.HasMoved,
		Glyph:    p.Glyph(),
	})
}
