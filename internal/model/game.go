package model

import (
	"fmt"
	"strings"
)

// CheckmateAnnouncement is returned instead of the move record when a move or
// promotion ends the game.
const CheckmateAnnouncement = "Game is over! It's a checkmate!"

const checkSuffix = " Check!"

type Status int

const (
	InProgress Status = iota
	Checkmate
)

func (s Status) String() string {
	if s == Checkmate {
		return "checkmate"
	}
	return "in progress"
}

// Turn is the side to move and the number of the half-move about to be played,
// starting at 1.
type Turn struct {
	Color  Color `json:"color"`
	Number int   `json:"number"`
}

// The Game owns a board and is the only thing that changes turn and history.
// It is not safe for concurrent use.
type Game struct {
	board            *Board
	history          []string
	turn             Turn
	isCheck          bool
	status           Status
	pendingPromotion *Position
}

// NewGame starts a game from the standard position with white to move.
func NewGame() *Game {
	return NewGameFromBoard(NewStandardBoard(), White)
}

// NewGameFromBoard starts a game from an arbitrary position. The game takes
// ownership of b.
func NewGameFromBoard(b *Board, toMove Color) *Game {
	g := &Game{
		board:   b,
		history: make([]string, 0),
		turn:    Turn{Color: toMove, Number: 1},
	}
	g.evaluateTurn()
	return g
}

func (g *Game) CurrentPlayer() Color {
	return g.turn.Color
}

func (g *Game) Turn() Turn {
	return g.turn
}

func (g *Game) IsCheck() bool {
	return g.isCheck
}

func (g *Game) Status() Status {
	return g.status
}

// Winner returns the side that delivered checkmate.
func (g *Game) Winner() (Color, bool) {
	if g.status != Checkmate {
		return White, false
	}
	return g.turn.Color.Opposite(), true
}

// History returns the move records played so far, oldest first.
func (g *Game) History() []string {
	return append([]string(nil), g.history...)
}

// Board returns a snapshot of the pieces for rendering.
func (g *Game) Board() Grid {
	return g.board.Grid()
}

// PendingPromotion returns the square of a pawn that reached its last rank and
// has not been promoted yet.
func (g *Game) PendingPromotion() (Position, bool) {
	if g.pendingPromotion == nil {
		return Position{}, false
	}
	return *g.pendingPromotion, true
}

// AttemptMove plays a command such as "e2 e4" for the side to move.
func (g *Game) AttemptMove(command string) (string, error) {
	from, to, err := parseMoveCommand(command)
	if err != nil {
		return "", err
	}
	return g.Move(from, to)
}

func parseMoveCommand(command string) (Position, Position, error) {
	if len(command) != 5 || command[2] != ' ' {
		return Position{}, Position{}, reject(ErrMalformedInput, "enter move as e.g: a2 a3, got %q", command)
	}
	from, err := ParseSquare(command[:2])
	if err != nil {
		return Position{}, Position{}, err
	}
	to, err := ParseSquare(command[3:])
	if err != nil {
		return Position{}, Position{}, err
	}
	return from, to, nil
}

// Move plays the piece on from to to. Nothing changes when the move is rejected.
func (g *Game) Move(from, to Position) (string, error) {
	mv, err := g.validateMove(from, to)
	if err != nil {
		return "", err
	}
	return g.executeMove(from, mv), nil
}

func (g *Game) validateMove(from, to Position) (Move, error) {
	p, err := g.ownPiece(from)
	if err != nil {
		return Move{}, err
	}
	if !to.onBoard() {
		return Move{}, reject(ErrMalformedInput, "square (%d, %d) is not on the board", to.X, to.Y)
	}
	for _, mv := range g.board.LegalMoves(from) {
		if mv.To == to {
			return mv, nil
		}
	}
	return Move{}, reject(ErrIllegalMove, "tried to do illegal move! %s at %s cannot move to %s", p, from, to)
}

// ownPiece returns the piece on pos if it belongs to the side to move.
func (g *Game) ownPiece(pos Position) (*Piece, error) {
	if !pos.onBoard() {
		return nil, reject(ErrMalformedInput, "square (%d, %d) is not on the board", pos.X, pos.Y)
	}
	p := g.board.PieceAt(pos)
	if p == nil {
		return nil, reject(ErrEmptySquare, "there is no piece at %s", pos)
	}
	if p.Color != g.turn.Color {
		return nil, reject(ErrWrongTurn, "that is not your piece, %s is to move", g.turn.Color)
	}
	return p, nil
}

func (g *Game) executeMove(from Position, mv Move) string {
	res := g.board.apply(from, mv)
	record := moveRecord(from, mv, res)

	g.pendingPromotion = nil
	if res.piece.Kind == Pawn && mv.To.Y == res.piece.Color.promotionRank() {
		to := mv.To
		g.pendingPromotion = &to
	}

	number := g.turn.Number
	g.switchTurn()
	g.evaluateTurn()
	return g.logRecord(number, record, record)
}

func moveRecord(from Position, mv Move, res applied) string {
	switch mv.Special {
	case Pawn2Step:
		return fmt.Sprintf("%s %s", from, mv.To)
	case CastleKingSide, CastleQueenSide:
		return mv.Special.String()
	}
	if res.piece.Kind == Pawn && mv.To.Y == res.piece.Color.promotionRank() {
		return fmt.Sprintf("%s %s Promotion", from, mv.To)
	}
	record := fmt.Sprintf("%s%s %s", res.piece.Kind.Letter(), from, mv.To)
	if res.enPassant {
		record += " e.p."
	}
	return record
}

func (g *Game) switchTurn() {
	g.turn = Turn{Color: g.turn.Color.Opposite(), Number: g.turn.Number + 1}
}

// evaluateTurn refreshes check and checkmate for the side to move.
func (g *Game) evaluateTurn() {
	g.isCheck = g.board.IsChecked(g.turn.Color)
	g.status = InProgress
	if g.isCheck && !g.board.HasLegalMove(g.turn.Color) {
		g.status = Checkmate
	}
}

// logRecord appends entry to the history and returns message, both annotated
// with the state of the side to move.
func (g *Game) logRecord(number int, entry, message string) string {
	if g.isCheck {
		entry += checkSuffix
		message += checkSuffix
	}
	g.history = append(g.history, fmt.Sprintf("%d. %s", number, entry))
	if g.status == Checkmate {
		return CheckmateAnnouncement
	}
	return message
}

// LegalDestinations lists, in notation, where the piece on square may move.
func (g *Game) LegalDestinations(square string) ([]string, error) {
	pos, err := ParseSquare(square)
	if err != nil {
		return nil, err
	}
	moves, err := g.Destinations(pos)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(moves))
	for _, to := range moves {
		out = append(out, mustSquare(to))
	}
	return out, nil
}

// Destinations lists where the piece on pos may move. The piece must belong to
// the side to move.
func (g *Game) Destinations(pos Position) ([]Position, error) {
	if _, err := g.ownPiece(pos); err != nil {
		return nil, err
	}
	moves := g.board.LegalMoves(pos)
	out := make([]Position, 0, len(moves))
	for _, mv := range moves {
		out = append(out, mv.To)
	}
	return out, nil
}

// PromoteAt handles a promotion command such as "a8Q". The trailing letter is
// one of Q, B, N or R.
func (g *Game) PromoteAt(command string) (string, error) {
	if len(command) != 3 {
		return "", reject(ErrMalformedInput, "must provide promotion input as e.g: a8Q, got %q", command)
	}
	kind, ok := promotionKinds[command[2]]
	if !ok {
		return "", reject(ErrMalformedInput, "must provide promotion input as e.g: a8Q, unknown piece %q", command[2])
	}
	pos, err := ParseSquare(command[:2])
	if err != nil {
		return "", err
	}
	return g.Promote(pos, kind)
}

// Promote turns the pawn on pos into kind. The pawn must belong to the side
// that just moved. The turn does not change, but check and checkmate are
// evaluated again for the side to move.
func (g *Game) Promote(pos Position, kind PieceKind) (string, error) {
	if kind == King {
		return "", reject(ErrIllegalPromotion, "cannot promote to a king")
	}
	if !pos.onBoard() {
		return "", reject(ErrMalformedInput, "square (%d, %d) is not on the board", pos.X, pos.Y)
	}
	if p := g.board.PieceAt(pos); p != nil && p.Color == g.turn.Color {
		return "", reject(ErrIllegalPromotion, "%s is to move, only the side that just moved can promote", g.turn.Color)
	}
	if err := g.board.Promote(pos, kind); err != nil {
		return "", err
	}
	if pending, ok := g.PendingPromotion(); ok && pending == pos {
		g.pendingPromotion = nil
	}

	g.evaluateTurn()
	entry := fmt.Sprintf("%s=%s", pos, kind.Letter())
	message := fmt.Sprintf("Promoted pawn at %s to %s", pos, titleCase(kind.String()))
	return g.logRecord(g.turn.Number-1, entry, message), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
