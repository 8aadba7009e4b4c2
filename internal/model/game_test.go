package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFoolsMate(t *testing.T) {
	t.Parallel()
	g := NewGame()
	msg := play(t, g, "f2 f3", "e7 e5", "g2 g4", "d8 h4")

	if msg != CheckmateAnnouncement {
		t.Errorf("last message = %q, want %q", msg, CheckmateAnnouncement)
	}
	if !strings.Contains(msg, "checkmate") {
		t.Errorf("last message %q does not mention checkmate", msg)
	}
	if g.Status() != Checkmate {
		t.Errorf("Status() = %s, want checkmate", g.Status())
	}
	if winner, ok := g.Winner(); !ok || winner != Black {
		t.Errorf("Winner() = %s, %v; want black", winner, ok)
	}
	want := []string{"1. Pf2 f3", "2. e7 e5", "3. g2 g4", "4. Qd8 h4 Check!"}
	if diff := cmp.Diff(want, g.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckAnnotation(t *testing.T) {
	t.Parallel()
	g := NewGame()
	msg := play(t, g, "e2 e4", "f7 f6", "d1 h5")
	if msg != "Qd1 h5 Check!" {
		t.Errorf("message = %q, want %q", msg, "Qd1 h5 Check!")
	}
	if !g.IsCheck() || g.Status() != InProgress {
		t.Errorf("IsCheck() = %v, Status() = %s; want check in progress", g.IsCheck(), g.Status())
	}
	if msg := play(t, g, "g7 g6"); msg != "Pg7 g6" {
		t.Errorf("block message = %q", msg)
	}
	if g.IsCheck() {
		t.Error("IsCheck() still true after the reply")
	}
}

func TestTurnAlternation(t *testing.T) {
	t.Parallel()
	g := NewGame()
	if g.CurrentPlayer() != White {
		t.Fatalf("CurrentPlayer() = %s at start, want white", g.CurrentPlayer())
	}
	if _, err := g.AttemptMove("e2 e5"); err == nil {
		t.Fatal("AttemptMove(e2 e5) succeeded")
	}
	if g.CurrentPlayer() != White {
		t.Errorf("CurrentPlayer() = %s after a rejected move", g.CurrentPlayer())
	}

	play(t, g, "e2 e4")
	if g.CurrentPlayer() != Black || g.Turn().Number != 2 {
		t.Errorf("Turn() = %+v after one move, want black on 2", g.Turn())
	}
	play(t, g, "e7 e5")
	if g.CurrentPlayer() != White || g.Turn().Number != 3 {
		t.Errorf("Turn() = %+v after two moves, want white on 3", g.Turn())
	}
}

func TestAttemptMoveRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		command string
		want    error
	}{
		{"e2e4", ErrMalformedInput},
		{"e2  e4", ErrMalformedInput},
		{"e2-e4", ErrMalformedInput},
		{"e2 e9", ErrMalformedInput},
		{"E2 E4", ErrMalformedInput},
		{"", ErrMalformedInput},
		{"e3 e4", ErrEmptySquare},
		{"e7 e5", ErrWrongTurn},
		{"e2 e5", ErrIllegalMove},
		{"b1 d2", ErrIllegalMove},
		{"a1 a3", ErrIllegalMove},
		{"e1 g1", ErrIllegalMove},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()
			g := NewGame()
			before := g.State()
			_, err := g.AttemptMove(tt.command)
			if !errors.Is(err, tt.want) {
				t.Fatalf("AttemptMove(%q) error = %v, want %v", tt.command, err, tt.want)
			}
			var ruleErr *RuleError
			if !errors.As(err, &ruleErr) || ruleErr.Reason == "" {
				t.Errorf("AttemptMove(%q) error %v carries no reason", tt.command, err)
			}
			if diff := cmp.Diff(before, g.State()); diff != "" {
				t.Errorf("state changed by rejected move (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAcceptedMovesNeverLeaveMoverInCheck(t *testing.T) {
	t.Parallel()
	g := NewGame()
	moves := []string{"e2 e4", "d7 d5", "e4 d5", "d8 d5", "b1 c3", "d5 e5", "g1 e2", "e5 e4", "d2 d3", "e4 g6"}
	for _, m := range moves {
		mover := g.CurrentPlayer()
		play(t, g, m)
		if g.board.IsChecked(mover) {
			t.Fatalf("%s is in check after its own move %q", mover, m)
		}
	}

	// With the queen on e5 the e2 knight is pinned.
	g = NewGame()
	play(t, g, "e2 e4", "d7 d5", "e4 d5", "d8 d5", "g1 e2", "d5 e5")
	dests, err := g.LegalDestinations("e2")
	if err != nil {
		t.Fatal(err)
	}
	if len(dests) != 0 {
		t.Errorf("pinned knight destinations = %v, want none", dests)
	}
	if _, err := g.AttemptMove("e2 f4"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("moving the pinned knight error = %v, want ErrIllegalMove", err)
	}
}

func TestLegalDestinations(t *testing.T) {
	t.Parallel()
	g := NewGame()
	tests := []struct {
		square  string
		want    []string
		wantErr error
	}{
		{square: "f2", want: []string{"f3", "f4"}},
		{square: "g1", want: []string{"f3", "h3"}},
		{square: "a1", want: []string{}},
		{square: "e7", wantErr: ErrWrongTurn},
		{square: "e4", wantErr: ErrEmptySquare},
		{square: "z9", wantErr: ErrMalformedInput},
		{square: "e", wantErr: ErrMalformedInput},
	}
	for _, tt := range tests {
		got, err := g.LegalDestinations(tt.square)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LegalDestinations(%q) error = %v, want %v", tt.square, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("LegalDestinations(%q) error: %v", tt.square, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("LegalDestinations(%q) mismatch (-want +got):\n%s", tt.square, diff)
		}
	}
}

func TestCastlingThroughGame(t *testing.T) {
	t.Parallel()
	g := NewGameFromBoard(castlingBoard(t), White)
	if msg := play(t, g, "e1 g1"); msg != "O-O" {
		t.Errorf("message = %q, want O-O", msg)
	}
	grid := g.Board()
	if p := grid[0][5]; p == nil || p.Kind != Rook {
		t.Errorf("f1 = %v, want rook", p)
	}
	if grid[0][7] != nil {
		t.Errorf("h1 = %v, want empty", grid[0][7])
	}
	play(t, g, "e8 d8")
	if _, err := g.AttemptMove("g1 e1"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("king back two squares error = %v, want ErrIllegalMove", err)
	}

	g = NewGameFromBoard(castlingBoard(t), White)
	if msg := play(t, g, "e1 c1"); msg != "O-O-O" {
		t.Errorf("message = %q, want O-O-O", msg)
	}
	if p := g.Board()[0][3]; p == nil || p.Kind != Rook {
		t.Errorf("d1 = %v, want rook", p)
	}
	if diff := cmp.Diff([]string{"1. O-O-O"}, g.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestEnPassantThroughGame(t *testing.T) {
	t.Parallel()
	g := NewGame()
	play(t, g, "e2 e4", "a7 a6", "e4 e5", "d7 d5")

	dests, err := g.LegalDestinations("e5")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"d6", "e6"}, dests); diff != "" {
		t.Errorf("destinations mismatch (-want +got):\n%s", diff)
	}
	if msg := play(t, g, "e5 d6"); msg != "Pe5 d6 e.p." {
		t.Errorf("message = %q, want %q", msg, "Pe5 d6 e.p.")
	}
	if g.Board()[4][3] != nil {
		t.Error("d5 pawn was not captured")
	}

	g = NewGame()
	play(t, g, "e2 e4", "a7 a6", "e4 e5", "d7 d5", "h2 h3", "h7 h6")
	if _, err := g.AttemptMove("e5 d6"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("late en passant error = %v, want ErrIllegalMove", err)
	}
}

func promotionGame(t *testing.T, blackKing string) *Game {
	t.Helper()
	b := setup(t,
		at("e1", White, King),
		movedAt("a7", White, Pawn),
		at(blackKing, Black, King),
	)
	return NewGameFromBoard(b, White)
}

func TestPromotion(t *testing.T) {
	t.Parallel()
	g := promotionGame(t, "h7")
	if msg := play(t, g, "a7 a8"); msg != "a7 a8 Promotion" {
		t.Errorf("message = %q, want promotion record", msg)
	}
	if pos, ok := g.PendingPromotion(); !ok || pos != sq(t, "a8") {
		t.Errorf("PendingPromotion() = %v, %v; want a8", pos, ok)
	}

	msg, err := g.PromoteAt("a8Q")
	if err != nil {
		t.Fatalf("PromoteAt(a8Q): %v", err)
	}
	if msg != "Promoted pawn at a8 to Queen" {
		t.Errorf("message = %q", msg)
	}
	if p := g.Board()[7][0]; p == nil || p.Kind != Queen || p.Color != White {
		t.Errorf("a8 = %v, want white queen", p)
	}
	if _, ok := g.PendingPromotion(); ok {
		t.Error("promotion still pending")
	}
	if g.CurrentPlayer() != Black {
		t.Errorf("CurrentPlayer() = %s, promotion must not switch turns", g.CurrentPlayer())
	}
	want := []string{"1. a7 a8 Promotion", "1. a8=Q"}
	if diff := cmp.Diff(want, g.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestPromotionGivesCheck(t *testing.T) {
	t.Parallel()
	g := promotionGame(t, "h8")
	play(t, g, "a7 a8")
	msg, err := g.PromoteAt("a8R")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Promoted pawn at a8 to Rook Check!" {
		t.Errorf("message = %q", msg)
	}
	if !g.IsCheck() {
		t.Error("IsCheck() = false after promoting with check")
	}
}

func TestPromotionGivesCheckmate(t *testing.T) {
	t.Parallel()
	b := setup(t,
		movedAt("g6", White, King),
		movedAt("a7", White, Pawn),
		movedAt("h8", Black, King),
	)
	g := NewGameFromBoard(b, White)
	play(t, g, "a7 a8")
	msg, err := g.PromoteAt("a8Q")
	if err != nil {
		t.Fatal(err)
	}
	if msg != CheckmateAnnouncement {
		t.Errorf("message = %q, want checkmate", msg)
	}
	if winner, ok := g.Winner(); !ok || winner != White {
		t.Errorf("Winner() = %s, %v; want white", winner, ok)
	}
}

func TestPromoteAtRejects(t *testing.T) {
	t.Parallel()
	tests := []struct {
		command string
		want    error
	}{
		{"a8", ErrMalformedInput},
		{"a8K", ErrMalformedInput},
		{"a8x", ErrMalformedInput},
		{"a8QQ", ErrMalformedInput},
		{"i8Q", ErrMalformedInput},
		{"b8Q", ErrIllegalPromotion},
		{"e1Q", ErrIllegalPromotion},
		{"h7Q", ErrIllegalPromotion},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()
			g := promotionGame(t, "h7")
			play(t, g, "a7 a8")
			before := g.State()
			if _, err := g.PromoteAt(tt.command); !errors.Is(err, tt.want) {
				t.Fatalf("PromoteAt(%q) error = %v, want %v", tt.command, err, tt.want)
			}
			if diff := cmp.Diff(before, g.State()); diff != "" {
				t.Errorf("state changed by rejected promotion (-want +got):\n%s", diff)
			}
		})
	}

	g := promotionGame(t, "h7")
	play(t, g, "a7 a8")
	if _, err := g.Promote(sq(t, "a8"), King); !errors.Is(err, ErrIllegalPromotion) {
		t.Errorf("Promote to king error = %v, want ErrIllegalPromotion", err)
	}
}

func TestPromoteOwnPawnBeforeMoving(t *testing.T) {
	t.Parallel()
	b := setup(t,
		at("e1", White, King),
		movedAt("a8", White, Pawn),
		at("h6", Black, King),
	)
	g := NewGameFromBoard(b, White)
	if _, err := g.PromoteAt("a8Q"); !errors.Is(err, ErrIllegalPromotion) {
		t.Errorf("PromoteAt for the side to move error = %v, want ErrIllegalPromotion", err)
	}
}

func TestStateJSON(t *testing.T) {
	t.Parallel()
	g := NewGame()
	play(t, g, "e2 e4")

	raw, err := json.Marshal(g.State())
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	var decoded struct {
		Board [][]*struct {
			Type     string `json:"type"`
			Color    string `json:"color"`
			HasMoved bool   `json:"hasMoved"`
			Glyph    string `json:"glyph"`
		} `json:"board"`
		ToMove          string   `json:"toMove"`
		MoveNumber      int      `json:"moveNumber"`
		MoveHistory     []string `json:"moveHistory"`
		EnPassantTarget *string  `json:"enPassantTarget"`
		Resolve         *string  `json:"resolve"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if decoded.ToMove != "black" || decoded.MoveNumber != 2 {
		t.Errorf("toMove = %q, moveNumber = %d", decoded.ToMove, decoded.MoveNumber)
	}
	if decoded.EnPassantTarget == nil || *decoded.EnPassantTarget != "e3" {
		t.Errorf("enPassantTarget = %v, want e3", decoded.EnPassantTarget)
	}
	if decoded.Resolve != nil {
		t.Errorf("resolve = %q, want null", *decoded.Resolve)
	}
	if len(decoded.Board) != 8 || decoded.Board[0][0] == nil || decoded.Board[0][0].Glyph != "♜" {
		t.Fatalf("first row does not start with a black rook: %s", raw)
	}
	if p := decoded.Board[4][4]; p == nil || p.Type != "pawn" || p.Color != "white" || !p.HasMoved {
		t.Errorf("e4 = %+v, want moved white pawn", p)
	}
	if diff := cmp.Diff([]string{"1. e2 e4"}, decoded.MoveHistory); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}
