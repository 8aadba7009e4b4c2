package service

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/inda20plusplus/maltebl-chess/internal/model"
)

func TestGameService(t *testing.T) {
	gs := NewGameService(NewGameManager())

	gameID, err := gs.CreateGame()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(gameID); err != nil {
		t.Errorf("game id %q is not a uuid: %v", gameID, err)
	}

	if c, err := gs.JoinGame(gameID, "alice"); err != nil || c != model.White {
		t.Fatalf("JoinGame(alice) = %s, %v", c, err)
	}
	if c, err := gs.JoinGame(gameID, "bob"); err != nil || c != model.Black {
		t.Fatalf("JoinGame(bob) = %s, %v", c, err)
	}

	dests, err := gs.LegalDestinations(gameID, "b1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a3", "c3"}, dests); diff != "" {
		t.Errorf("LegalDestinations mismatch (-want +got):\n%s", diff)
	}

	if _, err := gs.HandleMove(gameID, "alice", "b1 c3"); err != nil {
		t.Fatal(err)
	}
	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatal(err)
	}
	if state.ToMove != model.Black || state.MoveNumber != 2 {
		t.Errorf("state after move: toMove %s, moveNumber %d", state.ToMove, state.MoveNumber)
	}
}

func TestGameServiceUnknownGame(t *testing.T) {
	gs := NewGameService(NewGameManager())
	if _, err := gs.JoinGame("missing", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("JoinGame error = %v", err)
	}
	if _, err := gs.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGameState error = %v", err)
	}
	if _, err := gs.HandleMove("missing", "alice", "e2 e4"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("HandleMove error = %v", err)
	}
	if _, err := gs.HandlePromotion("missing", "alice", "a8Q"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("HandlePromotion error = %v", err)
	}
	if _, err := gs.LegalDestinations("missing", "e2"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LegalDestinations error = %v", err)
	}
	if _, err := gs.RegisterConnection("missing", "alice", &fakeConn{}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("RegisterConnection error = %v", err)
	}
}

func TestGameManagerCreateTwice(t *testing.T) {
	gm := NewGameManager()
	if err := gm.CreateGame("g"); err != nil {
		t.Fatal(err)
	}
	if err := gm.CreateGame("g"); !errors.Is(err, ErrGameExists) {
		t.Errorf("second CreateGame error = %v, want ErrGameExists", err)
	}
	session, err := gm.GetGame("g")
	if err != nil || session.ID() != "g" {
		t.Errorf("GetGame = %v, %v", session, err)
	}
}
