package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/inda20plusplus/maltebl-chess/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.White, err
	}
	return session.Join(playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return session.State(), nil
}

func (gs *GameService) LegalDestinations(gameID string, square string) ([]string, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalDestinations(square)
}

// HandleMove plays a move command such as "e2 e4" and returns the engine's
// message for it with the state it produced.
func (gs *GameService) HandleMove(gameID string, playerID string, command string) (Result, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Result{}, err
	}
	return session.Move(playerID, command)
}

// HandlePromotion plays a promotion command such as "a8Q".
func (gs *GameService) HandlePromotion(gameID string, playerID string, command string) (Result, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return Result{}, err
	}
	return session.Promote(playerID, command)
}

// RegisterConnection returns nil without error when conn was rejected as a
// duplicate.
func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) (*Client, error) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return session.RegisterConnection(playerID, conn), nil
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, client *Client) {
	session, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, client)
}
