package service

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/inda20plusplus/maltebl-chess/internal/model"
)

// GameManager keeps the sessions of all running games.
type GameManager struct {
	games map[string]*Session
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*Session),
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = newSession(gameID, model.NewGame())
	log.Infof("game %s created", gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return session, nil
}
