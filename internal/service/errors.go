package service

import (
	"errors"
	"fmt"

	"github.com/inda20plusplus/maltebl-chess/internal/model"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrGameFull     = errors.New("game is full")
	ErrNotInGame    = errors.New("player is not seated in this game")

	// ErrNotYourColor is returned when a seated player acts for the other side.
	ErrNotYourColor = fmt.Errorf("not your color: %w", model.ErrWrongTurn)
)
