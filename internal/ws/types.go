package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages exchanged over a game socket
type MessageType string

const (
	// client to server
	MessageTypeMove       MessageType = "move"
	MessageTypePromote    MessageType = "promote"
	MessageTypeLegalMoves MessageType = "legalMoves"

	// server to client
	MessageTypeGameState    MessageType = "gameState"
	MessageTypeMoveResult   MessageType = "moveResult"
	MessageTypeDestinations MessageType = "destinations"
	MessageTypeError        MessageType = "error"
)

// Message is the envelope of every websocket frame
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload asks to move the piece on From to To, both in notation such as "e2".
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Command renders the payload the way the engine reads moves.
func (m MovePayload) Command() string {
	return m.From + " " + m.To
}

// PromotePayload picks the piece for a pawn on its last rank. Piece is one of
// Q, R, B or N.
type PromotePayload struct {
	Square string `json:"square"`
	Piece  string `json:"piece"`
}

func (p PromotePayload) Command() string {
	return p.Square + p.Piece
}

type LegalMovesPayload struct {
	Square string `json:"square"`
}

type DestinationsPayload struct {
	Square       string   `json:"square"`
	Destinations []string `json:"destinations"`
}

// ResultPayload carries the engine's message for an accepted move or promotion.
type ResultPayload struct {
	Message string `json:"message"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// New builds a message with payload encoded as JSON.
func New(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
