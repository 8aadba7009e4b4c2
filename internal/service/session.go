package service

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/inda20plusplus/maltebl-chess/internal/model"
	"github.com/inda20plusplus/maltebl-chess/internal/ws"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client serializes writes to one connection. A connection is written to by
// its own read loop and by broadcasts from other players.
type Client struct {
	mu   sync.Mutex
	conn Conn
}

func (c *Client) Send(msg ws.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Session is one game with its seated players and open connections. Every call
// into the engine goes through mu.
type Session struct {
	id string

	mu      sync.Mutex
	game    *model.Game
	players [2]string

	connections struct {
		mu      sync.RWMutex
		clients map[string]*Client
	}
}

func newSession(id string, game *model.Game) *Session {
	s := &Session{id: id, game: game}
	s.connections.clients = make(map[string]*Client)
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Join seats playerID. The first player gets white, the second black, and a
// player joining again gets the colour they already hold.
func (s *Session) Join(playerID string) (model.Color, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.colorOf(playerID); ok {
		return c, nil
	}
	for _, c := range []model.Color{model.White, model.Black} {
		if s.players[c] == "" {
			s.players[c] = playerID
			log.Infof("game %s: player %s seated as %s", s.id, playerID, c)
			return c, nil
		}
	}
	return model.White, ErrGameFull
}

func (s *Session) colorOf(playerID string) (model.Color, bool) {
	for _, c := range []model.Color{model.White, model.Black} {
		if playerID != "" && s.players[c] == playerID {
			return c, true
		}
	}
	return model.White, false
}

func (s *Session) State() model.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

func (s *Session) LegalDestinations(square string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalDestinations(square)
}

// Result is the engine's message for an accepted command and the state right
// after it.
type Result struct {
	Message string
	State   model.GameState
}

// Move plays command for playerID, who must hold the colour to move. The new
// state is broadcast to every connection.
func (s *Session) Move(playerID, command string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colorOf(playerID)
	if !ok {
		return Result{}, ErrNotInGame
	}
	if c != s.game.CurrentPlayer() {
		return Result{}, fmt.Errorf("%w, %s is to move", ErrNotYourColor, s.game.CurrentPlayer())
	}
	msg, err := s.game.AttemptMove(command)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("game %s: %s played %q: %s", s.id, c, command, msg)
	return s.accepted(msg), nil
}

// Promote promotes for playerID, who must be the side that just moved.
func (s *Session) Promote(playerID, command string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.colorOf(playerID)
	if !ok {
		return Result{}, ErrNotInGame
	}
	if c == s.game.CurrentPlayer() {
		return Result{}, fmt.Errorf("%w, only %s can promote now", ErrNotYourColor, c.Opposite())
	}
	msg, err := s.game.PromoteAt(command)
	if err != nil {
		return Result{}, err
	}
	log.Debugf("game %s: %s promoted %q: %s", s.id, c, command, msg)
	return s.accepted(msg), nil
}

// accepted snapshots and broadcasts the state. s.mu must be held.
func (s *Session) accepted(msg string) Result {
	state := s.game.State()
	s.broadcast(state)
	return Result{Message: msg, State: state}
}

// RegisterConnection attaches conn for playerID and sends it the current
// state. Anyone may watch; only seated players may move. A second connection
// for the same player is closed and nil is returned with it.
func (s *Session) RegisterConnection(playerID string, conn Conn) *Client {
	s.connections.mu.Lock()
	if _, exists := s.connections.clients[playerID]; exists {
		s.connections.mu.Unlock()
		log.Warnf("game %s: rejecting duplicate connection for player %s", s.id, playerID)
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	client := &Client{conn: conn}
	s.connections.clients[playerID] = client
	s.connections.mu.Unlock()
	log.Infof("game %s: connection registered for player %s", s.id, playerID)

	msg, err := ws.New(ws.MessageTypeGameState, s.State())
	if err != nil {
		log.Errorf("game %s: encode state: %v", s.id, err)
		return client
	}
	if err := client.Send(msg); err != nil {
		log.Warnf("game %s: send initial state to %s: %v", s.id, playerID, err)
	}
	return client
}

// UnregisterConnection detaches client if it is still the player's current
// connection.
func (s *Session) UnregisterConnection(playerID string, client *Client) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	if current, ok := s.connections.clients[playerID]; ok && current == client {
		delete(s.connections.clients, playerID)
		log.Infof("game %s: connection closed for player %s", s.id, playerID)
	}
}

// broadcast sends state to every connection and drops the ones that fail.
func (s *Session) broadcast(state model.GameState) {
	msg, err := ws.New(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("game %s: encode state: %v", s.id, err)
		return
	}

	s.connections.mu.RLock()
	active := make(map[string]*Client, len(s.connections.clients))
	for playerID, client := range s.connections.clients {
		active[playerID] = client
	}
	s.connections.mu.RUnlock()

	for playerID, client := range active {
		if err := client.Send(msg); err != nil {
			log.Warnf("game %s: failed to send state to player %s: %v", s.id, playerID, err)
			s.UnregisterConnection(playerID, client)
		}
	}
}
