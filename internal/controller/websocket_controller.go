package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/inda20plusplus/maltebl-chess/internal/middleware"
	"github.com/inda20plusplus/maltebl-chess/internal/model"
	"github.com/inda20plusplus/maltebl-chess/internal/service"
	"github.com/inda20plusplus/maltebl-chess/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs the read loop of one game socket until the client
// goes away.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals(middleware.PlayerIDKey).(string)

	client, err := wsc.gameService.RegisterConnection(gameID, playerID, c)
	if err != nil {
		log.Warnf("game %s: failed to register connection for %s: %v", gameID, playerID, err)
		if msg, encErr := errorMessage(err); encErr == nil {
			c.WriteJSON(msg)
		}
		c.Close()
		return
	}
	if client == nil {
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, client)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read from %s: %v", gameID, playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			err = fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
			wsc.reply(client, ws.Message{}, err)
			continue
		}
		reply, err := wsc.handleMessage(gameID, playerID, msg)
		wsc.reply(client, reply, err)
	}
}

// handleMessage runs one client request and returns the reply for its sender.
// State changes reach every connection through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := decode(msg.Payload, &move); err != nil {
			return ws.Message{}, err
		}
		result, err := wsc.gameService.HandleMove(gameID, playerID, move.Command())
		if err != nil {
			return ws.Message{}, err
		}
		return ws.New(ws.MessageTypeMoveResult, ws.ResultPayload{Message: result.Message})

	case ws.MessageTypePromote:
		var promote ws.PromotePayload
		if err := decode(msg.Payload, &promote); err != nil {
			return ws.Message{}, err
		}
		result, err := wsc.gameService.HandlePromotion(gameID, playerID, promote.Command())
		if err != nil {
			return ws.Message{}, err
		}
		return ws.New(ws.MessageTypeMoveResult, ws.ResultPayload{Message: result.Message})

	case ws.MessageTypeLegalMoves:
		var query ws.LegalMovesPayload
		if err := decode(msg.Payload, &query); err != nil {
			return ws.Message{}, err
		}
		dests, err := wsc.gameService.LegalDestinations(gameID, query.Square)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.New(ws.MessageTypeDestinations, ws.DestinationsPayload{Square: query.Square, Destinations: dests})

	case ws.MessageTypeGameState:
		state, err := wsc.gameService.GetGameState(gameID)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.New(ws.MessageTypeGameState, state)
	}
	return ws.Message{}, fmt.Errorf("%w: unknown message type %q", model.ErrMalformedInput, msg.Type)
}

func decode(payload json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedInput, err)
	}
	return nil
}

func (wsc *WebSocketController) reply(client *service.Client, reply ws.Message, err error) {
	if err != nil {
		if statusFor(err) == fiber.StatusInternalServerError {
			log.Errorf("websocket request failed: %v", err)
		}
		reply, err = errorMessage(err)
		if err != nil {
			log.Errorf("encode error reply: %v", err)
			return
		}
	}
	if sendErr := client.Send(reply); sendErr != nil {
		log.Debugf("websocket reply: %v", sendErr)
	}
}

func errorMessage(err error) (ws.Message, error) {
	return ws.New(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
}
