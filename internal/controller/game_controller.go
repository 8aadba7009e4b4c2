package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/inda20plusplus/maltebl-chess/internal/middleware"
	"github.com/inda20plusplus/maltebl-chess/internal/model"
	"github.com/inda20plusplus/maltebl-chess/internal/service"
	"github.com/inda20plusplus/maltebl-chess/internal/ws"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// Routes mounts the game endpoints on r. The player id middleware must run
// before them.
func (gc *GameController) Routes(r fiber.Router) {
	r.Post("/create", gc.CreateGame)
	r.Post("/join/:gameId", gc.JoinGame)
	r.Get("/:gameId", gc.GetGameState)
	r.Get("/:gameId/moves/:square", gc.LegalMoves)
	r.Post("/:gameId/move", gc.Move)
	r.Post("/:gameId/promote", gc.Promote)
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gameState)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	dests, err := gc.gameService.LegalDestinations(c.Params("gameId"), square)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(ws.DestinationsPayload{Square: square, Destinations: dests})
}

func (gc *GameController) Move(c *fiber.Ctx) error {
	var body ws.MovePayload
	if err := c.BodyParser(&body); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", model.ErrMalformedInput, err))
	}
	res, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), body.Command())
	if err != nil {
		return errorResponse(c, err)
	}
	return result(c, res)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var body ws.PromotePayload
	if err := c.BodyParser(&body); err != nil {
		return errorResponse(c, fmt.Errorf("%w: %v", model.ErrMalformedInput, err))
	}
	res, err := gc.gameService.HandlePromotion(c.Params("gameId"), middleware.PlayerID(c), body.Command())
	if err != nil {
		return errorResponse(c, err)
	}
	return result(c, res)
}

func result(c *fiber.Ctx, res service.Result) error {
	return c.JSON(fiber.Map{
		"message": res.Message,
		"state":   res.State,
	})
}
