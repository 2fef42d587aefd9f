package server

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/notation"
	"github.com/nelhage/checkers/session"
)

type Config struct {
	Addr string `env:"CHECKERS_ADDR" envDefault:":3000"`
	DB   string `env:"CHECKERS_DB"`
	Rule string `env:"CHECKERS_RULE" envDefault:"follow-up"`

	// Retain is how long finished games stay in memory.
	Retain time.Duration `env:"CHECKERS_RETAIN" envDefault:"10m"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

type createRequest struct {
	Opponent string `json:"opponent"`

	// Seed is optional; without it each game gets a fresh one.
	Seed *int64 `json:"seed"`
}

type actionRequest struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Move string `json:"move"`
}

type Server struct {
	m *Manager
}

// New builds the HTTP app serving games from m.
func New(m *Manager) *fiber.App {
	s := &Server{m: m}
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Post("/api/games", s.create)
	app.Get("/api/games/:id", s.get)
	app.Post("/api/games/:id/click", s.click)
	app.Post("/api/games/:id/move", s.move)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/games/:id", websocket.New(s.stream))
	return app
}

func statusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrBadOpponent), errors.Is(err, notation.ErrMalformed):
		return fiber.StatusBadRequest
	case errors.Is(err, session.ErrGameOver), errors.Is(err, session.ErrComputerTurn):
		return fiber.StatusConflict
	case isIllegal(err):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func isIllegal(err error) bool {
	for _, e := range []error{
		checkers.ErrOffBoard, checkers.ErrNotYourPiece, checkers.ErrOccupied,
		checkers.ErrNotDiagonal, checkers.ErrNoCapture, checkers.ErrNoFollowUp,
		checkers.ErrBackward,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		log.Printf("request failed: path=%s err=%v", c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (s *Server) create(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	st, err := s.m.Create(req.Opponent, req.Seed)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

func (s *Server) get(c *fiber.Ctx) error {
	st, err := s.m.State(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (s *Server) click(c *fiber.Ctx) error {
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	st, err := s.m.Click(c.Params("id"), req.Row, req.Col)
	if err != nil {
		return err
	}
	return c.JSON(st)
}

func (s *Server) move(c *fiber.Ctx) error {
	var req actionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	st, err := s.m.Move(c.Params("id"), req.Move)
	if err != nil {
		return err
	}
	return c.JSON(st)
}

// stream sends the game state on connect and after every action the
// client sends. An action with a non-empty move is played as
// notation; otherwise it is a click.
func (s *Server) stream(c *websocket.Conn) {
	id := c.Params("id")
	st, err := s.m.State(id)
	if err != nil {
		c.WriteJSON(fiber.Map{"error": err.Error()})
		return
	}
	if err := c.WriteJSON(st); err != nil {
		return
	}
	for {
		var req actionRequest
		if err := c.ReadJSON(&req); err != nil {
			return
		}
		if req.Move != "" {
			st, err = s.m.Move(id, req.Move)
		} else {
			st, err = s.m.Click(id, req.Row, req.Col)
		}
		if err != nil {
			if werr := c.WriteJSON(fiber.Map{"error": err.Error()}); werr != nil {
				return
			}
			continue
		}
		if err := c.WriteJSON(st); err != nil {
			return
		}
	}
}
