package server

import (
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Signup handles POST /signup.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	_, err := s.authService.Register(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			return models.RespondWithError(c, fiber.StatusConflict, err)
		}
		return s.internalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registered successfully",
	})
}

// Login handles POST /login. A token is returned with 201 on success; a
// missing credential, an unknown user, and a wrong password each map to
// their own status.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized, models.ErrMissingLogin)
	}

	token, err := s.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingLogin):
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		case errors.Is(err, models.ErrUnknownUser):
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		case errors.Is(err, models.ErrWrongPassword):
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		default:
			return s.internalError(c, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token})
}
