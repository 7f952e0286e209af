package server

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/sang6174/ocean-chat-server-sub000/internal/user"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Password hashing stays at the boundary; the core only ever sees the hash
// and a comparison closure.
func (s *Server) handleRegister(c *fiber.Ctx) error {
	req := new(registerRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password is required"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	dto, err := s.userUC.Register(c.Context(), user.RegisterCommand{
		Name:           req.Name,
		Email:          req.Email,
		Username:       req.Username,
		CredentialHash: string(hashed),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	req := new(loginRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	session, err := s.userUC.Login(c.Context(), user.LoginCommand{
		Username: req.Username,
		CheckCredential: func(storedHash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)) == nil
		},
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(session)
}
