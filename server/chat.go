package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sang6174/ocean-chat-server-sub000/internal/chat"
)

type createConversationRequest struct {
	Type           string      `json:"type"`
	Name           string      `json:"name"`
	ParticipantIDs []uuid.UUID `json:"participantIds"`
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

type addParticipantsRequest struct {
	ParticipantIDs []uuid.UUID `json:"participantIds"`
}

func (s *Server) handleCreateConversation(c *fiber.Ctx) error {
	req := new(createConversationRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	dto, err := s.chatUC.CreateConversation(c.Context(), chat.CreateConversationCommand{
		ActorID:            actorID(c),
		Type:               req.Type,
		Name:               req.Name,
		ParticipantIDs:     req.ParticipantIDs,
		OriginSessionToken: sessionToken(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto)
}

func (s *Server) handleListConversations(c *fiber.Ctx) error {
	dtos, err := s.chatUC.ListConversations(c.Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dtos)
}

func (s *Server) handleSendMessage(c *fiber.Ctx) error {
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid conversation id"})
	}
	req := new(sendMessageRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	dto, err := s.chatUC.SendMessage(c.Context(), chat.SendMessageCommand{
		ActorID:            actorID(c),
		ConversationID:     convID,
		Body:               req.Body,
		OriginSessionToken: sessionToken(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto)
}

func (s *Server) handleListMessages(c *fiber.Ctx) error {
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid conversation id"})
	}

	var before time.Time
	if raw := c.Query("before"); raw != "" {
		before, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid before timestamp"})
		}
	}

	dtos, err := s.chatUC.ListMessages(c.Context(), chat.ListMessagesCommand{
		ActorID:        actorID(c),
		ConversationID: convID,
		Limit:          c.QueryInt("limit"),
		Before:         before,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dtos)
}

func (s *Server) handleAddParticipants(c *fiber.Ctx) error {
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid conversation id"})
	}
	req := new(addParticipantsRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := s.chatUC.AddParticipants(c.Context(), chat.AddParticipantsCommand{
		ActorID:            actorID(c),
		ConversationID:     convID,
		ParticipantIDs:     req.ParticipantIDs,
		OriginSessionToken: sessionToken(c),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

func actorID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals("userID").(uuid.UUID)
	return id
}

func sessionToken(c *fiber.Ctx) string {
	tok, _ := c.Locals("sessionToken").(string)
	return tok
}
