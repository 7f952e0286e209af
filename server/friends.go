package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sang6174/ocean-chat-server-sub000/internal/notification"
)

type friendRequestRequest struct {
	RecipientID uuid.UUID `json:"recipientId"`
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

func (s *Server) handleSendFriendRequest(c *fiber.Ctx) error {
	req := new(friendRequestRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	dto, err := s.notifUC.SendFriendRequest(c.Context(), notification.SendFriendRequestCommand{
		ActorID:     actorID(c),
		RecipientID: req.RecipientID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto)
}

func (s *Server) handleRespondFriendRequest(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}
	req := new(respondRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	dto, err := s.notifUC.Respond(c.Context(), notification.RespondCommand{
		ActorID:        actorID(c),
		NotificationID: notifID,
		Accept:         req.Accept,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto)
}

func (s *Server) handleCancelFriendRequest(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}

	dto, err := s.notifUC.Cancel(c.Context(), notification.CancelCommand{
		ActorID:        actorID(c),
		NotificationID: notifID,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto)
}

func (s *Server) handleListNotifications(c *fiber.Ctx) error {
	dtos, err := s.notifUC.ListForUser(c.Context(), actorID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dtos)
}

func (s *Server) handleMarkNotificationRead(c *fiber.Ctx) error {
	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}

	if err := s.notifUC.MarkRead(c.Context(), actorID(c), notifID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
