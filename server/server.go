package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sang6174/ocean-chat-server-sub000/config"
	"github.com/sang6174/ocean-chat-server-sub000/internal/chat"
	"github.com/sang6174/ocean-chat-server-sub000/internal/notification"
	"github.com/sang6174/ocean-chat-server-sub000/internal/realtime"
	"github.com/sang6174/ocean-chat-server-sub000/internal/user"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

// Server is the thin glue between validated requests and the core: every
// handler turns its input into a usecase call and maps the typed failure to
// a status code.
type Server struct {
	app     *fiber.App
	cfg     *config.Config
	log     *logger.Logger
	userUC  user.UserUsecase
	chatUC  chat.ChatUsecase
	notifUC notification.NotificationUsecase
	gateway *realtime.Gateway
}

func New(cfg *config.Config, log *logger.Logger, userUC user.UserUsecase, chatUC chat.ChatUsecase, notifUC notification.NotificationUsecase, gateway *realtime.Gateway) *Server {
	s := &Server{
		app:     fiber.New(),
		cfg:     cfg,
		log:     log,
		userUC:  userUC,
		chatUC:  chatUC,
		notifUC: notifUC,
		gateway: gateway,
	}
	s.mapRoutes()
	return s
}

func (s *Server) mapRoutes() {
	auth := s.app.Group("/auth")
	auth.Post("/register", s.handleRegister)
	auth.Post("/login", s.handleLogin)

	api := s.app.Group("/", JWTMiddleware(s.cfg))

	conversations := api.Group("/conversations")
	conversations.Post("/", s.handleCreateConversation)
	conversations.Get("/", s.handleListConversations)
	conversations.Post("/:id/messages", s.handleSendMessage)
	conversations.Get("/:id/messages", s.handleListMessages)
	conversations.Post("/:id/participants", s.handleAddParticipants)

	friends := api.Group("/friends/requests")
	friends.Post("/", s.handleSendFriendRequest)
	friends.Get("/", s.handleListNotifications)
	friends.Post("/:id/respond", s.handleRespondFriendRequest)
	friends.Post("/:id/cancel", s.handleCancelFriendRequest)
	friends.Post("/:id/read", s.handleMarkNotificationRead)

	// the gateway authenticates upgrades itself; token may arrive as a
	// query parameter
	s.gateway.Routes(s.app)
}

func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Server.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
