package realtime

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sang6174/ocean-chat-server-sub000/config"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/token"
)

// Gateway owns the websocket upgrade path: authenticate, annotate, register,
// then hold the read loop open until the client goes away. The connection is
// removed eagerly on close or error; there is no timeout sweep.
type Gateway struct {
	registry *Registry
	cfg      *config.Config
	log      *logger.Logger
}

func NewGateway(registry *Registry, cfg *config.Config, log *logger.Logger) *Gateway {
	return &Gateway{registry: registry, cfg: cfg, log: log}
}

func (g *Gateway) Routes(router fiber.Router) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		tokenStr := sessionTokenFrom(c)
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing session token"})
		}
		userID, err := token.Verify(g.cfg.JWT, tokenStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid session token"})
		}

		c.Locals("userID", userID)
		c.Locals("sessionToken", tokenStr)
		return c.Next()
	})
	router.Get("/ws", websocket.New(g.handle))
}

// sessionTokenFrom reads the bearer header, falling back to the `token`
// query parameter because browser websocket clients cannot set headers.
func sessionTokenFrom(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return auth[len(prefix):]
	}
	return c.Query("token")
}

func (g *Gateway) handle(conn *websocket.Conn) {
	userID := conn.Locals("userID").(uuid.UUID)
	sessionToken := conn.Locals("sessionToken").(string)

	writeWait := time.Duration(g.cfg.Realtime.WriteWaitSec) * time.Second
	pongWait := time.Duration(g.cfg.Realtime.PongWaitSec) * time.Second

	s := NewSession(userID, sessionToken, conn, g.cfg.Realtime.SendBuffer, writeWait, pongWait*9/10)
	g.registry.Register(s)
	g.log.Info("client connected", "user_id", userID)

	defer func() {
		g.registry.Unregister(s)
		s.Close()
		g.log.Info("client disconnected", "user_id", userID)
	}()

	go s.WritePump()

	// Mutations arrive over the REST surface; the read loop only keeps the
	// connection health-checked.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Warn("websocket read error", "user_id", userID, "err", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}
