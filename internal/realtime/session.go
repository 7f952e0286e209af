package realtime

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
)

// Conn is the slice of *websocket.Conn the registry needs; tests substitute
// a recording fake.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Session is one live client connection: ephemeral, process-local, owned by
// the registry, never persisted. The annotation (UserID, Token) is applied
// at upgrade time and trusted here.
type Session struct {
	UserID uuid.UUID
	// Token identifies the client session; a mutation carrying the same
	// token marks this session as the originating one during fanout.
	Token string

	conn       Conn
	out        chan []byte
	done       chan struct{}
	closeOnce  sync.Once
	writeWait  time.Duration
	pingPeriod time.Duration
}

func NewSession(userID uuid.UUID, token string, conn Conn, sendBuffer int, writeWait, pingPeriod time.Duration) *Session {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &Session{
		UserID:     userID,
		Token:      token,
		conn:       conn,
		out:        make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
		writeWait:  writeWait,
		pingPeriod: pingPeriod,
	}
}

// Send queues a payload without blocking. A closed session or a full queue
// is an error for the caller to log; it must never stall fanout to other
// recipients.
func (s *Session) Send(payload []byte) error {
	select {
	case <-s.done:
		return apperrors.Unavailable("session is closed")
	default:
	}

	select {
	case s.out <- payload:
		return nil
	default:
		return apperrors.Unavailable("session send queue is full")
	}
}

// WritePump drains the outbound queue onto the socket. It exits on the
// first write failure or on Close; the gateway's read loop notices the
// closed socket and unregisters the session.
func (s *Session) WritePump() {
	var pings <-chan time.Time
	if s.pingPeriod > 0 {
		ticker := time.NewTicker(s.pingPeriod)
		defer ticker.Stop()
		pings = ticker.C
	}

	for {
		select {
		case payload := <-s.out:
			s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.Close()
				return
			}
		case <-pings:
			s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// Close is idempotent and safe from any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}
